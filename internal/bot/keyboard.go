package bot

import (
	"fmt"

	"freshnest-bot/internal/pricing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Button labels. Handlers match on these, so they live in one place.
const (
	btnBookCleaning = "🧽 Book a cleaning"
	btnJoinTeam     = "🧑‍💼 Join our team"
	btnHelp         = "ℹ️ Help"

	btnCancel  = "❌ Cancel"
	btnSkip    = "Skip"
	btnYes     = "Yes"
	btnNo      = "No"
	btnDone    = "Done"
	btnConfirm = "✅ Confirm booking"
	btnEdit    = "🔁 Start over"

	btnToday      = "Today"
	btnTomorrow   = "Tomorrow"
	btnManualDate = "Pick a date"

	btnShareContact = "📱 Share my contact"
	btnTypePhone    = "Type it in"

	btnBookNow         = "✅ Book this clean"
	btnChangeFrequency = "🔁 Change frequency"
	btnNoTip           = "No tip"
)

var arrivalWindows = []string{
	"8:00-10:00", "10:00-12:00", "12:00-14:00", "14:00-16:00", "16:00-18:00",
}

func (b *Bot) createMainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBookCleaning),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnJoinTeam),
			tgbotapi.NewKeyboardButton(btnHelp),
		),
	)
}

func (b *Bot) createServiceKeyboard() tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(pricing.Services)+1)
	for _, svc := range pricing.Services {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(svc.Name),
		))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnCancel),
	))
	return tgbotapi.NewReplyKeyboard(rows...)
}

// createSqftKeyboard offers only catalog buckets, which is what keeps the
// calculator free of free-text square footage parsing.
func (b *Bot) createSqftKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for i := 0; i < len(pricing.SqftBuckets); i += 2 {
		row := []tgbotapi.KeyboardButton{
			tgbotapi.NewKeyboardButton(pricing.SqftBuckets[i]),
		}
		if i+1 < len(pricing.SqftBuckets) {
			row = append(row, tgbotapi.NewKeyboardButton(pricing.SqftBuckets[i+1]))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnCancel),
	))
	return tgbotapi.NewReplyKeyboard(rows...)
}

// createCountKeyboard lays out from..to as number buttons, four per row.
func (b *Bot) createCountKeyboard(from, to int) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	var row []tgbotapi.KeyboardButton
	for n := from; n <= to; n++ {
		row = append(row, tgbotapi.NewKeyboardButton(fmt.Sprintf("%d", n)))
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnCancel),
	))
	return tgbotapi.NewReplyKeyboard(rows...)
}

func (b *Bot) createBasementKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for _, opt := range pricing.BasementOptions {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(pricing.BasementLabels[opt]),
		))
	}
	return tgbotapi.NewReplyKeyboard(rows...)
}

func (b *Bot) createYesNoKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnYes),
			tgbotapi.NewKeyboardButton(btnNo),
		),
	)
}

// createAddOnsKeyboard renders the service's add-on catalog as inline
// toggle buttons with the current quantity, plus a Done row.
func (b *Bot) createAddOnsKeyboard(service pricing.ServiceID, selected map[string]int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, addOn := range pricing.AddOnsForService(service) {
		label := addOn.Label
		if qty := selected[addOn.ID]; qty > 0 {
			if addOn.Kind == pricing.AddOnMetered {
				label = fmt.Sprintf("✅ %s ×%d", addOn.Label, qty)
			} else {
				label = "✅ " + addOn.Label
			}
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "addon:"+addOn.ID),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➡️ "+btnDone, "addons:done"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) createFrequencyKeyboard(service pricing.ServiceID) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for _, f := range pricing.FrequenciesForService(service) {
		label := f.Label
		if f.DiscountRate > 0 {
			label = fmt.Sprintf("%s (save %g%%)", f.Label, f.DiscountRate*100)
		}
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(label),
		))
	}
	return tgbotapi.NewReplyKeyboard(rows...)
}

func (b *Bot) createQuoteKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBookNow),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnChangeFrequency),
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
}

func (b *Bot) createTipKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnNoTip),
			tgbotapi.NewKeyboardButton("$10"),
			tgbotapi.NewKeyboardButton("$20"),
			tgbotapi.NewKeyboardButton("$40"),
		),
	)
}

func (b *Bot) createDateSelectionKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnToday),
			tgbotapi.NewKeyboardButton(btnTomorrow),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnManualDate),
		),
	)
}

func (b *Bot) createArrivalWindowKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for i := 0; i < len(arrivalWindows); i += 2 {
		row := []tgbotapi.KeyboardButton{
			tgbotapi.NewKeyboardButton(arrivalWindows[i]),
		}
		if i+1 < len(arrivalWindows) {
			row = append(row, tgbotapi.NewKeyboardButton(arrivalWindows[i+1]))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewReplyKeyboard(rows...)
}

func (b *Bot) createContactMethodKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonContact(btnShareContact),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnTypePhone),
		),
	)
}

func (b *Bot) createConfirmKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnConfirm),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnEdit),
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
}

func (b *Bot) createSkipKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSkip),
		),
	)
}
