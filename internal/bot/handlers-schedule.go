package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"freshnest-bot/internal/pricing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const dateLayout = "02.01.2006"

func (b *Bot) showAddOns(ctx context.Context, chatID int64) {
	state, err := b.state.Get(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get user state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	msg := tgbotapi.NewMessage(chatID,
		"✨ Any extras? Tap to add, tap again to remove. Then hit Done.")
	msg.ReplyMarkup = b.createAddOnsKeyboard(state.Selection.Service, state.Selection.AddOns)
	b.sendMessage(msg)
}

// handleAddOnsText covers typed input while the inline keyboard is up.
func (b *Bot) handleAddOnsText(ctx context.Context, chatID int64, text string) {
	if text == btnCancel {
		b.cancelFlow(ctx, chatID)
		return
	}
	b.sendMessage(tgbotapi.NewMessage(chatID, "Use the buttons above to pick extras, then Done."))
}

func (b *Bot) handleAddOnToggle(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	addOnID := strings.TrimPrefix(callback.Data, "addon:")

	var service pricing.ServiceID
	var selected map[string]int
	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		for _, addOn := range pricing.AddOnsForService(s.Selection.Service) {
			if addOn.ID == addOnID {
				s.ToggleAddOn(addOn)
				break
			}
		}
		service = s.Selection.Service
		selected = s.Selection.AddOns
	})
	if err != nil {
		b.logger.Error("Failed to toggle add-on",
			zap.Int64("chat_id", chatID),
			zap.String("add_on", addOnID),
			zap.Error(err))
		return
	}

	markup := b.createAddOnsKeyboard(service, selected)
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, callback.Message.MessageID, markup)
	if _, err := b.bot.Request(edit); err != nil {
		b.logger.Warn("Failed to update add-ons keyboard", zap.Error(err))
	}
}

func (b *Bot) handleAddOnsDone(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID

	state, err := b.state.Get(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get user state", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}

	b.setStep(ctx, chatID, StepFrequency)
	msg := tgbotapi.NewMessage(chatID, "📅 How often would you like us to come?")
	msg.ReplyMarkup = b.createFrequencyKeyboard(state.Selection.Service)
	b.sendMessage(msg)
}

func (b *Bot) handleFrequency(ctx context.Context, chatID int64, text string) {
	state, err := b.state.Get(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get user state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	frequencyID := frequencyIDFromLabel(state.Selection.Service, text)
	if frequencyID == "" {
		b.sendError(chatID, "Please pick a frequency from the keyboard")
		return
	}

	err = b.state.Update(ctx, chatID, func(s *BookingState) {
		s.Selection.FrequencyID = frequencyID
		s.Step = StepQuote
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	state.Selection.FrequencyID = frequencyID
	quote := pricing.Calculate(state.Selection)
	msg := tgbotapi.NewMessage(chatID, formatQuote(state.Selection, quote))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = b.createQuoteKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) handleQuote(ctx context.Context, chatID int64, text string) {
	switch text {
	case btnBookNow:
		b.setStep(ctx, chatID, StepTip)
		msg := tgbotapi.NewMessage(chatID,
			"💖 Would you like to add a tip for the cleaners? It is never expected.")
		msg.ReplyMarkup = b.createTipKeyboard()
		b.sendMessage(msg)
	case btnChangeFrequency:
		state, err := b.state.Get(ctx, chatID)
		if err != nil {
			b.logger.Error("Failed to get user state", zap.Int64("chat_id", chatID), zap.Error(err))
			b.sendError(chatID, "Something went wrong, please try again")
			return
		}
		b.setStep(ctx, chatID, StepFrequency)
		msg := tgbotapi.NewMessage(chatID, "📅 How often would you like us to come?")
		msg.ReplyMarkup = b.createFrequencyKeyboard(state.Selection.Service)
		b.sendMessage(msg)
	case btnCancel:
		b.cancelFlow(ctx, chatID)
	default:
		b.sendError(chatID, "Please use the buttons below")
	}
}

func (b *Bot) handleTip(ctx context.Context, chatID int64, text string) {
	var tip float64
	if text != btnNoTip {
		cleaned := strings.TrimPrefix(strings.TrimSpace(text), "$")
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || parsed < 0 || parsed > 10000 {
			b.sendError(chatID, "Type a tip amount like 15, or pick No tip")
			return
		}
		tip = parsed
	}

	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		s.Selection.Tip = tip
		s.Step = StepDate
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "🗓 When should we come?")
	msg.ReplyMarkup = b.createDateSelectionKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) handleDate(ctx context.Context, chatID int64, text string) {
	now := time.Now()
	switch text {
	case btnToday:
		b.acceptDate(ctx, chatID, now)
	case btnTomorrow:
		b.acceptDate(ctx, chatID, now.AddDate(0, 0, 1))
	case btnManualDate:
		b.setStep(ctx, chatID, StepManualDate)
		msg := tgbotapi.NewMessage(chatID, "Type the date as DD.MM.YYYY, e.g. 24.09.2026")
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		b.sendMessage(msg)
	default:
		b.sendError(chatID, "Pick a day or choose a date")
	}
}

var (
	errDateFormat = errors.New("unparseable date")
	errDatePast   = errors.New("date is in the past")
	errDateTooFar = errors.New("date too far out")
)

// parseBookingDate reads DD.MM.YYYY (two-digit years forgiven) and checks
// it falls between today and a year out. Days are compared at local
// midnight so a same-day booking entered late in the evening still counts.
func parseBookingDate(text string, now time.Time) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, text)
	if err != nil {
		p2, err2 := time.Parse("02.01.06", text)
		if err2 != nil {
			return time.Time{}, errDateFormat
		}
		parsed = p2
	}

	date := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return time.Time{}, errDatePast
	}
	if date.After(today.AddDate(1, 0, 0)) {
		return time.Time{}, errDateTooFar
	}
	return date, nil
}

func (b *Bot) handleManualDate(ctx context.Context, chatID int64, text string) {
	date, err := parseBookingDate(text, time.Now())
	switch {
	case errors.Is(err, errDateFormat):
		b.sendError(chatID, "That date did not parse, use DD.MM.YYYY")
		return
	case errors.Is(err, errDatePast):
		b.sendError(chatID, "That date is in the past, pick a future one")
		return
	case errors.Is(err, errDateTooFar):
		b.sendError(chatID, "We only take bookings up to a year out")
		return
	}

	b.acceptDate(ctx, chatID, date)
}

func (b *Bot) acceptDate(ctx context.Context, chatID int64, date time.Time) {
	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		s.BookingDate = date.Format(dateLayout)
		s.Step = StepArrivalWindow
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "What arrival window works for you?")
	msg.ReplyMarkup = b.createArrivalWindowKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) handleArrivalWindow(ctx context.Context, chatID int64, text string) {
	valid := false
	for _, w := range arrivalWindows {
		if w == text {
			valid = true
			break
		}
	}
	if !valid {
		b.sendError(chatID, "Please pick an arrival window from the keyboard")
		return
	}

	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		s.ArrivalWindow = text
		s.Step = StepAddress
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "🏡 What is the street address?")
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	b.sendMessage(msg)
}

func (b *Bot) handleAddress(ctx context.Context, chatID int64, text string) {
	if len(text) < 5 {
		b.sendError(chatID, "That looks too short for an address")
		return
	}

	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		s.Address = text
		s.Step = StepPostalCode
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	b.sendMessage(tgbotapi.NewMessage(chatID, "And the postal code?"))
}

func (b *Bot) handlePostalCode(ctx context.Context, chatID int64, text string) {
	if !IsValidPostalCode(text) {
		b.sendError(chatID, "That postal code does not look right, e.g. M5V 2T6 or 90210")
		return
	}

	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		s.PostalCode = strings.ToUpper(strings.TrimSpace(text))
		s.Step = StepName
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	b.sendMessage(tgbotapi.NewMessage(chatID, "👤 What name should we put on the booking?"))
}

func (b *Bot) handleName(ctx context.Context, chatID int64, text string) {
	if len(text) < 2 || len(text) > 100 {
		b.sendError(chatID, "Please type your name")
		return
	}

	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		s.Name = text
		s.Step = StepEmail
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	b.sendMessage(tgbotapi.NewMessage(chatID, "📧 What email should the confirmation go to?"))
}

func (b *Bot) handleEmail(ctx context.Context, chatID int64, text string) {
	if !IsValidEmail(text) {
		b.sendError(chatID, "That email does not look right, try again")
		return
	}

	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		s.Email = strings.TrimSpace(text)
		s.Step = StepContactMethod
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "📱 Last thing, a phone number we can reach you at.")
	msg.ReplyMarkup = b.createContactMethodKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) handleContactMethod(ctx context.Context, chatID int64, text string) {
	if text == btnTypePhone {
		b.setStep(ctx, chatID, StepPhone)
		msg := tgbotapi.NewMessage(chatID, "Type your phone number, e.g. 416-555-1234")
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		b.sendMessage(msg)
		return
	}
	// A typed number here is fine too.
	b.handlePhone(ctx, chatID, text)
}

func (b *Bot) handlePhone(ctx context.Context, chatID int64, text string) {
	normalized := NormalizePhoneNumber(text)
	if normalized == "" {
		b.sendError(chatID, "That phone number does not look right, try 416-555-1234")
		return
	}

	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		s.PhoneNumber = normalized
		s.Step = StepNotes
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	msg := tgbotapi.NewMessage(chatID,
		"📝 Anything we should know? Gate codes, pets, problem areas. Or Skip.")
	msg.ReplyMarkup = b.createSkipKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) handleNotes(ctx context.Context, chatID int64, text string) {
	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		if text != btnSkip {
			s.Notes = text
		}
		s.Step = StepConfirm
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	state, err := b.state.Get(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get user state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	quote := pricing.Calculate(state.Selection)
	msg := tgbotapi.NewMessage(chatID, formatBookingSummary(state, quote))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = b.createConfirmKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) handleConfirm(ctx context.Context, chatID int64, text string) {
	switch text {
	case btnConfirm:
		b.submitBooking(ctx, chatID)
	case btnEdit:
		b.startBooking(ctx, chatID)
	case btnCancel:
		b.cancelFlow(ctx, chatID)
	default:
		b.sendError(chatID, "Please use the buttons below")
	}
}
