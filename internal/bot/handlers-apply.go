package bot

import (
	"context"
	"fmt"
	"strings"

	"freshnest-bot/internal/storage"
	"freshnest-bot/pkg/api"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) startApplication(ctx context.Context, chatID int64) {
	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		s.ResetBooking()
		s.Application = &ApplicationDraft{}
		s.Step = StepApplyFirstName
	})
	if err != nil {
		b.logger.Error("Failed to reset state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	msg := tgbotapi.NewMessage(chatID,
		"🧑‍💼 Great, we're always looking for cleaners!\n\nWhat is your first name?")
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	b.sendMessage(msg)
}

// updateApplication mutates the draft and advances, bailing out to the main
// menu if the draft somehow went missing.
func (b *Bot) updateApplication(ctx context.Context, chatID int64, nextStep string, fn func(*ApplicationDraft)) bool {
	missing := false
	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		if s.Application == nil {
			missing = true
			return
		}
		fn(s.Application)
		s.Step = nextStep
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return false
	}
	if missing {
		b.handleDefault(ctx, chatID)
		return false
	}
	return true
}

func (b *Bot) handleApplyFirstName(ctx context.Context, chatID int64, text string) {
	if len(text) < 2 || len(text) > 50 {
		b.sendError(chatID, "Please type your first name")
		return
	}
	if !b.updateApplication(ctx, chatID, StepApplyLastName, func(a *ApplicationDraft) {
		a.FirstName = text
	}) {
		return
	}
	b.sendMessage(tgbotapi.NewMessage(chatID, "And your last name?"))
}

func (b *Bot) handleApplyLastName(ctx context.Context, chatID int64, text string) {
	if len(text) < 2 || len(text) > 50 {
		b.sendError(chatID, "Please type your last name")
		return
	}
	if !b.updateApplication(ctx, chatID, StepApplyEmail, func(a *ApplicationDraft) {
		a.LastName = text
	}) {
		return
	}
	b.sendMessage(tgbotapi.NewMessage(chatID, "📧 What email can we reach you at?"))
}

func (b *Bot) handleApplyEmail(ctx context.Context, chatID int64, text string) {
	if !IsValidEmail(text) {
		b.sendError(chatID, "That email does not look right, try again")
		return
	}
	if !b.updateApplication(ctx, chatID, StepApplyPhone, func(a *ApplicationDraft) {
		a.Email = strings.TrimSpace(text)
	}) {
		return
	}
	msg := tgbotapi.NewMessage(chatID, "📱 And a phone number?")
	msg.ReplyMarkup = b.createContactMethodKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) handleApplyPhone(ctx context.Context, chatID int64, text string) {
	if text == btnTypePhone {
		b.sendMessage(tgbotapi.NewMessage(chatID, "Type your phone number, e.g. 416-555-1234"))
		return
	}
	normalized := NormalizePhoneNumber(text)
	if normalized == "" {
		b.sendError(chatID, "That phone number does not look right, try 416-555-1234")
		return
	}
	if !b.updateApplication(ctx, chatID, StepApplyExperience, func(a *ApplicationDraft) {
		a.Phone = normalized
	}) {
		return
	}
	msg := tgbotapi.NewMessage(chatID,
		"Do you have professional cleaning experience? A sentence or two is fine.")
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	b.sendMessage(msg)
}

func (b *Bot) handleApplyExperience(ctx context.Context, chatID int64, text string) {
	if text == "" {
		b.sendError(chatID, "A short answer is fine, but we need one")
		return
	}
	if !b.updateApplication(ctx, chatID, StepApplyLicense, func(a *ApplicationDraft) {
		a.CleaningExperience = text
	}) {
		return
	}
	msg := tgbotapi.NewMessage(chatID, "🚗 Do you have a driver's license and a vehicle?")
	msg.ReplyMarkup = b.createYesNoKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) handleApplyLicense(ctx context.Context, chatID int64, text string) {
	if text != btnYes && text != btnNo {
		b.sendError(chatID, "Please answer Yes or No")
		return
	}
	if !b.updateApplication(ctx, chatID, StepApplyAvailability, func(a *ApplicationDraft) {
		a.HasLicenseAndVehicle = strings.ToLower(text)
	}) {
		return
	}
	msg := tgbotapi.NewMessage(chatID,
		"🗓 What is your availability? E.g. weekday mornings, weekends only.")
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	b.sendMessage(msg)
}

func (b *Bot) handleApplyAvailability(ctx context.Context, chatID int64, text string) {
	if text == "" {
		b.sendError(chatID, "Please describe your availability")
		return
	}
	if !b.updateApplication(ctx, chatID, StepApplyMessage, func(a *ApplicationDraft) {
		a.Availability = text
	}) {
		return
	}
	msg := tgbotapi.NewMessage(chatID, "Anything else you want us to know? Or Skip.")
	msg.ReplyMarkup = b.createSkipKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) handleApplyMessage(ctx context.Context, chatID int64, text string) {
	if !b.updateApplication(ctx, chatID, StepApplyResume, func(a *ApplicationDraft) {
		if text != btnSkip {
			a.Message = text
		}
	}) {
		return
	}
	msg := tgbotapi.NewMessage(chatID,
		"📄 If you have a resume online, paste a link to it. Or Skip.")
	msg.ReplyMarkup = b.createSkipKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) handleApplyResume(ctx context.Context, chatID int64, text string) {
	if !b.updateApplication(ctx, chatID, StepApplyConfirm, func(a *ApplicationDraft) {
		if text != btnSkip {
			a.Resume = text
		}
	}) {
		return
	}

	state, err := b.state.Get(ctx, chatID)
	if err != nil || state.Application == nil {
		b.logger.Error("Failed to get user state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}
	app := state.Application

	summary := fmt.Sprintf(
		"📋 *Please confirm your application*\n\nName: %s %s\nEmail: %s\nPhone: %s\nExperience: %s\nLicense and vehicle: %s\nAvailability: %s\n",
		app.FirstName, app.LastName, app.Email, FormatPhoneNumber(app.Phone),
		app.CleaningExperience, app.HasLicenseAndVehicle, app.Availability)
	if app.Message != "" {
		summary += "Note: " + app.Message + "\n"
	}
	if app.Resume != "" {
		summary += "Resume: " + app.Resume + "\n"
	}

	msg := tgbotapi.NewMessage(chatID, summary)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("✅ Send application")),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancel)),
	)
	b.sendMessage(msg)
}

func (b *Bot) handleApplyConfirm(ctx context.Context, chatID int64, text string) {
	switch text {
	case "✅ Send application":
	case btnCancel:
		b.cancelFlow(ctx, chatID)
		return
	default:
		b.sendError(chatID, "Please use the buttons below")
		return
	}

	state, err := b.state.Get(ctx, chatID)
	if err != nil || state.Application == nil {
		b.logger.Error("Failed to get user state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}
	app := state.Application

	if _, err := b.storage.SaveApplication(ctx, storage.Application{
		ChatID:               chatID,
		FirstName:            app.FirstName,
		LastName:             app.LastName,
		Email:                app.Email,
		Phone:                app.Phone,
		CleaningExperience:   app.CleaningExperience,
		HasLicenseAndVehicle: app.HasLicenseAndVehicle,
		Availability:         app.Availability,
		Message:              app.Message,
		Resume:               app.Resume,
	}); err != nil {
		b.logger.Error("Failed to save application", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "We could not save your application, please try again in a minute")
		return
	}

	submitErr := b.api.SubmitApplication(ctx, api.ApplicationRequest{
		FirstName:            app.FirstName,
		LastName:             app.LastName,
		Email:                app.Email,
		Phone:                app.Phone,
		CleaningExperience:   app.CleaningExperience,
		HasLicenseAndVehicle: app.HasLicenseAndVehicle,
		Availability:         app.Availability,
		Message:              app.Message,
		Resume:               app.Resume,
	})
	if submitErr != nil {
		b.logger.Error("Backend application submission failed",
			zap.Int64("chat_id", chatID),
			zap.Error(submitErr))
	}

	if err := b.state.Clear(ctx, chatID); err != nil {
		b.logger.Warn("Failed to clear state", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	text = "✅ Application sent! We will be in touch within a few days."
	if submitErr != nil {
		text = "✅ Application saved! We could not reach our hiring system just now, so a person will pick it up by hand. We will be in touch within a few days."
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = b.createMainMenuKeyboard()
	b.sendMessage(msg)

	notice := fmt.Sprintf("🧑‍💼 New application: %s %s, %s, %s",
		app.FirstName, app.LastName, app.Email, FormatPhoneNumber(app.Phone))
	for _, adminID := range b.cfg.Admin.IDs {
		b.sendMessage(tgbotapi.NewMessage(adminID, notice))
	}
}
