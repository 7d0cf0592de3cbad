package bot

import (
	"context"
	"fmt"
	"strconv"

	"freshnest-bot/internal/pricing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) handleServiceSelect(ctx context.Context, chatID int64, text string) {
	if text == btnCancel {
		b.cancelFlow(ctx, chatID)
		return
	}

	var selected *pricing.Service
	for i := range pricing.Services {
		if pricing.Services[i].Name == text {
			selected = &pricing.Services[i]
			break
		}
	}
	if selected == nil {
		b.sendError(chatID, "Please pick a service from the keyboard")
		return
	}

	var nextStep string
	switch selected.ID {
	case pricing.ServiceHousePackage:
		nextStep = StepSqftRange
	case pricing.ServiceHouseHourly:
		nextStep = StepHours
	case pricing.ServiceOffice:
		nextStep = StepOfficeSqft
	}

	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		s.SelectService(selected.ID)
		s.Step = nextStep
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	switch nextStep {
	case StepSqftRange:
		msg := tgbotapi.NewMessage(chatID, "🏠 How big is your home, in square feet?")
		msg.ReplyMarkup = b.createSqftKeyboard()
		b.sendMessage(msg)
	case StepHours:
		msg := tgbotapi.NewMessage(chatID,
			fmt.Sprintf("⏱ How many hours would you like? We have a %d-hour minimum.", pricing.MinHourlyHours))
		msg.ReplyMarkup = b.createCountKeyboard(pricing.MinHourlyHours, 10)
		b.sendMessage(msg)
	case StepOfficeSqft:
		msg := tgbotapi.NewMessage(chatID,
			"🏢 Roughly how many square feet is the office? Type a number, e.g. 4000.")
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		b.sendMessage(msg)
	}
}

func (b *Bot) handleSqftRange(ctx context.Context, chatID int64, text string) {
	if text == btnCancel {
		b.cancelFlow(ctx, chatID)
		return
	}

	valid := false
	for _, bucket := range pricing.SqftBuckets {
		if bucket == text {
			valid = true
			break
		}
	}
	if !valid {
		b.sendError(chatID, "Please pick a range from the keyboard")
		return
	}

	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		s.Selection.Residential.SquareFootageRange = text
		s.Step = StepBedrooms
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "🛏 How many bedrooms?")
	msg.ReplyMarkup = b.createCountKeyboard(0, 7)
	b.sendMessage(msg)
}

// parseCount reads a small non-negative number off a keyboard or typed in.
func parseCount(text string, max int) (int, bool) {
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 || n > max {
		return 0, false
	}
	return n, true
}

func (b *Bot) handleBedrooms(ctx context.Context, chatID int64, text string) {
	if text == btnCancel {
		b.cancelFlow(ctx, chatID)
		return
	}
	n, ok := parseCount(text, 20)
	if !ok {
		b.sendError(chatID, "Please enter the number of bedrooms")
		return
	}

	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		s.Selection.Residential.Bedrooms = n
		s.Step = StepBathrooms
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "🛁 How many full bathrooms?")
	msg.ReplyMarkup = b.createCountKeyboard(0, 7)
	b.sendMessage(msg)
}

func (b *Bot) handleBathrooms(ctx context.Context, chatID int64, text string) {
	if text == btnCancel {
		b.cancelFlow(ctx, chatID)
		return
	}
	n, ok := parseCount(text, 20)
	if !ok {
		b.sendError(chatID, "Please enter the number of bathrooms")
		return
	}

	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		s.Selection.Residential.Bathrooms = n
		s.Step = StepHalfBaths
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "🚽 And half baths (toilet and sink only)?")
	msg.ReplyMarkup = b.createCountKeyboard(0, 7)
	b.sendMessage(msg)
}

func (b *Bot) handleHalfBaths(ctx context.Context, chatID int64, text string) {
	if text == btnCancel {
		b.cancelFlow(ctx, chatID)
		return
	}
	n, ok := parseCount(text, 20)
	if !ok {
		b.sendError(chatID, "Please enter the number of half baths")
		return
	}

	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		s.Selection.Residential.HalfBaths = n
		s.Step = StepBasement
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "Should we clean the basement?")
	msg.ReplyMarkup = b.createBasementKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) handleBasement(ctx context.Context, chatID int64, text string) {
	var chosen pricing.BasementOption
	found := false
	for _, opt := range pricing.BasementOptions {
		if pricing.BasementLabels[opt] == text {
			chosen = opt
			found = true
			break
		}
	}
	if !found {
		b.sendError(chatID, "Please pick a basement option from the keyboard")
		return
	}

	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		s.Selection.Residential.Basement = chosen
		s.Step = StepAddOns
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	b.showAddOns(ctx, chatID)
}

func (b *Bot) handleHours(ctx context.Context, chatID int64, text string) {
	if text == btnCancel {
		b.cancelFlow(ctx, chatID)
		return
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < pricing.MinHourlyHours || n > 16 {
		b.sendError(chatID, fmt.Sprintf("Please pick between %d and 16 hours", pricing.MinHourlyHours))
		return
	}

	err = b.state.Update(ctx, chatID, func(s *BookingState) {
		s.Selection.Residential.Hours = n
		s.Step = StepCleaners
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "🧑‍🤝‍🧑 How many cleaners?")
	msg.ReplyMarkup = b.createCountKeyboard(1, 4)
	b.sendMessage(msg)
}

func (b *Bot) handleCleaners(ctx context.Context, chatID int64, text string) {
	if text == btnCancel {
		b.cancelFlow(ctx, chatID)
		return
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > 6 {
		b.sendError(chatID, "Please pick between 1 and 6 cleaners")
		return
	}

	err = b.state.Update(ctx, chatID, func(s *BookingState) {
		s.Selection.Residential.NumCleaners = n
		s.Step = StepAddOns
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	b.showAddOns(ctx, chatID)
}
