package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

var flooringOptions = []string{"Carpet", "Hardwood", "Tile", "Vinyl", "Concrete"}

func (b *Bot) handleOfficeSqft(ctx context.Context, chatID int64, text string) {
	if text == btnCancel {
		b.cancelFlow(ctx, chatID)
		return
	}

	sqft, err := strconv.Atoi(strings.ReplaceAll(text, ",", ""))
	if err != nil || sqft < 100 || sqft > 500000 {
		b.sendError(chatID, "Please type the square footage as a number, e.g. 4000")
		return
	}

	err = b.state.Update(ctx, chatID, func(s *BookingState) {
		s.Selection.Commercial.SquareFeet = sqft
		s.Step = StepWashrooms
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "🚻 How many washrooms does the office have?")
	msg.ReplyMarkup = b.createCountKeyboard(0, 10)
	b.sendMessage(msg)
}

func (b *Bot) handleWashrooms(ctx context.Context, chatID int64, text string) {
	if text == btnCancel {
		b.cancelFlow(ctx, chatID)
		return
	}
	n, ok := parseCount(text, 50)
	if !ok {
		b.sendError(chatID, "Please enter the number of washrooms")
		return
	}

	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		s.Selection.Commercial.NumWashrooms = n
		s.Step = StepKitchen
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "Is there a kitchen or kitchenette?")
	msg.ReplyMarkup = b.createYesNoKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) handleKitchen(ctx context.Context, chatID int64, text string) {
	switch text {
	case btnYes, btnNo:
	default:
		b.sendError(chatID, "Please answer Yes or No")
		return
	}

	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		s.Selection.Commercial.HasKitchen = text == btnYes
		if text == btnYes {
			s.Selection.Commercial.KitchenType = "kitchenette"
		}
		s.Step = StepFlooring
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	var rows [][]tgbotapi.KeyboardButton
	for _, f := range flooringOptions {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(f)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnDone)))
	msg := tgbotapi.NewMessage(chatID,
		"What flooring does the space have? Pick each type, then Done.")
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(rows...)
	b.sendMessage(msg)
}

func (b *Bot) handleFlooring(ctx context.Context, chatID int64, text string) {
	if text == btnDone {
		b.setStep(ctx, chatID, StepAddOns)
		b.showAddOns(ctx, chatID)
		return
	}

	valid := false
	for _, f := range flooringOptions {
		if f == text {
			valid = true
			break
		}
	}
	if !valid {
		b.sendError(chatID, "Pick a flooring type from the keyboard, or Done")
		return
	}

	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		for _, existing := range s.Selection.Commercial.FlooringTypes {
			if existing == text {
				return
			}
		}
		s.Selection.Commercial.FlooringTypes = append(s.Selection.Commercial.FlooringTypes, text)
	})
	if err != nil {
		b.logger.Error("Failed to save state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	b.sendMessage(tgbotapi.NewMessage(chatID, "Added "+text+". Anything else, or Done?"))
}
