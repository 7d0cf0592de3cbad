package bot

import (
	"context"
	"fmt"

	"freshnest-bot/internal/pricing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const helpText = `🧽 *FreshNest Cleaning*

/book - book a cleaning
/quote - get a price estimate
/apply - join our cleaning team
/cancel - abandon what you started
/help - this message

Recurring cleans come with a discount, shown when you pick a frequency.`

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command string, args []string) {
	switch command {
	case "start":
		if err := b.state.Clear(ctx, chatID); err != nil {
			b.logger.Warn("Failed to clear state", zap.Int64("chat_id", chatID), zap.Error(err))
		}
		msg := tgbotapi.NewMessage(chatID,
			"👋 Welcome to FreshNest Cleaning!\n\nBook a home or office clean in a couple of minutes, or get a quote with no commitment.")
		msg.ReplyMarkup = b.createMainMenuKeyboard()
		b.sendMessage(msg)
	case "help":
		msg := tgbotapi.NewMessage(chatID, helpText)
		msg.ParseMode = tgbotapi.ModeMarkdown
		b.sendMessage(msg)
	case "book", "quote":
		b.startBooking(ctx, chatID)
	case "apply":
		b.startApplication(ctx, chatID)
	case "cancel":
		b.cancelFlow(ctx, chatID)
	case "stats", "export", "status":
		if !b.isAdmin(chatID) {
			b.sendError(chatID, "Unknown command, try /help")
			return
		}
		b.handleAdminCommand(ctx, chatID, command, args)
	default:
		b.sendError(chatID, "Unknown command, try /help")
	}
}

func (b *Bot) handleMainMenu(ctx context.Context, chatID int64, text string) {
	switch text {
	case btnBookCleaning:
		b.startBooking(ctx, chatID)
	case btnJoinTeam:
		b.startApplication(ctx, chatID)
	case btnHelp:
		msg := tgbotapi.NewMessage(chatID, helpText)
		msg.ParseMode = tgbotapi.ModeMarkdown
		b.sendMessage(msg)
	default:
		b.handleDefault(ctx, chatID)
	}
}

func (b *Bot) handleDefault(ctx context.Context, chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Pick an option below, or /help for commands.")
	msg.ReplyMarkup = b.createMainMenuKeyboard()
	b.sendMessage(msg)
	b.setStep(ctx, chatID, StepMainMenu)
}

func (b *Bot) startBooking(ctx context.Context, chatID int64) {
	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		s.ResetBooking()
		s.Step = StepServiceSelect
	})
	if err != nil {
		b.logger.Error("Failed to reset state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	var text string
	for _, svc := range pricing.Services {
		text += fmt.Sprintf("• *%s* — %s\n", svc.Name, svc.Description)
	}
	msg := tgbotapi.NewMessage(chatID, "What kind of cleaning do you need?\n\n"+text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = b.createServiceKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) cancelFlow(ctx context.Context, chatID int64) {
	err := b.state.Update(ctx, chatID, func(s *BookingState) {
		s.ResetBooking()
	})
	if err != nil {
		b.logger.Error("Failed to reset state", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	msg := tgbotapi.NewMessage(chatID, "Cancelled. Nothing was booked.")
	msg.ReplyMarkup = b.createMainMenuKeyboard()
	b.sendMessage(msg)
}
