package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"freshnest-bot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) handleAdminCommand(ctx context.Context, chatID int64, command string, args []string) {
	switch command {
	case "stats":
		b.handleStats(ctx, chatID)
	case "export":
		b.handleExport(ctx, chatID, args)
	case "status":
		b.handleStatus(ctx, chatID, args)
	}
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) {
	stats, err := b.storage.GetBookingStatistics(ctx)
	if err != nil {
		b.logger.Error("Failed to load statistics", zap.Error(err))
		b.sendError(chatID, "Could not load statistics")
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 *Bookings*\n\n")
	sb.WriteString(fmt.Sprintf("Today: %d (%s)\n", stats.TodayBookings, formatMoney(stats.TodayRevenue)))
	sb.WriteString(fmt.Sprintf("Last 7 days: %d (%s)\n", stats.WeekBookings, formatMoney(stats.WeekRevenue)))
	sb.WriteString(fmt.Sprintf("Last 30 days: %d (%s)\n", stats.MonthBookings, formatMoney(stats.MonthRevenue)))
	sb.WriteString(fmt.Sprintf("All time: %d (%s)\n", stats.TotalBookings, formatMoney(stats.TotalRevenue)))

	if len(stats.StatusCounts) > 0 {
		sb.WriteString("\nBy status:\n")
		for _, status := range []string{
			storage.StatusNew, storage.StatusProcessing, storage.StatusConfirmed,
			storage.StatusCompleted, storage.StatusCancelled,
		} {
			if n := stats.StatusCounts[status]; n > 0 {
				sb.WriteString(fmt.Sprintf("  %s: %d\n", status, n))
			}
		}
	}

	msg := tgbotapi.NewMessage(chatID, sb.String())
	msg.ParseMode = tgbotapi.ModeMarkdown
	b.sendMessage(msg)
}

// handleExport sends one booking's sheet given an id, or the full export.
func (b *Bot) handleExport(ctx context.Context, chatID int64, args []string) {
	var path string
	var err error

	if len(args) > 0 {
		id, convErr := strconv.ParseInt(args[0], 10, 64)
		if convErr != nil {
			b.sendError(chatID, "Usage: /export [booking id]")
			return
		}
		booking, getErr := b.storage.GetBookingByID(ctx, id)
		if getErr != nil {
			b.sendError(chatID, fmt.Sprintf("Booking %d not found", id))
			return
		}
		path, err = b.storage.ExportBookingToExcel(ctx, *booking)
	} else {
		filename := fmt.Sprintf("bookings_%s", time.Now().Format("2006-01-02"))
		path, err = b.storage.ExportAllBookingsToExcel(ctx, filename)
	}
	if err != nil {
		b.logger.Error("Export failed", zap.Error(err))
		b.sendError(chatID, "Export failed")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	if _, err := b.bot.Send(doc); err != nil {
		b.logger.Error("Failed to send export", zap.Error(err))
		b.sendError(chatID, "Could not send the file")
	}
}

func (b *Bot) handleStatus(ctx context.Context, chatID int64, args []string) {
	if len(args) != 2 || !storage.ValidStatus(args[1]) {
		b.sendError(chatID, "Usage: /status <booking id> <new|processing|confirmed|completed|cancelled>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		b.sendError(chatID, "Usage: /status <booking id> <new|processing|confirmed|completed|cancelled>")
		return
	}

	b.changeBookingStatus(ctx, chatID, id, args[1])
}

func (b *Bot) createStatusKeyboard(bookingID int64) tgbotapi.InlineKeyboardMarkup {
	btn := func(label, status string) tgbotapi.InlineKeyboardButton {
		return tgbotapi.NewInlineKeyboardButtonData(label,
			fmt.Sprintf("status:%d:%s", bookingID, status))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			btn("✅ Confirm", storage.StatusConfirmed),
			btn("⏳ Processing", storage.StatusProcessing),
		),
		tgbotapi.NewInlineKeyboardRow(
			btn("🏁 Completed", storage.StatusCompleted),
			btn("❌ Cancel", storage.StatusCancelled),
		),
	)
}

func (b *Bot) handleStatusCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	if !b.isAdmin(chatID) {
		return
	}

	parts := strings.Split(callback.Data, ":")
	if len(parts) != 3 {
		return
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || !storage.ValidStatus(parts[2]) {
		return
	}

	b.changeBookingStatus(ctx, chatID, id, parts[2])
}

// changeBookingStatus persists the transition and tells the customer.
func (b *Bot) changeBookingStatus(ctx context.Context, adminID, bookingID int64, status string) {
	if err := b.storage.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		b.logger.Error("Failed to update booking status",
			zap.Int64("booking_id", bookingID),
			zap.String("status", status),
			zap.Error(err))
		b.sendError(adminID, fmt.Sprintf("Could not update booking %d", bookingID))
		return
	}

	booking, err := b.storage.GetBookingByID(ctx, bookingID)
	if err != nil {
		b.logger.Error("Failed to load booking after update",
			zap.Int64("booking_id", bookingID),
			zap.Error(err))
		return
	}

	b.sendMessage(tgbotapi.NewMessage(adminID,
		fmt.Sprintf("Booking %s is now %s", booking.Reference, status)))
	b.notifyCustomerStatus(booking)
}

// BookingStatusChanged is called by the webhook handler when the backend
// pushes a status transition.
func (b *Bot) BookingStatusChanged(booking *storage.Booking) {
	b.notifyCustomerStatus(booking)

	for _, adminID := range b.cfg.Admin.IDs {
		b.sendMessage(tgbotapi.NewMessage(adminID,
			fmt.Sprintf("Backend set booking %s to %s", booking.Reference, booking.Status)))
	}
}

func (b *Bot) notifyCustomerStatus(booking *storage.Booking) {
	if booking.ChatID == 0 {
		return
	}

	var text string
	switch booking.Status {
	case storage.StatusConfirmed:
		text = fmt.Sprintf("✅ Your booking %s is confirmed for %s, %s. See you then!",
			booking.Reference, booking.BookingDate, booking.ArrivalWindow)
	case storage.StatusCompleted:
		text = fmt.Sprintf("🏁 Booking %s is done. Thanks for choosing FreshNest!",
			booking.Reference)
	case storage.StatusCancelled:
		text = fmt.Sprintf("❌ Your booking %s was cancelled. Reply here or call us if that is unexpected.",
			booking.Reference)
	default:
		return
	}

	b.sendMessage(tgbotapi.NewMessage(booking.ChatID, text))
}
