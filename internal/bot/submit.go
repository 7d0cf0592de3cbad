package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"freshnest-bot/internal/pricing"
	"freshnest-bot/internal/storage"
	"freshnest-bot/pkg/api"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const bookingRateLimit = 5

// bookingReference makes a short customer-facing id like FN-3F2A9C81.
func bookingReference() string {
	id := uuid.New().String()
	return "FN-" + strings.ToUpper(id[:8])
}

// serviceTypeFor labels the booking for the backend: office cleans are
// commercial, discounted frequencies are recurring, the rest residential.
func serviceTypeFor(sel pricing.Selection) string {
	if sel.Service == pricing.ServiceOffice {
		return "commercial"
	}
	if pricing.DiscountRate(sel.Service, sel.FrequencyID) > 0 {
		return "recurring"
	}
	return "residential"
}

func isoDate(dmy string) string {
	if t, err := time.Parse(dateLayout, dmy); err == nil {
		return t.Format("2006-01-02")
	}
	return dmy
}

func (b *Bot) submitBooking(ctx context.Context, chatID int64) {
	exceeded, err := b.storage.CheckRateLimit(ctx, chatID, "booking", bookingRateLimit, 24*time.Hour)
	if err != nil {
		b.logger.Warn("Rate limit check failed", zap.Int64("chat_id", chatID), zap.Error(err))
	} else if exceeded {
		b.sendError(chatID, "You have placed a lot of bookings today. Give us a call instead!")
		return
	}

	state, err := b.state.Get(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get user state", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	quote := pricing.Calculate(state.Selection)
	reference := bookingReference()

	details, err := json.Marshal(state.Selection)
	if err != nil {
		b.logger.Error("Failed to marshal selection", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	booking := storage.Booking{
		Reference:     reference,
		ChatID:        chatID,
		ServiceID:     string(state.Selection.Service),
		ServiceType:   serviceTypeFor(state.Selection),
		Details:       string(details),
		Frequency:     state.Selection.FrequencyID,
		Subtotal:      quote.Subtotal,
		Discount:      quote.DiscountAmount,
		Tip:           quote.Tip,
		Total:         quote.FinalTotal,
		InitialFee:    quote.InitialFee,
		RecurringFee:  quote.RecurringFee,
		Name:          state.Name,
		Email:         state.Email,
		Phone:         state.PhoneNumber,
		Address:       state.Address,
		PostalCode:    state.PostalCode,
		BookingDate:   isoDate(state.BookingDate),
		ArrivalWindow: state.ArrivalWindow,
		Message:       state.Notes,
		Status:        storage.StatusNew,
	}

	bookingID, err := b.storage.SaveBooking(ctx, booking)
	if err != nil {
		b.logger.Error("Failed to save booking",
			zap.Int64("chat_id", chatID),
			zap.String("reference", reference),
			zap.Error(err))
		b.sendError(chatID, "We could not save your booking, please try again in a minute")
		return
	}
	booking.ID = bookingID

	resp, err := b.api.CreateBooking(ctx, api.BookingRequest{
		Reference:   reference,
		Name:        state.Name,
		Email:       state.Email,
		Phone:       state.PhoneNumber,
		Address:     state.Address + ", " + state.PostalCode,
		ServiceType: booking.ServiceType,
		BookingDate: booking.BookingDate,
		Time:        state.ArrivalWindow,
		Message:     state.Notes,
		Frequency:   state.Selection.FrequencyID,
		Subtotal:    quote.Subtotal,
		Discount:    quote.DiscountAmount,
		Tip:         quote.Tip,
		Total:       quote.FinalTotal,
	})
	synced := err == nil
	if err != nil {
		// The booking is already stored locally; the office follows up by hand.
		b.logger.Error("Backend booking submission failed",
			zap.Int64("chat_id", chatID),
			zap.String("reference", reference),
			zap.Error(err))
	} else {
		b.logger.Info("Booking submitted",
			zap.Int64("chat_id", chatID),
			zap.String("reference", reference),
			zap.String("backend_id", resp.ID))
	}

	if err := b.state.Clear(ctx, chatID); err != nil {
		b.logger.Warn("Failed to clear state", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	msg := tgbotapi.NewMessage(chatID, bookingConfirmationText(reference, state, quote, synced))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = b.createMainMenuKeyboard()
	b.sendMessage(msg)

	b.notifyAdminsBooking(ctx, booking)
}

// bookingConfirmationText tells the customer what happened. If the backend
// push failed the booking still exists locally, so the office confirms by
// hand instead of the automated email.
func bookingConfirmationText(reference string, state *BookingState, quote pricing.Quote, synced bool) string {
	if synced {
		return fmt.Sprintf(
			"🎉 *You're booked!*\n\nReference: `%s`\nDate: %s, %s\nTotal: %s\n\nA confirmation is on its way to %s. See you soon!",
			reference, state.BookingDate, state.ArrivalWindow, formatMoney(quote.FinalTotal), state.Email)
	}
	return fmt.Sprintf(
		"✅ *Your booking is saved.*\n\nReference: `%s`\nDate: %s, %s\nTotal: %s\n\nWe could not reach our booking system just now, so our office will confirm with you at %s shortly.",
		reference, state.BookingDate, state.ArrivalWindow, formatMoney(quote.FinalTotal), state.Email)
}

// notifyAdminsBooking posts the new booking to the admin channel and sends
// each admin the Excel sheet with status buttons.
func (b *Bot) notifyAdminsBooking(ctx context.Context, booking storage.Booking) {
	summary := fmt.Sprintf(
		"🆕 Booking %s\n%s, %s\n%s %s\n%s, %s\nTotal %s (%s)",
		booking.Reference,
		booking.BookingDate, booking.ArrivalWindow,
		booking.Name, FormatPhoneNumber(booking.Phone),
		booking.Address, booking.PostalCode,
		formatMoney(booking.Total), booking.ServiceType)

	if b.cfg.Admin.ChannelID != 0 {
		b.sendMessage(tgbotapi.NewMessage(b.cfg.Admin.ChannelID, summary))
	}

	path, err := b.storage.ExportBookingToExcel(ctx, booking)
	if err != nil {
		b.logger.Error("Failed to export booking",
			zap.String("reference", booking.Reference),
			zap.Error(err))
	}

	markup := b.createStatusKeyboard(booking.ID)
	for _, adminID := range b.cfg.Admin.IDs {
		msg := tgbotapi.NewMessage(adminID, summary)
		msg.ReplyMarkup = markup
		b.sendMessage(msg)

		if path != "" {
			doc := tgbotapi.NewDocument(adminID, tgbotapi.FilePath(path))
			if _, err := b.bot.Send(doc); err != nil {
				b.logger.Error("Failed to send booking sheet",
					zap.Int64("admin_id", adminID),
					zap.Error(err))
			}
		}
	}
}
