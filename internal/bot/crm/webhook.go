// Package crm receives callbacks from the office backend, currently just
// booking status changes pushed after the staff triage a lead.
package crm

import (
	"context"
	"encoding/json"
	"net/http"

	"freshnest-bot/internal/storage"

	"go.uber.org/zap"
)

const secretHeader = "X-Webhook-Secret"

// Event is the payload the backend posts to us.
type Event struct {
	Event     string `json:"event"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// BookingStore is the slice of the storage layer the webhook needs.
type BookingStore interface {
	GetBookingByReference(ctx context.Context, reference string) (*storage.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID int64, status string) error
}

// Notifier is how the handler tells the bot a booking changed, so the
// customer hears about it in the chat.
type Notifier interface {
	BookingStatusChanged(booking *storage.Booking)
}

type Handler struct {
	storage  BookingStore
	notifier Notifier
	secret   string
	logger   *zap.Logger
}

func NewHandler(store BookingStore, notifier Notifier, secret string, logger *zap.Logger) *Handler {
	return &Handler{
		storage:  store,
		notifier: notifier,
		secret:   secret,
		logger:   logger,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.secret != "" && r.Header.Get(secretHeader) != h.secret {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var event Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		h.logger.Warn("Bad webhook payload", zap.Error(err))
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	switch event.Event {
	case "booking_status_changed":
		h.handleStatusChange(w, r, event)
	default:
		h.logger.Info("Ignoring webhook event", zap.String("event", event.Event))
		w.WriteHeader(http.StatusOK)
	}
}

func (h *Handler) handleStatusChange(w http.ResponseWriter, r *http.Request, event Event) {
	if event.Reference == "" || !storage.ValidStatus(event.Status) {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	booking, err := h.storage.GetBookingByReference(ctx, event.Reference)
	if err != nil {
		h.logger.Warn("Webhook for unknown booking",
			zap.String("reference", event.Reference),
			zap.Error(err))
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	if err := h.storage.UpdateBookingStatus(ctx, booking.ID, event.Status); err != nil {
		h.logger.Error("Failed to apply status change",
			zap.String("reference", event.Reference),
			zap.String("status", event.Status),
			zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	booking.Status = event.Status

	h.logger.Info("Booking status changed via webhook",
		zap.String("reference", event.Reference),
		zap.String("status", event.Status))

	if h.notifier != nil {
		h.notifier.BookingStatusChanged(booking)
	}
	w.WriteHeader(http.StatusOK)
}
