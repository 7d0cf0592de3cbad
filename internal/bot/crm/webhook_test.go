package crm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"freshnest-bot/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	bookings map[string]*storage.Booking
	updated  map[int64]string
}

func (f *fakeStore) GetBookingByReference(_ context.Context, reference string) (*storage.Booking, error) {
	b, ok := f.bookings[reference]
	if !ok {
		return nil, errors.New("not found")
	}
	copied := *b
	return &copied, nil
}

func (f *fakeStore) UpdateBookingStatus(_ context.Context, bookingID int64, status string) error {
	if f.updated == nil {
		f.updated = make(map[int64]string)
	}
	f.updated[bookingID] = status
	return nil
}

type fakeNotifier struct {
	notified []*storage.Booking
}

func (f *fakeNotifier) BookingStatusChanged(b *storage.Booking) {
	f.notified = append(f.notified, b)
}

func newTestHandler(t *testing.T, secret string) (*Handler, *fakeStore, *fakeNotifier) {
	t.Helper()
	store := &fakeStore{bookings: map[string]*storage.Booking{
		"FN-ABCD1234": {ID: 7, Reference: "FN-ABCD1234", ChatID: 42, Status: storage.StatusNew},
	}}
	notifier := &fakeNotifier{}
	return NewHandler(store, notifier, secret, zap.NewNop()), store, notifier
}

func post(h http.Handler, secret, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	if secret != "" {
		req.Header.Set(secretHeader, secret)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestStatusChangeApplied(t *testing.T) {
	h, store, notifier := newTestHandler(t, "")

	rec := post(h, "", `{"event":"booking_status_changed","reference":"FN-ABCD1234","status":"confirmed"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, storage.StatusConfirmed, store.updated[7])
	require.Len(t, notifier.notified, 1)
	assert.Equal(t, storage.StatusConfirmed, notifier.notified[0].Status)
	assert.Equal(t, int64(42), notifier.notified[0].ChatID)
}

func TestRejectsWrongMethod(t *testing.T) {
	h, _, _ := newTestHandler(t, "")
	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRejectsBadSecret(t *testing.T) {
	h, store, _ := newTestHandler(t, "s3cret")

	rec := post(h, "nope", `{"event":"booking_status_changed","reference":"FN-ABCD1234","status":"confirmed"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, store.updated)
}

func TestRejectsBadJSON(t *testing.T) {
	h, _, _ := newTestHandler(t, "")
	rec := post(h, "", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRejectsBadStatus(t *testing.T) {
	h, store, _ := newTestHandler(t, "")
	rec := post(h, "", `{"event":"booking_status_changed","reference":"FN-ABCD1234","status":"sideways"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.updated)
}

func TestUnknownReference(t *testing.T) {
	h, _, notifier := newTestHandler(t, "")
	rec := post(h, "", `{"event":"booking_status_changed","reference":"FN-MISSING1","status":"confirmed"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, notifier.notified)
}

func TestIgnoresUnknownEvent(t *testing.T) {
	h, store, _ := newTestHandler(t, "")
	rec := post(h, "", `{"event":"invoice_paid","reference":"FN-ABCD1234"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.updated)
}
