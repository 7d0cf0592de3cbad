package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateBooking(t *testing.T) {
	var got BookingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bookings", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(BookingResponse{ID: "bk_123", Status: "pending"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 0, zap.NewNop())
	resp, err := c.CreateBooking(context.Background(), BookingRequest{
		Reference:   "FN-ABC12345",
		Name:        "Jamie Doe",
		ServiceType: "residential",
		Total:       290,
	})

	require.NoError(t, err)
	assert.Equal(t, "bk_123", resp.ID)
	assert.Equal(t, "FN-ABC12345", got.Reference)
	assert.Equal(t, 290.0, got.Total)
}

func TestCreateBookingBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"booking date is in the past"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 0, zap.NewNop())
	_, err := c.CreateBooking(context.Background(), BookingRequest{})

	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "booking date is in the past", apiErr.Error())
}

func TestCreateBookingGarbageErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream exploded</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 0, zap.NewNop())
	_, err := c.CreateBooking(context.Background(), BookingRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status: 502")
}

func TestSubmitApplication(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/join-team", r.URL.Path)

		var app ApplicationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&app))
		assert.Equal(t, "sam@example.com", app.Email)
		assert.Equal(t, "yes", app.HasLicenseAndVehicle)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 0, zap.NewNop())
	err := c.SubmitApplication(context.Background(), ApplicationRequest{
		FirstName:            "Sam",
		Email:                "sam@example.com",
		HasLicenseAndVehicle: "yes",
	})
	require.NoError(t, err)
}
