package bot

import (
	"fmt"
	"regexp"
	"testing"

	"freshnest-bot/internal/pricing"

	"github.com/stretchr/testify/assert"
)

func TestBookingReferenceFormat(t *testing.T) {
	re := regexp.MustCompile(`^FN-[0-9A-F]{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ref := bookingReference()
		assert.Regexp(t, re, ref)
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}

func TestServiceTypeFor(t *testing.T) {
	assert.Equal(t, "commercial", serviceTypeFor(pricing.Selection{
		Service: pricing.ServiceOffice,
	}))
	assert.Equal(t, "recurring", serviceTypeFor(pricing.Selection{
		Service:     pricing.ServiceHousePackage,
		FrequencyID: "weekly",
	}))
	assert.Equal(t, "residential", serviceTypeFor(pricing.Selection{
		Service:     pricing.ServiceHousePackage,
		FrequencyID: "one-time",
	}))
}

func TestIsoDate(t *testing.T) {
	assert.Equal(t, "2026-09-24", isoDate("24.09.2026"))
	// Unparseable input passes through untouched.
	assert.Equal(t, "whenever", isoDate("whenever"))
}

func TestFrequencyLabelRoundTrip(t *testing.T) {
	for _, svc := range pricing.Services {
		for _, f := range pricing.FrequenciesForService(svc.ID) {
			// The exact decoration the keyboard puts on discounted options.
			label := f.Label
			if f.DiscountRate > 0 {
				label = fmt.Sprintf("%s (save %g%%)", f.Label, f.DiscountRate*100)
			}
			assert.Equal(t, f.ID, frequencyIDFromLabel(svc.ID, label),
				"service %s label %q", svc.ID, label)
		}
	}
}

func TestBookingConfirmationText(t *testing.T) {
	state := &BookingState{
		BookingDate:   "24.09.2026",
		ArrivalWindow: "8:00-10:00",
		Email:         "jane@example.com",
	}
	quote := pricing.Quote{FinalTotal: 290}

	synced := bookingConfirmationText("FN-ABCD1234", state, quote, true)
	assert.Contains(t, synced, "You're booked")
	assert.Contains(t, synced, "FN-ABCD1234")
	assert.Contains(t, synced, "$290.00")

	// A failed backend push is not hidden from the customer.
	unsynced := bookingConfirmationText("FN-ABCD1234", state, quote, false)
	assert.Contains(t, unsynced, "could not reach our booking system")
	assert.Contains(t, unsynced, "FN-ABCD1234")
	assert.NotContains(t, unsynced, "You're booked")
}
