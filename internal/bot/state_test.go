package bot

import (
	"testing"

	"freshnest-bot/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectServiceResetsOtherShape(t *testing.T) {
	state := &BookingState{}
	state.SelectService(pricing.ServiceHousePackage)

	require.NotNil(t, state.Selection.Residential)
	state.Selection.Residential.Bedrooms = 3
	state.Selection.Residential.Bathrooms = 2
	state.Selection.AddOns["deep-clean"] = 1
	state.Selection.FrequencyID = "weekly"
	state.Selection.Tip = 20

	state.SelectService(pricing.ServiceOffice)

	assert.Nil(t, state.Selection.Residential, "residential fields must be cleared")
	require.NotNil(t, state.Selection.Commercial)
	assert.Empty(t, state.Selection.AddOns)
	assert.Empty(t, state.Selection.FrequencyID)
	assert.Zero(t, state.Selection.Tip)
}

func TestSelectServiceSameIDKeepsDetails(t *testing.T) {
	state := &BookingState{}
	state.SelectService(pricing.ServiceHousePackage)
	state.Selection.Residential.Bedrooms = 4

	state.SelectService(pricing.ServiceHousePackage)

	assert.Equal(t, 4, state.Selection.Residential.Bedrooms)
}

func TestResetBookingKeepsPhone(t *testing.T) {
	state := &BookingState{
		Step:        StepConfirm,
		PhoneNumber: "+15551234567",
		Address:     "12 Main St",
	}
	state.SelectService(pricing.ServiceHouseHourly)

	state.ResetBooking()

	assert.Equal(t, StepMainMenu, state.Step)
	assert.Equal(t, "+15551234567", state.PhoneNumber)
	assert.Empty(t, state.Address)
	assert.Empty(t, state.Selection.Service)
}

func TestToggleAddOnCycles(t *testing.T) {
	state := &BookingState{}
	state.SelectService(pricing.ServiceHousePackage)

	single := pricing.AddOn{ID: "inside-oven", Kind: pricing.AddOnSingle, Price: 35}
	assert.Equal(t, 1, state.ToggleAddOn(single))
	assert.Equal(t, 0, state.ToggleAddOn(single))
	assert.NotContains(t, state.Selection.AddOns, "inside-oven")

	metered := pricing.AddOn{ID: "laundry", Kind: pricing.AddOnMetered, Price: 20, Min: 1, Max: 2}
	assert.Equal(t, 1, state.ToggleAddOn(metered))
	assert.Equal(t, 2, state.ToggleAddOn(metered))
	assert.Equal(t, 0, state.ToggleAddOn(metered))
}
