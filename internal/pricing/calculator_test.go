package pricing

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateHousePackage(t *testing.T) {
	sel := Selection{
		Service: ServiceHousePackage,
		Residential: &Residential{
			SquareFootageRange: "1500-1999",
			Bedrooms:           3,
			Bathrooms:          2,
			Basement:           BasementNone,
		},
		FrequencyID: "one-time",
	}

	q := Calculate(sel)

	// 80 base + 40 tier + 120 bedrooms + 50 bathrooms
	assert.Equal(t, 120.0, q.BaseCharge)
	assert.Equal(t, 170.0, q.RoomCharges)
	assert.Equal(t, 290.0, q.Subtotal)
	assert.Equal(t, 0.0, q.DiscountAmount)
	assert.Equal(t, 290.0, q.FinalTotal)
}

func TestCalculateWeeklyDiscount(t *testing.T) {
	sel := Selection{
		Service: ServiceHousePackage,
		Residential: &Residential{
			SquareFootageRange: "1500-1999",
			Bedrooms:           3,
			Bathrooms:          2,
		},
		FrequencyID: "weekly",
		Tip:         20,
	}

	q := Calculate(sel)

	assert.Equal(t, 290.0, q.Subtotal)
	assert.Equal(t, 0.20, q.DiscountRate)
	assert.Equal(t, 58.0, q.DiscountAmount)
	// First visit is undiscounted, recurring visits carry no tip.
	assert.Equal(t, 310.0, q.InitialFee)
	assert.Equal(t, 232.0, q.RecurringFee)
}

func TestCalculateHourly(t *testing.T) {
	tests := []struct {
		name     string
		hours    int
		cleaners int
		want     float64
	}{
		{"three hours one cleaner", 3, 1, 120},
		{"defaults to minimum", 0, 0, 120},
		{"below minimum floored", 1, 1, 120},
		{"two cleaners five hours", 5, 2, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Calculate(Selection{
				Service:     ServiceHouseHourly,
				Residential: &Residential{Hours: tt.hours, NumCleaners: tt.cleaners},
				FrequencyID: "one-time",
			})
			assert.Equal(t, tt.want, q.BaseCharge)
		})
	}
}

func TestCalculateOffice(t *testing.T) {
	tests := []struct {
		name string
		sqft int
		want float64
	}{
		{"mid tier rate", 4000, 680},  // 4000 * 0.17
		{"small tier", 2000, 400},     // 2000 * 0.20
		{"large tier", 12000, 1560},   // 12000 * 0.13
		{"minimum charge floor", 500, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Calculate(Selection{
				Service:     ServiceOffice,
				Commercial:  &Commercial{SquareFeet: tt.sqft},
				FrequencyID: "one-time",
			})
			assert.Equal(t, tt.want, q.BaseCharge)
		})
	}
}

func TestCalculateOfficeMissingSqft(t *testing.T) {
	q := Calculate(Selection{Service: ServiceOffice, FrequencyID: "one-time"})
	assert.Equal(t, 0.0, q.BaseCharge)
	assert.Equal(t, 0.0, q.FinalTotal)
}

func TestRoomChargesLinear(t *testing.T) {
	// Bedroom charge is strictly n * rate for all counts the wizard allows.
	for n := 0; n <= 10; n++ {
		q := Calculate(Selection{
			Service:     ServiceHousePackage,
			Residential: &Residential{Bedrooms: n},
			FrequencyID: "one-time",
		})
		require.Equal(t, float64(n)*BedroomRate, q.RoomCharges, "bedrooms=%d", n)
	}
}

func TestOneTimeNeverDiscounts(t *testing.T) {
	for _, svc := range []ServiceID{ServiceHousePackage, ServiceHouseHourly, ServiceOffice} {
		assert.Equal(t, 0.0, DiscountRate(svc, "one-time"), "service %s", svc)
	}
}

func TestCommercialFrequencyGap(t *testing.T) {
	// Biweekly and monthly office cleans have no discount defined.
	assert.Equal(t, 0.0, DiscountRate(ServiceOffice, "biweekly"))
	assert.Equal(t, 0.0, DiscountRate(ServiceOffice, "monthly"))
	assert.Equal(t, 0.20, DiscountRate(ServiceOffice, "daily"))
	assert.Equal(t, 0.15, DiscountRate(ServiceOffice, "3x-week"))
	assert.Equal(t, 0.10, DiscountRate(ServiceOffice, "weekly"))
}

func TestAddOns(t *testing.T) {
	t.Run("residential flat and metered", func(t *testing.T) {
		q := Calculate(Selection{
			Service:     ServiceHousePackage,
			Residential: &Residential{},
			AddOns: map[string]int{
				"inside-fridge":    1,
				"interior-windows": 4,
				"laundry":          2,
			},
			FrequencyID: "one-time",
		})
		// 35 + 4*5 + 2*20
		assert.Equal(t, 95.0, q.AddOnsTotal)
	})

	t.Run("office per sqft", func(t *testing.T) {
		q := Calculate(Selection{
			Service:    ServiceOffice,
			Commercial: &Commercial{SquareFeet: 4000},
			AddOns: map[string]int{
				"carpet-cleaning":     1,
				"restroom-deep-clean": 3,
			},
			FrequencyID: "one-time",
		})
		// 4000*0.05 + 3*40
		assert.Equal(t, 320.0, q.AddOnsTotal)
	})

	t.Run("unknown ids ignored", func(t *testing.T) {
		q := Calculate(Selection{
			Service:     ServiceHousePackage,
			Residential: &Residential{},
			AddOns:      map[string]int{"jacuzzi-polish": 2},
			FrequencyID: "one-time",
		})
		assert.Equal(t, 0.0, q.AddOnsTotal)
	})

	t.Run("metered count capped at max", func(t *testing.T) {
		q := Calculate(Selection{
			Service:     ServiceHousePackage,
			Residential: &Residential{},
			AddOns:      map[string]int{"laundry": 99},
			FrequencyID: "one-time",
		})
		assert.Equal(t, 80.0, q.AddOnsTotal) // capped at 4 loads
	})
}

func TestUnknownServiceZeroQuote(t *testing.T) {
	q := Calculate(Selection{Service: "window-only", FrequencyID: "weekly", Tip: 50})
	assert.Equal(t, Quote{}, q)
}

func TestTotalsNeverNegative(t *testing.T) {
	sels := []Selection{
		{Service: ServiceHousePackage, FrequencyID: "weekly"},
		{Service: ServiceHouseHourly, FrequencyID: "weekly"},
		{Service: ServiceOffice, FrequencyID: "daily"},
		{Service: ServiceHousePackage, Residential: &Residential{Bedrooms: 10, Bathrooms: 10}, FrequencyID: "weekly", Tip: -500},
	}
	for _, sel := range sels {
		q := Calculate(sel)
		assert.GreaterOrEqual(t, q.InitialFee, 0.0)
		assert.GreaterOrEqual(t, q.RecurringFee, 0.0)
		assert.GreaterOrEqual(t, q.FinalTotal, 0.0)
	}
}

func TestCalculateIdempotent(t *testing.T) {
	sel := Selection{
		Service: ServiceHousePackage,
		Residential: &Residential{
			SquareFootageRange: "2500-2999",
			Bedrooms:           4,
			Bathrooms:          3,
			HalfBaths:          1,
			Basement:           BasementMediumWashroom,
		},
		AddOns:      map[string]int{"deep-clean": 1, "interior-windows": 6},
		FrequencyID: "biweekly",
		Tip:         25,
	}

	first := Calculate(sel)
	second := Calculate(sel)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("calculator is not idempotent: %+v != %+v", first, second)
	}
}

func TestFinalTotalConsistency(t *testing.T) {
	sel := Selection{
		Service: ServiceHousePackage,
		Residential: &Residential{
			SquareFootageRange: "3000-3999",
			Bedrooms:           5,
			Bathrooms:          3,
			Basement:           BasementLarge,
		},
		AddOns:      map[string]int{"inside-oven": 1},
		FrequencyID: "monthly",
		Tip:         15,
	}

	q := Calculate(sel)
	assert.InDelta(t, q.Subtotal-q.DiscountAmount+q.Tip, q.FinalTotal, 0.001)
	assert.InDelta(t, q.BaseCharge+q.RoomCharges+q.AddOnsTotal, q.Subtotal, 0.001)
}

func TestSqftTiersMonotonic(t *testing.T) {
	prev := -1.0
	for _, bucket := range SqftBuckets {
		adj, ok := SqftTierAdjustments[bucket]
		require.True(t, ok, "bucket %s missing from adjustments", bucket)
		require.Greater(t, adj, prev, "tier %s must cost more than the previous bucket", bucket)
		prev = adj
	}
}
