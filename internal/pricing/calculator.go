package pricing

import "math"

// Residential describes a home to be cleaned. SquareFootageRange must be
// one of the catalog buckets; the wizard keyboard guarantees that, and
// anything else simply adds no tier surcharge.
type Residential struct {
	SquareFootageRange string         `json:"square_footage_range,omitempty"`
	Bedrooms           int            `json:"bedrooms,omitempty"`
	Bathrooms          int            `json:"bathrooms,omitempty"`
	HalfBaths          int            `json:"half_baths,omitempty"`
	Basement           BasementOption `json:"basement,omitempty"`

	// Hourly service only.
	Hours       int `json:"hours,omitempty"`
	NumCleaners int `json:"num_cleaners,omitempty"`
}

// Commercial describes an office space.
type Commercial struct {
	SquareFeet    int      `json:"square_feet,omitempty"`
	NumWashrooms  int      `json:"num_washrooms,omitempty"`
	HasKitchen    bool     `json:"has_kitchen,omitempty"`
	KitchenType   string   `json:"kitchen_type,omitempty"`
	FlooringTypes []string `json:"flooring_types,omitempty"`
}

// Selection is everything the calculator needs to price a booking.
// Residential and Commercial are mutually exclusive; the wizard clears one
// when the other's service is chosen.
type Selection struct {
	Service     ServiceID      `json:"service"`
	Residential *Residential   `json:"residential,omitempty"`
	Commercial  *Commercial    `json:"commercial,omitempty"`
	AddOns      map[string]int `json:"add_ons,omitempty"`
	FrequencyID string         `json:"frequency_id,omitempty"`
	Tip         float64        `json:"tip,omitempty"`
}

// Line is one itemized row of a quote.
type Line struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Quote is the computed price breakdown.
type Quote struct {
	BaseCharge     float64 `json:"base_charge"`
	RoomCharges    float64 `json:"room_charges"`
	AddOnsTotal    float64 `json:"add_ons_total"`
	Subtotal       float64 `json:"subtotal"`
	DiscountRate   float64 `json:"discount_rate"`
	DiscountAmount float64 `json:"discount_amount"`
	Tip            float64 `json:"tip"`

	// InitialFee is the first visit at full price plus tip; the discount
	// applies only to RecurringFee, which in turn never includes the tip.
	InitialFee   float64 `json:"initial_fee"`
	RecurringFee float64 `json:"recurring_fee"`
	FinalTotal   float64 `json:"final_total"`

	Lines []Line `json:"lines,omitempty"`
}

// Calculate prices a selection. It is pure and never fails: missing or
// unknown inputs degrade to zero so the user always sees a price.
func Calculate(sel Selection) Quote {
	svc := ServiceByID(sel.Service)
	if svc == nil {
		return Quote{}
	}

	var q Quote

	q.BaseCharge = baseCharge(*svc, sel)
	q.Lines = append(q.Lines, Line{Label: svc.Name, Amount: q.BaseCharge})

	if sel.Service != ServiceOffice && sel.Residential != nil {
		rooms := roomCharges(*sel.Residential)
		for _, l := range rooms {
			q.RoomCharges += l.Amount
		}
		q.Lines = append(q.Lines, rooms...)
	}

	addOns := addOnCharges(sel)
	for _, l := range addOns {
		q.AddOnsTotal += l.Amount
	}
	q.Lines = append(q.Lines, addOns...)

	q.Subtotal = roundCents(q.BaseCharge + q.RoomCharges + q.AddOnsTotal)
	q.DiscountRate = DiscountRate(sel.Service, sel.FrequencyID)
	q.DiscountAmount = roundCents(q.Subtotal * q.DiscountRate)

	if sel.Tip > 0 {
		q.Tip = roundCents(sel.Tip)
	}

	q.InitialFee = clamp(roundCents(q.Subtotal + q.Tip))
	q.RecurringFee = clamp(roundCents(q.Subtotal - q.DiscountAmount))
	q.FinalTotal = clamp(roundCents(q.Subtotal - q.DiscountAmount + q.Tip))

	return q
}

func baseCharge(svc Service, sel Selection) float64 {
	switch svc.ID {
	case ServiceHousePackage:
		charge := svc.BasePrice
		if sel.Residential != nil {
			charge += SqftTierAdjustments[sel.Residential.SquareFootageRange]
		}
		return charge

	case ServiceHouseHourly:
		hours := MinHourlyHours
		cleaners := 1
		if sel.Residential != nil {
			if sel.Residential.Hours >= MinHourlyHours {
				hours = sel.Residential.Hours
			}
			if sel.Residential.NumCleaners > 0 {
				cleaners = sel.Residential.NumCleaners
			}
		}
		return svc.BasePrice * float64(hours) * float64(cleaners)

	case ServiceOffice:
		if sel.Commercial == nil || sel.Commercial.SquareFeet <= 0 {
			return svc.BasePrice
		}
		charge := officeRate(sel.Commercial.SquareFeet) * float64(sel.Commercial.SquareFeet)
		return math.Max(charge, OfficeMinimumCharge)
	}
	return 0
}

func officeRate(sqft int) float64 {
	for _, tier := range OfficeRateTiers {
		if tier.MaxSqft == 0 || sqft < tier.MaxSqft {
			return tier.Rate
		}
	}
	return 0
}

func roomCharges(r Residential) []Line {
	var lines []Line
	if r.Bedrooms > 0 {
		lines = append(lines, Line{Label: "Bedrooms", Amount: float64(r.Bedrooms) * BedroomRate})
	}
	if r.Bathrooms > 0 {
		lines = append(lines, Line{Label: "Bathrooms", Amount: float64(r.Bathrooms) * BathroomRate})
	}
	if r.HalfBaths > 0 {
		lines = append(lines, Line{Label: "Half baths", Amount: float64(r.HalfBaths) * HalfBathRate})
	}
	if rate := BasementRates[r.Basement]; rate > 0 {
		lines = append(lines, Line{Label: "Basement", Amount: rate})
	}
	return lines
}

func addOnCharges(sel Selection) []Line {
	var lines []Line
	// Iterate the catalog, not the selection map, so line order is stable
	// and unknown add-on ids are silently skipped.
	for _, addOn := range AddOnsForService(sel.Service) {
		qty := sel.AddOns[addOn.ID]
		if qty <= 0 {
			continue
		}

		var amount float64
		switch addOn.Kind {
		case AddOnSingle:
			amount = addOn.Price
		case AddOnMetered:
			if qty > addOn.Max {
				qty = addOn.Max
			}
			amount = addOn.Price * float64(qty)
		case AddOnPerSqft:
			if sel.Commercial == nil || sel.Commercial.SquareFeet <= 0 {
				continue
			}
			amount = addOn.Price * float64(sel.Commercial.SquareFeet)
		}

		lines = append(lines, Line{Label: addOn.Label, Amount: roundCents(amount)})
	}
	return lines
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
