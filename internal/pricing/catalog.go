package pricing

// The single source of truth for all rates. The booking wizard and the
// quote step both read from here; changing a price is a one-line edit.

type ServiceID string

const (
	ServiceHousePackage ServiceID = "house-package"
	ServiceHouseHourly  ServiceID = "house-hourly"
	ServiceOffice       ServiceID = "office"
)

type Service struct {
	ID          ServiceID
	Name        string
	Description string
	// BasePrice is dollars for house-package, dollars/hour for
	// house-hourly and unused for office (office is priced per sqft).
	BasePrice float64
}

var Services = []Service{
	{
		ID:          ServiceHousePackage,
		Name:        "Home Cleaning Package",
		Description: "Flat-rate home cleaning sized by square footage and rooms",
		BasePrice:   80,
	},
	{
		ID:          ServiceHouseHourly,
		Name:        "Hourly Home Cleaning",
		Description: "Cleaners by the hour, 3-hour minimum",
		BasePrice:   40,
	},
	{
		ID:          ServiceOffice,
		Name:        "Office Cleaning",
		Description: "Commercial cleaning priced per square foot",
		BasePrice:   0,
	},
}

// ServiceByID returns nil for unknown ids; callers treat that as a
// zero-price quote rather than an error.
func ServiceByID(id ServiceID) *Service {
	for i := range Services {
		if Services[i].ID == id {
			return &Services[i]
		}
	}
	return nil
}

// SqftTierAdjustments maps the residential square footage buckets offered
// by the wizard keyboard to a flat surcharge on the package base price.
// Buckets not listed (or an empty selection) add nothing.
var SqftTierAdjustments = map[string]float64{
	"500-999":    0,
	"1000-1499":  20,
	"1500-1999":  40,
	"2000-2499":  60,
	"2500-2999":  80,
	"3000-3999":  120,
	"4000-4999":  160,
	"5000-5999":  200,
	"6000-7499":  280,
	"7500-9999":  400,
	"10000-plus": 680,
}

// SqftBuckets is the keyboard ordering for the tier buckets.
var SqftBuckets = []string{
	"500-999", "1000-1499", "1500-1999", "2000-2499", "2500-2999",
	"3000-3999", "4000-4999", "5000-5999", "6000-7499", "7500-9999",
	"10000-plus",
}

// Per-room rates, residential only.
const (
	BedroomRate  = 40
	BathroomRate = 25
	HalfBathRate = 15
)

type BasementOption string

const (
	BasementNone            BasementOption = "none"
	BasementSmall           BasementOption = "small"
	BasementMedium          BasementOption = "medium"
	BasementLarge           BasementOption = "large"
	BasementSmallWashroom   BasementOption = "small-washroom"
	BasementMediumWashroom  BasementOption = "medium-washroom"
	BasementLargeWashroom   BasementOption = "large-washroom"
)

var BasementRates = map[BasementOption]float64{
	BasementNone:           0,
	BasementSmall:          30,
	BasementMedium:         40,
	BasementLarge:          50,
	BasementSmallWashroom:  70,
	BasementMediumWashroom: 80,
	BasementLargeWashroom:  90,
}

// BasementOptions is the keyboard ordering.
var BasementOptions = []BasementOption{
	BasementNone,
	BasementSmall,
	BasementMedium,
	BasementLarge,
	BasementSmallWashroom,
	BasementMediumWashroom,
	BasementLargeWashroom,
}

var BasementLabels = map[BasementOption]string{
	BasementNone:           "No basement",
	BasementSmall:          "Up to 500 sqft",
	BasementMedium:         "500-1000 sqft",
	BasementLarge:          "Over 1000 sqft",
	BasementSmallWashroom:  "Up to 500 sqft + washroom",
	BasementMediumWashroom: "500-1000 sqft + washroom",
	BasementLargeWashroom:  "Over 1000 sqft + washroom",
}

// Hourly service floor. The keyboard only offers 3+ hours; the calculator
// also defaults unset hours to this value.
const MinHourlyHours = 3

// Office per-sqft rate tiers, cheapest rate for the largest spaces.
type OfficeRateTier struct {
	MaxSqft int // exclusive upper bound, 0 = no bound
	Rate    float64
}

var OfficeRateTiers = []OfficeRateTier{
	{MaxSqft: 3000, Rate: 0.20},
	{MaxSqft: 5000, Rate: 0.17},
	{MaxSqft: 10000, Rate: 0.15},
	{MaxSqft: 0, Rate: 0.13},
}

// OfficeMinimumCharge floors the office base charge.
const OfficeMinimumCharge = 150

type AddOnKind int

const (
	// AddOnSingle is an on/off toggle billed once.
	AddOnSingle AddOnKind = iota
	// AddOnMetered is billed per unit, bounded by Min..Max.
	AddOnMetered
	// AddOnPerSqft is billed at Price per square foot of the property.
	AddOnPerSqft
)

type AddOn struct {
	ID    string
	Label string
	Kind  AddOnKind
	Price float64
	Min   int
	Max   int
}

// MaxQuantity is the largest selectable count for an add-on.
func (a AddOn) MaxQuantity() int {
	switch a.Kind {
	case AddOnMetered:
		return a.Max
	default:
		return 1
	}
}

var ResidentialAddOns = []AddOn{
	{ID: "inside-fridge", Label: "Inside fridge", Kind: AddOnSingle, Price: 35},
	{ID: "inside-oven", Label: "Inside oven", Kind: AddOnSingle, Price: 35},
	{ID: "inside-cabinets", Label: "Inside cabinets", Kind: AddOnSingle, Price: 30},
	{ID: "interior-windows", Label: "Interior windows", Kind: AddOnMetered, Price: 5, Min: 1, Max: 20},
	{ID: "laundry", Label: "Laundry (per load)", Kind: AddOnMetered, Price: 20, Min: 1, Max: 4},
	{ID: "deep-clean", Label: "Deep clean upgrade", Kind: AddOnSingle, Price: 50},
	{ID: "pet-hair", Label: "Pet hair removal", Kind: AddOnSingle, Price: 25},
}

var OfficeAddOns = []AddOn{
	{ID: "carpet-cleaning", Label: "Carpet cleaning", Kind: AddOnPerSqft, Price: 0.05},
	{ID: "window-washing", Label: "Window washing", Kind: AddOnPerSqft, Price: 0.04},
	{ID: "floor-waxing", Label: "Floor waxing", Kind: AddOnPerSqft, Price: 0.06},
	{ID: "eco-friendly", Label: "Eco-friendly products", Kind: AddOnPerSqft, Price: 0.02},
	{ID: "restroom-deep-clean", Label: "Restroom deep clean", Kind: AddOnMetered, Price: 40, Min: 1, Max: 10},
}

// AddOnsForService returns the catalog slice for the wizard keyboards.
func AddOnsForService(id ServiceID) []AddOn {
	if id == ServiceOffice {
		return OfficeAddOns
	}
	return ResidentialAddOns
}

func addOnByID(id ServiceID, addOnID string) *AddOn {
	catalog := AddOnsForService(id)
	for i := range catalog {
		if catalog[i].ID == addOnID {
			return &catalog[i]
		}
	}
	return nil
}

type FrequencyOption struct {
	ID           string
	Label        string
	DiscountRate float64
}

var ResidentialFrequencies = []FrequencyOption{
	{ID: "one-time", Label: "One time", DiscountRate: 0},
	{ID: "weekly", Label: "Weekly", DiscountRate: 0.20},
	{ID: "biweekly", Label: "Every two weeks", DiscountRate: 0.15},
	{ID: "triweekly", Label: "Every three weeks", DiscountRate: 0.125},
	{ID: "monthly", Label: "Monthly", DiscountRate: 0.10},
}

// Commercial biweekly/monthly carry no discount upstream; the zero rows
// are kept so the gap stays visible instead of being an absent key.
var CommercialFrequencies = []FrequencyOption{
	{ID: "one-time", Label: "One time", DiscountRate: 0},
	{ID: "daily", Label: "Daily", DiscountRate: 0.20},
	{ID: "3x-week", Label: "Three times a week", DiscountRate: 0.15},
	{ID: "weekly", Label: "Weekly", DiscountRate: 0.10},
	{ID: "biweekly", Label: "Every two weeks", DiscountRate: 0},
	{ID: "monthly", Label: "Monthly", DiscountRate: 0},
}

// FrequenciesForService returns the cadence options for the wizard.
func FrequenciesForService(id ServiceID) []FrequencyOption {
	if id == ServiceOffice {
		return CommercialFrequencies
	}
	return ResidentialFrequencies
}

// DiscountRate resolves a frequency id to its rate. Unknown ids (and
// one-time) discount nothing.
func DiscountRate(service ServiceID, frequencyID string) float64 {
	for _, f := range FrequenciesForService(service) {
		if f.ID == frequencyID {
			return f.DiscountRate
		}
	}
	return 0
}
