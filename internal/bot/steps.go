package bot

// Wizard steps. Each one maps to a handler in registerHandlers; the
// current step lives in Redis alongside the rest of the dialog state.
const (
	StepMainMenu = "main_menu"

	// Booking flow.
	StepServiceSelect = "service_select"
	StepSqftRange     = "sqft_range"
	StepBedrooms      = "bedrooms"
	StepBathrooms     = "bathrooms"
	StepHalfBaths     = "half_baths"
	StepBasement      = "basement"
	StepHours         = "hours"
	StepCleaners      = "cleaners"
	StepOfficeSqft    = "office_sqft"
	StepWashrooms     = "washrooms"
	StepKitchen       = "kitchen"
	StepFlooring      = "flooring"
	StepAddOns        = "add_ons"
	StepFrequency     = "frequency"
	StepQuote         = "quote"
	StepTip           = "tip"
	StepDate          = "date"
	StepManualDate    = "manual_date"
	StepArrivalWindow = "arrival_window"
	StepAddress       = "address"
	StepPostalCode    = "postal_code"
	StepName          = "name"
	StepEmail         = "email"
	StepContactMethod = "contact_method"
	StepPhone         = "phone"
	StepNotes         = "notes"
	StepConfirm       = "confirm"

	// Join-team flow.
	StepApplyFirstName    = "apply_first_name"
	StepApplyLastName     = "apply_last_name"
	StepApplyEmail        = "apply_email"
	StepApplyPhone        = "apply_phone"
	StepApplyExperience   = "apply_experience"
	StepApplyLicense      = "apply_license"
	StepApplyAvailability = "apply_availability"
	StepApplyMessage      = "apply_message"
	StepApplyResume       = "apply_resume"
	StepApplyConfirm      = "apply_confirm"
)
