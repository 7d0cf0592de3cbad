package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freshnest-bot/internal/pricing"
	"freshnest-bot/pkg/redis"
)

// BookingState is the per-chat dialog state, JSON in Redis under
// state:<chatID> with a TTL so abandoned sessions evaporate.
type BookingState struct {
	Step string `json:"step"`

	Selection pricing.Selection `json:"selection"`

	BookingDate   string `json:"booking_date,omitempty"` // DD.MM.YYYY as entered
	ArrivalWindow string `json:"arrival_window,omitempty"`
	Address       string `json:"address,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	PhoneNumber   string `json:"phone_number,omitempty"`
	Notes         string `json:"notes,omitempty"`

	Application *ApplicationDraft `json:"application,omitempty"`
}

// ApplicationDraft accumulates the join-team answers.
type ApplicationDraft struct {
	FirstName            string `json:"first_name,omitempty"`
	LastName             string `json:"last_name,omitempty"`
	Email                string `json:"email,omitempty"`
	Phone                string `json:"phone,omitempty"`
	CleaningExperience   string `json:"cleaning_experience,omitempty"`
	HasLicenseAndVehicle string `json:"has_license_and_vehicle,omitempty"`
	Availability         string `json:"availability,omitempty"`
	Message              string `json:"message,omitempty"`
	Resume               string `json:"resume,omitempty"`
}

// SelectService switches the active service. Choosing a different service
// drops the other shape's property details, add-ons, frequency and tip:
// a house quote must never leak bedrooms into an office quote.
func (s *BookingState) SelectService(id pricing.ServiceID) {
	if s.Selection.Service == id {
		return
	}

	s.Selection = pricing.Selection{
		Service: id,
		AddOns:  make(map[string]int),
	}
	if id == pricing.ServiceOffice {
		s.Selection.Commercial = &pricing.Commercial{}
	} else {
		s.Selection.Residential = &pricing.Residential{Basement: pricing.BasementNone}
	}
}

// ResetBooking clears everything except the saved phone number, matching
// what a cancelled wizard should forget.
func (s *BookingState) ResetBooking() {
	phone := s.PhoneNumber
	*s = BookingState{
		Step:        StepMainMenu,
		PhoneNumber: phone,
	}
}

// ToggleAddOn advances an add-on quantity by one, wrapping back to zero
// past the catalog maximum. Returns the new quantity.
func (s *BookingState) ToggleAddOn(addOn pricing.AddOn) int {
	if s.Selection.AddOns == nil {
		s.Selection.AddOns = make(map[string]int)
	}
	qty := s.Selection.AddOns[addOn.ID] + 1
	if qty > addOn.MaxQuantity() {
		qty = 0
	}
	if qty == 0 {
		delete(s.Selection.AddOns, addOn.ID)
	} else {
		s.Selection.AddOns[addOn.ID] = qty
	}
	return qty
}

// StateStorage persists BookingState in Redis.
type StateStorage struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStateStorage(redisClient *redis.Client, ttl time.Duration) *StateStorage {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &StateStorage{
		redis: redisClient,
		ttl:   ttl,
	}
}

func (s *StateStorage) Save(ctx context.Context, chatID int64, state *BookingState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := s.redis.Set(ctx, stateKey(chatID), data, s.ttl); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Get returns the chat's state, or a fresh main-menu state when none is
// stored yet.
func (s *StateStorage) Get(ctx context.Context, chatID int64) (*BookingState, error) {
	data, err := s.redis.Get(ctx, stateKey(chatID))
	if redis.IsNil(err) {
		return &BookingState{Step: StepMainMenu}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get state: %w", err)
	}

	var state BookingState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return &state, nil
}

// Update applies fn to the stored state and saves the result.
func (s *StateStorage) Update(ctx context.Context, chatID int64, fn func(*BookingState)) error {
	state, err := s.Get(ctx, chatID)
	if err != nil {
		return err
	}
	fn(state)
	return s.Save(ctx, chatID, state)
}

func (s *StateStorage) SetStep(ctx context.Context, chatID int64, step string) error {
	return s.Update(ctx, chatID, func(state *BookingState) {
		state.Step = step
	})
}

func (s *StateStorage) Clear(ctx context.Context, chatID int64) error {
	if err := s.redis.Del(ctx, stateKey(chatID)); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}

func stateKey(chatID int64) string {
	return fmt.Sprintf("state:%d", chatID)
}
