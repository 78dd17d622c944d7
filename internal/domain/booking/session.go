package booking

import (
	"time"

	"github.com/barberking/booking-api/internal/httperr"
)

// ===============================
// Booking session steps
// ===============================

type Step string

const (
	StepSelectingService    Step = "selecting_service"
	StepSelectingDate       Step = "selecting_date"
	StepSelectingTime       Step = "selecting_time"
	StepConfirmationPending Step = "confirmation_pending"
)

// Rules are the shop-level date restrictions applied when picking a day.
type Rules struct {
	// Weekday the shop is closed (time.Weekday numbering). -1 disables it.
	ClosedWeekday int
}

// Session drives the step-wise booking flow: service, then date, then time,
// then confirmation. It is a plain value, serialized as-is into the session
// store; every transition validates the current step and resets exactly the
// state introduced by the step being left.
type Session struct {
	ID   string `json:"id"`
	Step Step   `json:"step"`

	ServiceID string    `json:"service_id,omitempty"`
	Date      time.Time `json:"date,omitempty"`
	Start     time.Time `json:"start,omitempty"`
}

func New(id string) *Session {
	return &Session{
		ID:   id,
		Step: StepSelectingService,
	}
}

func (s *Session) SelectService(serviceID string) error {
	if s.Step != StepSelectingService {
		return httperr.ErrBusiness("invalid_step")
	}

	s.ServiceID = serviceID
	s.Date = time.Time{}
	s.Start = time.Time{}
	s.Step = StepSelectingDate
	return nil
}

func (s *Session) SelectDate(date time.Time, now time.Time, rules Rules) error {
	if s.Step != StepSelectingDate {
		return httperr.ErrBusiness("invalid_step")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if day.Before(today) {
		return httperr.ErrBusiness("date_in_past")
	}
	if rules.ClosedWeekday >= 0 && int(day.Weekday()) == rules.ClosedWeekday {
		return httperr.ErrBusiness("shop_closed")
	}

	s.Date = day
	s.Start = time.Time{}
	s.Step = StepSelectingTime
	return nil
}

// SelectTime accepts one of the offered slots. The caller recomputes the
// available set right before this call; the session never caches it.
func (s *Session) SelectTime(start time.Time, available []time.Time) error {
	if s.Step != StepSelectingTime {
		return httperr.ErrBusiness("invalid_step")
	}

	for _, slot := range available {
		if slot.Equal(start) {
			s.Start = start
			s.Step = StepConfirmationPending
			return nil
		}
	}
	return httperr.ErrBusiness("slot_unavailable")
}

// Back navigates one step backwards, clearing only what the abandoned step
// had chosen.
func (s *Session) Back() error {
	switch s.Step {
	case StepSelectingDate:
		s.ServiceID = ""
		s.Step = StepSelectingService
	case StepSelectingTime:
		s.Date = time.Time{}
		s.Step = StepSelectingDate
	case StepConfirmationPending:
		s.Start = time.Time{}
		s.Step = StepSelectingTime
	default:
		return httperr.ErrBusiness("invalid_step")
	}
	return nil
}

// AbortToTimeSelection is taken when confirmation fails for lack of a signed
// in caller: the chosen slot is dropped and the flow re-offers times.
func (s *Session) AbortToTimeSelection() {
	s.Start = time.Time{}
	s.Step = StepSelectingTime
}

// ReadyToConfirm gates the single creation call. Contact name and phone are
// required before anything reaches the backend.
func (s *Session) ReadyToConfirm(fullName, phone string) error {
	if s.Step != StepConfirmationPending {
		return httperr.ErrBusiness("invalid_step")
	}
	if fullName == "" || phone == "" {
		return httperr.ErrBusiness("contact_required")
	}
	return nil
}

// Reset returns the session to the first step after a successful submission.
func (s *Session) Reset() {
	s.ServiceID = ""
	s.Date = time.Time{}
	s.Start = time.Time{}
	s.Step = StepSelectingService
}
