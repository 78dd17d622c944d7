package appointment

import "github.com/barberking/booking-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// IsTerminal reports whether no further transitions are expected.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Transition policy
// ===============================

// Authorize decides who may move an appointment into the requested status.
// Confirming and completing are staff actions; cancelling is open to staff
// and to the client that owns the appointment.
func Authorize(requested Status, actorRole string, actorIsOwner bool) error {
	switch requested {
	case StatusConfirmed, StatusCompleted:
		if actorRole != "admin" {
			return httperr.ErrBusiness("not_allowed")
		}
	case StatusCancelled:
		if actorRole != "admin" && !actorIsOwner {
			return httperr.ErrBusiness("not_allowed")
		}
	default:
		// Nothing transitions back into pending.
		return httperr.ErrBusiness("not_allowed")
	}
	return nil
}

// CanLeave rejects transitions out of a settled appointment.
func CanLeave(current Status) error {
	if current.IsTerminal() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// ValidateReason enforces the self-service cancellation rule: a client
// cancelling their own appointment must say why. Staff may cancel silently.
func ValidateReason(requested Status, actorRole string, actorIsOwner bool, reason string) error {
	if requested != StatusCancelled {
		return nil
	}
	if actorRole != "admin" && actorIsOwner && reason == "" {
		return httperr.ErrBusiness("reason_required")
	}
	return nil
}
