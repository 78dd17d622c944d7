package appointment

import "time"

// WorkingHours is the daily booking window, whole hours, half-open [Start, End).
type WorkingHours struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// AvailableSlots enumerates one candidate start per whole hour of the working
// window on the given calendar day and filters out candidates that are
// already taken or in the past. The result is ascending and the function is
// pure: safe to recompute on every request.
//
// Only exact start-time collisions are filtered. Whether serviceDuration
// would overrun the closing hour or bleed into the next booking is not
// checked here; the confirmation step carries the same rule.
func AvailableSlots(
	day time.Time,
	serviceDuration time.Duration,
	hours WorkingHours,
	busyStarts []time.Time,
	now time.Time,
) []time.Time {
	_ = serviceDuration

	loc := day.Location()

	busy := make(map[int64]struct{}, len(busyStarts))
	for _, b := range busyStarts {
		busy[b.Unix()] = struct{}{}
	}

	sameDay := day.In(loc).Year() == now.In(loc).Year() &&
		day.In(loc).YearDay() == now.In(loc).YearDay()

	slots := make([]time.Time, 0, hours.End-hours.Start)
	for hour := hours.Start; hour < hours.End; hour++ {
		candidate := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, loc)

		if sameDay && !candidate.After(now) {
			continue
		}
		if _, taken := busy[candidate.Unix()]; taken {
			continue
		}

		slots = append(slots, candidate)
	}

	return slots
}
