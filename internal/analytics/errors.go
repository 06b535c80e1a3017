package analytics

import (
	"errors"
	"fmt"
)

// MinActiveDays is the fewest distinct days a trend can be fitted on.
const MinActiveDays = 3

// ErrInsufficientData matches any *InsufficientDataError via errors.Is.
var ErrInsufficientData = errors.New("insufficient data")

// InsufficientDataError is returned by Forecast when the window holds no
// check-ins or fewer than MinActiveDays active days. It is an expected,
// client-facing condition.
type InsufficientDataError struct {
	Days       int
	CheckIns   int
	ActiveDays int
}

func (e *InsufficientDataError) Error() string {
	if e.CheckIns == 0 {
		return fmt.Sprintf("No check-ins found in last %d days.", e.Days)
	}
	return fmt.Sprintf("Not enough active days in last %d days (need at least %d distinct days with data, found %d).",
		e.Days, MinActiveDays, e.ActiveDays)
}

func (e *InsufficientDataError) Is(target error) bool { return target == ErrInsufficientData }
