package roster

import "errors"

var (
	// ErrNoStandbyFallback indicates the special-doctor pool backing the
	// standby fallback is empty, so full coverage is impossible.
	ErrNoStandbyFallback = errors.New("no special doctors available for standby fallback")

	// ErrStandbyUnassignable indicates a day could not be covered because
	// every fallback doctor is unavailable on it.
	ErrStandbyUnassignable = errors.New("no available doctor for standby")

	// ErrInsufficientClinicDays indicates the month has fewer eligible
	// weekdays than the required number of clinic days.
	ErrInsufficientClinicDays = errors.New("not enough eligible days for clinic")
)
