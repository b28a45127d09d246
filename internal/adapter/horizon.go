package adapter

import (
	"time"

	"roomscout/internal/domain/booking"
)

// BeyondHorizon reports whether date sits at or past the source's booking
// horizon, counted in whole days from today. Sources answer "unknown" rather
// than "unavailable" for such dates because their own calendar does not
// reach that far yet. A non-positive horizon means the source has none.
func BeyondHorizon(now time.Time, date string, horizonDays int) bool {
	if horizonDays <= 0 {
		return false
	}
	target, err := time.ParseInLocation(booking.DateLayout, date, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(target.Sub(today).Hours()/24) >= horizonDays
}
