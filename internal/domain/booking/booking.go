package booking

import (
	"errors"
	"regexp"
	"sort"
	"time"

	"roomscout/internal/domain/room"
)

const (
	DateLayout = "2006-01-02"
	HourLayout = "15:04"
)

// One sentinel per validation rule so callers can tell "bad date" from
// "bad room" from "empty list" programmatically.
var (
	ErrInvalidDate        = errors.New("date must be a valid YYYY-MM-DD calendar date")
	ErrInvalidHourSlot    = errors.New("hour slot must be a valid 24-hour HH:MM time")
	ErrPastHourSlot       = errors.New("hour slot must not be in the past")
	ErrDiscontinuousHours = errors.New("hour slots must be contiguous at 1-hour spacing")
	ErrEmptyRoomList      = errors.New("room list must not be empty")
	ErrInvalidTimeRange   = errors.New("start hour must not be after end hour")
	ErrInvalidMapBounds   = errors.New("map bounds must form a south-west/north-east box")
)

var hourSlotPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// HourSlots expands an inclusive [startHour, endHour] range into hourly slot
// labels; 14:00-16:00 books the 14, 15 and 16 o'clock slots.
func HourSlots(startHour, endHour string) ([]string, error) {
	start, err := time.Parse(HourLayout, startHour)
	if err != nil {
		return nil, ErrInvalidHourSlot
	}
	end, err := time.Parse(HourLayout, endHour)
	if err != nil {
		return nil, ErrInvalidHourSlot
	}
	if start.After(end) {
		return nil, ErrInvalidTimeRange
	}

	var slots []string
	for cur := start; !cur.After(end); cur = cur.Add(time.Hour) {
		slots = append(slots, cur.Format(HourLayout))
	}
	return slots, nil
}

// ValidateRequest runs all request-level rules in order and fails fast on the
// first violation, before any source adapter is invoked.
func ValidateRequest(date string, hourSlots []string, rooms []room.Detail, now time.Time) error {
	day, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return ErrInvalidDate
	}

	if err := validateHourSlots(hourSlots, day, now); err != nil {
		return err
	}

	for _, rm := range rooms {
		if err := rm.Validate(); err != nil {
			return err
		}
	}
	if len(rooms) == 0 {
		return ErrEmptyRoomList
	}
	return nil
}

func validateHourSlots(hourSlots []string, day time.Time, now time.Time) error {
	sameDay := day.Year() == now.Year() && day.YearDay() == now.YearDay()

	parsed := make([]time.Time, 0, len(hourSlots))
	for _, slot := range hourSlots {
		if !hourSlotPattern.MatchString(slot) {
			return ErrInvalidHourSlot
		}
		t, err := time.Parse(HourLayout, slot)
		if err != nil {
			return ErrInvalidHourSlot
		}
		if sameDay {
			slotAt := time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
			// A slot equal to the current instant counts as past, not current.
			if !slotAt.After(now) {
				return ErrPastHourSlot
			}
		}
		parsed = append(parsed, t)
	}

	return validateContiguity(parsed)
}

// validateContiguity requires ascending-sorted slots to sit exactly one hour
// apart pairwise; a single slot always passes.
func validateContiguity(slots []time.Time) error {
	if len(slots) <= 1 {
		return nil
	}

	sorted := make([]time.Time, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i+1].Sub(sorted[i]) != time.Hour {
			return ErrDiscontinuousHours
		}
	}
	return nil
}

// ValidateBounds checks the map viewport used to select candidate rooms.
func ValidateBounds(swLat, swLng, neLat, neLng float64) error {
	if swLat < -90 || neLat > 90 || swLng < -180 || neLng > 180 {
		return ErrInvalidMapBounds
	}
	if swLat >= neLat || swLng >= neLng {
		return ErrInvalidMapBounds
	}
	return nil
}

// Interval converts a validated date plus its slot list into the half-open
// booking interval used by the pricing engine: first slot start to last slot
// start plus one hour.
func Interval(date string, hourSlots []string, loc *time.Location) (start, end time.Time, err error) {
	if len(hourSlots) == 0 {
		return time.Time{}, time.Time{}, ErrInvalidHourSlot
	}
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	first, err := time.Parse(HourLayout, hourSlots[0])
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidHourSlot
	}
	last, err := time.Parse(HourLayout, hourSlots[len(hourSlots)-1])
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidHourSlot
	}

	start = time.Date(day.Year(), day.Month(), day.Day(), first.Hour(), first.Minute(), 0, 0, loc)
	end = time.Date(day.Year(), day.Month(), day.Day(), last.Hour(), last.Minute(), 0, 0, loc).Add(time.Hour)
	return start, end, nil
}
