package pricing

import (
	"errors"
	"time"
)

var (
	ErrInvalidInterval = errors.New("pricing interval start must be before end")
	ErrInvalidTimeBand = errors.New("time band end hour must be greater than start hour")
	ErrInvalidPrice    = errors.New("rule price cannot be negative")
)

// TimeBand is a half-open hour range [StartHour, EndHour).
type TimeBand struct {
	StartHour int `json:"startHour"`
	EndHour   int `json:"endHour"`
}

func (b TimeBand) Validate() error {
	if b.StartHour < 0 || b.EndHour > 24 || b.EndHour <= b.StartHour {
		return ErrInvalidTimeBand
	}
	return nil
}

func (b TimeBand) Contains(hour int) bool {
	return b.StartHour <= hour && hour < b.EndHour
}

// Rule is one entry of a room's price configuration. Rules are evaluated in
// list order and the first fully-matching rule wins, so config authors are
// expected to order most-specific rules first.
//
// Season is a reserved field: rules carrying a season are skipped until
// season resolution semantics are settled, matching the upstream data.
type Rule struct {
	Season   *string   `json:"season,omitempty"`
	Days     []int     `json:"days,omitempty"` // weekday integers, 0=Monday
	TimeBand *TimeBand `json:"timeBand,omitempty"`
	Price    int       `json:"price"`
}

func (r Rule) Validate() error {
	if r.Price < 0 {
		return ErrInvalidPrice
	}
	if r.TimeBand != nil {
		return r.TimeBand.Validate()
	}
	return nil
}

// matches reports whether the rule applies to the given weekday (0=Monday)
// and hour. A rule with neither Days nor TimeBand matches everything.
func (r Rule) matches(day, hour int) bool {
	if r.Season != nil {
		return false
	}
	if r.Days != nil && !containsInt(r.Days, day) {
		return false
	}
	if r.TimeBand != nil && !r.TimeBand.Contains(hour) {
		return false
	}
	return true
}

// CalculateTotalPrice prices a booking interval with the split-and-sum
// algorithm: the interval is walked in 1-hour increments from start
// (inclusive) to end (exclusive) and each increment is priced independently,
// so a booking crossing a rate boundary (17:00-19:00 over an 18:00 peak
// start) is billed as the sum of differently-priced hours.
//
// The occupancy surcharge applies only when both baseCapacity and
// extraCharge are set: max(0, peopleCount-baseCapacity) * extraCharge *
// ceil(interval hours). Only the surcharge duration rounds, and it always
// rounds up.
func CalculateTotalPrice(
	basePrice int,
	rules []Rule,
	baseCapacity *int,
	extraCharge *int,
	start, end time.Time,
	peopleCount int,
) (int, error) {
	if !start.Before(end) {
		return 0, ErrInvalidInterval
	}

	total := 0
	for slot := start; slot.Before(end); slot = slot.Add(time.Hour) {
		total += unitPrice(basePrice, rules, slot)
	}

	total += occupancySurcharge(baseCapacity, extraCharge, peopleCount, start, end)

	return total, nil
}

// unitPrice resolves the hourly price at target: first matching rule wins,
// base price when nothing matches.
func unitPrice(basePrice int, rules []Rule, target time.Time) int {
	day := mondayZeroWeekday(target)
	hour := target.Hour()

	for _, rule := range rules {
		if rule.matches(day, hour) {
			return rule.Price
		}
	}
	return basePrice
}

func occupancySurcharge(baseCapacity, extraCharge *int, people int, start, end time.Time) int {
	if baseCapacity == nil || extraCharge == nil {
		return 0
	}

	exceeded := people - *baseCapacity
	if exceeded < 0 {
		exceeded = 0
	}

	seconds := int64(end.Sub(start) / time.Second)
	hours := int((seconds + 3599) / 3600) // partial hours charge as full hours

	return exceeded * *extraCharge * hours
}

// mondayZeroWeekday converts Go's Sunday-based weekday to the 0=Monday
// convention used by the price configuration.
func mondayZeroWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func containsInt(list []int, v int) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
