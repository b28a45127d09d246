package room

import (
	"errors"

	"roomscout/internal/domain/pricing"
)

var ErrMissingKeyField = errors.New("room key field missing")

// Key identifies one bookable unit across all booking sources.
// Uniqueness is (BusinessID, BizItemID); BusinessID is the site-level
// identifier used for adapter routing, BizItemID the unit within it.
type Key struct {
	Name       string `json:"name"`
	Branch     string `json:"branch"`
	BusinessID string `json:"businessId"`
	BizItemID  string `json:"bizItemId"`
}

func (k Key) Validate() error {
	if k.Name == "" || k.Branch == "" || k.BusinessID == "" || k.BizItemID == "" {
		return ErrMissingKeyField
	}
	return nil
}

// Detail is the static per-room metadata from the catalog view: capacities,
// pricing inputs, booking-policy flags and map position. It is a read-only
// value object scoped to one aggregation request.
type Detail struct {
	Key

	ImageURLs         []string
	MaxCapacity       int
	RecommendCapacity int

	PricePerHour int
	PriceRules   []pricing.Rule
	BaseCapacity *int
	ExtraCharge  *int // per exceeding person per hour

	CanReserveOneHour     bool
	RequiresCallOnSameDay bool

	Lat float64
	Lng float64
}
