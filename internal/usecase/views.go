package usecase

import "roomscout/internal/domain/availability"

// Read models returned by the availability usecase. Handlers convert them
// into response DTOs; nothing here leaks adapter internals.

type RoomView struct {
	Name              string
	Branch            string
	BusinessID        string
	BizItemID         string
	ImageURLs         []string
	MaxCapacity       int
	RecommendCapacity int
	PricePerHour      int
	Lat               float64
	Lng               float64
}

type PolicyWarning struct {
	Type    string
	Message string
}

// RoomAvailabilityView is one room's aggregated outcome. EstimatedPrice is
// nil when the room is not bookable for the requested interval or when
// pricing failed; a pricing failure never invalidates the availability data.
type RoomAvailabilityView struct {
	Room           RoomView
	Available      availability.Tri
	Slots          map[string]availability.Tri
	PolicyWarnings []PolicyWarning
	EstimatedPrice *int
}

// BranchStats summarises one business's bookable rooms for the map overlay.
type BranchStats struct {
	MinPrice       int
	AvailableCount int
	Lat            float64
	Lng            float64
}

type CheckAvailabilityView struct {
	Date                string
	HourSlots           []string
	AvailableBizItemIDs []string
	Results             []RoomAvailabilityView
	BranchSummary       map[string]BranchStats
}
