package response

import (
	"github.com/jinzhu/copier"

	"roomscout/internal/domain/availability"
	"roomscout/internal/usecase"
)

type RoomResponse struct {
	Name              string   `json:"name"`
	Branch            string   `json:"branch"`
	BusinessID        string   `json:"businessId"`
	BizItemID         string   `json:"bizItemId"`
	ImageURLs         []string `json:"imageUrls"`
	MaxCapacity       int      `json:"maxCapacity"`
	RecommendCapacity int      `json:"recommendCapacity"`
	PricePerHour      int      `json:"pricePerHour"`
	Lat               float64  `json:"lat"`
	Lng               float64  `json:"lng"`
}

type PolicyWarningResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type RoomAvailabilityResponse struct {
	Room           RoomResponse                `json:"room"`
	Available      availability.Tri            `json:"available"`
	Slots          map[string]availability.Tri `json:"slots"`
	PolicyWarnings []PolicyWarningResponse     `json:"policyWarnings"`
	EstimatedPrice *int                        `json:"estimatedPrice"`
}

type BranchStatsResponse struct {
	MinPrice       int     `json:"minPrice"`
	AvailableCount int     `json:"availableCount"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
}

type CheckAvailabilityResponse struct {
	Date                string                         `json:"date"`
	HourSlots           []string                       `json:"hourSlots"`
	AvailableBizItemIDs []string                       `json:"availableBizItemIds"`
	Results             []RoomAvailabilityResponse     `json:"results"`
	BranchSummary       map[string]BranchStatsResponse `json:"branchSummary"`
}

// FromCheckAvailabilityView relies on field-name parity between the view and
// the response types; only the JSON casing differs.
func FromCheckAvailabilityView(view *usecase.CheckAvailabilityView) (CheckAvailabilityResponse, error) {
	var resp CheckAvailabilityResponse
	if err := copier.Copy(&resp, view); err != nil {
		return CheckAvailabilityResponse{}, err
	}
	return resp, nil
}
