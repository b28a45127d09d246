//go:build unit || e2e

package builder

import (
	"roomscout/internal/domain/availability"
	"roomscout/internal/domain/pricing"
	"roomscout/internal/domain/room"
	"roomscout/internal/usecase"
)

type RoomBuilder struct {
	Name              string
	Branch            string
	BusinessID        string
	BizItemID         string
	ImageURLs         []string
	MaxCapacity       int
	RecommendCapacity int
	PricePerHour      int
	PriceRules        []pricing.Rule
	BaseCapacity      *int
	ExtraCharge       *int
	CanReserveOneHour bool
	Lat               float64
	Lng               float64
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		Name:              "Room A",
		Branch:            "Sadang",
		BusinessID:        "dream_sadang",
		BizItemID:         "101",
		ImageURLs:         []string{"https://img.example.com/room-a.jpg"},
		MaxCapacity:       8,
		RecommendCapacity: 5,
		PricePerHour:      12000,
		CanReserveOneHour: true,
		Lat:               37.4765,
		Lng:               126.9816,
	}
}

func (b *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(b)
	return b
}

func (b *RoomBuilder) BuildDetail() room.Detail {
	return room.Detail{
		Key: room.Key{
			Name:       b.Name,
			Branch:     b.Branch,
			BusinessID: b.BusinessID,
			BizItemID:  b.BizItemID,
		},
		ImageURLs:         b.ImageURLs,
		MaxCapacity:       b.MaxCapacity,
		RecommendCapacity: b.RecommendCapacity,
		PricePerHour:      b.PricePerHour,
		PriceRules:        b.PriceRules,
		BaseCapacity:      b.BaseCapacity,
		ExtraCharge:       b.ExtraCharge,
		CanReserveOneHour: b.CanReserveOneHour,
		Lat:               b.Lat,
		Lng:               b.Lng,
	}
}

func (b *RoomBuilder) BuildView() usecase.RoomView {
	return usecase.RoomView{
		Name:              b.Name,
		Branch:            b.Branch,
		BusinessID:        b.BusinessID,
		BizItemID:         b.BizItemID,
		ImageURLs:         b.ImageURLs,
		MaxCapacity:       b.MaxCapacity,
		RecommendCapacity: b.RecommendCapacity,
		PricePerHour:      b.PricePerHour,
		Lat:               b.Lat,
		Lng:               b.Lng,
	}
}

// BuildAvailabilityView assembles a fully-open result for the given slots.
func (b *RoomBuilder) BuildAvailabilityView(hourSlots []string) usecase.RoomAvailabilityView {
	slots := make(map[string]availability.Tri, len(hourSlots))
	for _, hs := range hourSlots {
		slots[hs] = availability.Yes
	}
	price := b.PricePerHour * len(hourSlots)
	return usecase.RoomAvailabilityView{
		Room:           b.BuildView(),
		Available:      availability.Yes,
		Slots:          slots,
		EstimatedPrice: &price,
	}
}
