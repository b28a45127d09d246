package adapter

import (
	"context"

	"roomscout/internal/domain/availability"
	"roomscout/internal/domain/room"
)

// Adapter names double as routing keys; the aggregator treats them as opaque.
const (
	NameDream  = "dream"
	NameGroove = "groove"
	NameNaver  = "naver"
)

// Source is the single contract every booking source implements: one result
// per input room, in input order, with every failure converted into an
// in-band value rather than an error return. The aggregator neither knows
// nor cares whether the source scrapes HTML or calls an API.
type Source interface {
	CheckAvailability(ctx context.Context, date string, hourSlots []string, rooms []room.Detail) []availability.RoomResult
}
