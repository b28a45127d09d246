package adapter

import "roomscout/internal/domain/room"

// Router maps a room's business identifier to the adapter responsible for
// it. Pure lookup data, injected at construction; no global registry.
type Router struct {
	table    map[string]string
	fallback string
}

func NewRouter(table map[string]string, fallback string) *Router {
	owned := make(map[string]string, len(table))
	for k, v := range table {
		owned[k] = v
	}
	return &Router{table: owned, fallback: fallback}
}

// NewDefaultRouter carries the known business-to-source mapping. New venues
// get one more row here; anything unlisted books through naver.
func NewDefaultRouter() *Router {
	return NewRouter(map[string]string{
		"dream_sadang":  NameDream,
		"hongdae_dream": NameDream,
		"sadang":        NameGroove,
	}, NameNaver)
}

func (r *Router) Route(businessID string) string {
	if name, ok := r.table[businessID]; ok {
		return name
	}
	return r.fallback
}

// Partition filters rooms down to those routed to adapterName, preserving
// input order.
func (r *Router) Partition(rooms []room.Detail, adapterName string) []room.Detail {
	var out []room.Detail
	for _, rm := range rooms {
		if r.Route(rm.BusinessID) == adapterName {
			out = append(out, rm)
		}
	}
	return out
}

// PartitionAll splits rooms into one ordered group per adapter name; adapters
// with no rooms get no entry, so the aggregator never launches idle work.
func (r *Router) PartitionAll(rooms []room.Detail) map[string][]room.Detail {
	groups := make(map[string][]room.Detail)
	for _, rm := range rooms {
		name := r.Route(rm.BusinessID)
		groups[name] = append(groups[name], rm)
	}
	return groups
}
