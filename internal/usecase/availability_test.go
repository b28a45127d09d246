//go:build unit

package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"roomscout/internal/adapter"
	"roomscout/internal/domain/availability"
	"roomscout/internal/domain/booking"
	"roomscout/internal/domain/room"
	"roomscout/internal/pkg/clock"
	"roomscout/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 6, 10, 0, 0, 0, time.UTC)

// stubSource answers with a fixed behavior per room group.
type stubSource struct {
	delay   time.Duration
	failure *availability.SourceError
	panics  bool
	open    map[string]bool // bizItemID -> slot availability, default open
}

func (s *stubSource) CheckAvailability(ctx context.Context, date string, hourSlots []string, rooms []room.Detail) []availability.RoomResult {
	if s.panics {
		panic("stub adapter exploded")
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
		}
	}

	results := make([]availability.RoomResult, len(rooms))
	for i, rm := range rooms {
		if s.failure != nil {
			results[i] = availability.NewFailure(rm, s.failure)
			continue
		}
		open := true
		if s.open != nil {
			open = s.open[rm.BizItemID]
		}
		slots := make(map[string]availability.Tri, len(hourSlots))
		for _, hs := range hourSlots {
			slots[hs] = availability.FromBool(open)
		}
		results[i] = availability.NewRecord(rm, availability.Overall(slots), slots)
	}
	return results
}

type stubCatalog struct {
	rooms []room.Detail
	err   error
}

func (c *stubCatalog) FindByCriteria(_ context.Context, _ usecase.RoomCriteria) ([]room.Detail, error) {
	return c.rooms, c.err
}

func catalogRoom(businessID, bizItemID string, price int) room.Detail {
	return room.Detail{
		Key: room.Key{
			Name:       "Room " + bizItemID,
			Branch:     "Branch " + businessID,
			BusinessID: businessID,
			BizItemID:  bizItemID,
		},
		MaxCapacity:       8,
		RecommendCapacity: 4,
		PricePerHour:      price,
		CanReserveOneHour: true,
		Lat:               37.48,
		Lng:               126.98,
	}
}

// Two stub sources behind a two-entry routing table; business "alpha" routes
// to source "a", everything else falls back to "b".
func newUseCase(adapters map[string]adapter.Source, catalog usecase.RoomCatalog, deadline time.Duration) usecase.AvailabilityUseCase {
	router := adapter.NewRouter(map[string]string{"alpha": "a"}, "b")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return usecase.NewAvailabilityUseCase(adapters, router, catalog, clock.NewFakeClock(testNow), logger, deadline)
}

func defaultParams() usecase.CheckAvailabilityParams {
	return usecase.CheckAvailabilityParams{
		Date:      "2025-06-07",
		StartHour: "14:00",
		EndHour:   "15:00",
		Capacity:  2,
		SwLat:     37.40, SwLng: 126.90,
		NeLat: 37.60, NeLng: 127.10,
	}
}

func TestCheck_MergesGroupsInSortedAdapterOrder(t *testing.T) {
	catalog := &stubCatalog{rooms: []room.Detail{
		catalogRoom("beta", "b1", 10000),
		catalogRoom("alpha", "a1", 12000),
		catalogRoom("beta", "b2", 8000),
	}}
	adapters := map[string]adapter.Source{"a": &stubSource{}, "b": &stubSource{}}

	view, err := newUseCase(adapters, catalog, time.Second).Check(context.Background(), defaultParams())
	require.NoError(t, err)

	// Group "a" first, then group "b" in catalog order.
	require.Len(t, view.Results, 3)
	assert.Equal(t, "a1", view.Results[0].Room.BizItemID)
	assert.Equal(t, "b1", view.Results[1].Room.BizItemID)
	assert.Equal(t, "b2", view.Results[2].Room.BizItemID)

	assert.Equal(t, []string{"14:00", "15:00"}, view.HourSlots)
	assert.Equal(t, []string{"a1", "b1", "b2"}, view.AvailableBizItemIDs)
}

func TestCheck_FailingAdapterOnlyExcludesItsOwnRooms(t *testing.T) {
	catalog := &stubCatalog{rooms: []room.Detail{
		catalogRoom("alpha", "a1", 10000),
		catalogRoom("beta", "b1", 10000),
	}}
	adapters := map[string]adapter.Source{
		"a": &stubSource{failure: availability.NewSourceError(availability.CodeUpstream, http.StatusBadGateway, "source down", nil)},
		"b": &stubSource{},
	}

	view, err := newUseCase(adapters, catalog, time.Second).Check(context.Background(), defaultParams())
	require.NoError(t, err)

	require.Len(t, view.Results, 1)
	assert.Equal(t, "b1", view.Results[0].Room.BizItemID)
}

func TestCheck_PanickingAdapterIsIsolated(t *testing.T) {
	catalog := &stubCatalog{rooms: []room.Detail{
		catalogRoom("alpha", "a1", 10000),
		catalogRoom("beta", "b1", 10000),
	}}
	adapters := map[string]adapter.Source{
		"a": &stubSource{panics: true},
		"b": &stubSource{},
	}

	view, err := newUseCase(adapters, catalog, time.Second).Check(context.Background(), defaultParams())
	require.NoError(t, err)

	require.Len(t, view.Results, 1)
	assert.Equal(t, "b1", view.Results[0].Room.BizItemID)
}

func TestCheck_UnregisteredAdapterNameIsIsolated(t *testing.T) {
	catalog := &stubCatalog{rooms: []room.Detail{
		catalogRoom("alpha", "a1", 10000),
		catalogRoom("beta", "b1", 10000),
	}}
	// Only "b" is registered; group "a" becomes a failure group.
	adapters := map[string]adapter.Source{"b": &stubSource{}}

	view, err := newUseCase(adapters, catalog, time.Second).Check(context.Background(), defaultParams())
	require.NoError(t, err)

	require.Len(t, view.Results, 1)
	assert.Equal(t, "b1", view.Results[0].Room.BizItemID)
}

func TestCheck_DeadlineExpiryFailsWholeAggregation(t *testing.T) {
	catalog := &stubCatalog{rooms: []room.Detail{
		catalogRoom("alpha", "a1", 10000),
		catalogRoom("beta", "b1", 10000),
	}}
	adapters := map[string]adapter.Source{
		"a": &stubSource{},
		"b": &stubSource{delay: 500 * time.Millisecond},
	}

	view, err := newUseCase(adapters, catalog, 50*time.Millisecond).Check(context.Background(), defaultParams())

	assert.ErrorIs(t, err, usecase.ErrAggregationTimeout)
	assert.Nil(t, view, "no partial results on timeout")
}

func TestCheck_EstimatedPriceOnlyForBookableRooms(t *testing.T) {
	bookable := catalogRoom("beta", "b1", 10000)
	taken := catalogRoom("beta", "b2", 10000)

	catalog := &stubCatalog{rooms: []room.Detail{bookable, taken}}
	adapters := map[string]adapter.Source{
		"b": &stubSource{open: map[string]bool{"b1": true, "b2": false}},
	}

	view, err := newUseCase(adapters, catalog, time.Second).Check(context.Background(), defaultParams())
	require.NoError(t, err)

	require.Len(t, view.Results, 2)
	require.NotNil(t, view.Results[0].EstimatedPrice)
	// Two slots book the half-open interval 14:00-16:00.
	assert.Equal(t, 20000, *view.Results[0].EstimatedPrice)
	assert.Nil(t, view.Results[1].EstimatedPrice)

	assert.Equal(t, []string{"b1"}, view.AvailableBizItemIDs)
}

func TestCheck_PolicyWarnings(t *testing.T) {
	needsCall := catalogRoom("beta", "b1", 10000)
	needsCall.CanReserveOneHour = false
	needsCall.RequiresCallOnSameDay = true

	catalog := &stubCatalog{rooms: []room.Detail{needsCall}}
	adapters := map[string]adapter.Source{"b": &stubSource{}}

	params := defaultParams()
	params.Date = testNow.Format(booking.DateLayout)
	params.StartHour = "14:00"
	params.EndHour = "14:00"

	view, err := newUseCase(adapters, catalog, time.Second).Check(context.Background(), params)
	require.NoError(t, err)

	require.Len(t, view.Results, 1)
	types := make([]string, 0, 2)
	for _, w := range view.Results[0].PolicyWarnings {
		types = append(types, w.Type)
	}
	assert.Contains(t, types, usecase.WarningCallRequiredOneHour)
	assert.Contains(t, types, usecase.WarningCallRequiredToday)
}

func TestCheck_BranchSummary(t *testing.T) {
	catalog := &stubCatalog{rooms: []room.Detail{
		catalogRoom("beta", "b1", 12000),
		catalogRoom("beta", "b2", 8000),
		catalogRoom("beta", "b3", 15000),
	}}
	adapters := map[string]adapter.Source{
		"b": &stubSource{open: map[string]bool{"b1": true, "b2": true, "b3": false}},
	}

	view, err := newUseCase(adapters, catalog, time.Second).Check(context.Background(), defaultParams())
	require.NoError(t, err)

	stats, ok := view.BranchSummary["beta"]
	require.True(t, ok)
	assert.Equal(t, 2, stats.AvailableCount, "only bookable rooms count")
	assert.Equal(t, 8000, stats.MinPrice)
	assert.Equal(t, 37.48, stats.Lat)
}

func TestCheck_ValidationFailuresSkipFanOut(t *testing.T) {
	catalog := &stubCatalog{rooms: []room.Detail{catalogRoom("beta", "b1", 10000)}}
	adapters := map[string]adapter.Source{"b": &stubSource{}}
	uc := newUseCase(adapters, catalog, time.Second)

	testCases := []struct {
		name      string
		mutate    func(*usecase.CheckAvailabilityParams)
		expectErr error
	}{
		{name: "bad date", mutate: func(p *usecase.CheckAvailabilityParams) { p.Date = "07-06-2025" }, expectErr: booking.ErrInvalidDate},
		{name: "bad hours", mutate: func(p *usecase.CheckAvailabilityParams) { p.StartHour = "2pm" }, expectErr: booking.ErrInvalidHourSlot},
		{name: "inverted range", mutate: func(p *usecase.CheckAvailabilityParams) { p.StartHour, p.EndHour = "16:00", "14:00" }, expectErr: booking.ErrInvalidTimeRange},
		{name: "same-day past slot", mutate: func(p *usecase.CheckAvailabilityParams) {
			p.Date = testNow.Format(booking.DateLayout)
			p.StartHour, p.EndHour = "08:00", "09:00"
		}, expectErr: booking.ErrPastHourSlot},
		{name: "inverted bounds", mutate: func(p *usecase.CheckAvailabilityParams) { p.SwLat, p.NeLat = p.NeLat, p.SwLat }, expectErr: booking.ErrInvalidMapBounds},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params := defaultParams()
			tc.mutate(&params)
			_, err := uc.Check(context.Background(), params)
			assert.ErrorIs(t, err, tc.expectErr)
		})
	}
}

func TestCheck_EmptyCatalogIsBusinessError(t *testing.T) {
	uc := newUseCase(map[string]adapter.Source{"b": &stubSource{}}, &stubCatalog{}, time.Second)

	_, err := uc.Check(context.Background(), defaultParams())
	assert.ErrorIs(t, err, booking.ErrEmptyRoomList)
}

func TestCheck_CatalogFailure(t *testing.T) {
	uc := newUseCase(map[string]adapter.Source{"b": &stubSource{}}, &stubCatalog{err: assert.AnError}, time.Second)

	_, err := uc.Check(context.Background(), defaultParams())
	assert.ErrorIs(t, err, usecase.ErrCatalogLookupFailed)
}

func TestCheck_UnknownAvailabilityCountsAsBookable(t *testing.T) {
	rm := catalogRoom("beta", "b1", 10000)
	catalog := &stubCatalog{rooms: []room.Detail{rm}}

	unknownSource := &stubSourceUnknown{}
	view, err := newUseCase(map[string]adapter.Source{"b": unknownSource}, catalog, time.Second).Check(context.Background(), defaultParams())
	require.NoError(t, err)

	require.Len(t, view.Results, 1)
	assert.Equal(t, availability.Unknown, view.Results[0].Available)
	assert.Nil(t, view.Results[0].EstimatedPrice, "no estimate without a confirmed opening")
	assert.Equal(t, []string{"b1"}, view.AvailableBizItemIDs)
	assert.Equal(t, 1, view.BranchSummary["beta"].AvailableCount)
}

type stubSourceUnknown struct{}

func (s *stubSourceUnknown) CheckAvailability(_ context.Context, _ string, hourSlots []string, rooms []room.Detail) []availability.RoomResult {
	results := make([]availability.RoomResult, len(rooms))
	for i, rm := range rooms {
		results[i] = availability.NewUnknownRecord(rm, hourSlots)
	}
	return results
}
