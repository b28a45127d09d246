package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"roomscout/internal/adapter"
	"roomscout/internal/domain/availability"
	"roomscout/internal/domain/booking"
	"roomscout/internal/domain/pricing"
	"roomscout/internal/domain/room"
	"roomscout/internal/pkg/clock"
	"roomscout/internal/pkg/errs"
)

var (
	ErrAggregationTimeout  = errs.New("availability aggregation deadline exceeded")
	ErrCatalogLookupFailed = errs.New("room catalog lookup failed")
)

const (
	WarningCallRequiredOneHour = "call_required_1h"
	WarningCallRequiredToday   = "call_required_today"
)

type RoomCriteria struct {
	Capacity int
	SwLat    float64
	SwLng    float64
	NeLat    float64
	NeLng    float64
}

// RoomCatalog is the read-only room metadata lookup keyed by capacity and
// map bounds; ownership of the data lives outside this service.
type RoomCatalog interface {
	FindByCriteria(ctx context.Context, criteria RoomCriteria) ([]room.Detail, error)
}

type CheckAvailabilityParams struct {
	Date      string
	StartHour string
	EndHour   string
	Capacity  int
	SwLat     float64
	SwLng     float64
	NeLat     float64
	NeLng     float64
}

type AvailabilityUseCase interface {
	Check(ctx context.Context, params CheckAvailabilityParams) (*CheckAvailabilityView, error)
}

type availabilityUseCaseImpl struct {
	adapters map[string]adapter.Source
	router   *adapter.Router
	catalog  RoomCatalog
	clock    clock.Clock
	logger   *slog.Logger
	deadline time.Duration
}

// NewAvailabilityUseCase receives its adapter map explicitly; there is no
// process-wide adapter registry.
func NewAvailabilityUseCase(
	adapters map[string]adapter.Source,
	router *adapter.Router,
	catalog RoomCatalog,
	clk clock.Clock,
	logger *slog.Logger,
	deadline time.Duration,
) AvailabilityUseCase {
	return &availabilityUseCaseImpl{
		adapters: adapters,
		router:   router,
		catalog:  catalog,
		clock:    clk,
		logger:   logger,
		deadline: deadline,
	}
}

func (u *availabilityUseCaseImpl) Check(ctx context.Context, params CheckAvailabilityParams) (*CheckAvailabilityView, error) {
	hourSlots, err := booking.HourSlots(params.StartHour, params.EndHour)
	if err != nil {
		return nil, err
	}
	if err := booking.ValidateBounds(params.SwLat, params.SwLng, params.NeLat, params.NeLng); err != nil {
		return nil, err
	}

	rooms, err := u.catalog.FindByCriteria(ctx, RoomCriteria{
		Capacity: params.Capacity,
		SwLat:    params.SwLat,
		SwLng:    params.SwLng,
		NeLat:    params.NeLat,
		NeLng:    params.NeLng,
	})
	if err != nil {
		return nil, errs.Mark(err, ErrCatalogLookupFailed)
	}

	now := u.clock.Now()
	if err := booking.ValidateRequest(params.Date, hourSlots, rooms, now); err != nil {
		return nil, err
	}

	results, err := u.fanOut(ctx, params.Date, hourSlots, rooms)
	if err != nil {
		return nil, err
	}

	successes := u.logAndExcludeFailures(results, params.Date)

	return u.buildView(params, hourSlots, successes, now), nil
}

type groupOutcome struct {
	name    string
	results []availability.RoomResult
}

// fanOut launches one concurrent unit per non-empty adapter partition under
// a single deadline. Any panic while obtaining a group's results is captured
// as per-room failure values so one malfunctioning adapter never aborts its
// siblings. On deadline expiry the whole aggregation fails; still-running
// units are abandoned and their eventual sends land in the buffered channel
// to be garbage collected.
func (u *availabilityUseCaseImpl) fanOut(ctx context.Context, date string, hourSlots []string, rooms []room.Detail) ([]availability.RoomResult, error) {
	groups := u.router.PartitionAll(rooms)

	ctx, cancel := context.WithTimeout(ctx, u.deadline)
	defer cancel()

	outcomes := make(chan groupOutcome, len(groups))
	var wg sync.WaitGroup

	for name, group := range groups {
		src, ok := u.adapters[name]
		if !ok {
			outcomes <- groupOutcome{name, failGroup(group, availability.NewSourceError(
				availability.CodeInternal, http.StatusInternalServerError,
				fmt.Sprintf("no adapter registered for %q", name), nil))}
			continue
		}

		wg.Add(1)
		go func(name string, src adapter.Source, group []room.Detail) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					outcomes <- groupOutcome{name, failGroup(group, availability.NewSourceError(
						availability.CodeInternal, http.StatusInternalServerError,
						fmt.Sprintf("%s adapter panicked: %v", name, rec), nil))}
				}
			}()
			outcomes <- groupOutcome{name, src.CheckAvailability(ctx, date, hourSlots, group)}
		}(name, src, group)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return nil, ErrAggregationTimeout
	}

	collected := make(map[string][]availability.RoomResult, len(groups))
	for i := 0; i < len(groups); i++ {
		outcome := <-outcomes
		collected[outcome.name] = outcome.results
	}

	// Adapters complete in no particular order; flattening by sorted name
	// keeps the response position-stable for identical input while
	// preserving each group's input room order.
	names := make([]string, 0, len(collected))
	for name := range collected {
		names = append(names, name)
	}
	sort.Strings(names)

	var all []availability.RoomResult
	for _, name := range names {
		all = append(all, collected[name]...)
	}
	return all, nil
}

// logAndExcludeFailures drops failed per-room results from the aggregation,
// recording every exclusion: expected source failures at warning level with
// their code, unexpected ones at error level with full detail. Failures are
// never surfaced to the caller as partial data.
func (u *availabilityUseCaseImpl) logAndExcludeFailures(results []availability.RoomResult, dateContext string) []availability.RoomResult {
	successes := make([]availability.RoomResult, 0, len(results))
	for _, res := range results {
		if !res.Failed() {
			successes = append(successes, res)
			continue
		}

		srcErr := res.Err
		if srcErr.Code == availability.CodeInternal {
			u.logger.Error("unexpected source failure",
				slog.String("date", dateContext),
				slog.Int("status", srcErr.Status),
				slog.String("errorCode", string(srcErr.Code)),
				slog.String("message", srcErr.Message),
				slog.Any("detail", errs.ExtractStackLines(srcErr, 10)),
			)
			continue
		}
		u.logger.Warn("source failure excluded from aggregation",
			slog.String("date", dateContext),
			slog.Int("status", srcErr.Status),
			slog.String("errorCode", string(srcErr.Code)),
			slog.String("message", srcErr.Message),
		)
	}
	return successes
}

func (u *availabilityUseCaseImpl) buildView(
	params CheckAvailabilityParams,
	hourSlots []string,
	successes []availability.RoomResult,
	now time.Time,
) *CheckAvailabilityView {
	view := &CheckAvailabilityView{
		Date:                params.Date,
		HourSlots:           hourSlots,
		AvailableBizItemIDs: []string{},
		Results:             make([]RoomAvailabilityView, 0, len(successes)),
		BranchSummary:       map[string]BranchStats{},
	}

	sameDay := params.Date == now.Format(booking.DateLayout)

	for _, res := range successes {
		rm := res.Room
		rv := RoomAvailabilityView{
			Room: RoomView{
				Name:              rm.Name,
				Branch:            rm.Branch,
				BusinessID:        rm.BusinessID,
				BizItemID:         rm.BizItemID,
				ImageURLs:         rm.ImageURLs,
				MaxCapacity:       rm.MaxCapacity,
				RecommendCapacity: rm.RecommendCapacity,
				PricePerHour:      rm.PricePerHour,
				Lat:               rm.Lat,
				Lng:               rm.Lng,
			},
			Available:      res.Available,
			Slots:          res.Slots,
			PolicyWarnings: u.policyWarnings(rm, hourSlots, sameDay),
		}

		if res.Available == availability.Yes {
			rv.EstimatedPrice = u.estimatePrice(params, hourSlots, rm, now)
		}

		view.Results = append(view.Results, rv)

		if res.Available == availability.Yes || res.Available == availability.Unknown {
			view.AvailableBizItemIDs = append(view.AvailableBizItemIDs, rm.BizItemID)
			mergeBranchStats(view.BranchSummary, rm)
		}
	}

	return view
}

// policyWarnings derives call-required notices from static room metadata,
// independent of what any source adapter answered.
func (u *availabilityUseCaseImpl) policyWarnings(rm room.Detail, hourSlots []string, sameDay bool) []PolicyWarning {
	var warnings []PolicyWarning
	if len(hourSlots) == 1 && !rm.CanReserveOneHour {
		warnings = append(warnings, PolicyWarning{
			Type:    WarningCallRequiredOneHour,
			Message: "Single-hour bookings at this studio require a phone call.",
		})
	}
	if sameDay && rm.RequiresCallOnSameDay {
		warnings = append(warnings, PolicyWarning{
			Type:    WarningCallRequiredToday,
			Message: "Same-day bookings at this studio require a phone call.",
		})
	}
	return warnings
}

// estimatePrice attaches the split-and-sum estimate. A pricing failure
// (corrupt rule metadata and the like) degrades to an absent price on this
// one room instead of failing the whole call.
func (u *availabilityUseCaseImpl) estimatePrice(params CheckAvailabilityParams, hourSlots []string, rm room.Detail, now time.Time) *int {
	start, end, err := booking.Interval(params.Date, hourSlots, now.Location())
	if err != nil {
		u.logger.Warn("price estimation skipped",
			slog.String("room", rm.Name), slog.String("error", err.Error()))
		return nil
	}

	price, err := pricing.CalculateTotalPrice(
		rm.PricePerHour, rm.PriceRules, rm.BaseCapacity, rm.ExtraCharge,
		start, end, params.Capacity,
	)
	if err != nil {
		u.logger.Warn("price estimation failed",
			slog.String("room", rm.Name), slog.String("error", err.Error()))
		return nil
	}
	return &price
}

func mergeBranchStats(summary map[string]BranchStats, rm room.Detail) {
	stats, ok := summary[rm.BusinessID]
	if !ok {
		summary[rm.BusinessID] = BranchStats{
			MinPrice:       rm.PricePerHour,
			AvailableCount: 1,
			Lat:            rm.Lat,
			Lng:            rm.Lng,
		}
		return
	}

	stats.AvailableCount++
	if rm.PricePerHour < stats.MinPrice {
		stats.MinPrice = rm.PricePerHour
	}
	summary[rm.BusinessID] = stats
}

func failGroup(group []room.Detail, srcErr *availability.SourceError) []availability.RoomResult {
	results := make([]availability.RoomResult, len(group))
	for i, rm := range group {
		results[i] = availability.NewFailure(rm, srcErr)
	}
	return results
}
