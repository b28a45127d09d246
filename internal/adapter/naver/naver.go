// Package naver checks availability through the Naver booking GraphQL API:
// a schedule query returning hourly stock/booking counts per unit.
package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"roomscout/internal/adapter/httpclient"
	"roomscout/internal/domain/availability"
	"roomscout/internal/domain/room"
	"roomscout/internal/pkg/config"
)

const (
	CodeRequest availability.Code = "NAVER-001"
	CodeParse   availability.Code = "NAVER-002"
)

const scheduleQuery = `
query schedule($scheduleParams: ScheduleParams) {
  schedule(input: $scheduleParams) {
    bizItemSchedule {
      hourly {
        unitStartTime
        unitStock
        unitBookingCount
      }
    }
  }
}`

type Checker struct {
	client         *httpclient.Client
	graphqlURL     string
	businessTypeID int
}

func NewChecker(cfg config.NaverConfig, client *httpclient.Client) *Checker {
	return &Checker{
		client:         client,
		graphqlURL:     cfg.GraphQLURL,
		businessTypeID: cfg.BusinessTypeID,
	}
}

func (c *Checker) CheckAvailability(ctx context.Context, date string, hourSlots []string, rooms []room.Detail) []availability.RoomResult {
	results := make([]availability.RoomResult, len(rooms))
	var wg sync.WaitGroup
	for i, rm := range rooms {
		wg.Add(1)
		go func(i int, rm room.Detail) {
			defer wg.Done()
			results[i] = c.checkRoom(ctx, date, hourSlots, rm)
		}(i, rm)
	}
	wg.Wait()
	return results
}

type scheduleVariables struct {
	ScheduleParams map[string]any `json:"scheduleParams"`
}

type scheduleResponse struct {
	Data struct {
		Schedule struct {
			BizItemSchedule struct {
				Hourly []hourlyUnit `json:"hourly"`
			} `json:"bizItemSchedule"`
		} `json:"schedule"`
	} `json:"data"`
}

type hourlyUnit struct {
	UnitStartTime    string `json:"unitStartTime"`
	UnitStock        int    `json:"unitStock"`
	UnitBookingCount int    `json:"unitBookingCount"`
}

func (c *Checker) checkRoom(ctx context.Context, date string, hourSlots []string, rm room.Detail) availability.RoomResult {
	body := map[string]any{
		"operationName": "schedule",
		"query":         scheduleQuery,
		"variables": scheduleVariables{ScheduleParams: map[string]any{
			"businessTypeId":           c.businessTypeID,
			"businessId":               rm.BusinessID,
			"bizItemId":                rm.BizItemID,
			"startDateTime":            date + "T00:00:00",
			"endDateTime":              date + "T23:59:59",
			"fixedTime":                true,
			"includesHolidaySchedules": true,
		}},
	}

	resp, err := c.client.Send(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    c.graphqlURL,
		JSON:   body,
	})
	if err != nil {
		return availability.NewFailure(rm, availability.NewSourceError(
			CodeRequest, http.StatusBadGateway,
			fmt.Sprintf("[%s] schedule query failed", rm.Name), err))
	}

	var parsed scheduleResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return availability.NewFailure(rm, availability.NewSourceError(
			CodeParse, http.StatusBadGateway,
			fmt.Sprintf("[%s] schedule response could not be parsed", rm.Name), err))
	}

	// Requested hours missing from the schedule stay unavailable.
	slots := make(map[string]availability.Tri, len(hourSlots))
	for _, hs := range hourSlots {
		slots[hs] = availability.No
	}
	for _, unit := range parsed.Data.Schedule.BizItemSchedule.Hourly {
		hm := hourMinute(unit.UnitStartTime)
		if _, requested := slots[hm]; requested {
			slots[hm] = availability.FromBool(unit.UnitBookingCount < unit.UnitStock)
		}
	}

	return availability.NewRecord(rm, availability.Overall(slots), slots)
}

// hourMinute extracts "HH:MM" from an ISO-ish "2006-01-02T15:04:05" stamp.
func hourMinute(unitStartTime string) string {
	if len(unitStartTime) < 8 {
		return ""
	}
	return unitStartTime[len(unitStartTime)-8:][:5]
}
