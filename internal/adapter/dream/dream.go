// Package dream checks availability against the Dream rehearsal studio
// booking widget: a form POST returning a JSON envelope whose "items" field
// is an HTML-escaped calendar fragment.
package dream

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"roomscout/internal/adapter"
	"roomscout/internal/adapter/httpclient"
	"roomscout/internal/domain/availability"
	"roomscout/internal/domain/room"
	"roomscout/internal/pkg/clock"
	"roomscout/internal/pkg/config"
)

const (
	CodeRequest availability.Code = "DREAM-001"
	CodeParse   availability.Code = "DREAM-002"
)

const calendarPath = "/plugin/wz.bookingT1.prm/ajax.calendar.time.php"

type Checker struct {
	client      *httpclient.Client
	clock       clock.Clock
	baseURL     string
	horizonDays int
}

func NewChecker(cfg config.DreamConfig, client *httpclient.Client, clk clock.Clock) *Checker {
	return &Checker{
		client:      client,
		clock:       clk,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		horizonDays: cfg.HorizonDays,
	}
}

func (c *Checker) CheckAvailability(ctx context.Context, date string, hourSlots []string, rooms []room.Detail) []availability.RoomResult {
	if adapter.BeyondHorizon(c.clock.Now(), date, c.horizonDays) {
		results := make([]availability.RoomResult, len(rooms))
		for i, rm := range rooms {
			results[i] = availability.NewUnknownRecord(rm, hourSlots)
		}
		return results
	}

	// One calendar call per room; indexed writes keep input order.
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

func (c *Checker) checkRoom(ctx context.Context, date string, hourSlots []string, rm room.Detail) availability.RoomResult {
	resp, err := c.client.Send(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    c.baseURL + calendarPath,
		Header: map[string]string{"User-Agent": "Mozilla/5.0"},
		Form:   calendarForm(date, rm),
	})
	if err != nil {
		return availability.NewFailure(rm, availability.NewSourceError(
			CodeRequest, http.StatusBadGateway,
			fmt.Sprintf("[%s] calendar request failed", rm.Name), err))
	}

	var payload struct {
		Items string `json:"items"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return availability.NewFailure(rm, availability.NewSourceError(
			CodeParse, http.StatusBadGateway,
			fmt.Sprintf("[%s] calendar response is not the expected JSON envelope", rm.Name), err))
	}

	slots, err := parseCalendar(html.UnescapeString(payload.Items), hourSlots)
	if err != nil {
		return availability.NewFailure(rm, availability.NewSourceError(
			CodeParse, http.StatusBadGateway,
			fmt.Sprintf("[%s] calendar fragment could not be parsed", rm.Name), err))
	}

	return availability.NewRecord(rm, availability.Overall(slots), slots)
}

// parseCalendar reads the time-table fragment: each bookable hour renders as
// a label whose title carries "HH시00분" and whose class list carries
// "active" while the slot is still open.
func parseCalendar(fragment string, hourSlots []string) (map[string]availability.Tri, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, err
	}

	slots := make(map[string]availability.Tri, len(hourSlots))
	for _, hs := range hourSlots {
		marker := strings.SplitN(hs, ":", 2)[0] + "시00분"

		open := false
		found := false
		doc.Find("label").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			title, ok := sel.Attr("title")
			if !ok || !strings.Contains(title, marker) {
				return true
			}
			found = true
			open = sel.HasClass("active")
			return false
		})

		// A missing label means the hour is not offered on that date.
		slots[hs] = availability.FromBool(found && open)
	}
	return slots, nil
}

func calendarForm(date string, rm room.Detail) map[string][]string {
	return map[string][]string{
		"rm_ix":    {rm.BizItemID},
		"sch_date": {date},
	}
}
