// Package groove checks availability against the Groove studio's
// server-rendered reservation table. The site wants a logged-in session, so
// every check logs in first, carries the session cookie to the table view,
// and reads one HTML document shared by all rooms of the branch.
package groove

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"roomscout/internal/adapter"
	"roomscout/internal/adapter/httpclient"
	"roomscout/internal/domain/availability"
	"roomscout/internal/domain/room"
	"roomscout/internal/pkg/clock"
	"roomscout/internal/pkg/config"
	"roomscout/internal/pkg/errs"
)

const (
	CodeLogin   availability.Code = "GROOVE-001"
	CodeRequest availability.Code = "GROOVE-002"
	CodeParse   availability.Code = "GROOVE-003"
)

const (
	loginPath   = "/member/login_exec.asp"
	tablePath   = "/reservation/reserve_table_view.asp"
	refererPath = "/reservation/reserve.asp"
)

type Checker struct {
	client      *httpclient.Client
	clock       clock.Clock
	baseURL     string
	loginID     string
	loginPW     string
	branchGubun string
	horizonDays int
}

func NewChecker(cfg config.GrooveConfig, client *httpclient.Client, clk clock.Clock) *Checker {
	return &Checker{
		client:      client,
		clock:       clk,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		loginID:     cfg.LoginID,
		loginPW:     cfg.LoginPW,
		branchGubun: cfg.BranchGubun,
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

	doc, srcErr := c.fetchReservationTable(ctx, date)
	if srcErr != nil {
		// The table fetch serves the whole branch; its failure is still
		// reported per room so the caller sees one entry per input room.
		results := make([]availability.RoomResult, len(rooms))
		for i, rm := range rooms {
			results[i] = availability.NewFailure(rm, srcErr)
		}
		return results
	}

	results := make([]availability.RoomResult, len(rooms))
	for i, rm := range rooms {
		results[i] = roomResult(doc, rm, hourSlots)
	}
	return results
}

func (c *Checker) fetchReservationTable(ctx context.Context, date string) (*goquery.Document, *availability.SourceError) {
	if c.loginID == "" || c.loginPW == "" {
		return nil, availability.NewSourceError(CodeLogin, http.StatusUnauthorized,
			"groove credentials are not configured", nil)
	}

	loginResp, err := c.client.Send(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    c.baseURL + loginPath,
		Form:   url.Values{"id": {c.loginID}, "pw": {c.loginPW}},
	})
	if err != nil {
		return nil, availability.NewSourceError(CodeLogin, http.StatusBadGateway,
			"groove login request failed", err)
	}

	session := loginResp.Cookies()
	if len(session) == 0 {
		return nil, availability.NewSourceError(CodeLogin, http.StatusUnauthorized,
			"groove login did not establish a session", errs.New("no session cookie in login response"))
	}

	tableResp, err := c.client.Send(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    c.baseURL + tablePath,
		Header: map[string]string{
			"X-Requested-With": "XMLHttpRequest",
			"Referer":          c.baseURL + refererPath,
		},
		Cookies: session,
		Form:    url.Values{"reserve_date": {date}, "gubun": {c.branchGubun}},
	})
	if err != nil {
		return nil, availability.NewSourceError(CodeRequest, http.StatusBadGateway,
			"groove reservation table request failed", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(tableResp.Body))
	if err != nil {
		return nil, availability.NewSourceError(CodeParse, http.StatusBadGateway,
			"groove reservation table could not be parsed", err)
	}
	return doc, nil
}

// roomResult reads the room's row out of the shared table. An hour cell
// rendered with the reserve_time_off class is still open for booking.
func roomResult(doc *goquery.Document, rm room.Detail, hourSlots []string) availability.RoomResult {
	slots := make(map[string]availability.Tri, len(hourSlots))
	for _, hs := range hourSlots {
		hour := strings.SplitN(hs, ":", 2)[0]
		hourInt := strings.TrimPrefix(hour, "0")
		selector := fmt.Sprintf("#reserve_time_%s_%s.reserve_time_off", rm.BizItemID, hourInt)
		slots[hs] = availability.FromBool(doc.Find(selector).Length() > 0)
	}
	return availability.NewRecord(rm, availability.Overall(slots), slots)
}
