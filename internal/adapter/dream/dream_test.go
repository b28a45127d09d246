//go:build unit

package dream_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roomscout/internal/adapter/dream"
	"roomscout/internal/adapter/httpclient"
	"roomscout/internal/domain/availability"
	"roomscout/internal/domain/room"
	"roomscout/internal/pkg/clock"
	"roomscout/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 6, 10, 0, 0, 0, time.UTC)

func newChecker(baseURL string) *dream.Checker {
	cfg := config.DreamConfig{BaseURL: baseURL, HorizonDays: 121}
	client := httpclient.NewWithHTTPClient(&http.Client{Timeout: time.Second}, 0, time.Millisecond)
	return dream.NewChecker(cfg, client, clock.NewFakeClock(testNow))
}

func dreamRoom(bizItemID string) room.Detail {
	return room.Detail{Key: room.Key{
		Name:       "Dream " + bizItemID,
		Branch:     "Sadang",
		BusinessID: "dream_sadang",
		BizItemID:  bizItemID,
	}}
}

func calendarFragment() string {
	return `<div class="time_table">` +
		`<label title="14시00분" class="time active">14:00</label>` +
		`<label title="15시00분" class="time">15:00</label>` +
		`</div>`
}

func TestCheckAvailability_ParsesCalendar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "101", r.PostFormValue("rm_ix"))
		assert.Equal(t, "2025-06-07", r.PostFormValue("sch_date"))

		_ = json.NewEncoder(w).Encode(map[string]string{"items": calendarFragment()})
	}))
	defer srv.Close()

	results := newChecker(srv.URL).CheckAvailability(context.Background(), "2025-06-07", []string{"14:00", "15:00", "16:00"}, []room.Detail{dreamRoom("101")})

	require.Len(t, results, 1)
	res := results[0]
	require.False(t, res.Failed())
	assert.Equal(t, availability.Yes, res.Slots["14:00"], "active label is open")
	assert.Equal(t, availability.No, res.Slots["15:00"], "inactive label is taken")
	assert.Equal(t, availability.No, res.Slots["16:00"], "missing label is not offered")
	assert.Equal(t, availability.No, res.Available)
}

func TestCheckAvailability_BeyondHorizonIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for dates beyond the booking horizon")
	}))
	defer srv.Close()

	farDate := testNow.AddDate(0, 0, 200).Format("2006-01-02")
	results := newChecker(srv.URL).CheckAvailability(context.Background(), farDate, []string{"14:00"}, []room.Detail{dreamRoom("101"), dreamRoom("102")})

	require.Len(t, results, 2)
	for _, res := range results {
		assert.False(t, res.Failed())
		assert.Equal(t, availability.Unknown, res.Available)
		assert.Equal(t, availability.Unknown, res.Slots["14:00"])
	}
}

func TestCheckAvailability_RequestFailureIsPerRoomValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	results := newChecker(srv.URL).CheckAvailability(context.Background(), "2025-06-07", []string{"14:00"}, []room.Detail{dreamRoom("101")})

	require.Len(t, results, 1)
	require.True(t, results[0].Failed())
	assert.Equal(t, dream.CodeRequest, results[0].Err.Code)
}

func TestCheckAvailability_BadEnvelopeIsParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	results := newChecker(srv.URL).CheckAvailability(context.Background(), "2025-06-07", []string{"14:00"}, []room.Detail{dreamRoom("101")})

	require.Len(t, results, 1)
	require.True(t, results[0].Failed())
	assert.Equal(t, dream.CodeParse, results[0].Err.Code)
}

func TestCheckAvailability_KeepsInputOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"items": calendarFragment()})
	}))
	defer srv.Close()

	rooms := []room.Detail{dreamRoom("103"), dreamRoom("101"), dreamRoom("102")}
	results := newChecker(srv.URL).CheckAvailability(context.Background(), "2025-06-07", []string{"14:00"}, rooms)

	require.Len(t, results, 3)
	for i, rm := range rooms {
		assert.Equal(t, rm.BizItemID, results[i].Room.BizItemID)
	}
}
