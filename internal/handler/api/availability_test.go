//go:build unit

package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"roomscout/internal/domain/booking"
	"roomscout/internal/handler/api"
	resdto "roomscout/internal/handler/dto/response"
	"roomscout/internal/usecase"
	"roomscout/tests/common/builder"
	"roomscout/tests/common/httptest"
	usecasemock "roomscout/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockUC   *usecasemock.MockAvailabilityUseCase
	handler  *api.AvailabilityHandler
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockUC = usecasemock.NewMockAvailabilityUseCase(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockUC)

	s.router.GET("/rooms/availability", s.handler.Check)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func queryURL(overrides map[string]string) string {
	params := map[string]string{
		"date":      "2025-06-07",
		"startHour": "14:00",
		"endHour":   "16:00",
		"capacity":  "2",
		"swLat":     "37.40",
		"swLng":     "126.90",
		"neLat":     "37.60",
		"neLng":     "127.10",
	}
	for k, v := range overrides {
		if v == "" {
			delete(params, k)
			continue
		}
		params[k] = v
	}

	url := "/rooms/availability?"
	for k, v := range params {
		url += fmt.Sprintf("%s=%s&", k, v)
	}
	return url[:len(url)-1]
}

func (s *AvailabilityHandlerTestSuite) TestCheck_Success() {
	hourSlots := []string{"14:00", "15:00", "16:00"}
	view := &usecase.CheckAvailabilityView{
		Date:                "2025-06-07",
		HourSlots:           hourSlots,
		AvailableBizItemIDs: []string{"101"},
		Results: []usecase.RoomAvailabilityView{
			builder.NewRoomBuilder().BuildAvailabilityView(hourSlots),
		},
		BranchSummary: map[string]usecase.BranchStats{
			"dream_sadang": {MinPrice: 12000, AvailableCount: 1, Lat: 37.4765, Lng: 126.9816},
		},
	}

	s.mockUC.EXPECT().Check(gomock.Any(), usecase.CheckAvailabilityParams{
		Date:      "2025-06-07",
		StartHour: "14:00",
		EndHour:   "16:00",
		Capacity:  2,
		SwLat:     37.40, SwLng: 126.90,
		NeLat: 37.60, NeLng: 127.10,
	}).Return(view, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, queryURL(nil), nil, "")
	s.Equal(http.StatusOK, rec.Code)

	var resp resdto.CheckAvailabilityResponse
	_ = httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
	s.Equal("2025-06-07", resp.Date)
	s.Equal(hourSlots, resp.HourSlots)
	s.Equal([]string{"101"}, resp.AvailableBizItemIDs)
	s.Require().Len(resp.Results, 1)
	s.Equal("101", resp.Results[0].Room.BizItemID)
	s.Require().NotNil(resp.Results[0].EstimatedPrice)
	s.Equal(36000, *resp.Results[0].EstimatedPrice)
	s.Equal(1, resp.BranchSummary["dream_sadang"].AvailableCount)
}

func (s *AvailabilityHandlerTestSuite) TestCheck_BindingFailures() {
	testCases := []struct {
		name     string
		override map[string]string
	}{
		{name: "missing date", override: map[string]string{"date": ""}},
		{name: "missing startHour", override: map[string]string{"startHour": ""}},
		{name: "missing bounds", override: map[string]string{"swLat": ""}},
		{name: "non-numeric capacity", override: map[string]string{"capacity": "two"}},
		{name: "zero capacity", override: map[string]string{"capacity": "0"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, queryURL(tc.override), nil, "")
			s.Equal(http.StatusBadRequest, rec.Code)
		})
	}
}

func (s *AvailabilityHandlerTestSuite) TestCheck_ValidationErrorMapsTo422() {
	s.mockUC.EXPECT().Check(gomock.Any(), gomock.Any()).Return(nil, booking.ErrPastHourSlot)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, queryURL(nil), nil, "")
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "VALIDATION-001")
}

func (s *AvailabilityHandlerTestSuite) TestCheck_TimeoutMapsTo504() {
	s.mockUC.EXPECT().Check(gomock.Any(), gomock.Any()).Return(nil, usecase.ErrAggregationTimeout)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, queryURL(nil), nil, "")
	s.Equal(http.StatusGatewayTimeout, rec.Code)
	s.Contains(rec.Body.String(), "API-001")
}

func (s *AvailabilityHandlerTestSuite) TestCheck_UnexpectedErrorMapsTo500() {
	s.mockUC.EXPECT().Check(gomock.Any(), gomock.Any()).Return(nil, usecase.ErrCatalogLookupFailed)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, queryURL(nil), nil, "")
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "COMMON-001")
}
