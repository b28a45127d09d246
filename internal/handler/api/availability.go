package api

import (
	"errors"
	"net/http"

	reqdto "roomscout/internal/handler/dto/request"
	resdto "roomscout/internal/handler/dto/response"
	"roomscout/internal/handler/httperr"
	"roomscout/internal/usecase"

	"roomscout/internal/domain/booking"
	"roomscout/internal/domain/room"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	uc usecase.AvailabilityUseCase
}

func NewAvailabilityHandler(uc usecase.AvailabilityUseCase) *AvailabilityHandler {
	return &AvailabilityHandler{uc: uc}
}

// @Summary Check room availability
// @Description Aggregate availability across all booking sources for rooms matching the search criteria
// @Tags rooms
// @Produce json
// @Param date query string true "Target date (YYYY-MM-DD)"
// @Param startHour query string true "First hour slot (HH:MM)"
// @Param endHour query string true "Last hour slot (HH:MM)"
// @Param capacity query int false "Number of people (default 1)"
// @Param swLat query number true "South-west latitude of the map bounds"
// @Param swLng query number true "South-west longitude of the map bounds"
// @Param neLat query number true "North-east latitude of the map bounds"
// @Param neLng query number true "North-east longitude of the map bounds"
// @Success 200 {object} resdto.CheckAvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 504 {object} map[string]string
// @Router /rooms/availability [get]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	var req reqdto.CheckAvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION-001", "Invalid request", nil)
		return
	}

	view, err := h.uc.Check(c.Request.Context(), usecase.CheckAvailabilityParams{
		Date:      req.Date,
		StartHour: req.StartHour,
		EndHour:   req.EndHour,
		Capacity:  req.Capacity,
		SwLat:     req.SwLat,
		SwLng:     req.SwLng,
		NeLat:     req.NeLat,
		NeLng:     req.NeLng,
	})
	if err != nil {
		abortCheckError(c, err)
		return
	}

	resp, err := resdto.FromCheckAvailabilityView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "COMMON-001", "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func abortCheckError(c *gin.Context, err error) {
	switch {
	case isValidationError(err):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "VALIDATION-001", err.Error(), nil)
	case errors.Is(err, usecase.ErrAggregationTimeout):
		httperr.AbortWithError(c, http.StatusGatewayTimeout, err, "API-001", "Availability sources did not respond in time", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "COMMON-001", "Internal error", nil)
	}
}

func isValidationError(err error) bool {
	validationErrs := []error{
		booking.ErrInvalidDate,
		booking.ErrInvalidHourSlot,
		booking.ErrPastHourSlot,
		booking.ErrDiscontinuousHours,
		booking.ErrEmptyRoomList,
		booking.ErrInvalidTimeRange,
		booking.ErrInvalidMapBounds,
		room.ErrMissingKeyField,
	}
	for _, target := range validationErrs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
