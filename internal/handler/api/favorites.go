package api

import (
	"net/http"

	resdto "roomscout/internal/handler/dto/response"
	"roomscout/internal/handler/httperr"
	"roomscout/internal/handler/middleware"
	"roomscout/internal/pkg/errs"
	"roomscout/internal/usecase"

	"github.com/gin-gonic/gin"
)

var errNoDeviceContext = errs.New("device id missing from request context")

type FavoritesHandler struct {
	uc usecase.FavoritesUseCase
}

func NewFavoritesHandler(uc usecase.FavoritesUseCase) *FavoritesHandler {
	return &FavoritesHandler{uc: uc}
}

// @Summary Save favorite
// @Description Mark a room as favorite for the calling device
// @Tags favorites
// @Produce json
// @Param X-Device-Id header string true "Device identifier"
// @Param businessId path string true "Business ID"
// @Param bizItemId path string true "Biz item ID"
// @Success 200 {object} map[string]bool
// @Success 201 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /favorites/{businessId}/{bizItemId} [put]
func (h *FavoritesHandler) Save(c *gin.Context) {
	deviceID, ok := middleware.GetDeviceID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errNoDeviceContext, "VALIDATION-001", "X-Device-Id header is required", nil)
		return
	}

	created, err := h.uc.Save(c.Request.Context(), deviceID, c.Param("businessId"), c.Param("bizItemId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "COMMON-001", "Failed to save favorite", nil)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"created": created})
}

// @Summary Remove favorite
// @Description Remove a room from the calling device's favorites
// @Tags favorites
// @Param X-Device-Id header string true "Device identifier"
// @Param businessId path string true "Business ID"
// @Param bizItemId path string true "Biz item ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Router /favorites/{businessId}/{bizItemId} [delete]
func (h *FavoritesHandler) Delete(c *gin.Context) {
	deviceID, ok := middleware.GetDeviceID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errNoDeviceContext, "VALIDATION-001", "X-Device-Id header is required", nil)
		return
	}

	if err := h.uc.Delete(c.Request.Context(), deviceID, c.Param("businessId"), c.Param("bizItemId")); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "COMMON-001", "Failed to delete favorite", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List favorites
// @Description List the calling device's favorite rooms
// @Tags favorites
// @Produce json
// @Param X-Device-Id header string true "Device identifier"
// @Success 200 {object} resdto.FavoriteListResponse
// @Failure 400 {object} map[string]string
// @Router /favorites [get]
func (h *FavoritesHandler) List(c *gin.Context) {
	deviceID, ok := middleware.GetDeviceID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errNoDeviceContext, "VALIDATION-001", "X-Device-Id header is required", nil)
		return
	}

	favorites, err := h.uc.List(c.Request.Context(), deviceID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "COMMON-001", "Failed to list favorites", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromFavorites(favorites))
}
