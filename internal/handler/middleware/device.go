package middleware

import (
	"net/http"

	"roomscout/internal/handler/httperr"
	"roomscout/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const (
	deviceIDHeader     = "X-Device-Id"
	deviceIDContextKey = "device_id"
)

var errMissingDeviceHeader = errs.New("X-Device-Id header is required")

// RequireDeviceID identifies the caller's device for per-device features.
// Devices are anonymous; the header value is opaque to the server.
func RequireDeviceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader(deviceIDHeader)
		if deviceID == "" {
			httperr.AbortWithError(c, http.StatusBadRequest, errMissingDeviceHeader,
				"VALIDATION-001", "X-Device-Id header is required", nil)
			return
		}
		c.Set(deviceIDContextKey, deviceID)
		c.Next()
	}
}

func GetDeviceID(c *gin.Context) (string, bool) {
	v, exists := c.Get(deviceIDContextKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
