package request

// CheckAvailabilityRequest binds the availability query string. Detailed
// validation of dates and hour slots happens in the usecase; binding only
// rejects missing or non-numeric values.
type CheckAvailabilityRequest struct {
	Date      string  `form:"date" binding:"required"`
	StartHour string  `form:"startHour" binding:"required"`
	EndHour   string  `form:"endHour" binding:"required"`
	Capacity  int     `form:"capacity,default=1" binding:"min=1"`
	SwLat     float64 `form:"swLat" binding:"required"`
	SwLng     float64 `form:"swLng" binding:"required"`
	NeLat     float64 `form:"neLat" binding:"required"`
	NeLng     float64 `form:"neLng" binding:"required"`
}
