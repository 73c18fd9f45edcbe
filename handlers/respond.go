package handlers

import (
	"net/http"

	"clipbook/services/calendar"

	"github.com/gin-gonic/gin"
)

// respondError maps calendar error codes onto HTTP statuses. Unknown errors
// fall through to a 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	code := calendar.ErrorCode(err)
	switch code {
	case calendar.CodeSlotUnavailable, calendar.CodeDayHasAppointments:
		c.JSON(http.StatusConflict, gin.H{"error": code, "message": err.Error()})
	case calendar.CodeResourceNotFound, calendar.CodeServiceNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": code, "message": err.Error()})
	case calendar.CodeStoreUnavailable:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": code, "message": "temporary storage failure, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "unexpected error"})
	}
}
