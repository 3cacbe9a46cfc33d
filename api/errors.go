package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okravchuk/airport-service/internal/auth"
	"github.com/okravchuk/airport-service/internal/domain"
	"github.com/okravchuk/airport-service/internal/repository"
	"github.com/okravchuk/airport-service/internal/service/booking"
)

// errorResponse translates domain and service errors into structured,
// field-addressable payloads. Booking errors carry the offending ticket
// index in the field key; seat conflicts from a concurrent booking surface
// as 409, never as a server fault.
func errorResponse(c *gin.Context, err error) {
	var ticketErr *booking.TicketError
	if errors.As(err, &ticketErr) {
		ticketErrorResponse(c, ticketErr)
		return
	}

	var fieldErr *domain.FieldError
	switch {
	case errors.Is(err, domain.ErrEmptyOrder):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"tickets": domain.ErrEmptyOrder.Error()}})
	case errors.Is(err, domain.ErrInvalidRoute):
		c.JSON(http.StatusBadRequest, gin.H{"code": "invalid_route", "errors": gin.H{"destination": domain.ErrInvalidRoute.Error()}})
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{fieldErr.Field: fieldErr.Message}})
	case errors.Is(err, repository.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email": repository.ErrEmailTaken.Error()}})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredentials.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func ticketErrorResponse(c *gin.Context, ticketErr *booking.TicketError) {
	key := fmt.Sprintf("tickets[%d]", ticketErr.Index)

	var rangeErr *domain.SeatRangeError
	if errors.As(ticketErr.Err, &rangeErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"code": rangeErr.Field + "_out_of_range",
			"errors": gin.H{
				key + "." + rangeErr.Field: fmt.Sprintf("%d is out of range [1..%d]", rangeErr.Value, rangeErr.Max),
			},
		})
		return
	}

	var dupErr *domain.DuplicateSeatError
	if errors.As(ticketErr.Err, &dupErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":   "duplicate_seat_request",
			"errors": gin.H{key: dupErr.Error()},
		})
		return
	}

	var takenErr *domain.SeatTakenError
	if errors.As(ticketErr.Err, &takenErr) {
		c.JSON(http.StatusConflict, gin.H{
			"code":   "seat_already_taken",
			"errors": gin.H{key: takenErr.Error()},
		})
		return
	}

	if errors.Is(ticketErr.Err, domain.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": gin.H{key + ".flight": "flight not found"},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": ticketErr.Error()})
}
