package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when the requested row does not
// exist. Handlers translate it into a 404.
var ErrNotFound = errors.New("not found")

// ErrInvalidRoute is returned when a route's source and destination airport
// are the same.
var ErrInvalidRoute = errors.New("route source and destination must differ")

// ErrEmptyOrder is returned when an order request carries no tickets.
var ErrEmptyOrder = errors.New("order must contain at least one ticket")

// SeatRangeError reports a (row, seat) coordinate outside the airplane's
// physical geometry. Field is "row" or "seat"; Max is the upper bound of the
// valid 1..Max range so callers can build an actionable message.
type SeatRangeError struct {
	Field string
	Value int
	Max   int
}

func (e *SeatRangeError) Error() string {
	return fmt.Sprintf("%s %d is out of range [1..%d]", e.Field, e.Value, e.Max)
}

// DuplicateSeatError reports the same seat requested twice within one order
// submission.
type DuplicateSeatError struct {
	FlightID int64
	Row      int
	Seat     int
}

func (e *DuplicateSeatError) Error() string {
	return fmt.Sprintf("seat (row %d, seat %d) on flight %d requested more than once", e.Row, e.Seat, e.FlightID)
}

// SeatTakenError reports a commit-time conflict: another order already holds
// the seat. It is raised by the order repository when the unique index on
// (flight_id, row, seat) rejects the insert.
type SeatTakenError struct {
	FlightID int64
	Row      int
	Seat     int
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("seat (row %d, seat %d) on flight %d is already taken", e.Row, e.Seat, e.FlightID)
}
