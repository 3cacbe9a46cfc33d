package domain

import "time"

// TicketRequest is one desired seat in an order submission.
type TicketRequest struct {
	FlightID int64
	Row      int
	Seat     int
}

type Ticket struct {
	ID       int64
	Row      int
	Seat     int
	FlightID int64
	OrderID  int64
	// Flight summary for receipt display. Populated on reads only.
	Flight *FlightListing
}

// Order owns its tickets: they are created with it in one transaction and
// deleted with it.
type Order struct {
	ID        int64
	UserID    int64
	Reference string
	CreatedAt time.Time
	Tickets   []Ticket
}

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
