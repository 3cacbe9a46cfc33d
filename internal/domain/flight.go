package domain

import "time"

type Flight struct {
	ID            int64
	RouteID       int64
	AirplaneID    int64
	DepartureTime time.Time
	ArrivalTime   time.Time
	CrewIDs       []int64
}

// FlightTime is derived from the stored timestamps.
func (f Flight) FlightTime() time.Duration {
	return f.ArrivalTime.Sub(f.DepartureTime)
}

func (f Flight) Validate() error {
	if !f.ArrivalTime.After(f.DepartureTime) {
		return &FieldError{Field: "arrival_time", Message: "must be after departure_time"}
	}
	return nil
}

// FlightListing is the read model for flight lists. TicketsAvailable and
// NumberOfCrew are counted against committed state at query time.
type FlightListing struct {
	ID               int64
	Route            Route
	DepartureTime    time.Time
	ArrivalTime      time.Time
	AirplaneName     string
	AirplaneCapacity int
	TicketsAvailable int
	NumberOfCrew     int
}

// SeatRef identifies one occupied place on a flight.
type SeatRef struct {
	Row  int
	Seat int
}

// FlightDetail is the read model for a single flight, including the full
// seat occupancy so clients can render a seat map.
type FlightDetail struct {
	ID            int64
	Route         Route
	DepartureTime time.Time
	ArrivalTime   time.Time
	Airplane      Airplane
	TakenPlaces   []SeatRef
	Crew          []Crew
}
