package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/okravchuk/airport-service/internal/domain"
	"github.com/okravchuk/airport-service/internal/repository"
	"github.com/okravchuk/airport-service/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", Authorize("flights", ActionList), h.list)
	router.GET("/:id", Authorize("flights", ActionRetrieve), h.get)
	router.POST("/", Authorize("flights", ActionCreate), h.create)
}

type flightListResponse struct {
	ID               int64         `json:"id"`
	Route            routeResponse `json:"route"`
	DepartureTime    string        `json:"departure_time"`
	ArrivalTime      string        `json:"arrival_time"`
	AirplaneName     string        `json:"airplane_name"`
	AirplaneCapacity int           `json:"airplane_capacity"`
	TicketsAvailable int           `json:"tickets_available"`
	NumberOfCrew     int           `json:"number_of_crew"`
}

type seatResponse struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type flightDetailResponse struct {
	ID            int64            `json:"id"`
	Route         routeResponse    `json:"route"`
	DepartureTime string           `json:"departure_time"`
	ArrivalTime   string           `json:"arrival_time"`
	FlightTime    string           `json:"flight_time"`
	Airplane      airplaneResponse `json:"airplane"`
	TakenPlaces   []seatResponse   `json:"taken_places"`
	Crew          []crewResponse   `json:"crew"`
}

func (h *FlightHandler) list(c *gin.Context) {
	filter := repository.FlightFilter{
		AirplaneID: queryID(c, "airplane"),
		RouteID:    queryID(c, "route"),
	}
	var invalid string
	filter.DepartureDate, invalid = queryDate(c, "departure_date")
	if invalid != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid})
		return
	}
	filter.ArrivalDate, invalid = queryDate(c, "arrival_date")
	if invalid != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid})
		return
	}

	listings, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		errorResponse(c, err)
		return
	}

	resp := make([]flightListResponse, 0, len(listings))
	for _, f := range listings {
		resp = append(resp, toFlightListResponse(f))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, err)
		return
	}

	taken := make([]seatResponse, 0, len(detail.TakenPlaces))
	for _, s := range detail.TakenPlaces {
		taken = append(taken, seatResponse{Row: s.Row, Seat: s.Seat})
	}
	crew := make([]crewResponse, 0, len(detail.Crew))
	for _, m := range detail.Crew {
		crew = append(crew, crewResponse{ID: m.ID, FirstName: m.FirstName, LastName: m.LastName, FullName: m.FullName()})
	}

	c.JSON(http.StatusOK, flightDetailResponse{
		ID:            detail.ID,
		Route:         routeResponse{ID: detail.Route.ID, Source: detail.Route.SourceName, Destination: detail.Route.DestinationName, Distance: detail.Route.Distance},
		DepartureTime: detail.DepartureTime.Format(time.RFC3339),
		ArrivalTime:   detail.ArrivalTime.Format(time.RFC3339),
		FlightTime:    detail.ArrivalTime.Sub(detail.DepartureTime).String(),
		Airplane:      toAirplaneResponse(detail.Airplane),
		TakenPlaces:   taken,
		Crew:          crew,
	})
}

func (h *FlightHandler) create(c *gin.Context) {
	var req struct {
		Route         int64     `json:"route"`
		Airplane      int64     `json:"airplane"`
		DepartureTime time.Time `json:"departure_time"`
		ArrivalTime   time.Time `json:"arrival_time"`
		Crew          []int64   `json:"crew"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight := &domain.Flight{
		RouteID:       req.Route,
		AirplaneID:    req.Airplane,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		CrewIDs:       req.Crew,
	}
	if err := h.service.Create(c.Request.Context(), flight); err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":             flight.ID,
		"route":          flight.RouteID,
		"airplane":       flight.AirplaneID,
		"departure_time": flight.DepartureTime.Format(time.RFC3339),
		"arrival_time":   flight.ArrivalTime.Format(time.RFC3339),
		"flight_time":    flight.FlightTime().String(),
		"crew":           flight.CrewIDs,
	})
}

func toFlightListResponse(f domain.FlightListing) flightListResponse {
	return flightListResponse{
		ID:               f.ID,
		Route:            routeResponse{ID: f.Route.ID, Source: f.Route.SourceName, Destination: f.Route.DestinationName, Distance: f.Route.Distance},
		DepartureTime:    f.DepartureTime.Format(time.RFC3339),
		ArrivalTime:      f.ArrivalTime.Format(time.RFC3339),
		AirplaneName:     f.AirplaneName,
		AirplaneCapacity: f.AirplaneCapacity,
		TicketsAvailable: f.TicketsAvailable,
		NumberOfCrew:     f.NumberOfCrew,
	}
}

// queryDate parses an optional YYYY-MM-DD query parameter. The second
// return value is an error message for malformed input.
func queryDate(c *gin.Context, name string) (*time.Time, string) {
	raw := c.Query(name)
	if raw == "" {
		return nil, ""
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, name + " must be formatted as YYYY-MM-DD"
	}
	return &t, ""
}
