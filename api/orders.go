package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/okravchuk/airport-service/internal/domain"
	"github.com/okravchuk/airport-service/internal/service/booking"
)

type OrderHandler struct {
	service booking.BookingUseCase
}

func NewOrderHandler(service booking.BookingUseCase) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.POST("/", Authorize("orders", ActionCreate), h.create)
	router.GET("/", Authorize("orders", ActionList), h.list)
}

type ticketRequest struct {
	Row    int   `json:"row"`
	Seat   int   `json:"seat"`
	Flight int64 `json:"flight"`
}

type createOrderRequest struct {
	Tickets []ticketRequest `json:"tickets"`
}

type ticketResponse struct {
	ID     int64               `json:"id"`
	Row    int                 `json:"row"`
	Seat   int                 `json:"seat"`
	Flight int64               `json:"flight"`
	Detail *flightListResponse `json:"flight_detail,omitempty"`
}

type orderResponse struct {
	ID        int64            `json:"id"`
	Reference string           `json:"reference"`
	Tickets   []ticketResponse `json:"tickets"`
	CreatedAt string           `json:"created_at"`
}

type orderPageResponse struct {
	Count    int             `json:"count"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Results  []orderResponse `json:"results"`
}

func (h *OrderHandler) create(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := booking.CreateOrderInput{
		UserID:  claims.UserID,
		Tickets: make([]domain.TicketRequest, 0, len(req.Tickets)),
	}
	for _, t := range req.Tickets {
		input.Tickets = append(input.Tickets, domain.TicketRequest{FlightID: t.Flight, Row: t.Row, Seat: t.Seat})
	}

	order, err := h.service.CreateOrder(c.Request.Context(), input)
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

func (h *OrderHandler) list(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	result, err := h.service.ListOrders(c.Request.Context(), claims.UserID, page, pageSize)
	if err != nil {
		errorResponse(c, err)
		return
	}

	resp := orderPageResponse{
		Count:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
		Results:  make([]orderResponse, 0, len(result.Orders)),
	}
	for _, o := range result.Orders {
		resp.Results = append(resp.Results, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, resp)
}

func toOrderResponse(o domain.Order) orderResponse {
	resp := orderResponse{
		ID:        o.ID,
		Reference: o.Reference,
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
		Tickets:   make([]ticketResponse, 0, len(o.Tickets)),
	}
	for _, t := range o.Tickets {
		tr := ticketResponse{ID: t.ID, Row: t.Row, Seat: t.Seat, Flight: t.FlightID}
		if t.Flight != nil {
			detail := toFlightListResponse(*t.Flight)
			tr.Detail = &detail
		}
		resp.Tickets = append(resp.Tickets, tr)
	}
	return resp
}
