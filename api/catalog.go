package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/okravchuk/airport-service/internal/domain"
	"github.com/okravchuk/airport-service/internal/repository"
	"github.com/okravchuk/airport-service/internal/service/catalog"
)

type CatalogHandler struct {
	service catalog.CatalogUseCase
}

func NewCatalogHandler(service catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Register(router *gin.RouterGroup) {
	airports := router.Group("/airports")
	airports.GET("/", Authorize("airports", ActionList), h.listAirports)
	airports.POST("/", Authorize("airports", ActionCreate), h.createAirport)

	routes := router.Group("/routes")
	routes.GET("/", Authorize("routes", ActionList), h.listRoutes)
	routes.POST("/", Authorize("routes", ActionCreate), h.createRoute)

	types := router.Group("/airplane-types")
	types.GET("/", Authorize("airplane-types", ActionList), h.listAirplaneTypes)
	types.POST("/", Authorize("airplane-types", ActionCreate), h.createAirplaneType)

	airplanes := router.Group("/airplanes")
	airplanes.GET("/", Authorize("airplanes", ActionList), h.listAirplanes)
	airplanes.GET("/:id", Authorize("airplanes", ActionRetrieve), h.getAirplane)
	airplanes.POST("/", Authorize("airplanes", ActionCreate), h.createAirplane)

	crew := router.Group("/crew")
	crew.GET("/", Authorize("crew", ActionList), h.listCrew)
	crew.POST("/", Authorize("crew", ActionCreate), h.createCrew)
}

type airportResponse struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	ClosestBigCity string   `json:"closest_big_city"`
	RoutesTo       []string `json:"routes_to"`
}

type routeResponse struct {
	ID          int64  `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int    `json:"distance"`
}

type airplaneResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	AirplaneType string `json:"airplane_type"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	Capacity     int    `json:"capacity"`
}

type crewResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func (h *CatalogHandler) listAirports(c *gin.Context) {
	airports, err := h.service.ListAirports(c.Request.Context(), c.Query("closest_big_city"))
	if err != nil {
		errorResponse(c, err)
		return
	}

	resp := make([]airportResponse, 0, len(airports))
	for _, a := range airports {
		routesTo := a.RoutesTo
		if routesTo == nil {
			routesTo = []string{}
		}
		resp = append(resp, airportResponse{ID: a.ID, Name: a.Name, ClosestBigCity: a.ClosestBigCity, RoutesTo: routesTo})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) createAirport(c *gin.Context) {
	var req struct {
		Name           string `json:"name"`
		ClosestBigCity string `json:"closest_big_city"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	airport := &domain.Airport{Name: req.Name, ClosestBigCity: req.ClosestBigCity}
	if err := h.service.CreateAirport(c.Request.Context(), airport); err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, airportResponse{ID: airport.ID, Name: airport.Name, ClosestBigCity: airport.ClosestBigCity, RoutesTo: []string{}})
}

func (h *CatalogHandler) listRoutes(c *gin.Context) {
	filter := repository.RouteFilter{
		SourceID:      queryID(c, "source"),
		DestinationID: queryID(c, "destination"),
	}
	routes, err := h.service.ListRoutes(c.Request.Context(), filter)
	if err != nil {
		errorResponse(c, err)
		return
	}

	resp := make([]routeResponse, 0, len(routes))
	for _, r := range routes {
		resp = append(resp, routeResponse{ID: r.ID, Source: r.SourceName, Destination: r.DestinationName, Distance: r.Distance})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) createRoute(c *gin.Context) {
	var req struct {
		Source      int64 `json:"source"`
		Destination int64 `json:"destination"`
		Distance    int   `json:"distance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route := &domain.Route{SourceID: req.Source, DestinationID: req.Destination, Distance: req.Distance}
	if err := h.service.CreateRoute(c.Request.Context(), route); err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": route.ID, "source": route.SourceID, "destination": route.DestinationID, "distance": route.Distance})
}

func (h *CatalogHandler) listAirplaneTypes(c *gin.Context) {
	types, err := h.service.ListAirplaneTypes(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *CatalogHandler) createAirplaneType(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t := &domain.AirplaneType{Name: req.Name}
	if err := h.service.CreateAirplaneType(c.Request.Context(), t); err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": t.ID, "name": t.Name})
}

func (h *CatalogHandler) listAirplanes(c *gin.Context) {
	airplanes, err := h.service.ListAirplanes(c.Request.Context(), queryID(c, "airplane_type"))
	if err != nil {
		errorResponse(c, err)
		return
	}

	resp := make([]airplaneResponse, 0, len(airplanes))
	for _, a := range airplanes {
		resp = append(resp, toAirplaneResponse(a))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) getAirplane(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	airplane, err := h.service.GetAirplane(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, toAirplaneResponse(*airplane))
}

func (h *CatalogHandler) createAirplane(c *gin.Context) {
	var req struct {
		Name         string `json:"name"`
		AirplaneType int64  `json:"airplane_type"`
		Rows         int    `json:"rows"`
		SeatsInRow   int    `json:"seats_in_row"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	airplane := &domain.Airplane{Name: req.Name, AirplaneTypeID: req.AirplaneType, Rows: req.Rows, SeatsInRow: req.SeatsInRow}
	if err := h.service.CreateAirplane(c.Request.Context(), airplane); err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": airplane.ID, "name": airplane.Name, "rows": airplane.Rows, "seats_in_row": airplane.SeatsInRow, "capacity": airplane.Capacity()})
}

func (h *CatalogHandler) listCrew(c *gin.Context) {
	members, err := h.service.ListCrew(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}

	resp := make([]crewResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, crewResponse{ID: m.ID, FirstName: m.FirstName, LastName: m.LastName, FullName: m.FullName()})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) createCrew(c *gin.Context) {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member := &domain.Crew{FirstName: req.FirstName, LastName: req.LastName}
	if err := h.service.CreateCrew(c.Request.Context(), member); err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, crewResponse{ID: member.ID, FirstName: member.FirstName, LastName: member.LastName, FullName: member.FullName()})
}

func toAirplaneResponse(a domain.Airplane) airplaneResponse {
	return airplaneResponse{
		ID:           a.ID,
		Name:         a.Name,
		AirplaneType: a.AirplaneTypeName,
		Rows:         a.Rows,
		SeatsInRow:   a.SeatsInRow,
		Capacity:     a.Capacity(),
	}
}

func queryID(c *gin.Context, name string) int64 {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
