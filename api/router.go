package api

import (
	"github.com/gin-gonic/gin"
	"github.com/okravchuk/airport-service/internal/auth"
	"github.com/okravchuk/airport-service/internal/service/booking"
	"github.com/okravchuk/airport-service/internal/service/catalog"
	"github.com/okravchuk/airport-service/internal/service/flights"
)

// NewRouter assembles the full HTTP surface. Access rules live in the
// policy table, not in individual handlers.
func NewRouter(
	authSvc auth.AuthUseCase,
	catalogSvc catalog.CatalogUseCase,
	flightSvc flights.FlightUseCase,
	bookingSvc booking.BookingUseCase,
) *gin.Engine {
	engine := gin.Default()
	engine.Use(AuthMiddleware(authSvc))

	root := engine.Group("/api")

	NewAuthHandler(authSvc).Register(root.Group("/auth"))
	NewCatalogHandler(catalogSvc).Register(root)
	NewFlightHandler(flightSvc).Register(root.Group("/flights"))
	NewOrderHandler(bookingSvc).Register(root.Group("/orders"))

	return engine
}
