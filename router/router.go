package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wayplan/wayplan-backend/config"
	"github.com/wayplan/wayplan-backend/handlers"
	"github.com/wayplan/wayplan-backend/middleware"
)

// Dependencies holds everything the route table needs.
type Dependencies struct {
	Config          *config.Config
	TripHandler     *handlers.TripHandler
	ActivityHandler *handlers.ActivityHandler
	ExportHandler   *handlers.ExportHandler
	ImportHandler   *handlers.ImportHandler
	CurrencyHandler *handlers.CurrencyHandler
	PlaceHandler    *handlers.PlaceHandler
	HealthHandler   *handlers.HealthHandler
}

// SetupRouter configures and returns the gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS(&deps.Config.Server))

	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		trips := v1.Group("/trips")
		{
			trips.GET("", deps.TripHandler.ListTrips)
			trips.POST("", deps.TripHandler.CreateTrip)
			trips.POST("/import", deps.ImportHandler.ImportTrip)
			trips.GET("/:id", deps.TripHandler.GetTrip)
			trips.PUT("/:id", deps.TripHandler.UpdateTrip)
			trips.DELETE("/:id", deps.TripHandler.DeleteTrip)
			trips.GET("/:id/budget", deps.TripHandler.BudgetSummary)
			trips.GET("/:id/export", deps.ExportHandler.ExportTrip)
			trips.GET("/:id/links/map", deps.ExportHandler.MapRouteLink)
			trips.GET("/:id/links/gcal", deps.ExportHandler.CalendarLink)
		}

		v1.PUT("/days/:id/note", deps.TripHandler.SetDayNote)

		activities := v1.Group("/activities")
		{
			activities.POST("", deps.ActivityHandler.CreateActivity)
			activities.PUT("/:id", deps.ActivityHandler.UpdateActivity)
			activities.DELETE("/:id", deps.ActivityHandler.DeleteActivity)
		}

		v1.GET("/currency/rates", deps.CurrencyHandler.Rates)
		v1.GET("/places/suggest", deps.PlaceHandler.Suggest)
	}

	return r
}
