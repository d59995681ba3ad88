// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/http/handlers"
	"rideshare/internal/http/middleware"
	"rideshare/internal/modules/dispatch"
)

type RouterDeps struct {
	Dispatch    *dispatch.Service
	CORSOrigins []string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(), middleware.Recovery())
	if len(deps.CORSOrigins) > 0 {
		r.Use(middleware.CORS(deps.CORSOrigins))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")

	driverHandler := handlers.NewDriverHandler(deps.Dispatch)
	api.GET("/drivers/available", driverHandler.Available)
	api.GET("/drivers/:id", driverHandler.Get)

	passengerHandler := handlers.NewPassengerHandler(deps.Dispatch)
	api.GET("/passengers/:id", passengerHandler.Get)

	tripHandler := handlers.NewTripHandler(deps.Dispatch)
	api.POST("/trips", tripHandler.Request)
	api.GET("/trips/:id", tripHandler.Get)
	api.POST("/trips/:id/complete", tripHandler.Complete)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found", "path": c.Request.URL.Path})
	})
	return r
}
