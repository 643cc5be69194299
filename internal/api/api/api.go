package api

import (
	"github.com/gin-contrib/cors"
	"github.com/wb-go/wbf/ginext"

	"github.com/KantapongChamnankit/Booking/cmd/middleware"
	"github.com/KantapongChamnankit/Booking/internal/service"
)

type Routers struct {
	Service        service.Service
	AllowedOrigins []string
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())

	// The session cookie is the ownership credential, so browsers must be
	// allowed to send it cross-origin.
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = r.AllowedOrigins
	corsCfg.AllowCredentials = true
	corsCfg.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	app.Use(cors.New(corsCfg))

	apiGroup := app.Group("/api/v1")

	apiGroup.GET("/session", r.Service.Session)
	apiGroup.GET("/bookings", r.Service.ListBookings)
	apiGroup.POST("/bookings", r.Service.CreateBooking)
	apiGroup.DELETE("/bookings/:id", r.Service.DeleteBooking)
	apiGroup.POST("/cleanup", r.Service.Cleanup)
	// external cron schedulers can only do GET
	apiGroup.GET("/cleanup", r.Service.Cleanup)

	return app
}
