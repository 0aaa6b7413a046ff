package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Auth      *AuthHandler
	Resources *ResourceHandler
	Bookings  *BookingHandler
	Aircraft  *AircraftHandler
	Fuelings  *FuelingHandler
	Invoices  *InvoiceHandler
	Messages  *MessageHandler
	Users     *UserHandler
	Verifier  TokenVerifier
}

func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h.Auth.Register(router.Group("/"))

	authorized := router.Group("/", IdentityMiddleware(h.Verifier))
	h.Resources.Register(authorized.Group("/resources"))
	h.Bookings.Register(authorized.Group("/bookings"))
	h.Aircraft.Register(authorized.Group("/aircraft"))
	h.Fuelings.Register(authorized.Group("/fuelings"))
	h.Invoices.Register(authorized.Group("/invoices"))
	h.Messages.Register(authorized.Group("/messages"))
	h.Users.Register(authorized.Group("/users"))

	me := authorized.Group("/pilots/me")
	me.GET("/bookings", h.Bookings.ListMine)
	me.GET("/aircraft", h.Aircraft.ListMine)
	me.GET("/messages", h.Messages.ListMine)

	return router
}
