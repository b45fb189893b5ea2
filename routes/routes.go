package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eshopteam/zohoserver/infrastructure"
	"github.com/eshopteam/zohoserver/internal/auth"
	"github.com/eshopteam/zohoserver/internal/middleware"
)

// SetupRoutes configures all application routes.
func SetupRoutes(router *mux.Router, c *infrastructure.Container) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging(c.Logger))

	RegisterAuthRoutes(router, c)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(auth.RequireAuth(c.AuthService))

	api.HandleFunc("/items", c.ItemHandler.ListHandler).Methods(http.MethodGet)
	api.HandleFunc("/contacts", c.ContactHandler.ListHandler).Methods(http.MethodGet)
	api.HandleFunc("/contacts", c.ContactHandler.CreateHandler).Methods(http.MethodPost)
	api.HandleFunc("/vendors", c.ContactHandler.VendorsHandler).Methods(http.MethodGet)
	api.HandleFunc("/organization", c.OrganizationHandler.DetailsHandler).Methods(http.MethodGet)
	api.HandleFunc("/sales-purchase-orders", c.OrderHandler.CreateHandler).Methods(http.MethodPost)
}
