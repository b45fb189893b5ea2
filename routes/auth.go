package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eshopteam/zohoserver/infrastructure"
)

// RegisterAuthRoutes sets up the OAuth flow endpoints. These are not
// behind the auth middleware since they are how a credential gets
// established in the first place.
func RegisterAuthRoutes(router *mux.Router, c *infrastructure.Container) {
	zoho := router.PathPrefix("/zoho").Subrouter()

	zoho.HandleFunc("/auth", c.AuthHandler.AuthURLHandler).Methods(http.MethodGet)
	zoho.HandleFunc("/callback", c.AuthHandler.CallbackHandler).Methods(http.MethodGet)
	zoho.HandleFunc("/auth-status", c.AuthHandler.StatusHandler).Methods(http.MethodGet)
}
