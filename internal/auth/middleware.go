package auth

import (
	"net/http"

	"github.com/eshopteam/zohoserver/pkg/apierror"
)

// RequireAuth rejects requests with 401 when no valid Zoho token is
// available, before any handler work happens. Handlers still receive
// tokens through the API client; this is only the fast-fail gate.
func RequireAuth(service *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := service.GetValidAccessToken(r.Context()); err != nil {
				apierror.Unauthorized("").Write(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
