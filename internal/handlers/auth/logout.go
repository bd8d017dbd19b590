package auth

import (
	"net/http"

	"rentacar/internal/middleware"
	"rentacar/internal/utils"
)

type LogoutHandler struct{}

// ServeHTTP handles POST /logout. Sessions are stateless, so clearing the
// cookie is all there is; an already-issued token stays valid until expiry.
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	utils.JSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Logged out",
	})
}
