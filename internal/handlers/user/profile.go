package user

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"rentacar/internal/middleware"
	"rentacar/internal/store"
	"rentacar/internal/utils"
)

type ProfileHandler struct {
	Users store.UserStore
}

// ServeHTTP handles GET /profile. The auth gate has already verified the
// cookie and put the identity on the context.
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	username, ok := r.Context().Value(middleware.UsernameKey).(string)
	if !ok {
		utils.JSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Message: "Unauthorized",
		})
		return
	}

	u, err := h.Users.FindByUsername(r.Context(), username)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSON(w, http.StatusNotFound, utils.APIResponse{
			Success: false,
			Message: "User not found",
		})
		return
	} else if err != nil {
		logrus.WithError(err).Error("profile: user lookup failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "An error occurred",
		})
		return
	}

	utils.JSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Welcome back, " + u.Username,
		Data: map[string]string{
			"full_name": u.FullName,
			"username":  u.Username,
			"email":     u.Email,
		},
	})
}
