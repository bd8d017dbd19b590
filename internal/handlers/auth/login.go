package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"rentacar/internal/auth"
	"rentacar/internal/middleware"
	"rentacar/internal/store"
	"rentacar/internal/utils"
)

type LoginHandler struct {
	Users     store.UserStore
	JWTSecret string
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// The response never says which field was wrong; the detail only goes to
// the internal log.
func invalidCredentials(w http.ResponseWriter) {
	utils.JSON(w, http.StatusUnauthorized, utils.APIResponse{
		Success: false,
		Message: "Invalid credentials",
	})
}

// ServeHTTP handles POST /login
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	user, err := h.Users.FindByUsernameAndEmail(r.Context(), req.Username, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		logrus.WithField("username", req.Username).Info("login: unknown username/email")
		invalidCredentials(w)
		return
	} else if err != nil {
		logrus.WithError(err).Error("login: user lookup failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "An error occurred during login",
		})
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		logrus.WithField("username", req.Username).Info("login: bad password")
		invalidCredentials(w)
		return
	}

	if err := h.Users.RecordLogin(r.Context(), user.Username, user.Email); err != nil {
		logrus.WithError(err).Error("login: record login failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "An error occurred during login",
		})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username, h.JWTSecret)
	if err != nil {
		logrus.WithError(err).Error("login: token generation failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to generate token",
		})
		return
	}

	middleware.SetSessionCookie(w, token)
	utils.JSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Login successful",
		Data:    LoginResponse{Token: token},
	})
}
