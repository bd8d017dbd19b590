package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"rentacar/internal/auth"
	"rentacar/internal/middleware"
	"rentacar/internal/models"
	"rentacar/internal/store"
	"rentacar/internal/utils"
)

type RegisterHandler struct {
	Users     store.UserStore
	JWTSecret string
}

type RegisterRequest struct {
	FullName  string `json:"fullName"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

type RegisterResponse struct {
	Token string `json:"token"`
}

// ServeHTTP handles POST /register
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	fullName := req.FullName
	if fullName == "" {
		fullName = strings.TrimSpace(req.FirstName + " " + req.LastName)
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "username, email and password are required",
		})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to hash password",
		})
		return
	}

	user := &models.User{
		FullName:     fullName,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.Users.Register(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateUsername):
			utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
				Success: false,
				Message: "Username already exists",
			})
		case errors.Is(err, store.ErrDuplicateEmail):
			utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
				Success: false,
				Message: "Email already exists",
			})
		default:
			logrus.WithError(err).Error("register failed")
			utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
				Success: false,
				Message: "An error occurred during registration",
			})
		}
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username, h.JWTSecret)
	if err != nil {
		logrus.WithError(err).Error("token generation failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to generate token",
		})
		return
	}

	middleware.SetSessionCookie(w, token)
	utils.JSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Registration successful",
		Data:    RegisterResponse{Token: token},
	})
}
