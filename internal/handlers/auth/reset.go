package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"rentacar/internal/auth"
	"rentacar/internal/mail"
	"rentacar/internal/store"
	"rentacar/internal/utils"
)

type ConfirmLinkHandler struct {
	Users      store.UserStore
	Mailer     mail.Mailer
	JWTSecret  string
	AppBaseURL string
}

type ConfirmLinkRequest struct {
	Email string `json:"email"`
}

// ServeHTTP handles POST /confirmLink. The response is 200 whether or not
// the email is registered, so the endpoint cannot be used to probe for
// accounts; mail only actually goes out for known users.
func (h *ConfirmLinkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ConfirmLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	user, err := h.Users.FindByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		logrus.WithField("email", req.Email).Info("reset link requested for unknown email")
		utils.JSON(w, http.StatusOK, utils.APIResponse{
			Success: true,
			Message: "Reset link sent",
		})
		return
	} else if err != nil {
		logrus.WithError(err).Error("reset link: user lookup failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "An error occurred",
		})
		return
	}

	token, err := auth.GenerateResetToken(user.Email, h.JWTSecret)
	if err != nil {
		logrus.WithError(err).Error("reset link: token generation failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "An error occurred",
		})
		return
	}

	query := url.Values{}
	query.Set("username", user.Username)
	query.Set("token", token)
	link := h.AppBaseURL + "/reset-password?" + query.Encode()
	if err := h.Mailer.SendResetLink(user.Email, link); err != nil {
		logrus.WithError(err).Error("reset link: mail dispatch failed")
		utils.JSON(w, http.StatusNotFound, utils.APIResponse{
			Success: false,
			Message: "Failed to send reset link",
		})
		return
	}

	utils.JSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Reset link sent",
	})
}

type ResetPasswordHandler struct {
	Users     store.UserStore
	JWTSecret string
}

type ResetPasswordRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"newPassword"`
	ResetToken  string `json:"resetToken"`
}

// ServeHTTP handles POST /reset-password. The reset token's signature and
// expiry are both checked server-side before anything is written.
func (h *ResetPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.NewPassword == "" {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	claims, err := auth.ParseResetToken(req.ResetToken, h.JWTSecret)
	if err != nil {
		utils.JSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Message: "Invalid or expired reset token",
		})
		return
	}

	user, err := h.Users.FindByUsername(r.Context(), req.Username)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSON(w, http.StatusNotFound, utils.APIResponse{
			Success: false,
			Message: "User not found",
		})
		return
	} else if err != nil {
		logrus.WithError(err).Error("reset password: user lookup failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "An error occurred",
		})
		return
	}

	// the token only resets the account it was issued for
	if claims.Email != user.Email {
		logrus.WithField("username", req.Username).Info("reset password: token email mismatch")
		utils.JSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Message: "Invalid or expired reset token",
		})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to hash password",
		})
		return
	}

	err = h.Users.UpdatePassword(r.Context(), req.Username, hash)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSON(w, http.StatusNotFound, utils.APIResponse{
			Success: false,
			Message: "User not found",
		})
		return
	} else if err != nil {
		logrus.WithError(err).Error("reset password: update failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "An error occurred",
		})
		return
	}

	utils.JSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Password updated",
	})
}
