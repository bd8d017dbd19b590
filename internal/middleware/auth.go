package middleware

import (
	"context"
	"net/http"

	"rentacar/internal/auth"
	"rentacar/internal/utils"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UsernameKey contextKey = "username"
)

const CookieName = "token"

// AuthJWT gates protected routes on the session cookie: 401 when the
// cookie is absent, 403 when the token does not verify.
func AuthJWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, utils.APIResponse{
					Success: false,
					Message: "Unauthorized",
				})
				return
			}

			claims, err := auth.ParseToken(cookie.Value, secret)
			if err != nil {
				utils.JSON(w, http.StatusForbidden, utils.APIResponse{
					Success: false,
					Message: "Token verification failed",
				})
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UsernameKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
