package server

import (
	"context"
	"fmt"
	"net/http"

	logger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"rentacar/internal/handlers"
	authhandlers "rentacar/internal/handlers/auth"
	"rentacar/internal/handlers/car"
	"rentacar/internal/handlers/user"
	"rentacar/internal/mail"
	"rentacar/internal/middleware"
	"rentacar/internal/storage"
	"rentacar/internal/store"
)

type Server struct {
	Addr       string
	Users      store.UserStore
	Listings   store.ListingStore
	Mailer     mail.Mailer
	Uploader   storage.Uploader
	JWTSecret  string
	CORSOrigin string
	AppBaseURL string

	httpServer *http.Server
}

func HandlerFunc(h http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r)
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	// middlewares
	r.Use(logger.Logger("router", logrus.StandardLogger()))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintln(w, "rentacar API is running....")
	})
	r.Get("/health", handlers.HealthCheck)

	register := &authhandlers.RegisterHandler{Users: s.Users, JWTSecret: s.JWTSecret}
	login := &authhandlers.LoginHandler{Users: s.Users, JWTSecret: s.JWTSecret}
	logout := &authhandlers.LogoutHandler{}
	confirmLink := &authhandlers.ConfirmLinkHandler{
		Users:      s.Users,
		Mailer:     s.Mailer,
		JWTSecret:  s.JWTSecret,
		AppBaseURL: s.AppBaseURL,
	}
	resetPassword := &authhandlers.ResetPasswordHandler{Users: s.Users, JWTSecret: s.JWTSecret}
	ownerData := &car.CreateListingHandler{Users: s.Users, Listings: s.Listings, Uploader: s.Uploader}
	carData := &car.ListHandler{Listings: s.Listings}

	// public routes, mounted bare and under /api for older clients
	mountPublic := func(r chi.Router) {
		r.Post("/register", HandlerFunc(register))
		r.Post("/login", HandlerFunc(login))
		r.Post("/logout", HandlerFunc(logout))
		r.Post("/confirmLink", HandlerFunc(confirmLink))
		r.Post("/reset-password", HandlerFunc(resetPassword))
		r.Post("/owner-data", HandlerFunc(ownerData))
	}
	mountPublic(r)
	r.Route("/api", func(r chi.Router) {
		mountPublic(r)
		r.Get("/car-data", HandlerFunc(carData))
	})

	// protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(s.JWTSecret))
		r.Get("/profile", HandlerFunc(&user.ProfileHandler{Users: s.Users}))
	})

	return r
}

func (s *Server) Run() error {
	s.httpServer = &http.Server{Addr: s.Addr, Handler: s.Router()}
	logrus.WithField("addr", s.Addr).Info("server running")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
