package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withRealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(withGZip)
	if len(h.corsOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.corsOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", traceIDHeader},
			ExposedHeaders:   []string{traceIDHeader, "Retry-After"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// browser routes carrying the session cookie
	router.Group(func(r chi.Router) {
		r.Use(h.withSession)

		r.Get("/register", h.registerPage)
		r.Post("/register", h.register)
		r.Get("/activate/{token}", h.activate)

		loginLimit := h.withRateLimit("login", h.limits.LoginMax, h.limits.LoginWindow)
		r.With(loginLimit).Get("/login", h.loginPage)
		r.With(loginLimit).Post("/login", h.login)

		otpLimit := h.withRateLimit("verify-otp", h.limits.OTPMax, h.limits.OTPWindow)
		r.With(otpLimit).Get("/verify-otp", h.verifyOTPPage)
		r.With(otpLimit).Post("/verify-otp", h.verifyOTP)
		r.Post("/resend-otp", h.resendOTP)

		r.Get("/api/profile", h.profile)

		r.Group(func(r chi.Router) {
			r.Use(h.requireLogin)
			r.Get("/", h.dashboard)
			r.Get("/dashboard", h.dashboard)
			r.Get("/logout", h.logout)
		})
	})

	// device and dashboard API
	router.Group(func(r chi.Router) {
		r.Post("/api/data", h.ingest)
		r.Get("/get_live_data", h.liveData)
		r.Get("/api/measurements", h.measurements)
		r.Get("/api/version", h.getServerVersion)
		r.Get("/debug/users", h.debugUsers)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
