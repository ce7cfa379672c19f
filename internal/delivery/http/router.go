package http

import (
	"context"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"rsvp/internal/delivery/http/controllers"
	h "rsvp/internal/delivery/http/helpers"
	"rsvp/internal/delivery/http/middleware"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Auth      *controllers.AuthController
	Events    *controllers.EventController
	RSVP      *controllers.RSVPController
	Dashboard *controllers.DashboardController
}

// HealthChecker reports whether the backing store is reachable. *sql.DB implements it.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// NewRouter initializes the HTTP router with all application routes.
// Organizer routes are wrapped in Guard; credential routes are rate limited per client IP.
// health may be nil, in which case /healthz always reports ok.
func NewRouter(c Controllers, sessions middleware.SessionResolver, limiter *middleware.RateLimiter, health HealthChecker, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	guard := middleware.Guard(sessions, logger)
	limit := middleware.RateLimit(limiter)

	// Auth
	mux.HandleFunc("POST /auth/signup", limit(c.Auth.SignUp))
	mux.HandleFunc("POST /auth/signin", limit(c.Auth.SignIn))
	mux.HandleFunc("POST /auth/signout", c.Auth.SignOut)
	mux.HandleFunc("GET /auth/session", c.Auth.Session)

	// Organizer
	mux.HandleFunc("POST /events", guard(c.Events.CreateEvent))
	mux.HandleFunc("GET /dashboard/{eventID}/{token}", guard(c.Dashboard.Get))
	mux.HandleFunc("DELETE /dashboard/{eventID}/{token}/guests/{guestID}", guard(c.Dashboard.DeleteGuest))

	// Public RSVP
	mux.HandleFunc("GET /rsvp/{eventID}", c.RSVP.GetPage)
	mux.HandleFunc("GET /rsvp/{eventID}/stream", c.RSVP.Stream)
	mux.HandleFunc("POST /rsvp/{eventID}/guests", c.RSVP.Submit)

	mux.HandleFunc("GET /healthz", healthz(health, logger))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

type healthResponse struct {
	Status string `json:"status"`
}

// healthz godoc
// @Summary Liveness and database check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status: ok"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /healthz [get]
func healthz(health HealthChecker, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health.PingContext(r.Context()); err != nil {
				logger.WarnContext(r.Context(), "health check failed", "err", err)
				h.WriteJSONError(w, http.StatusServiceUnavailable, h.ErrCodeUnavailable, "database unavailable")
				return
			}
		}
		h.WriteJSONSuccess(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
