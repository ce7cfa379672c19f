package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "rsvp/internal/delivery/http/helpers"
	"rsvp/internal/domain"
)

const (
	msgGuestNotFound     = "Guest not found."
	msgGuestsLoadFailed  = "Could not load guests, please try again."
	msgGuestDeleteFailed = "Could not remove guest, please try again."
)

// DashboardSuccessResponse is the success response envelope for GET /dashboard/{eventID}/{token} (200).
type DashboardSuccessResponse struct {
	Data  *domain.Dashboard `json:"data"`
	Error *h.APIError       `json:"error"`
}

type DashboardController struct {
	Logger  *slog.Logger
	Service domain.DashboardService
}

func NewDashboardController(logger *slog.Logger, svc domain.DashboardService) *DashboardController {
	return &DashboardController{
		Logger:  logger,
		Service: svc,
	}
}

// Get godoc
// @Summary Organizer dashboard
// @Description Returns the event, the full guest list as fetched (guests), the list with the response filter applied (filtered), and per-response counts. Clients may switch filters locally over guests without fetching again. An unknown event or wrong token gets a silent 303 redirect to "/".
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param token path string true "Dashboard token"
// @Param filter query string false "all, yes, no or maybe (default all)"
// @Success 200 {object} controllers.DashboardSuccessResponse "data contains event, filter, guests, filtered and counts"
// @Success 303 "redirect to / when the event or token does not match"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /dashboard/{eventID}/{token} [get]
func (c *DashboardController) Get(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	filter := domain.ParseGuestFilter(r.URL.Query().Get("filter"))
	d, err := c.Service.Load(r.Context(), eventID, r.PathValue("token"), filter)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			c.redirectHome(w, r, eventID)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, msgGuestsLoadFailed)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, d)
}

// DeleteGuest godoc
// @Summary Remove a guest
// @Description Deletes one guest of the event. No confirmation, no undo.
// @Tags dashboard
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param token path string true "Dashboard token"
// @Param guestID path string true "Guest ID"
// @Success 204 "deleted"
// @Success 303 "redirect to / when the event or token does not match"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /dashboard/{eventID}/{token}/guests/{guestID} [delete]
func (c *DashboardController) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	err := c.Service.DeleteGuest(r.Context(), eventID, r.PathValue("token"), r.PathValue("guestID"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			c.redirectHome(w, r, eventID)
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, msgGuestNotFound)
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, msgGuestDeleteFailed)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// redirectHome gives no hint whether the event exists.
func (c *DashboardController) redirectHome(w http.ResponseWriter, r *http.Request, eventID string) {
	c.Logger.DebugContext(r.Context(), "dashboard access denied", "event_id", eventID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
