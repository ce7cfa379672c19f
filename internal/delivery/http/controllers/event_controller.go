package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	h "rsvp/internal/delivery/http/helpers"
	"rsvp/internal/delivery/http/middleware"
	"rsvp/internal/domain"
)

const msgEventSaveFailed = "Could not save event, please try again."

// CreateEventRequest is the request body for POST /events. Field rules are
// applied by the service so every failing field is reported at once.
type CreateEventRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  *domain.CreatedEvent `json:"data"`
	Error *h.APIError          `json:"error"`
}

type EventController struct {
	Logger       *slog.Logger
	Service      domain.EventService
	PublicOrigin string
}

// NewEventController returns an EventController. An empty publicOrigin means
// links are built from the incoming request's scheme and host.
func NewEventController(logger *slog.Logger, svc domain.EventService, publicOrigin string) *EventController {
	return &EventController{
		Logger:       logger,
		Service:      svc,
		PublicOrigin: strings.TrimRight(publicOrigin, "/"),
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Create an event owned by the signed-in organizer. slug is optional; when blank a random 7-character id is generated. Responds with the event, its public RSVP link and its dashboard link.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event form"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains event, rsvp_link and dashboard_link"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed with error.fields, or bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	origin := c.PublicOrigin
	if origin == "" {
		origin = requestOrigin(r)
	}

	in := domain.CreateEventInput{Name: req.Name, Date: req.Date, Description: req.Description, Slug: req.Slug}
	created, err := c.Service.CreateEvent(r.Context(), session, in, origin)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			h.WriteValidationError(w, validationMessage(verr.Fields), verr.Fields)
		case errors.Is(err, domain.ErrUnauthorized):
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, msgEventSaveFailed)
		}
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, created)
}

// requestOrigin rebuilds scheme://host from the request, honouring a proxy's X-Forwarded-Proto.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		proto = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
		if proto == "http" || proto == "https" {
			scheme = proto
		}
	}
	return scheme + "://" + r.Host
}

// validationMessage picks one message for error.message, in field order.
func validationMessage(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return "invalid input"
	}
	sort.Strings(keys)
	sort.SliceStable(keys, func(i, j int) bool { return fieldRank(keys[i]) < fieldRank(keys[j]) })
	return fields[keys[0]]
}

func fieldRank(field string) int {
	switch field {
	case "name":
		return 0
	case "date":
		return 1
	case "slug":
		return 2
	case "response":
		return 3
	}
	return 4
}
