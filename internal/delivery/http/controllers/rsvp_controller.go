package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/tmaxmax/go-sse"

	h "rsvp/internal/delivery/http/helpers"
	"rsvp/internal/domain"
)

const (
	msgEventNotFound   = "Event not found."
	msgRSVPReceived    = "RSVP received, thanks!"
	msgRSVPSaveFailed  = "Could not save your RSVP, please try again."
	msgEventLoadFailed = "Could not load event, please try again."

	defaultStreamKeepAlive = 25 * time.Second
)

var guestsEventType = sse.Type("guests")

// SubmitRSVPRequest is the request body for POST /rsvp/{eventID}/guests. response defaults to "yes".
type SubmitRSVPRequest struct {
	Name     string `json:"name"`
	Response string `json:"response"`
}

// SubmitRSVPResponse is the data returned after an RSVP is stored.
type SubmitRSVPResponse struct {
	Guest   *domain.Guest `json:"guest"`
	Message string        `json:"message"`
}

// RSVPPageSuccessResponse is the success response envelope for GET /rsvp/{eventID} (200).
type RSVPPageSuccessResponse struct {
	Data  *domain.RSVPPage `json:"data"`
	Error *h.APIError      `json:"error"`
}

type RSVPController struct {
	Logger    *slog.Logger
	Service   domain.RSVPService
	KeepAlive time.Duration
}

func NewRSVPController(logger *slog.Logger, svc domain.RSVPService) *RSVPController {
	return &RSVPController{
		Logger:    logger,
		Service:   svc,
		KeepAlive: defaultStreamKeepAlive,
	}
}

// GetPage godoc
// @Summary Public RSVP page
// @Description Returns the event's public details and its current guest list. Never exposes the dashboard token or owner.
// @Tags rsvp
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.RSVPPageSuccessResponse "data contains event and guests"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rsvp/{eventID} [get]
func (c *RSVPController) GetPage(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	page, err := c.Service.GetPage(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, msgEventNotFound)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, msgEventLoadFailed)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, page)
}

// Stream godoc
// @Summary Live guest list
// @Description Server-Sent Events stream. Each "guests" event carries the full current guest list as a JSON array; the first is sent immediately.
// @Tags rsvp
// @Produce text/event-stream
// @Param eventID path string true "Event ID"
// @Success 200 {array} domain.Guest "stream of guest list snapshots"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rsvp/{eventID}/stream [get]
func (c *RSVPController) Stream(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	snapshots, err := c.Service.Watch(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, msgEventNotFound)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, msgEventLoadFailed)
		return
	}

	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	sess := &sse.Session{Req: r, Res: streamWriter{ResponseWriter: w, rc: rc}}
	if err := sess.Flush(); err != nil {
		c.Logger.WarnContext(r.Context(), "stream not flushable", "path", r.URL.Path, "err", err)
		return
	}

	keepAlive := time.NewTicker(c.KeepAlive)
	defer keepAlive.Stop()

	for {
		var msg *sse.Message
		select {
		case <-r.Context().Done():
			return
		case guests, ok := <-snapshots:
			if !ok {
				return
			}
			data, err := json.Marshal(guests)
			if err != nil {
				c.Logger.ErrorContext(r.Context(), "encode guests", "event_id", eventID, "err", err)
				return
			}
			msg = &sse.Message{Type: guestsEventType}
			msg.AppendData(string(data))
		case <-keepAlive.C:
			msg = &sse.Message{}
			msg.AppendComment("ping")
		}
		if err := sess.Send(msg); err != nil {
			return
		}
		if err := sess.Flush(); err != nil {
			return
		}
	}
}

// streamWriter keeps stream writes on w, so outer middleware still sees them,
// and flushes through the ResponseController.
type streamWriter struct {
	http.ResponseWriter
	rc *http.ResponseController
}

func (s streamWriter) Flush() error { return s.rc.Flush() }

// Submit godoc
// @Summary RSVP to an event
// @Description Append a guest response. name is required; response is yes, no or maybe and defaults to yes. The stored guest, with its id, is returned so clients can reconcile optimistic entries.
// @Tags rsvp
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body SubmitRSVPRequest true "RSVP form"
// @Success 201 {object} helpers.APIResponse "data contains guest and message"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed or bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rsvp/{eventID}/guests [post]
func (c *RSVPController) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRSVPRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	eventID := r.PathValue("eventID")
	guest, err := c.Service.Submit(r.Context(), eventID, req.Name, domain.Response(req.Response))
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			h.WriteValidationError(w, validationMessage(verr.Fields), verr.Fields)
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, msgEventNotFound)
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, msgRSVPSaveFailed)
		}
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, SubmitRSVPResponse{Guest: guest, Message: msgRSVPReceived})
}
