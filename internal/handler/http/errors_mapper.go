package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-course-catalog/internal/app"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/service"
)

type errorView struct {
	status  int
	message string
}

var errorStatusMap = map[error]errorView{
	service.ErrUserNotFound:        {http.StatusNotFound, app.MsgUserNotFound},
	service.ErrCourseNotFound:      {http.StatusNotFound, app.MsgCourseNotFound},
	service.ErrStaleWrite:          {http.StatusConflict, app.MsgStaleWrite},
	service.ErrInvalidDataProvided: {http.StatusBadRequest, app.MsgBadRequest},
	ErrInvalidPathID:               {http.StatusNotFound, app.MsgNotFound},
	ErrMalformedForm:               {http.StatusBadRequest, app.MsgBadRequest},
}

func viewFromError(err error) errorView {
	for target, view := range errorStatusMap {
		if errors.Is(err, target) {
			return view
		}
	}
	return errorView{http.StatusInternalServerError, app.MsgInternalServerError}
}

// handleError is the central error handler of the HTML layer. Known errors
// become their error view; anything else is logged in full and answered with
// the generic 500 view.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	view := viewFromError(err)

	log := logger.FromRequest(r)
	if view.status == http.StatusInternalServerError {
		log.Err(err).Str("uri", r.RequestURI).Msg("unexpected error")
	} else {
		log.Debug().Err(err).Int("status", view.status).Msg("request failed")
	}

	h.renderError(w, r, view.status, view.message)
}

type errorPage struct {
	Status     int
	StatusText string
	Message    string
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, "error", http.StatusText(status), errorPage{
		Status:     status,
		StatusText: http.StatusText(status),
		Message:    message,
	}, nil)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, app.MsgNotFound)
}
