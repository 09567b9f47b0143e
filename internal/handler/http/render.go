package http

import (
	"net/http"

	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/internal/utils"
	"github.com/MKhiriev/vitascope/models"
)

// View names rendered by the page handlers.
const (
	viewRegister  = "register"
	viewLogin     = "login"
	viewVerifyOTP = "verify_otp"
	viewDashboard = "dashboard"
)

// redirect saves the session and answers 302 Found.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, location string) {
	h.saveSession(w, r)
	http.Redirect(w, r, location, http.StatusFound)
}

// renderView consumes the queued flashes into view, saves the session and
// writes view as JSON.
func (h *Handler) renderView(w http.ResponseWriter, r *http.Request, status int, view models.View) {
	view.Flashes = requestState(r).Session.PopFlashes()
	h.saveSession(w, r)
	h.writeJSON(w, r, view, status)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.writeJSON").Msg("response was not written")
	}
}

// writeError answers plain API failures with {"error": message}.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, message string) {
	h.writeJSON(w, r, models.ErrorMessage{Error: message}, statusFromError(err))
}
