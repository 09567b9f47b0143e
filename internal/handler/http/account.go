package http

import (
	"net/http"

	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/models"
)

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := models.CurrentUser(requestState(r).Identity)
	h.renderView(w, r, http.StatusOK, models.View{Name: viewDashboard, Data: models.ProfileOf(user)})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	user, ok := models.CurrentUser(requestState(r).Identity)
	if !ok {
		h.writeJSON(w, r, models.ErrorMessage{Error: msgUnauthorized}, http.StatusUnauthorized)
		return
	}
	h.writeJSON(w, r, models.ProfileOf(user), http.StatusOK)
}

// usersListing is the body of GET /debug/users.
type usersListing struct {
	Users []models.User `json:"users"`
}

func (h *Handler) debugUsers(w http.ResponseWriter, r *http.Request) {
	if !h.debug {
		h.writeJSON(w, r, models.ErrorMessage{Error: msgDebugDisabled}, http.StatusForbidden)
		return
	}

	users, err := h.services.AuthService.ListUsers(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.debugUsers").Msg("error listing users")
		h.writeError(w, r, err, msgUsersUnavailable)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	h.writeJSON(w, r, usersListing{Users: users}, http.StatusOK)
}
