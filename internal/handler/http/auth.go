package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/internal/service"
	"github.com/MKhiriev/vitascope/internal/store"
	"github.com/MKhiriev/vitascope/internal/utils"
	"github.com/MKhiriev/vitascope/internal/validators"
	"github.com/MKhiriev/vitascope/models"
	"github.com/go-chi/chi/v5"
)

// registerData echoes the non-secret registration fields back to the page.
type registerData struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (h *Handler) registerPage(w http.ResponseWriter, r *http.Request) {
	if isAuthenticated(r) {
		h.redirect(w, r, "/dashboard")
		return
	}
	h.renderView(w, r, http.StatusOK, models.View{Name: viewRegister})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	state := requestState(r)

	if isAuthenticated(r) {
		h.redirect(w, r, "/dashboard")
		return
	}

	form, err := bindForm[models.RegistrationForm](w, r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("invalid form was passed")
		state.Session.AddFlash(models.FlashDanger, msgInvalidFormBody)
		h.renderView(w, r, statusFromError(err), models.View{Name: viewRegister})
		return
	}
	data := registerData{Username: form.Username, Email: form.Email}

	user, err := h.services.AuthService.Register(ctx, form, utils.RequestOrigin(r))
	if err != nil {
		var fieldErrors validators.FieldErrors
		switch {
		case errors.As(err, &fieldErrors):
			h.renderView(w, r, http.StatusBadRequest, models.View{Name: viewRegister, Errors: fieldErrors, Data: data})
		case errors.Is(err, store.ErrUsernameAlreadyExists):
			h.renderView(w, r, http.StatusBadRequest, models.View{
				Name:   viewRegister,
				Errors: map[string][]string{validators.FieldUsername: {msgUsernameTaken}},
				Data:   data,
			})
		case errors.Is(err, store.ErrEmailAlreadyExists):
			h.renderView(w, r, http.StatusBadRequest, models.View{
				Name:   viewRegister,
				Errors: map[string][]string{validators.FieldEmail: {msgEmailTaken}},
				Data:   data,
			})
		default:
			log.Err(err).Str("func", "*Handler.register").Msg("unexpected error occurred during user registration")
			state.Session.AddFlash(models.FlashDanger, msgRegisterFailed)
			h.renderView(w, r, http.StatusInternalServerError, models.View{Name: viewRegister, Data: data})
		}
		return
	}

	log.Info().Int64("id", user.UserID).Msg("user registered")
	state.Session.AddFlash(models.FlashInfo, fmt.Sprintf(msgRegistered, user.Email))
	h.redirect(w, r, "/login")
}

func (h *Handler) activate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	state := requestState(r)

	result, err := h.services.AuthService.Activate(r.Context(), chi.URLParam(r, "token"))
	switch {
	case errors.Is(err, service.ErrActivationTokenInvalid):
		state.Session.AddFlash(models.FlashDanger, msgActivationInvalid)
	case err != nil:
		log.Err(err).Str("func", "*Handler.activate").Msg("activation failed")
		state.Session.AddFlash(models.FlashDanger, msgActivationFailed)
	case result == models.ActivationApplied:
		state.Session.AddFlash(models.FlashSuccess, msgActivated)
	default:
		state.Session.AddFlash(models.FlashWarning, msgAlreadyActive)
	}

	h.redirect(w, r, "/login")
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	if isAuthenticated(r) {
		h.redirect(w, r, "/dashboard")
		return
	}
	h.renderView(w, r, http.StatusOK, models.View{Name: viewLogin})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	state := requestState(r)

	if isAuthenticated(r) {
		h.redirect(w, r, "/dashboard")
		return
	}

	form, err := bindForm[models.LoginForm](w, r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("invalid form was passed")
		state.Session.AddFlash(models.FlashDanger, msgInvalidFormBody)
		h.renderView(w, r, statusFromError(err), models.View{Name: viewLogin})
		return
	}

	// a new password phase always replaces an earlier pending code
	state.Session.Pending = nil

	pending, err := h.services.AuthService.Authenticate(ctx, form)
	if err != nil {
		var fieldErrors validators.FieldErrors
		switch {
		case errors.As(err, &fieldErrors):
			h.renderView(w, r, http.StatusBadRequest, models.View{Name: viewLogin, Errors: fieldErrors})
		case errors.Is(err, service.ErrInvalidCredentials):
			state.Session.AddFlash(models.FlashDanger, msgInvalidCredentials)
			h.renderView(w, r, http.StatusUnauthorized, models.View{Name: viewLogin})
		case errors.Is(err, service.ErrAccountNotActivated):
			state.Session.AddFlash(models.FlashWarning, msgNotActivated)
			h.renderView(w, r, http.StatusForbidden, models.View{Name: viewLogin})
		case errors.Is(err, service.ErrEmailDelivery):
			state.Session.AddFlash(models.FlashDanger, msgOTPNotSent)
			h.redirect(w, r, "/login")
		default:
			log.Err(err).Str("func", "*Handler.login").Msg("unexpected error occurred during user login")
			state.Session.AddFlash(models.FlashDanger, msgUnexpected)
			h.renderView(w, r, http.StatusInternalServerError, models.View{Name: viewLogin})
		}
		return
	}

	state.Session.Pending = pending
	state.Session.AddFlash(models.FlashInfo, fmt.Sprintf(msgOTPSent, pending.Email))
	h.redirect(w, r, "/verify-otp")
}

func (h *Handler) verifyOTPPage(w http.ResponseWriter, r *http.Request) {
	state := requestState(r)

	if state.Session.Pending == nil || !h.services.AuthService.PendingLive(state.Session.Pending) {
		state.Session.Pending = nil
		state.Session.AddFlash(models.FlashWarning, msgSessionExpired)
		h.redirect(w, r, "/login")
		return
	}

	h.renderView(w, r, http.StatusOK, models.View{
		Name: viewVerifyOTP,
		Data: map[string]string{"email": state.Session.Pending.Email},
	})
}

func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	state := requestState(r)
	session := state.Session

	if session.Pending == nil {
		session.AddFlash(models.FlashWarning, msgSessionExpired)
		h.redirect(w, r, "/login")
		return
	}
	data := map[string]string{"email": session.Pending.Email}

	form, err := bindForm[models.OTPForm](w, r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.verifyOTP").Msg("invalid form was passed")
		session.AddFlash(models.FlashDanger, msgInvalidFormBody)
		h.renderView(w, r, statusFromError(err), models.View{Name: viewVerifyOTP, Data: data})
		return
	}

	user, err := h.services.AuthService.VerifyOTP(ctx, session.Pending, form)
	if err != nil {
		var fieldErrors validators.FieldErrors
		switch {
		case errors.As(err, &fieldErrors):
			h.renderView(w, r, http.StatusBadRequest, models.View{Name: viewVerifyOTP, Errors: fieldErrors, Data: data})
		case errors.Is(err, service.ErrOTPMismatch):
			session.AddFlash(models.FlashDanger, msgOTPMismatch)
			h.renderView(w, r, http.StatusUnauthorized, models.View{Name: viewVerifyOTP, Data: data})
		case errors.Is(err, service.ErrOTPMissing):
			session.Pending = nil
			session.AddFlash(models.FlashWarning, msgSessionExpired)
			h.redirect(w, r, "/login")
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrAccountNotActivated):
			session.Pending = nil
			session.AddFlash(models.FlashDanger, msgUserNotFound)
			h.redirect(w, r, "/login")
		default:
			log.Err(err).Str("func", "*Handler.verifyOTP").Msg("unexpected error occurred during code verification")
			session.AddFlash(models.FlashDanger, msgUnexpected)
			h.renderView(w, r, http.StatusInternalServerError, models.View{Name: viewVerifyOTP, Data: data})
		}
		return
	}

	if err = h.services.SessionService.Renew(ctx, session); err != nil {
		log.Err(err).Str("func", "*Handler.verifyOTP").Msg("session id was not rotated")
	}
	session.Pending = nil
	session.UserID = user.UserID
	session.AddFlash(models.FlashSuccess, fmt.Sprintf(msgWelcome, user.Username))

	log.Info().Int64("id", user.UserID).Msg("user logged in")
	h.redirect(w, r, "/dashboard")
}

func (h *Handler) resendOTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	session := requestState(r).Session

	err := h.services.AuthService.ResendOTP(r.Context(), session.Pending)
	switch {
	case errors.Is(err, service.ErrOTPMissing):
		h.saveSession(w, r)
		h.writeJSON(w, r, models.StatusMessage{Status: "error", Message: msgResendExpired}, http.StatusBadRequest)
	case err != nil:
		log.Err(err).Str("func", "*Handler.resendOTP").Msg("code was not resent")
		h.saveSession(w, r)
		h.writeJSON(w, r, models.StatusMessage{Status: "error", Message: msgResendFailed}, http.StatusInternalServerError)
	default:
		h.saveSession(w, r)
		h.writeJSON(w, r, models.StatusMessage{Status: "success", Message: fmt.Sprintf(msgResent, session.Pending.Email)}, http.StatusOK)
	}
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := requestState(r).Session

	if err := h.services.SessionService.Renew(ctx, session); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.logout").Msg("session id was not rotated")
	}
	session.ClearAuth()
	session.AddFlash(models.FlashInfo, msgLoggedOut)

	h.redirect(w, r, "/login")
}

func isAuthenticated(r *http.Request) bool {
	_, ok := models.CurrentUser(requestState(r).Identity)
	return ok
}
