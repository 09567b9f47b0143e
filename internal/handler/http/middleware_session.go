package http

import (
	"net"
	"net/http"

	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/internal/utils"
	"github.com/MKhiriev/vitascope/models"
)

const sessionCookieName = "vitascope_session"

// withSession resolves the session cookie and the current identity once
// per request and stores them as [models.RequestState] in the context.
//
// Store failures never reject the request: the request continues with a
// fresh anonymous session.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		var cookieValue string
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			cookieValue = cookie.Value
		}

		session, err := h.services.SessionService.Load(ctx, cookieValue)
		if err != nil {
			log.Err(err).Str("func", "*Handler.withSession").Msg("session could not be loaded")
		}

		var identity models.Identity = models.Anonymous{}
		if session.UserID != 0 {
			identity, err = h.services.AuthService.Identify(ctx, session.UserID)
			if err != nil {
				log.Err(err).Str("func", "*Handler.withSession").Int64("id", session.UserID).Msg("identity could not be resolved")
			} else if _, ok := models.CurrentUser(identity); !ok {
				// deleted or no longer verified
				session.UserID = 0
			}
		}

		state := &models.RequestState{
			Session:  session,
			Identity: identity,
			ClientIP: clientIP(r),
		}

		next.ServeHTTP(w, r.WithContext(utils.WithRequestState(ctx, state)))
	})
}

// requireLogin redirects anonymous requests to the login page.
func (h *Handler) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := requestState(r)
		if _, ok := models.CurrentUser(state.Identity); !ok {
			state.Session.AddFlash(models.FlashInfo, msgLoginRequired)
			h.redirect(w, r, "/login")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestState returns the state stored by withSession. Routes outside the
// session group get an anonymous state with a throwaway session.
func requestState(r *http.Request) *models.RequestState {
	if state, ok := utils.GetRequestStateFromContext(r.Context()); ok {
		return state
	}
	return &models.RequestState{
		Session:  &models.Session{},
		Identity: models.Anonymous{},
		ClientIP: clientIP(r),
	}
}

// saveSession persists the request's session and refreshes the cookie. It
// must run before the response status is written.
func (h *Handler) saveSession(w http.ResponseWriter, r *http.Request) {
	state, ok := utils.GetRequestStateFromContext(r.Context())
	if !ok {
		return
	}

	_, cookieErr := r.Cookie(sessionCookieName)
	if state.Session.IsEmpty() && cookieErr != nil {
		return
	}

	token, err := h.services.SessionService.Save(r.Context(), state.Session)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.saveSession").Msg("session was not saved")
		return
	}

	if token.SignedString == "" {
		http.SetCookie(w, h.sessionCookie(r, "", -1))
		return
	}

	cookie := h.sessionCookie(r, token.SignedString, 0)
	cookie.Expires = token.Expiry()
	http.SetCookie(w, cookie)
}

func (h *Handler) sessionCookie(r *http.Request, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   utils.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}

// clientIP returns the host part of RemoteAddr, which middleware.RealIP
// has already replaced with the forwarded address when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
