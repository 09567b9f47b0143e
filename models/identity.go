package models

// Identity is who the current request acts as. It is either
// [Authenticated] or [Anonymous]; no other implementations exist.
type Identity interface {
	isIdentity()
}

// Authenticated is a request bound to a verified user that completed both
// login phases.
type Authenticated struct {
	User User
}

// Anonymous is a request without a completed login.
type Anonymous struct{}

func (Authenticated) isIdentity() {}
func (Anonymous) isIdentity()     {}

// CurrentUser returns the user behind id when it is [Authenticated].
func CurrentUser(id Identity) (User, bool) {
	auth, ok := id.(Authenticated)
	if !ok {
		return User{}, false
	}
	return auth.User, true
}

// RequestState is the per-request context resolved once by the session
// middleware and handed to every handler that needs it.
type RequestState struct {
	Session  *Session
	Identity Identity
	ClientIP string
}
