package models

import "time"

// FlashCategory is the severity of a one-shot notice shown on the next page.
type FlashCategory string

const (
	FlashSuccess FlashCategory = "success"
	FlashInfo    FlashCategory = "info"
	FlashWarning FlashCategory = "warning"
	FlashDanger  FlashCategory = "danger"
)

// Flash is a notice queued in the session and consumed by the next rendered
// view.
type Flash struct {
	Category FlashCategory `json:"category"`
	Message  string        `json:"message"`
}

// PendingAuth is the state held between a successful password check and a
// successful OTP check.
type PendingAuth struct {
	UserID   int64     `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	OTPCode  string    `json:"otp_code"`
	IssuedAt time.Time `json:"issued_at"`
}

// Session is the server-side state bound to one browser through the
// session cookie.
//
// UserID is non-zero only once the OTP phase has completed. Pending is set
// during the OTP phase and cleared when it completes.
type Session struct {
	ID        string       `json:"id"`
	UserID    int64        `json:"user_id,omitempty"`
	Pending   *PendingAuth `json:"pending,omitempty"`
	Flashes   []Flash      `json:"flashes,omitempty"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// AddFlash queues a notice for the next rendered view.
func (s *Session) AddFlash(category FlashCategory, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
}

// PopFlashes returns the queued notices and empties the queue.
func (s *Session) PopFlashes() []Flash {
	flashes := s.Flashes
	s.Flashes = nil
	if flashes == nil {
		return []Flash{}
	}
	return flashes
}

// ClearAuth drops both the authenticated user and any pending OTP state.
func (s *Session) ClearAuth() {
	s.UserID = 0
	s.Pending = nil
}

// IsEmpty reports whether the session carries nothing worth persisting.
func (s *Session) IsEmpty() bool {
	return s.UserID == 0 && s.Pending == nil && len(s.Flashes) == 0
}

// RateDecision is the outcome of one rate-limited hit.
type RateDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}
