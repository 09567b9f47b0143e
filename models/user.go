package models

// User represents a VitaScope account.
// PasswordHash holds a bcrypt hash and is never serialized.
type User struct {
	// UserID is the identifier assigned by the database on insert.
	UserID int64 `json:"id"`

	// Username is unique across all users, 3 to 25 characters.
	Username string `json:"username"`

	// Email is unique across all users.
	Email string `json:"email"`

	// PasswordHash is the salted bcrypt hash of the account password.
	PasswordHash string `json:"-"`

	// IsVerified flips to true exactly once, after a valid activation link
	// is followed. Unverified users can not complete a login.
	IsVerified bool `json:"is_verified"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Profile is the public view of an authenticated user served by
// GET /api/profile.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	ID       int64  `json:"id"`
}

// ProfileOf builds the public profile of u.
func ProfileOf(u User) Profile {
	return Profile{Username: u.Username, Email: u.Email, ID: u.UserID}
}

// ActivationResult tells the caller what following an activation link did.
type ActivationResult int

const (
	// ActivationApplied means the account was unverified and is now verified.
	ActivationApplied ActivationResult = iota + 1

	// ActivationNoop means the account was already verified or no longer
	// exists.
	ActivationNoop
)
