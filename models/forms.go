package models

// RegistrationForm carries the fields submitted to POST /register.
type RegistrationForm struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginForm carries the fields submitted to POST /login.
type LoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// OTPForm carries the code submitted to POST /verify-otp.
type OTPForm struct {
	Code string `json:"otp_code"`
}
