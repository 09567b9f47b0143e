package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/vitascope/models"
)

// Field names of the account forms. They double as the keys of
// [FieldErrors].
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldOTPCode         = "otp_code"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 25
	passwordMinLen = 8
	otpLen         = 6

	passwordSpecialChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// Messages shown next to invalid fields.
const (
	MsgRequired         = "This field is required."
	MsgUsernameLength   = "Username must be between 3 and 25 characters."
	MsgInvalidEmail     = "Invalid email address."
	MsgPasswordLength   = "Password must be at least 8 characters long."
	MsgPasswordUpper    = "Password must contain at least one uppercase letter."
	MsgPasswordLower    = "Password must contain at least one lowercase letter."
	MsgPasswordDigit    = "Password must contain at least one digit."
	MsgPasswordSpecial  = "Password must contain at least one special character (!@#$%^&* etc.)."
	MsgPasswordMismatch = "Passwords do not match."
	MsgOTPLength        = "The code must be 6 digits long."
	MsgOTPDigits        = "The code may only contain digits."
)

// AuthValidator validates the registration, login and OTP forms.
//
// Unlike a fail-fast validator it collects every problem, so a form can be
// re-rendered with all messages at once. The returned error is a
// [FieldErrors] value.
type AuthValidator struct{}

func NewAuthValidator() Validator {
	return &AuthValidator{}
}

func (v *AuthValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegistrationForm:
		return v.validateRegistration(value, fields...)
	case *models.RegistrationForm:
		return v.validateRegistration(*value, fields...)

	case models.LoginForm:
		return v.validateLogin(value, fields...)
	case *models.LoginForm:
		return v.validateLogin(*value, fields...)

	case models.OTPForm:
		return v.validateOTP(value, fields...)
	case *models.OTPForm:
		return v.validateOTP(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AuthValidator) validateRegistration(form models.RegistrationForm, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword, FieldConfirmPassword}
	}

	errs := FieldErrors{}
	for _, f := range fields {
		switch f {
		case FieldUsername:
			checkUsername(errs, form.Username)
		case FieldEmail:
			checkEmail(errs, form.Email)
		case FieldPassword:
			checkPassword(errs, form.Password)
		case FieldConfirmPassword:
			switch {
			case form.ConfirmPassword == "":
				errs.Add(FieldConfirmPassword, MsgRequired)
			case form.ConfirmPassword != form.Password:
				errs.Add(FieldConfirmPassword, MsgPasswordMismatch)
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.orNil()
}

func (v *AuthValidator) validateLogin(form models.LoginForm, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	errs := FieldErrors{}
	for _, f := range fields {
		switch f {
		case FieldUsername:
			checkUsername(errs, form.Username)
		case FieldPassword:
			if form.Password == "" {
				errs.Add(FieldPassword, MsgRequired)
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.orNil()
}

func (v *AuthValidator) validateOTP(form models.OTPForm, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOTPCode}
	}

	errs := FieldErrors{}
	for _, f := range fields {
		switch f {
		case FieldOTPCode:
			code := strings.TrimSpace(form.Code)
			switch {
			case code == "":
				errs.Add(FieldOTPCode, MsgRequired)
			case utf8.RuneCountInString(code) != otpLen:
				errs.Add(FieldOTPCode, MsgOTPLength)
			case !allDigits(code):
				errs.Add(FieldOTPCode, MsgOTPDigits)
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.orNil()
}

func checkUsername(errs FieldErrors, username string) {
	n := utf8.RuneCountInString(strings.TrimSpace(username))
	switch {
	case n == 0:
		errs.Add(FieldUsername, MsgRequired)
	case n < usernameMinLen || n > usernameMaxLen:
		errs.Add(FieldUsername, MsgUsernameLength)
	}
}

func checkEmail(errs FieldErrors, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add(FieldEmail, MsgRequired)
		return
	}
	// a bare address only, no display name
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		errs.Add(FieldEmail, MsgInvalidEmail)
	}
}

// checkPassword stops at the first failed class, so a field carries at
// most two messages.
func checkPassword(errs FieldErrors, password string) {
	if password == "" {
		errs.Add(FieldPassword, MsgRequired)
		return
	}
	if utf8.RuneCountInString(password) < passwordMinLen {
		errs.Add(FieldPassword, MsgPasswordLength)
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecialChars, r):
			special = true
		}
	}

	switch {
	case !upper:
		errs.Add(FieldPassword, MsgPasswordUpper)
	case !lower:
		errs.Add(FieldPassword, MsgPasswordLower)
	case !digit:
		errs.Add(FieldPassword, MsgPasswordDigit)
	case !special:
		errs.Add(FieldPassword, MsgPasswordSpecial)
	}
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
