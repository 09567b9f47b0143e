package http

// User-facing notices.
const (
	msgLoginRequired = "Please log in to access this page."

	msgRegistered      = "An activation link has been sent to %s. Please check your email."
	msgUsernameTaken   = "This username is already taken."
	msgEmailTaken      = "This email address is already registered."
	msgRegisterFailed  = "An error occurred during registration."
	msgInvalidFormBody = "The submitted form could not be read."

	msgActivationInvalid = "The activation link is invalid or has expired."
	msgActivated         = "Your account has been activated. You can now log in."
	msgAlreadyActive     = "Account is already active or the user was not found."
	msgActivationFailed  = "Account activation failed. Please try again later."

	msgInvalidCredentials = "Invalid username or password."
	msgNotActivated       = "Your account has not been activated yet. Please check your email."
	msgOTPSent            = "A verification code has been sent to %s."
	msgOTPNotSent         = "The verification email could not be sent. Please try again."
	msgUnexpected         = "An unexpected error occurred. Please try again."

	msgSessionExpired = "Your session has expired. Please log in again."
	msgOTPMismatch    = "Invalid verification code. Please try again."
	msgUserNotFound   = "User not found."
	msgWelcome        = "Welcome %s! Login successful."

	msgResendExpired = "Your session has expired"
	msgResent        = "A new code has been sent to %s"
	msgResendFailed  = "The email could not be sent"

	msgLoggedOut = "You have been logged out. See you soon!"

	msgUnauthorized     = "authentication required"
	msgDebugDisabled    = "debug mode is disabled"
	msgTooManyRequests  = "too many requests"
	msgStorageFailure   = "measurements are unavailable"
	msgUsersUnavailable = "users are unavailable"
)
