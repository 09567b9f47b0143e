package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/vitascope/internal/adapter"
	"github.com/MKhiriev/vitascope/internal/config"
	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/internal/store"
	"github.com/MKhiriev/vitascope/internal/utils"
	"github.com/MKhiriev/vitascope/models"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// tokenIssuer is the "iss" claim of every token this service signs.
	tokenIssuer = "vitascope"

	activationAudience = "activation"
	// activationSalt separates the activation signing key from the session
	// signing key derived from the same secret.
	activationSalt = "email-confirm-salt"
)

// authService is the concrete implementation of AuthService.
type authService struct {
	userRepository store.UserRepository
	mailer         adapter.Mailer
	hasher         PasswordHasher
	otp            OTPGenerator

	// activationKey signs activation links.
	activationKey string
	activationTTL time.Duration
	otpTTL        time.Duration

	// baseURL overrides the request origin in activation links when set.
	baseURL string

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repository
// and mailer and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, mailer adapter.Mailer, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		mailer:         mailer,
		hasher:         NewPasswordHasher(0),
		otp:            NewOTPGenerator(),
		activationKey:  cfg.SecretKey + activationSalt,
		activationTTL:  cfg.ActivationTTL,
		otpTTL:         cfg.OTPTTL,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		now:            time.Now,
		logger:         logger,
	}
}

// Register creates a new unverified account.
//
// Username and email are checked before the insert; a concurrent insert of
// the same values is still reported by the repository as
// store.ErrUsernameAlreadyExists or store.ErrEmailAlreadyExists.
//
// The activation mail is best effort: a delivery failure is logged and the
// registered user is returned anyway.
func (a *authService) Register(ctx context.Context, form models.RegistrationForm, origin string) (models.User, error) {
	log := logger.FromContext(ctx)

	username := strings.TrimSpace(form.Username)
	email := strings.TrimSpace(form.Email)

	if err := a.ensureFree(ctx, username, email); err != nil {
		return models.User{}, err
	}

	hash, err := a.hasher.Hash(form.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("password hashing failed")
		return models.User{}, err
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Str("username", username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	if err := a.sendActivation(ctx, user, origin); err != nil {
		log.Err(err).Str("func", "*authService.Register").Int64("id", user.UserID).Msg("activation mail was not delivered")
	}

	return user, nil
}

func (a *authService) ensureFree(ctx context.Context, username, email string) error {
	if _, err := a.userRepository.FindUserByUsername(ctx, username); err == nil {
		return store.ErrUsernameAlreadyExists
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		return fmt.Errorf("user search by username failed: %w", err)
	}

	if _, err := a.userRepository.FindUserByEmail(ctx, email); err == nil {
		return store.ErrEmailAlreadyExists
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		return fmt.Errorf("user search by email failed: %w", err)
	}

	return nil
}

func (a *authService) sendActivation(ctx context.Context, user models.User, origin string) error {
	token, err := a.ActivationToken(user.Email)
	if err != nil {
		return err
	}

	msg, err := activationMail(user, a.activationLink(origin, token.String()), a.activationTTL)
	if err != nil {
		return err
	}
	if err := a.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", ErrEmailDelivery, err)
	}
	return nil
}

// ActivationToken signs an activation token for email.
func (a *authService) ActivationToken(email string) (models.Token, error) {
	token, err := utils.GenerateJWTToken(utils.TokenParams{
		Issuer:   tokenIssuer,
		Audience: activationAudience,
		Subject:  email,
		TTL:      a.activationTTL,
		IssuedAt: a.now(),
	}, a.activationKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return token, nil
}

func (a *authService) activationLink(origin, token string) string {
	base := a.baseURL
	if base == "" {
		base = strings.TrimRight(origin, "/")
	}
	return base + "/activate/" + url.PathEscape(token)
}

// Activate verifies the account whose email is carried by token.
//
// Returns models.ActivationApplied when an unverified account was flipped,
// models.ActivationNoop when the account is already verified or unknown,
// or ErrActivationTokenInvalid for a forged, foreign or expired token.
func (a *authService) Activate(ctx context.Context, token string) (models.ActivationResult, error) {
	log := logger.FromContext(ctx)

	parsed, err := utils.ValidateAndParseJWTToken(token, a.activationKey, tokenIssuer, activationAudience, jwt.WithTimeFunc(a.now))
	if err != nil || parsed.Subject == "" {
		log.Debug().Err(err).Str("func", "*authService.Activate").Msg("rejected activation token")
		return 0, ErrActivationTokenInvalid
	}

	applied, err := a.userRepository.MarkUserVerified(ctx, parsed.Subject)
	if err != nil {
		log.Err(err).Str("func", "*authService.Activate").Msg("marking user verified failed")
		return 0, fmt.Errorf("marking user verified failed: %w", err)
	}
	if !applied {
		return models.ActivationNoop, nil
	}

	log.Info().Str("func", "*authService.Activate").Str("email", parsed.Subject).Msg("account activated")
	return models.ActivationApplied, nil
}

// Authenticate runs the password phase of a login.
//
// The activation check comes before the password check, so an unverified
// account reports ErrAccountNotActivated whatever the password. An unknown
// username and a wrong password both report ErrInvalidCredentials.
//
// On success a fresh code is mailed. A delivery failure returns
// ErrEmailDelivery and no pending state.
func (a *authService) Authenticate(ctx context.Context, form models.LoginForm) (*models.PendingAuth, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByUsername(ctx, strings.TrimSpace(form.Username))
	if errors.Is(err, store.ErrNoUserWasFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Authenticate").Msg("user search by username failed")
		return nil, fmt.Errorf("user search by username failed: %w", err)
	}

	if !user.IsVerified {
		return nil, ErrAccountNotActivated
	}
	if !a.hasher.Matches(user.PasswordHash, form.Password) {
		log.Info().Str("func", "*authService.Authenticate").Int64("id", user.UserID).Msg("wrong password")
		return nil, ErrInvalidCredentials
	}

	pending := &models.PendingAuth{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
	}
	if err := a.issueCode(ctx, pending); err != nil {
		log.Err(err).Str("func", "*authService.Authenticate").Int64("id", user.UserID).Msg("login code was not delivered")
		return nil, err
	}

	return pending, nil
}

// VerifyOTP completes a login.
//
// Returns ErrOTPMissing when there is no pending state or the code has
// outlived the OTP lifetime, and ErrOTPMismatch when the code differs. A
// mismatch leaves pending untouched so the user can retry.
func (a *authService) VerifyOTP(ctx context.Context, pending *models.PendingAuth, form models.OTPForm) (models.User, error) {
	log := logger.FromContext(ctx)

	if !a.isLive(pending) {
		return models.User{}, ErrOTPMissing
	}

	code := strings.TrimSpace(form.Code)
	if subtle.ConstantTimeCompare([]byte(code), []byte(pending.OTPCode)) != 1 {
		return models.User{}, ErrOTPMismatch
	}

	user, err := a.userRepository.FindUserByID(ctx, pending.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.VerifyOTP").Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}
	if !user.IsVerified {
		return models.User{}, ErrAccountNotActivated
	}

	return user, nil
}

// ResendOTP overwrites the pending code before mailing it, so the previous
// code stops matching even when the delivery fails.
func (a *authService) ResendOTP(ctx context.Context, pending *models.PendingAuth) error {
	if pending == nil || pending.UserID == 0 || pending.Email == "" {
		return ErrOTPMissing
	}

	if err := a.issueCode(ctx, pending); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.ResendOTP").Int64("id", pending.UserID).Msg("login code was not delivered")
		return err
	}
	return nil
}

func (a *authService) issueCode(ctx context.Context, pending *models.PendingAuth) error {
	code, err := a.otp.Generate()
	if err != nil {
		return err
	}
	pending.OTPCode = code
	pending.IssuedAt = a.now()

	msg, err := otpMail(*pending, a.otpTTL)
	if err != nil {
		return err
	}
	if err := a.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", ErrEmailDelivery, err)
	}
	return nil
}

func (a *authService) PendingLive(pending *models.PendingAuth) bool {
	return a.isLive(pending)
}

func (a *authService) isLive(pending *models.PendingAuth) bool {
	if pending == nil || pending.UserID == 0 || pending.OTPCode == "" {
		return false
	}
	if a.otpTTL > 0 && a.now().Sub(pending.IssuedAt) > a.otpTTL {
		return false
	}
	return true
}

func (a *authService) Identify(ctx context.Context, userID int64) (models.Identity, error) {
	if userID == 0 {
		return models.Anonymous{}, nil
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.Anonymous{}, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Identify").Int64("id", userID).Msg("user search by id failed")
		return models.Anonymous{}, fmt.Errorf("user search by id failed: %w", err)
	}
	if !user.IsVerified {
		return models.Anonymous{}, nil
	}

	return models.Authenticated{User: user}, nil
}

func (a *authService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := a.userRepository.ListUsers(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.ListUsers").Msg("listing users failed")
		return nil, fmt.Errorf("listing users failed: %w", err)
	}
	return users, nil
}
