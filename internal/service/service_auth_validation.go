package service

import (
	"context"

	"github.com/MKhiriev/vitascope/internal/validators"
	"github.com/MKhiriev/vitascope/models"
)

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// logging or validating.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// AuthValidationService checks submitted forms before they reach the
// wrapped AuthService. Validation failures are validators.FieldErrors.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewAuthValidator(),
	}
}

func (v *AuthValidationService) Register(ctx context.Context, form models.RegistrationForm, origin string) (models.User, error) {
	if err := v.validator.Validate(ctx, form); err != nil {
		return models.User{}, err
	}
	return v.inner.Register(ctx, form, origin)
}

func (v *AuthValidationService) Activate(ctx context.Context, token string) (models.ActivationResult, error) {
	if token == "" {
		return 0, ErrActivationTokenInvalid
	}
	return v.inner.Activate(ctx, token)
}

func (v *AuthValidationService) Authenticate(ctx context.Context, form models.LoginForm) (*models.PendingAuth, error) {
	if err := v.validator.Validate(ctx, form); err != nil {
		return nil, err
	}
	return v.inner.Authenticate(ctx, form)
}

func (v *AuthValidationService) VerifyOTP(ctx context.Context, pending *models.PendingAuth, form models.OTPForm) (models.User, error) {
	if err := v.validator.Validate(ctx, form); err != nil {
		return models.User{}, err
	}
	return v.inner.VerifyOTP(ctx, pending, form)
}

func (v *AuthValidationService) ResendOTP(ctx context.Context, pending *models.PendingAuth) error {
	return v.inner.ResendOTP(ctx, pending)
}

func (v *AuthValidationService) PendingLive(pending *models.PendingAuth) bool {
	return v.inner.PendingLive(pending)
}

func (v *AuthValidationService) Identify(ctx context.Context, userID int64) (models.Identity, error) {
	return v.inner.Identify(ctx, userID)
}

func (v *AuthValidationService) ListUsers(ctx context.Context) ([]models.User, error) {
	return v.inner.ListUsers(ctx)
}

func (v *AuthValidationService) Wrap(wrapped AuthService) AuthService {
	v.inner = wrapped
	return v
}
