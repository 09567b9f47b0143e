// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// validate checks that the final merged [StructuredConfig] can run the
// server. Missing secrets and mail credentials are fatal at startup.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.App.SecretKey == "" {
		errs = append(errs, ErrMissingSecretKey)
	}

	if cfg.Mail.Address == "" || cfg.Mail.Password == "" {
		errs = append(errs, ErrMissingMailCredentials)
	}
	if cfg.Mail.Server == "" || cfg.Mail.Port <= 0 {
		errs = append(errs, ErrInvalidMailConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		errs = append(errs, ErrInvalidServerConfigs)
	}
	if _, err := cfg.Server.TrustedProxyPrefixes(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidServerConfigs, err))
	}

	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, ErrInvalidStorageConfigs)
	}

	if cfg.App.OTPTTL <= 0 || cfg.App.SessionTTL <= 0 || cfg.App.ActivationTTL <= 0 {
		errs = append(errs, ErrInvalidAppConfigs)
	}

	if cfg.Limits.LoginMax <= 0 || cfg.Limits.LoginWindow <= 0 ||
		cfg.Limits.OTPMax <= 0 || cfg.Limits.OTPWindow <= 0 {
		errs = append(errs, ErrInvalidLimitConfigs)
	}

	return errors.Join(errs...)
}
