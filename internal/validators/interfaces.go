// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the account forms submitted to VitaScope:
// registration, login and the emailed login code.
//
// A failed check returns [FieldErrors], a map of form field to messages, that
// matches [ErrValidation] with [errors.Is]. Handlers render the map next to
// the offending inputs; services never see an invalid form.
package validators

import "context"

// Validator validates a form value. When fields are given, only those form
// fields are checked.
type Validator interface {
	Validate(ctx context.Context, form any, fields ...string) error
}
