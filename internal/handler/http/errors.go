// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors returned while decoding request bodies. Callers can match
// against them with [errors.Is].
var (
	// ErrUnsupportedContentType is returned when a POST body is neither
	// "application/json" nor a urlencoded or multipart form.
	ErrUnsupportedContentType = errors.New("unsupported content type")

	// ErrInvalidBody is returned when the body can not be decoded into the
	// expected form.
	ErrInvalidBody = errors.New("invalid request body")
)
