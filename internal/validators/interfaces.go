// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the request payloads of the user flows before
// they reach the store.
//
// [UserValidator] covers registration, login, password change and account
// update. Each payload has a default set of checks; callers may pass Field*
// names to run a subset. Failures are the sentinel errors of errors.go, which
// the service layer turns into client-facing validation messages.
package validators

import "context"

// Validator validates obj. With no fields the default checks for the type
// of obj run; otherwise only the named checks run, in order, and the first
// failure is returned.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
