// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// errNoHTTPHandler is returned by NewServer when there is no HTTP
	// handler or no listen address to serve it on.
	errNoHTTPHandler = errors.New("no http handler or listen address configured")
)
