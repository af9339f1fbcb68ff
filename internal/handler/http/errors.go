// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinels of the auth middleware's "Authorization" header parsing. Their
// text is what a rejected caller sees in the 401 body.
var (
	// ErrEmptyAuthorizationHeader: the request carried no "Authorization"
	// header at all.
	ErrEmptyAuthorizationHeader = errors.New("authorization header is missing")

	// ErrInvalidAuthorizationHeader: the header did not split into a scheme
	// and a token.
	ErrInvalidAuthorizationHeader = errors.New("malformed authorization header")

	// ErrEmptyToken: the scheme was present but the token part was blank.
	ErrEmptyToken = errors.New("empty bearer token")
)
