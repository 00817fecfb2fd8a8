package utils

import "net/http"

// IdentityHeader carries the caller's opaque user id. There is no signature
// or token verification behind it.
const IdentityHeader = "api-key"

const MaxUserIDLength = 32

// Identity extracts the caller's user id from the request header.
func Identity(r *http.Request) (string, *APIError) {
	id := r.Header.Get(IdentityHeader)
	if id == "" {
		return "", Validation("%s header is required", IdentityHeader)
	}
	if len(id) > MaxUserIDLength {
		return "", Validation("%s must be at most %d characters", IdentityHeader, MaxUserIDLength)
	}
	return id, nil
}
