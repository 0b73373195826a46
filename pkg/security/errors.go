package security

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthenticated reports a request without a recognised identity.
var ErrUnauthenticated = unauthenticatedError{}

type unauthenticatedError struct{}

func (unauthenticatedError) Error() string   { return "security: authentication required" }
func (unauthenticatedError) StatusCode() int { return http.StatusUnauthorized }

// ForbiddenError is the typed outcome of a denied permission check.
type ForbiddenError struct {
	Principal  string
	Permission Permission
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("security: %q is not granted %q", e.Principal, e.Permission.String())
}

func (e *ForbiddenError) StatusCode() int { return http.StatusForbidden }

// IsForbidden reports whether err is a denied permission check.
func IsForbidden(err error) bool {
	var forbidden *ForbiddenError
	return errors.As(err, &forbidden)
}
