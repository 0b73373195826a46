// Package security resolves the caller's identity and evaluates permissions
// for protected resources.
//
// Permission checks are explicit operations returning a decision or an error.
// A denied check is surfaced as a *ForbiddenError value rather than a panic or
// a control-flow exception, so handlers map it to 403 like any other typed
// failure.
package security
