// Package httpbind adapts the binding package to net/http handlers. Direct and
// bean handlers decode the sources their parameters need, bind them, and
// reject the request before the handler body runs when any parameter fails.
package httpbind
