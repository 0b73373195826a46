// Package client is a small REST client whose outgoing headers are declared
// up front instead of assembled at each call site.
//
// A header is declared as a constant, as a ${property} expression resolved
// from a PropertySource, as a computed value, or as a per-call argument.
// Client-level declarations apply to every method; method-level declarations
// replace same-named client headers; per-call arguments replace both. A
// registered HeadersFactory sees the result last and may add or override
// headers, for example to propagate headers from the inbound request.
package client
