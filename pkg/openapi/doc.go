// Package openapi exposes the loader and parser contracts used to derive
// binding manifests from OpenAPI documents. Implementations live under
// internal/openapi to keep kin-openapi out of the public API.
package openapi
