// Package manifest describes bindable operations: the HTTP method, the route,
// and the ordered parameters each operation binds. Manifests are declared in
// code, read from YAML/JSON files, or derived from OpenAPI documents.
package manifest
