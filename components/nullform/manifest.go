package nullform

import "github.com/goliatone/go-formbind/pkg/manifest"

const (
	OperationBean   = "null-bean"
	OperationDirect = "null-direct"
)

// Manifest describes both endpoints as manifest operations so clients can
// discover and submit them like any other operation.
func Manifest(fns ...OptionFn) *manifest.Manifest {
	beanPath, directPath := MountPaths("", fns...)
	m := manifest.New()
	for id, path := range map[string]string{OperationBean: beanPath, OperationDirect: directPath} {
		// Params is valid and the ids are distinct, so Add cannot fail.
		_ = m.Add(manifest.Operation{
			ID:      id,
			Method:  "POST",
			Path:    path,
			Summary: "Echo formString and formInteger, rendering absent fields as null",
			Params:  Params,
		})
	}
	return m
}
