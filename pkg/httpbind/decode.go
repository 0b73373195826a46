package httpbind

import (
	"net/http"

	"github.com/goliatone/go-formbind/internal/formdata"
	"github.com/goliatone/go-formbind/pkg/binding"
)

// Decode reads only the request sources that params draw from. The body is
// consumed when any parameter reads from the form.
func Decode(r *http.Request, params binding.Params, opts Options) (binding.Sources, error) {
	sources := make(binding.Sources, 3)
	for _, src := range params.Sources() {
		switch src {
		case binding.SourceForm:
			fields, err := formdata.ReadForm(r, opts.MaxBodyBytes)
			if err != nil {
				return nil, err
			}
			sources[src] = fields
		case binding.SourceQuery:
			fields, err := formdata.Query(r.URL)
			if err != nil {
				return nil, err
			}
			sources[src] = fields
		case binding.SourceHeader:
			sources[src] = formdata.Headers(r.Header)
		}
	}
	return sources, nil
}
