package nullform

import (
	"fmt"
	"net/http"

	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/httpbind"
)

const (
	FieldString  = "formString"
	FieldInteger = "formInteger"
)

// Params is the manifest shared by both endpoints.
var Params = binding.MustParams(
	binding.String(FieldString),
	binding.Integer(FieldInteger),
)

// Bean aggregates the two form parameters.
type Bean struct {
	FormString  *string
	FormInteger *int32
}

// Targets declares the bean fields in the same order as Params.
func (b *Bean) Targets() []binding.Target {
	return []binding.Target{
		binding.StringVar(&b.FormString, FieldString),
		binding.IntegerVar(&b.FormInteger, FieldInteger),
	}
}

// Format renders the bean the same way the direct endpoint renders its
// arguments.
func (b *Bean) Format() string {
	return fmt.Sprintf("%s,%s", display(b.FormString), display(b.FormInteger))
}

func display[T any](p *T) string {
	if p == nil {
		return binding.NullText
	}
	return fmt.Sprint(*p)
}

// BeanHandler binds the form into a Bean.
func BeanHandler(fns ...OptionFn) http.Handler {
	return BeanHandlerWithOptions(NewOptions(fns...))
}

func BeanHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	bound := httpbind.BeanHandler((*Bean).Targets, func(w http.ResponseWriter, r *http.Request, bean *Bean) {
		httpbind.WriteText(w, http.StatusOK, bean.Format())
	}, opts.bindOptions()...)
	return postOnly(bound)
}

// DirectHandler binds the form parameters as positional arguments.
func DirectHandler(fns ...OptionFn) http.Handler {
	return DirectHandlerWithOptions(NewOptions(fns...))
}

func DirectHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	bound := httpbind.DirectHandler(Params, func(w http.ResponseWriter, r *http.Request, args []binding.Value) {
		formString, formInteger := args[0], args[1]
		httpbind.WriteText(w, http.StatusOK, fmt.Sprintf("%s,%s", formString, formInteger))
	}, opts.bindOptions()...)
	return postOnly(bound)
}

func postOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}
