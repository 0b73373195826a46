package httpbind

import (
	"net/http"

	"github.com/goliatone/go-formbind/pkg/binding"
)

// DirectFunc receives bound values positionally, in manifest order.
type DirectFunc func(w http.ResponseWriter, r *http.Request, args []binding.Value)

// DirectHandler binds params for every request and calls fn only when all of
// them bind.
func DirectHandler(params binding.Params, fn DirectFunc, fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sources, err := Decode(r, params, opts)
		if err != nil {
			WriteError(w, r, err, opts)
			return
		}
		values, err := binding.BindSources(sources, params)
		if err != nil {
			WriteError(w, r, err, opts)
			return
		}
		fn(w, r, values.Args())
	})
}

// BeanFunc receives a freshly bound aggregate.
type BeanFunc[T any] func(w http.ResponseWriter, r *http.Request, bean *T)

// BeanHandler allocates a new T per request, binds the targets returned by
// targets, and calls fn only when every target binds. Bean types usually pass
// a method expression such as (*MyBean).Targets.
func BeanHandler[T any](targets func(*T) []binding.Target, fn BeanFunc[T], fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bean := new(T)
		declared := targets(bean)
		params, err := binding.TargetParams(declared...)
		if err != nil {
			WriteError(w, r, err, opts)
			return
		}
		sources, err := Decode(r, params, opts)
		if err != nil {
			WriteError(w, r, err, opts)
			return
		}
		if err := binding.BindTargets(sources, declared...); err != nil {
			WriteError(w, r, err, opts)
			return
		}
		fn(w, r, bean)
	})
}
