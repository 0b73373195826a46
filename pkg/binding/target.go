package binding

import (
	"github.com/google/uuid"
)

// Target pairs a declared parameter with the variable it assigns into. It is
// the bean-style counterpart of reading Values positionally.
type Target struct {
	Param  Param
	assign func(Value)
}

// Bean is implemented by aggregates that declare their own targets. The
// method is typically defined on the pointer receiver so each Target closes
// over a field of the receiver.
type Bean interface {
	Targets() []Target
}

// NewTarget builds a Target with a custom assignment.
func NewTarget(p Param, assign func(Value)) Target {
	return Target{Param: p, assign: assign}
}

// StringVar binds a string parameter into dst; absent fields assign nil.
func StringVar(dst **string, name string, opts ...ParamOption) Target {
	return NewTarget(String(name, opts...), func(v Value) { *dst = v.StringPtr() })
}

// IntegerVar binds a 32-bit integer parameter into dst.
func IntegerVar(dst **int32, name string, opts ...ParamOption) Target {
	return NewTarget(Integer(name, opts...), func(v Value) { *dst = v.IntegerPtr() })
}

// LongVar binds a 64-bit integer parameter into dst.
func LongVar(dst **int64, name string, opts ...ParamOption) Target {
	return NewTarget(Long(name, opts...), func(v Value) { *dst = v.LongPtr() })
}

// NumberVar binds a float parameter into dst.
func NumberVar(dst **float64, name string, opts ...ParamOption) Target {
	return NewTarget(Number(name, opts...), func(v Value) { *dst = v.NumberPtr() })
}

// BoolVar binds a boolean parameter into dst.
func BoolVar(dst **bool, name string, opts ...ParamOption) Target {
	return NewTarget(Boolean(name, opts...), func(v Value) { *dst = v.BoolPtr() })
}

// UUIDVar binds a UUID parameter into dst.
func UUIDVar(dst **uuid.UUID, name string, opts ...ParamOption) Target {
	return NewTarget(UUID(name, opts...), func(v Value) { *dst = v.UUIDPtr() })
}

// StringsVar binds a multi-valued string parameter into dst; absent fields
// assign nil.
func StringsVar(dst *[]string, name string, opts ...ParamOption) Target {
	return NewTarget(List(name, KindString, opts...), func(v Value) { *dst = v.Strings() })
}

// TargetParams returns the validated manifest behind targets.
func TargetParams(targets ...Target) (Params, error) {
	params := make([]Param, len(targets))
	for i, t := range targets {
		params[i] = t.Param
	}
	return NewParams(params...)
}

// BindTargets binds every target through BindSources and assigns only when
// all of them succeed.
func BindTargets(sources Sources, targets ...Target) error {
	params, err := TargetParams(targets...)
	if err != nil {
		return err
	}
	values, err := BindSources(sources, params)
	if err != nil {
		return err
	}
	for _, t := range targets {
		if t.assign == nil {
			continue
		}
		t.assign(values.Get(t.Param.Name))
	}
	return nil
}

// BindBean is BindTargets over bean.Targets().
func BindBean(sources Sources, bean Bean) error {
	return BindTargets(sources, bean.Targets()...)
}
