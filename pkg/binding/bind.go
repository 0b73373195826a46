package binding

// Bind materialises params from a single FieldSet, ignoring each parameter's
// declared Source. It returns a *BindError when any parameter fails; in that
// case the returned Values are empty.
func Bind(fields FieldSet, params []Param) (Values, error) {
	return bind(func(Param) FieldSet { return fields }, params)
}

// BindSources materialises params, reading each from the FieldSet of its
// declared Source.
func BindSources(sources Sources, params []Param) (Values, error) {
	return bind(func(p Param) FieldSet { return sources[p.source()] }, params)
}

func bind(fieldsFor func(Param) FieldSet, params []Param) (Values, error) {
	values := newValues(len(params))
	var failures []ParamError

	for _, p := range params {
		field := fieldsFor(p).Lookup(p.lookupName())
		value, err := bindField(p, field)
		if err != nil {
			failures = append(failures, ParamError{Param: p.Name, Source: p.source(), Err: err})
			continue
		}
		values.append(value)
	}

	if len(failures) > 0 {
		return Values{}, newBindError(failures)
	}
	return values, nil
}

func bindField(p Param, field Field) (Value, error) {
	value := Value{Name: p.Name, Kind: p.Kind, Multi: p.Multi}

	if !field.Present {
		if p.Required {
			return Value{}, &MissingError{Param: p.Name}
		}
		return value, nil
	}
	if len(field.Values) == 0 {
		return Value{}, &EmptyValueError{Param: p.Name}
	}
	if !p.Multi && len(field.Values) > 1 {
		return Value{}, &MultipleValuesError{Param: p.Name, Count: len(field.Values)}
	}

	coerced := make([]any, 0, len(field.Values))
	for _, raw := range field.Values {
		if p.Kind == KindString {
			raw = sanitizeValue(p.Sanitize, raw)
		}
		v, err := Coerce(p.Kind, raw)
		if err != nil {
			return Value{}, &CoercionError{Param: p.Name, Kind: p.Kind, Value: raw, Err: err}
		}
		coerced = append(coerced, v)
	}

	value.Present = true
	if p.Multi {
		value.list = coerced
	} else {
		value.scalar = coerced[0]
	}
	return value, nil
}
