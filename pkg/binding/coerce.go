package binding

import (
	"errors"
	"strconv"

	"github.com/google/uuid"
)

var errEmptyString = errors.New("empty string")

// Coerce converts a single raw value into kind. Only KindString accepts the
// empty string.
func Coerce(kind Kind, raw string) (any, error) {
	if kind == KindString {
		return raw, nil
	}
	if raw == "" {
		return nil, errEmptyString
	}

	switch kind {
	case KindInteger:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, unwrapNumError(err)
		}
		return int32(n), nil
	case KindLong:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, unwrapNumError(err)
		}
		return n, nil
	case KindNumber:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, unwrapNumError(err)
		}
		return f, nil
	case KindBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, unwrapNumError(err)
		}
		return b, nil
	case KindUUID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		return id, nil
	default:
		return nil, errors.New("unsupported kind " + strconv.Quote(string(kind)))
	}
}

// unwrapNumError drops the strconv wrapper, whose message repeats the input.
func unwrapNumError(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return numErr.Err
	}
	return err
}
