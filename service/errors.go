package service

import (
	"errors"
	"fmt"
)

// ErrorKind tells a caller whether an input had the wrong type or an
// out-of-range value.
type ErrorKind int

const (
	KindType ErrorKind = iota + 1
	KindValue
)

func (k ErrorKind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindValue:
		return "value"
	}
	return "unknown"
}

var (
	// ErrType matches any CalcError of kind KindType via errors.Is.
	ErrType = errors.New("type error")
	// ErrValue matches any CalcError of kind KindValue via errors.Is.
	ErrValue = errors.New("value error")
)

// CalcError is returned by the calculators and the input parsers.
type CalcError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *CalcError) Error() string {
	return fmt.Sprintf("%s error on %s: %s", e.Kind, e.Field, e.Message)
}

func (e *CalcError) Is(target error) bool {
	switch target {
	case ErrType:
		return e.Kind == KindType
	case ErrValue:
		return e.Kind == KindValue
	}
	return false
}

func typeError(field, msg string) error {
	return &CalcError{Kind: KindType, Field: field, Message: msg}
}

func valueError(field, msg string) error {
	return &CalcError{Kind: KindValue, Field: field, Message: msg}
}

// KindOf returns the kind of the first CalcError in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var ce *CalcError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}

const msgNotRepresentable = "Result is not representable."
