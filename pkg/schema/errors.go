package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Schema errors.
var (
	// ErrUnknownParameter means a write named a parameter absent from the schema.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrInvalidValue means a value lies outside the parameter's domain.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNoParametersProvided means a write carried no parameters.
	ErrNoParametersProvided = errors.New("at least one parameter must be provided")

	// ErrUnknownResponseField means a read asked for a field the device did
	// not return.
	ErrUnknownResponseField = errors.New("unknown response field")
)

// ParameterError describes a rejected parameter name or value.
type ParameterError struct {
	// Kind is one of the schema sentinel errors.
	Kind error

	// Name is the offending parameter name.
	Name string

	// Value is the offending value (InvalidValue only).
	Value any

	// Help is the parameter's help text (InvalidValue only).
	Help string

	// Known lists the names the caller could have used: the schema names
	// for UnknownParameter, the response fields for UnknownResponseField.
	Known []string
}

// Error implements error.
func (e *ParameterError) Error() string {
	switch e.Kind {
	case ErrUnknownParameter:
		return fmt.Sprintf("unknown parameter %q, allowed parameters: %s",
			e.Name, strings.Join(e.Known, ", "))
	case ErrInvalidValue:
		return fmt.Sprintf("value %s is not allowed for %q: %s",
			formatValue(e.Value), e.Name, e.Help)
	case ErrUnknownResponseField:
		return fmt.Sprintf("field %q not present in device response, available fields: %s",
			e.Name, strings.Join(e.Known, ", "))
	default:
		return fmt.Sprintf("parameter %q: %v", e.Name, e.Kind)
	}
}

// Unwrap returns the sentinel kind so errors.Is works.
func (e *ParameterError) Unwrap() error {
	return e.Kind
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return fmt.Sprintf("%q", t)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v (%T)", t, t)
	}
}
