package schema

import (
	"strconv"

	"github.com/purifier-protocol/purifier-go/pkg/wire"
)

// Validate checks a single name/value pair and returns the value unchanged.
func Validate(name string, value any) (any, error) {
	p, ok := Lookup(name)
	if !ok {
		return nil, &ParameterError{Kind: ErrUnknownParameter, Name: name, Known: Names()}
	}
	if !p.Domain.Contains(value) {
		return nil, &ParameterError{Kind: ErrInvalidValue, Name: name, Value: value, Help: p.Help}
	}
	return value, nil
}

// ValidateRequest checks every entry of a write request in insertion order
// and stops at the first invalid one.
func ValidateRequest(params *wire.Payload) error {
	if params.Len() == 0 {
		return ErrNoParametersProvided
	}
	for name, value := range params.All() {
		if _, err := Validate(name, value); err != nil {
			return err
		}
	}
	return nil
}

// FilterResponse narrows a response to the requested names, in the order
// requested. With no names the response is returned unchanged.
func FilterResponse(data *wire.Payload, names ...string) (*wire.Payload, error) {
	if len(names) == 0 {
		return data, nil
	}

	out := wire.NewPayload()
	for _, name := range names {
		v, ok := data.Get(name)
		if !ok {
			return nil, &ParameterError{Kind: ErrUnknownResponseField, Name: name, Known: data.Keys()}
		}
		out.Set(name, v)
	}
	return out, nil
}

// ParseValue converts text from a command line or shell into the value
// type the parameter expects and validates it. Integer domains parse the
// text as a decimal integer; token domains keep it as a string.
func ParseValue(name, text string) (any, error) {
	p, ok := Lookup(name)
	if !ok {
		return nil, &ParameterError{Kind: ErrUnknownParameter, Name: name, Known: Names()}
	}

	var value any = text
	if _, isRange := p.Domain.(IntRange); isRange {
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, &ParameterError{Kind: ErrInvalidValue, Name: name, Value: text, Help: p.Help}
		}
		value = n
	}
	return Validate(name, value)
}
