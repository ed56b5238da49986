package schema

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Domain is the finite set of values a parameter accepts.
type Domain interface {
	// Contains reports whether v is an allowed value.
	Contains(v any) bool

	// Values lists the allowed values in canonical order.
	Values() []any

	// String describes the domain, e.g. {"0", "1"} or 1..100.
	String() string
}

// Tokens is a domain of discrete string tokens.
type Tokens []string

// Contains reports whether v is one of the tokens. Only strings match:
// the integer 1 is not the token "1".
func (t Tokens) Contains(v any) bool {
	s, ok := v.(string)
	return ok && slices.Contains(t, s)
}

// Values lists the tokens.
func (t Tokens) Values() []any {
	out := make([]any, len(t))
	for i, s := range t {
		out[i] = s
	}
	return out
}

// String formats the tokens as {"a", "b"}.
func (t Tokens) String() string {
	quoted := make([]string, len(t))
	for i, s := range t {
		quoted[i] = strconv.Quote(s)
	}
	return "{" + strings.Join(quoted, ", ") + "}"
}

// IntRange is an inclusive integer range domain.
type IntRange struct {
	Min int64
	Max int64
}

// Contains reports whether v is an integer within the range. Any Go
// integer kind is accepted; strings, floats and booleans are not.
func (r IntRange) Contains(v any) bool {
	n, ok := toInt64(v)
	return ok && n >= r.Min && n <= r.Max
}

// Values lists every integer in the range.
func (r IntRange) Values() []any {
	out := make([]any, 0, r.Max-r.Min+1)
	for n := r.Min; n <= r.Max; n++ {
		out = append(out, n)
	}
	return out
}

// String formats the range as min..max.
func (r IntRange) String() string {
	return fmt.Sprintf("%d..%d", r.Min, r.Max)
}

// Parameter describes one settable device parameter.
type Parameter struct {
	// Name is the key used on the wire.
	Name string

	// Description is a short human-readable summary.
	Description string

	// Help is the text shown when a value is rejected.
	Help string

	// Domain holds the allowed values.
	Domain Domain
}

// Parameters returns the schema in canonical order. The returned slice is
// a copy; the schema itself cannot be modified.
func Parameters() []Parameter {
	return slices.Clone(parameters)
}

// Names returns the parameter names in canonical order.
func Names() []string {
	out := make([]string, len(parameters))
	for i, p := range parameters {
		out[i] = p.Name
	}
	return out
}

// Lookup returns the parameter with the given name.
func Lookup(name string) (Parameter, bool) {
	for _, p := range parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

var parameters = []Parameter{
	{
		Name:        "pwr",
		Description: "power off/on",
		Help:        `"pwr" parameter turns the device on if set to "1" or off if set to "0".`,
		Domain:      Tokens{"0", "1"},
	},
	{
		Name:        "om",
		Description: `fan speed, "s" = silent`,
		Help:        `"om" parameter controls fan speed. Allowed values: "1", "2", "3", "s".`,
		Domain:      Tokens{"1", "2", "3", "s"},
	},
	{
		Name:        "aqil",
		Description: "light brightness",
		Help:        `"aqil" parameter controls light brightness. Allowed values: integers 1..100.`,
		Domain:      IntRange{Min: 1, Max: 100},
	},
	{
		Name:        "uil",
		Description: "display off/on",
		Help:        `"uil" parameter turns the device's display on if set to "1" or off if set to "0".`,
		Domain:      Tokens{"0", "1"},
	},
	{
		Name:        "ddp",
		Description: "pollution display: pm2.5 vs IAI",
		Help:        `"ddp" parameter controls the pollution display mode. Set to "0" for pm2.5 or "1" for IAI.`,
		Domain:      Tokens{"0", "1"},
	},
	{
		Name:        "mode",
		Description: "anti-pollution / anti-allergen / manual / antivirus",
		Help: `"mode" parameter controls the device's mode. Set to "P" for anti-pollution mode, ` +
			`"A" for anti-allergen mode, "M" for manual mode, "B" for antivirus mode.`,
		Domain: Tokens{"P", "A", "M", "B"},
	},
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), uint64(n) <= math.MaxInt64
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	default:
		return 0, false
	}
}
