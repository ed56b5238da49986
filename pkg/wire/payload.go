package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
	"reflect"
	"slices"
	"strconv"
)

// ErrNotObject is returned when a JSON document that must be an object is not.
var ErrNotObject = errors.New("payload is not a JSON object")

// Payload is an ordered mapping from parameter name to value.
//
// Setting an existing key replaces its value but keeps its position.
// The zero value is an empty payload ready to use. A nil *Payload behaves
// as an empty, read-only payload.
type Payload struct {
	keys   []string
	values map[string]any
}

// NewPayload creates an empty payload.
func NewPayload() *Payload {
	return &Payload{values: make(map[string]any)}
}

// Set stores value under key. Go integer kinds are stored as int64, or as
// uint64 when the value does not fit, matching what decoding yields.
func (p *Payload) Set(key string, value any) {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = normalizeValue(value)
}

// With stores value under key and returns p, for building payloads inline:
//
//	wire.NewPayload().With("mode", "M").With("om", "2")
func (p *Payload) With(key string, value any) *Payload {
	p.Set(key, value)
	return p
}

// Get returns the value stored under key.
func (p *Payload) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is present.
func (p *Payload) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Len returns the number of entries.
func (p *Payload) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the keys in order. The returned slice is a copy.
func (p *Payload) Keys() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.keys)
}

// All iterates over the entries in order.
func (p *Payload) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if p == nil {
			return
		}
		for _, k := range p.keys {
			if !yield(k, p.values[k]) {
				return
			}
		}
	}
}

// Clone returns a copy of p. Nested payloads are cloned as well.
func (p *Payload) Clone() *Payload {
	out := NewPayload()
	for k, v := range p.All() {
		out.Set(k, cloneValue(v))
	}
	return out
}

// Equal reports whether p and other hold the same entries in the same order.
func (p *Payload) Equal(other *Payload) bool {
	if p.Len() != other.Len() {
		return false
	}
	for i, k := range p.Keys() {
		if other.keys[i] != k {
			return false
		}
		if !valuesEqual(p.values[k], other.values[k]) {
			return false
		}
	}
	return true
}

// String returns the compact JSON form, for diagnostics.
func (p *Payload) String() string {
	data, err := p.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<invalid payload: %v>", err)
	}
	return string(data)
}

// MarshalJSON encodes the payload as a compact JSON object in key order.
func (p *Payload) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, p.values[k]); err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping document order.
func (p *Payload) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ErrNotObject
	}

	out, err := decodeObject(dec)
	if err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected data after JSON object")
	}

	*p = *out
	return nil
}

// DecodePayload parses a JSON object into a payload.
func DecodePayload(data []byte) (*Payload, error) {
	p := NewPayload()
	if err := p.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return p, nil
}

// writeJSON writes v without HTML escaping and without a trailing newline.
func writeJSON(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

func decodeObject(dec *json.Decoder) (*Payload, error) {
	p := NewPayload()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("decode %q: %w", key, err)
		}
		p.Set(key, val)
	}
	// Closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			arr := []any{}
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		if u, err := strconv.ParseUint(t.String(), 10, 64); err == nil {
			return u, nil
		}
		return t.Float64()
	default:
		// string, bool or nil
		return t, nil
	}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Payload:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func valuesEqual(a, b any) bool {
	if pa, ok := a.(*Payload); ok {
		pb, ok := b.(*Payload)
		return ok && pa.Equal(pb)
	}
	if aa, ok := a.([]any); ok {
		ab, ok := b.([]any)
		if !ok || len(aa) != len(ab) {
			return false
		}
		for i := range aa {
			if !valuesEqual(aa[i], ab[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(normalizeValue(a), normalizeValue(b))
}

// normalizeValue maps Go integer kinds to int64, keeping uint64 for values
// above math.MaxInt64. Slices of values are normalized element-wise.
func normalizeValue(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint:
		return normalizeUint(uint64(n))
	case uint64:
		return normalizeUint(n)
	case []any:
		out := make([]any, len(n))
		for i, e := range n {
			out[i] = normalizeValue(e)
		}
		return out
	default:
		return v
	}
}

func normalizeUint(n uint64) any {
	if n <= math.MaxInt64 {
		return int64(n)
	}
	return n
}
