package wire

import (
	"encoding/json"
	"math"
	"testing"
)

func TestPayloadKeepsInsertionOrder(t *testing.T) {
	p := NewPayload().With("om", "1").With("uil", "1").With("mode", "A").With("pwr", "0")

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"om":"1","uil":"1","mode":"A","pwr":"0"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestPayloadSetExistingKeepsPosition(t *testing.T) {
	p := NewPayload().With("a", 1).With("b", 2)
	p.Set("a", 3)

	if got := p.String(); got != `{"a":3,"b":2}` {
		t.Errorf("String() = %s", got)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestPayloadDecodePreservesTypesAndOrder(t *testing.T) {
	doc := `{"om":"0","pwr":"0","cl":false,"aqil":50,"uil":"1","dt":0,"dtrs":0,"mode":"A","pm25":5,"iaql":2,"aqit":0,"ddp":"1","err":193}`

	p, err := DecodePayload([]byte(doc))
	if err != nil {
		t.Fatalf("DecodePayload failed: %v", err)
	}

	wantKeys := []string{"om", "pwr", "cl", "aqil", "uil", "dt", "dtrs", "mode", "pm25", "iaql", "aqit", "ddp", "err"}
	keys := p.Keys()
	if len(keys) != len(wantKeys) {
		t.Fatalf("Keys() = %v, want %v", keys, wantKeys)
	}
	for i := range wantKeys {
		if keys[i] != wantKeys[i] {
			t.Errorf("key %d = %q, want %q", i, keys[i], wantKeys[i])
		}
	}

	if v, _ := p.Get("om"); v != "0" {
		t.Errorf("om = %#v, want string \"0\"", v)
	}
	if v, _ := p.Get("cl"); v != false {
		t.Errorf("cl = %#v, want false", v)
	}
	if v, _ := p.Get("aqil"); v != int64(50) {
		t.Errorf("aqil = %#v, want int64(50)", v)
	}

	if p.String() != doc {
		t.Errorf("re-encoded = %s, want %s", p.String(), doc)
	}
}

func TestPayloadDecodeNestedValues(t *testing.T) {
	p, err := DecodePayload([]byte(`{"f":1.5,"n":null,"arr":[1,"x",{"k":true}],"obj":{"z":1,"a":2}}`))
	if err != nil {
		t.Fatalf("DecodePayload failed: %v", err)
	}

	if v, _ := p.Get("f"); v != 1.5 {
		t.Errorf("f = %#v, want 1.5", v)
	}
	if v, ok := p.Get("n"); !ok || v != nil {
		t.Errorf("n = %#v (present=%v), want nil", v, ok)
	}

	obj, _ := p.Get("obj")
	nested, ok := obj.(*Payload)
	if !ok {
		t.Fatalf("obj = %T, want *Payload", obj)
	}
	if keys := nested.Keys(); keys[0] != "z" || keys[1] != "a" {
		t.Errorf("nested keys = %v, want [z a]", keys)
	}

	arr, _ := p.Get("arr")
	if a, ok := arr.([]any); !ok || len(a) != 3 {
		t.Fatalf("arr = %#v", arr)
	}

	clone := p.Clone()
	if !clone.Equal(p) {
		t.Error("Clone() is not Equal to original")
	}
	nested.Set("z", 99)
	if clone.Equal(p) {
		t.Error("Clone() shares nested payloads with original")
	}
}

func TestPayloadDecodeRejectsNonObject(t *testing.T) {
	for _, doc := range []string{`[]`, `"x"`, `12`, `{"a":1} {"b":2}`, `{"a":`} {
		if _, err := DecodePayload([]byte(doc)); err == nil {
			t.Errorf("DecodePayload(%s) succeeded, want error", doc)
		}
	}
}

func TestPayloadIntegerKinds(t *testing.T) {
	p := NewPayload().
		With("int", 50).
		With("uint8", uint8(50)).
		With("int32", int32(-7)).
		With("uint", uint(3)).
		With("max", uint64(math.MaxUint64)).
		With("list", []any{1, uint16(2)})

	want := map[string]any{
		"int":   int64(50),
		"uint8": int64(50),
		"int32": int64(-7),
		"uint":  int64(3),
		"max":   uint64(math.MaxUint64),
	}
	for k, w := range want {
		if got, _ := p.Get(k); got != w {
			t.Errorf("Get(%q) = %v (%T), want %v (%T)", k, got, got, w, w)
		}
	}

	data, err := p.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(data) != `{"int":50,"uint8":50,"int32":-7,"uint":3,"max":18446744073709551615,"list":[1,2]}` {
		t.Errorf("MarshalJSON = %s", data)
	}

	decoded, err := DecodePayload(data)
	if err != nil {
		t.Fatalf("DecodePayload failed: %v", err)
	}
	if !decoded.Equal(p) {
		t.Errorf("decoded %s not Equal to %s", decoded, p)
	}
	if got, _ := decoded.Get("max"); got != uint64(math.MaxUint64) {
		t.Errorf("decoded max = %v (%T), want uint64", got, got)
	}
}

func TestPayloadNilIsEmpty(t *testing.T) {
	var p *Payload

	if p.Len() != 0 || p.Has("x") || p.Keys() != nil {
		t.Error("nil payload should behave as empty")
	}
	data, err := p.MarshalJSON()
	if err != nil || string(data) != "null" {
		t.Errorf("MarshalJSON() = %s, %v", data, err)
	}
	for range p.All() {
		t.Error("nil payload yielded an entry")
	}
}

func TestPayloadNoHTMLEscaping(t *testing.T) {
	p := NewPayload().With("ssid", "a&b<c>")
	if got := p.String(); got != `{"ssid":"a&b<c>"}` {
		t.Errorf("String() = %s", got)
	}
}

func TestOperationMapping(t *testing.T) {
	tests := []struct {
		op        Operation
		method    string
		path      string
		encrypted bool
	}{
		{OpHandshake, "PUT", PathSecurity, false},
		{OpRead, "GET", PathAir, true},
		{OpWrite, "PUT", PathAir, true},
		{OpNetwork, "GET", PathWifi, true},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			if !tt.op.IsValid() {
				t.Error("IsValid() = false")
			}
			if tt.op.Method() != tt.method {
				t.Errorf("Method() = %q, want %q", tt.op.Method(), tt.method)
			}
			if tt.op.Path() != tt.path {
				t.Errorf("Path() = %q, want %q", tt.op.Path(), tt.path)
			}
			if tt.op.IsEncrypted() != tt.encrypted {
				t.Errorf("IsEncrypted() = %v, want %v", tt.op.IsEncrypted(), tt.encrypted)
			}
		})
	}

	if Operation(0).IsValid() || Operation(9).String() != "Unknown" {
		t.Error("out-of-range operation should be invalid")
	}
}

func TestHandshakeMessages(t *testing.T) {
	data, err := EncodeHandshakeRequest(HandshakeRequest{Diffie: "abc"})
	if err != nil {
		t.Fatalf("EncodeHandshakeRequest failed: %v", err)
	}
	if string(data) != `{"diffie":"abc"}` {
		t.Errorf("encoded = %s", data)
	}

	if _, err := EncodeHandshakeRequest(HandshakeRequest{}); err == nil {
		t.Error("empty request should fail")
	}

	resp, err := DecodeHandshakeResponse([]byte(`{"hellman":"01","key":"02","extra":1}`))
	if err != nil {
		t.Fatalf("DecodeHandshakeResponse failed: %v", err)
	}
	if resp.Hellman != "01" || resp.Key != "02" {
		t.Errorf("decoded = %+v", resp)
	}

	if _, err := DecodeHandshakeResponse([]byte("<html>")); err == nil {
		t.Error("non-JSON response should fail")
	}
}

func TestParseOperation(t *testing.T) {
	for _, s := range []string{"handshake", "Read", "WRITE", "network"} {
		op, err := ParseOperation(s)
		if err != nil {
			t.Errorf("ParseOperation(%q) failed: %v", s, err)
			continue
		}
		if !op.IsValid() {
			t.Errorf("ParseOperation(%q) = %v, not valid", s, op)
		}
	}
	if _, err := ParseOperation("delete"); err == nil {
		t.Error("ParseOperation(delete) should fail")
	}
}
