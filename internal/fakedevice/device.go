// Package fakedevice provides an in-process purifier for tests. It serves
// the device side of the handshake and envelope over httptest.
package fakedevice

import (
	"crypto/rand"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/purifier-protocol/purifier-go/pkg/envelope"
	"github.com/purifier-protocol/purifier-go/pkg/handshake"
	"github.com/purifier-protocol/purifier-go/pkg/wire"
)

// DefaultState is the air state of the device when none is configured.
const DefaultState = `{"om":"0","pwr":"0","cl":false,"aqil":50,"uil":"1","dt":0,"dtrs":0,"mode":"A","pm25":5,"iaql":2,"aqit":0,"ddp":"1","err":193}`

// DefaultNetwork is the network document of the device when none is configured.
const DefaultNetwork = `{"ssid":"FunBox3-6CF2","password":"","protection":"wpa-2","ipaddress":"192.168.1.21","netmask":"255.255.255.0","gateway":"192.168.1.1","dhcp":true,"macaddress":"e8:c1:d7:07:db:9a","cppid":"e8c1d7fffe07db9a"}`

// Request is a request the device received.
type Request struct {
	Method string
	Path   string
	Body   string
}

// Handlers holds optional callbacks. A non-nil return from a handler is
// written as the raw response body, bypassing the built-in behaviour.
type Handlers struct {
	// OnHandshake replaces the handshake response.
	OnHandshake func(req wire.HandshakeRequest) []byte

	// OnRead replaces the encrypted air state response.
	OnRead func() []byte

	// OnWrite is called with each decrypted write.
	OnWrite func(params *wire.Payload) []byte
}

// Device is a fake purifier.
type Device struct {
	// Handlers are callbacks for specific operations.
	Handlers Handlers

	server  *httptest.Server
	keyRand io.Reader

	mu       sync.Mutex
	key      handshake.SessionKey
	hasKey   bool
	state    *wire.Payload
	network  *wire.Payload
	requests []Request
	status   map[string]int
}

// Option configures a Device.
type Option func(*Device)

// WithSessionKey makes every handshake hand out key.
func WithSessionKey(key handshake.SessionKey) Option {
	return func(d *Device) {
		d.keyRand = strings.NewReader(strings.Repeat(string(key[:]), 1024))
	}
}

// WithState sets the initial air state.
func WithState(p *wire.Payload) Option {
	return func(d *Device) { d.state = p.Clone() }
}

// WithNetwork sets the network document.
func WithNetwork(p *wire.Payload) Option {
	return func(d *Device) { d.network = p.Clone() }
}

// New starts a fake device. Call Close when done.
func New(opts ...Option) *Device {
	d := &Device{
		keyRand: rand.Reader,
		state:   mustDecode(DefaultState),
		network: mustDecode(DefaultNetwork),
		status:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(d)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("PUT "+wire.PathSecurity, d.handleHandshake)
	mux.HandleFunc("GET "+wire.PathAir, d.handleRead)
	mux.HandleFunc("PUT "+wire.PathAir, d.handleWrite)
	mux.HandleFunc("GET "+wire.PathWifi, d.handleNetwork)
	d.server = httptest.NewServer(d.record(mux))
	return d
}

// Addr returns host:port of the device.
func (d *Device) Addr() string {
	return strings.TrimPrefix(d.server.URL, "http://")
}

// Close stops the server.
func (d *Device) Close() {
	d.server.Close()
}

// Key returns the last negotiated session key.
func (d *Device) Key() (handshake.SessionKey, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.key, d.hasKey
}

// State returns a copy of the current air state.
func (d *Device) State() *wire.Payload {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.Clone()
}

// SetState replaces the air state.
func (d *Device) SetState(p *wire.Payload) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = p.Clone()
}

// FailWith makes every request to path answer with status. Zero clears.
func (d *Device) FailWith(path string, status int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if status == 0 {
		delete(d.status, path)
		return
	}
	d.status[path] = status
}

// Requests returns the requests received so far.
func (d *Device) Requests() []Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Request, len(d.requests))
	copy(out, d.requests)
	return out
}

// RequestCount returns how many requests were received.
func (d *Device) RequestCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.requests)
}

func (d *Device) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		d.mu.Lock()
		d.requests = append(d.requests, Request{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		status := d.status[r.URL.Path]
		d.mu.Unlock()

		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (d *Device) handleHandshake(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	req, err := wire.DecodeHandshakeRequest(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if d.Handlers.OnHandshake != nil {
		if out := d.Handlers.OnHandshake(req); out != nil {
			w.Write(out)
			return
		}
	}

	var key handshake.SessionKey
	d.mu.Lock()
	_, err = io.ReadFull(d.keyRand, key[:])
	d.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp, err := handshake.NewResponder(key, nil).Respond(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d.mu.Lock()
	d.key, d.hasKey = key, true
	d.mu.Unlock()

	json.NewEncoder(w).Encode(resp)
}

func (d *Device) handleRead(w http.ResponseWriter, r *http.Request) {
	if d.Handlers.OnRead != nil {
		if out := d.Handlers.OnRead(); out != nil {
			w.Write(out)
			return
		}
	}
	d.seal(w, d.State())
}

func (d *Device) handleWrite(w http.ResponseWriter, r *http.Request) {
	codec, ok := d.codec(w)
	if !ok {
		return
	}
	body, _ := io.ReadAll(r.Body)
	params, err := codec.Open(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if d.Handlers.OnWrite != nil {
		if out := d.Handlers.OnWrite(params); out != nil {
			w.Write(out)
			return
		}
	}

	d.mu.Lock()
	for k, v := range params.All() {
		d.state.Set(k, v)
	}
	d.mu.Unlock()

	d.seal(w, d.State())
}

func (d *Device) handleNetwork(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	network := d.network.Clone()
	d.mu.Unlock()
	d.seal(w, network)
}

func (d *Device) codec(w http.ResponseWriter) (*envelope.Codec, bool) {
	d.mu.Lock()
	key, ok := d.key, d.hasKey
	d.mu.Unlock()
	if !ok {
		http.Error(w, "no session", http.StatusForbidden)
		return nil, false
	}
	codec, err := envelope.NewCodec(key[:])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return codec, true
}

func (d *Device) seal(w http.ResponseWriter, p *wire.Payload) {
	codec, ok := d.codec(w)
	if !ok {
		return
	}
	body, err := codec.Seal(p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Write(body)
}

func mustDecode(doc string) *wire.Payload {
	p, err := wire.DecodePayload([]byte(doc))
	if err != nil {
		panic(err)
	}
	return p
}
