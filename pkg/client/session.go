package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/purifier-protocol/purifier-go/pkg/discovery"
	"github.com/purifier-protocol/purifier-go/pkg/envelope"
	"github.com/purifier-protocol/purifier-go/pkg/handshake"
	"github.com/purifier-protocol/purifier-go/pkg/log"
	"github.com/purifier-protocol/purifier-go/pkg/schema"
	"github.com/purifier-protocol/purifier-go/pkg/transport"
	"github.com/purifier-protocol/purifier-go/pkg/wire"
)

// Config configures a Session.
type Config struct {
	// Host is the device host name or address used when Connect is called
	// without one.
	Host string

	// Transport issues the HTTP requests (default: transport.NewHTTPClient).
	Transport transport.Transport

	// Resolver turns Host into an address (default: discovery.NewResolver).
	Resolver discovery.Resolver

	// Rand is the source of the key exchange exponent (default: crypto/rand).
	Rand io.Reader

	// Filler is the source of the envelope filler bytes (default: crypto/rand).
	Filler io.Reader

	// Logger is used for debug logging. Nil disables.
	Logger *slog.Logger

	// ProtocolLogger receives protocol events. Nil disables.
	ProtocolLogger log.Logger
}

// Session is the state shared by all operations on one device: its
// address, the session key and the connection state.
type Session struct {
	config    Config
	transport transport.Transport
	resolver  discovery.Resolver
	logger    *slog.Logger
	plog      log.Logger

	host         string
	resolvedHost string
	addr         string
	state        State
	key          handshake.SessionKey
	codec        *envelope.Codec
	connID       string
}

// New creates a disconnected Session.
func New(config Config) *Session {
	s := &Session{
		config:    config,
		transport: config.Transport,
		resolver:  config.Resolver,
		logger:    config.Logger,
		plog:      config.ProtocolLogger,
		host:      config.Host,
	}
	if s.transport == nil {
		s.transport = transport.NewHTTPClient(transport.ClientConfig{Logger: config.Logger})
	}
	if s.resolver == nil {
		s.resolver = discovery.NewResolver(discovery.ResolverConfig{Logger: config.Logger})
	}
	return s
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Host returns the host of the last Connect, or the configured one.
func (s *Session) Host() string {
	return s.host
}

// Address returns the resolved device address. It is empty until the
// first successful resolution.
func (s *Session) Address() string {
	return s.addr
}

// ConnectionID returns the identifier of the current connection, or ""
// when disconnected.
func (s *Session) ConnectionID() string {
	if s.state != StateConnected {
		return ""
	}
	return s.connID
}

// Connect runs the key exchange with host. An empty host uses the one the
// Session was configured with. The address is resolved when none is bound
// yet or when host differs from the previous one.
//
// Connecting a connected Session replaces its key. On failure the Session
// is left disconnected.
func (s *Session) Connect(ctx context.Context, host string) error {
	if host == "" {
		host = s.host
	}
	if host == "" {
		return ErrNoHost
	}

	if s.state == StateConnected {
		s.drop("reconnect")
	}
	s.host = host

	if s.addr == "" || host != s.resolvedHost {
		addr, err := s.resolver.Resolve(ctx, host)
		if err != nil {
			s.debugLog("resolve failed", "host", host, "error", err)
			return err
		}
		s.debugLog("resolved", "host", host, "addr", addr)
		s.addr, s.resolvedHost = addr, host
	}

	connID := uuid.New().String()
	key, err := s.handshake(ctx, connID)
	if err != nil {
		s.logError(connID, log.LayerSession, err, "connect")
		return err
	}

	codec, err := envelope.NewCodec(key[:], s.codecOptions()...)
	if err != nil {
		return err
	}

	s.key = key
	s.codec = codec
	s.connID = connID
	s.setState(StateConnected, "handshake complete")
	return nil
}

// Disconnect drops the session key. The resolved address is kept, so a
// later Connect to the same host does not resolve again.
func (s *Session) Disconnect() {
	if s.state != StateConnected {
		return
	}
	s.drop("disconnect")
}

// Get reads the air state. With names, only those fields are returned; a
// name the device did not report fails with ErrUnknownResponseField.
func (s *Session) Get(ctx context.Context, names ...string) (*wire.Payload, error) {
	if s.state != StateConnected {
		return nil, ErrNotConnected
	}

	data, err := s.exchange(ctx, wire.OpRead, nil)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return data, nil
	}
	return schema.FilterResponse(data, names...)
}

// Set validates params and writes them to the device. It returns the full
// state the device echoes back. Validation happens before any I/O, so a
// rejected write never reaches the device.
func (s *Session) Set(ctx context.Context, params *wire.Payload) (*wire.Payload, error) {
	if s.state != StateConnected {
		return nil, ErrNotConnected
	}
	if err := schema.ValidateRequest(params); err != nil {
		return nil, err
	}
	return s.exchange(ctx, wire.OpWrite, params)
}

// Network reads the device's network settings.
func (s *Session) Network(ctx context.Context) (*wire.Payload, error) {
	if s.state != StateConnected {
		return nil, ErrNotConnected
	}
	return s.exchange(ctx, wire.OpNetwork, nil)
}

// Status reads the air state and decodes the well-known fields.
func (s *Session) Status(ctx context.Context) (*Status, error) {
	data, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return ParseStatus(data), nil
}

func (s *Session) handshake(ctx context.Context, connID string) (handshake.SessionKey, error) {
	initiator, err := handshake.NewInitiator(s.config.Rand)
	if err != nil {
		return handshake.SessionKey{}, err
	}

	body, err := wire.EncodeHandshakeRequest(initiator.Request())
	if err != nil {
		return handshake.SessionKey{}, fmt.Errorf("%w: %v", ErrHandshakeFailed, err)
	}

	respBody, err := s.roundTrip(ctx, connID, wire.OpHandshake, body)
	if err != nil {
		return handshake.SessionKey{}, fmt.Errorf("%w: %w", ErrHandshakeFailed, err)
	}

	resp, err := handshake.ParseResponse(respBody)
	if err != nil {
		return handshake.SessionKey{}, err
	}
	return initiator.Complete(resp)
}

// exchange seals params (when the operation carries a body), performs the
// round trip and opens the response.
func (s *Session) exchange(ctx context.Context, op wire.Operation, params *wire.Payload) (*wire.Payload, error) {
	if !op.IsEncrypted() {
		return nil, fmt.Errorf("%s has no envelope", op)
	}

	var body []byte
	if op.Method() == http.MethodPut {
		sealed, err := s.codec.Seal(params)
		if err != nil {
			return nil, err
		}
		s.logEnvelope(log.DirectionOut, op, len(sealed), params)
		body = sealed
	}

	respBody, err := s.roundTrip(ctx, s.connID, op, body)
	if err != nil {
		return nil, err
	}

	data, err := s.codec.Open(respBody)
	if err != nil {
		s.logError(s.connID, log.LayerEnvelope, err, op.String())
		return nil, fmt.Errorf("%s %s: %w", op.Method(), op.Path(), err)
	}
	s.logEnvelope(log.DirectionIn, op, len(respBody), data)
	return data, nil
}

func (s *Session) roundTrip(ctx context.Context, connID string, op wire.Operation, body []byte) ([]byte, error) {
	s.logRequest(connID, op, len(body))
	start := time.Now()

	var resp []byte
	var err error
	if op.Method() == http.MethodGet {
		resp, err = s.transport.Get(ctx, s.addr, op.Path())
	} else {
		resp, err = s.transport.Put(ctx, s.addr, op.Path(), body)
	}
	elapsed := time.Now().Sub(start)

	if err != nil {
		var statusErr *transport.StatusError
		if errors.As(err, &statusErr) {
			s.logResponse(connID, op, 0, statusErr.StatusCode, elapsed)
		}
		s.logError(connID, log.LayerTransport, err, op.String())
		s.debugLog("round trip failed", "op", op, "error", err)
		return nil, err
	}

	s.logResponse(connID, op, len(resp), 0, elapsed)
	return resp, nil
}

func (s *Session) codecOptions() []envelope.Option {
	if s.config.Filler == nil {
		return nil
	}
	return []envelope.Option{envelope.WithFiller(s.config.Filler)}
}

func (s *Session) drop(reason string) {
	s.key = handshake.SessionKey{}
	s.codec = nil
	s.setState(StateDisconnected, reason)
	s.connID = ""
}

func (s *Session) setState(state State, reason string) {
	old := s.state
	s.state = state
	s.debugLog("state changed", "from", old, "to", state, "reason", reason)
	s.logState(old, state, reason)
}

func (s *Session) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
