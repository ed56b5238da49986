package client

import (
	"errors"

	"github.com/purifier-protocol/purifier-go/pkg/discovery"
	"github.com/purifier-protocol/purifier-go/pkg/envelope"
	"github.com/purifier-protocol/purifier-go/pkg/handshake"
	"github.com/purifier-protocol/purifier-go/pkg/schema"
	"github.com/purifier-protocol/purifier-go/pkg/transport"
)

// Session errors.
var (
	ErrNotConnected = errors.New("not connected")
	ErrNoHost       = errors.New("no host configured")
)

// Errors from the lower layers, re-exported so callers only need this
// package for errors.Is checks.
var (
	ErrHandshakeFailed      = handshake.ErrHandshakeFailed
	ErrUnknownParameter     = schema.ErrUnknownParameter
	ErrInvalidValue         = schema.ErrInvalidValue
	ErrNoParametersProvided = schema.ErrNoParametersProvided
	ErrUnknownResponseField = schema.ErrUnknownResponseField
	ErrResponseDecoding     = envelope.ErrResponseDecoding
	ErrEnvelopeMismatch     = envelope.ErrEnvelopeMismatch
	ErrHostNotFound         = discovery.ErrHostNotFound
	ErrUnexpectedStatus     = transport.ErrUnexpectedStatus
)
