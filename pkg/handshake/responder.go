package handshake

import (
	"crypto/aes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	"github.com/purifier-protocol/purifier-go/pkg/envelope"
	"github.com/purifier-protocol/purifier-go/pkg/wire"
)

// Responder answers key exchanges on the device side, handing out a fixed
// session key.
type Responder struct {
	key  SessionKey
	rand io.Reader
}

// NewResponder creates a responder handing out key. A nil r uses
// crypto/rand for the device exponent.
func NewResponder(key SessionKey, r io.Reader) *Responder {
	if r == nil {
		r = rand.Reader
	}
	return &Responder{key: key, rand: r}
}

// Key returns the session key the responder hands out.
func (r *Responder) Key() SessionKey {
	return r.key
}

// Respond answers one request.
func (r *Responder) Respond(req wire.HandshakeRequest) (wire.HandshakeResponse, error) {
	a, ok := new(big.Int).SetString(req.Diffie, 16)
	if !ok || !validPublic(a) {
		return wire.HandshakeResponse{}, fmt.Errorf("%w: invalid diffie value", ErrHandshakeFailed)
	}

	b, err := readExponent(r.rand)
	if err != nil {
		return wire.HandshakeResponse{}, fmt.Errorf("%w: exponent: %v", ErrHandshakeFailed, err)
	}
	defer b.SetInt64(0)

	seed, err := envelope.EncryptBlocks(sharedKey(a, b), envelope.Pad(r.key[:], aes.BlockSize))
	if err != nil {
		return wire.HandshakeResponse{}, fmt.Errorf("%w: encrypt key: %v", ErrHandshakeFailed, err)
	}

	return wire.HandshakeResponse{
		Hellman: new(big.Int).Exp(generator, b, modulus).Text(16),
		Key:     hex.EncodeToString(seed),
	}, nil
}
