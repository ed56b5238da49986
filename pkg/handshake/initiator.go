package handshake

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	"github.com/purifier-protocol/purifier-go/pkg/envelope"
	"github.com/purifier-protocol/purifier-go/pkg/wire"
)

// Initiator runs the client side of one key exchange.
type Initiator struct {
	exponent *big.Int
	public   *big.Int
}

// NewInitiator draws the private exponent from r. A nil r uses crypto/rand.
func NewInitiator(r io.Reader) (*Initiator, error) {
	if r == nil {
		r = rand.Reader
	}
	a, err := readExponent(r)
	if err != nil {
		return nil, fmt.Errorf("%w: exponent: %v", ErrHandshakeFailed, err)
	}
	return &Initiator{
		exponent: a,
		public:   new(big.Int).Exp(generator, a, modulus),
	}, nil
}

// Request returns the message carrying our public value A.
func (i *Initiator) Request() wire.HandshakeRequest {
	return wire.HandshakeRequest{Diffie: i.public.Text(16)}
}

// Complete derives the session key from the device's response. The
// exponent is wiped afterwards, whatever the outcome.
func (i *Initiator) Complete(resp wire.HandshakeResponse) (SessionKey, error) {
	if i.exponent == nil {
		return SessionKey{}, ErrAlreadyCompleted
	}
	defer i.wipe()

	if resp.Hellman == "" || resp.Key == "" {
		return SessionKey{}, fmt.Errorf("%w: response is missing hellman or key", ErrHandshakeFailed)
	}

	b, ok := new(big.Int).SetString(resp.Hellman, 16)
	if !ok {
		return SessionKey{}, fmt.Errorf("%w: hellman is not hex", ErrHandshakeFailed)
	}
	if !validPublic(b) {
		return SessionKey{}, fmt.Errorf("%w: hellman out of range", ErrHandshakeFailed)
	}

	seed, err := hex.DecodeString(resp.Key)
	if err != nil {
		return SessionKey{}, fmt.Errorf("%w: key is not hex: %v", ErrHandshakeFailed, err)
	}
	if len(seed) == 0 || len(seed)%SessionKeySize != 0 {
		return SessionKey{}, fmt.Errorf("%w: key length %d", ErrHandshakeFailed, len(seed))
	}

	plain, err := envelope.DecryptBlocks(sharedKey(b, i.exponent), seed)
	if err != nil {
		return SessionKey{}, fmt.Errorf("%w: decrypt key: %v", ErrHandshakeFailed, err)
	}

	var key SessionKey
	copy(key[:], plain)
	clear(plain)
	return key, nil
}

func (i *Initiator) wipe() {
	i.exponent.SetInt64(0)
	i.exponent = nil
}

// ParseResponse decodes a device's handshake response body.
func ParseResponse(body []byte) (wire.HandshakeResponse, error) {
	resp, err := wire.DecodeHandshakeResponse(body)
	if err != nil {
		return wire.HandshakeResponse{}, fmt.Errorf("%w: decode response: %v", ErrHandshakeFailed, err)
	}
	if resp.Hellman == "" || resp.Key == "" {
		return wire.HandshakeResponse{}, fmt.Errorf("%w: response is missing hellman or key", ErrHandshakeFailed)
	}
	return resp, nil
}

