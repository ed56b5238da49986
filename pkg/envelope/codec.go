package envelope

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/purifier-protocol/purifier-go/pkg/wire"
)

const (
	// KeySize is the AES-128 key length.
	KeySize = 16

	// FillerSize is the number of random bytes prepended to every plaintext.
	FillerSize = 2
)

// Codec seals and opens envelopes under one key.
type Codec struct {
	block  cipher.Block
	filler io.Reader
}

// Option configures a Codec.
type Option func(*Codec)

// WithFiller sets the source of the filler bytes. Defaults to crypto/rand.
func WithFiller(r io.Reader) Option {
	return func(c *Codec) {
		c.filler = r
	}
}

// NewCodec creates a codec bound to key.
func NewCodec(key []byte, opts ...Option) (*Codec, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}
	c := &Codec{block: block, filler: rand.Reader}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Seal encrypts a payload into a request body. A nil payload seals as {}.
func (c *Codec) Seal(p *wire.Payload) ([]byte, error) {
	if p == nil {
		p = wire.NewPayload()
	}
	doc, err := p.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("envelope: encode payload: %w", err)
	}

	plain := make([]byte, FillerSize, FillerSize+len(doc))
	if _, err := io.ReadFull(c.filler, plain); err != nil {
		return nil, fmt.Errorf("envelope: read filler: %w", err)
	}
	plain = append(plain, doc...)

	ct, err := encryptBlocks(c.block, Pad(plain, aes.BlockSize))
	if err != nil {
		return nil, err
	}

	out := make([]byte, base64.StdEncoding.EncodedLen(len(ct)))
	base64.StdEncoding.Encode(out, ct)
	return out, nil
}

// Open decrypts a response body into a payload.
func (c *Codec) Open(body []byte) (*wire.Payload, error) {
	body = bytes.TrimSpace(body)
	ct := make([]byte, base64.StdEncoding.DecodedLen(len(body)))
	n, err := base64.StdEncoding.Decode(ct, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseDecoding, err)
	}

	plain, err := decryptBlocks(c.block, ct[:n])
	if err != nil {
		return nil, err
	}
	plain, err = Unpad(plain, aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvelopeMismatch, err)
	}
	if len(plain) < FillerSize {
		return nil, fmt.Errorf("%w: plaintext too short", ErrEnvelopeMismatch)
	}

	doc := plain[FillerSize:]
	if !utf8.Valid(doc) {
		return nil, fmt.Errorf("%w: plaintext is not valid UTF-8", ErrEnvelopeMismatch)
	}

	p, err := wire.DecodePayload(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvelopeMismatch, err)
	}
	return p, nil
}

// Encrypt seals a payload under key with random filler bytes.
func Encrypt(key []byte, p *wire.Payload) ([]byte, error) {
	c, err := NewCodec(key)
	if err != nil {
		return nil, err
	}
	return c.Seal(p)
}

// Decrypt opens a response body under key.
func Decrypt(key, body []byte) (*wire.Payload, error) {
	c, err := NewCodec(key)
	if err != nil {
		return nil, err
	}
	return c.Open(body)
}
