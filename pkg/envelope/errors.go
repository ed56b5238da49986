package envelope

import "errors"

// Envelope errors.
var (
	// ErrInvalidKeySize is returned when a key is not KeySize bytes.
	ErrInvalidKeySize = errors.New("envelope: key must be 16 bytes")

	// ErrResponseDecoding means the body is not valid base64.
	ErrResponseDecoding = errors.New("response decoding failed")

	// ErrEnvelopeMismatch means the body decoded but did not decrypt to a
	// JSON object under the key.
	ErrEnvelopeMismatch = errors.New("envelope mismatch")

	// ErrInvalidPadding is returned by Unpad for malformed PKCS#7 padding.
	ErrInvalidPadding = errors.New("invalid padding")
)
