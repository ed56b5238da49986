package handshake

import "encoding/hex"

// SessionKey is the negotiated AES-128 key.
type SessionKey [SessionKeySize]byte

// String returns the key as lowercase hex.
func (k SessionKey) String() string {
	return hex.EncodeToString(k[:])
}

// Bytes returns a copy of the key.
func (k SessionKey) Bytes() []byte {
	out := make([]byte, SessionKeySize)
	copy(out, k[:])
	return out
}

// IsZero reports whether the key is unset.
func (k SessionKey) IsZero() bool {
	return k == SessionKey{}
}
