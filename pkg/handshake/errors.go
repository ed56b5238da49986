package handshake

import "errors"

var (
	// ErrHandshakeFailed covers every way a key exchange can fail: malformed
	// response, out-of-range public value, undecryptable seed.
	ErrHandshakeFailed = errors.New("handshake failed")

	// ErrAlreadyCompleted is returned when an Initiator is reused.
	ErrAlreadyCompleted = errors.New("handshake: initiator already completed")
)
