// Package envelope implements the symmetric encryption envelope that wraps
// every request and response body after the handshake.
//
// Sealing a payload:
//
//	compact JSON -> 2 random filler bytes prepended -> PKCS#7 (16)
//	-> AES-128-CBC with an all-zero IV -> standard base64
//
// Opening reverses the steps. A body that is not valid base64 fails with
// ErrResponseDecoding; a body that decodes but does not decrypt to a JSON
// object under the key fails with ErrEnvelopeMismatch. The two never alias,
// so callers can tell a corrupted transport from a wrong key.
//
// The IV is constant. Equal plaintexts with equal filler bytes produce equal
// ciphertexts, and the two filler bytes are the only per-message variation.
// The device requires this scheme.
package envelope
