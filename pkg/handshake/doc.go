// Package handshake implements the key exchange that yields a session key.
//
// The client picks a 256-bit exponent a and sends A = g^a mod p as hex.
// The device answers with its public value B and a seed encrypted under the
// first 16 bytes of the shared secret S = B^a mod p. The session key is the
// first 16 bytes of the decrypted seed.
//
// The group (g, p) is fixed by the device firmware. Nothing in the exchange
// authenticates the device, so an attacker on the local network can sit in
// the middle of a session. Callers that need more than LAN-level trust must
// provide it elsewhere.
package handshake
