package wire

// HandshakeRequest is the cleartext body sent to PathSecurity.
type HandshakeRequest struct {
	// Diffie is the local public value A, lowercase hex without leading zeros.
	Diffie string `json:"diffie"`
}

// HandshakeResponse is the cleartext body returned by PathSecurity.
type HandshakeResponse struct {
	// Hellman is the device public value B, hex encoded.
	Hellman string `json:"hellman"`

	// Key is the encrypted session key seed, hex encoded.
	Key string `json:"key"`
}
