package wire

import (
	"encoding/json"
	"fmt"
)

// EncodeHandshakeRequest encodes the cleartext handshake request body.
func EncodeHandshakeRequest(req HandshakeRequest) ([]byte, error) {
	if req.Diffie == "" {
		return nil, fmt.Errorf("invalid handshake request: empty public value")
	}
	return json.Marshal(req)
}

// DecodeHandshakeRequest decodes a cleartext handshake request body.
func DecodeHandshakeRequest(data []byte) (HandshakeRequest, error) {
	var req HandshakeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return HandshakeRequest{}, fmt.Errorf("failed to decode handshake request: %w", err)
	}
	if req.Diffie == "" {
		return HandshakeRequest{}, fmt.Errorf("invalid handshake request: missing diffie")
	}
	return req, nil
}

// EncodeHandshakeResponse encodes the cleartext handshake response body.
func EncodeHandshakeResponse(resp HandshakeResponse) ([]byte, error) {
	return json.Marshal(resp)
}

// DecodeHandshakeResponse decodes a cleartext handshake response body.
// Missing fields are left empty; callers decide whether that is fatal.
func DecodeHandshakeResponse(data []byte) (HandshakeResponse, error) {
	var resp HandshakeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return HandshakeResponse{}, fmt.Errorf("failed to decode handshake response: %w", err)
	}
	return resp, nil
}
