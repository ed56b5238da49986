// Package wire defines the JSON wire types of the purifier HTTP API.
//
// The device speaks JSON over plain HTTP. Only the handshake travels in the
// clear; every other body is an encrypted envelope (see package envelope)
// whose plaintext is a JSON object.
//
// # Endpoints
//
//	PUT /di/v1/products/0/security  handshake ({"diffie": ...} -> {"hellman": ..., "key": ...})
//	GET /di/v1/products/1/air       read air state
//	PUT /di/v1/products/1/air       write parameters, device echoes full state
//	GET /di/v1/products/0/wifi      read network settings
//
// # Payloads
//
// Payload is an ordered mapping from parameter name to value. Requests keep
// the caller's insertion order and responses keep the document order, so a
// decoded response re-encodes to the same key sequence. Values decode to
// string, bool, int64 (integral numbers), float64, nil, []any or *Payload
// (nested objects).
package wire
