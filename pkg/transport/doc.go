// Package transport carries request and response bodies to a device over
// plain HTTP.
//
// The device speaks HTTP/1.1 on port 80 with no TLS. Bodies are opaque to
// this package: the handshake is cleartext JSON, everything after it is an
// envelope produced by package envelope.
//
//	PUT /di/v1/products/0/security   handshake
//	GET /di/v1/products/1/air        read state
//	PUT /di/v1/products/1/air        write parameters
//	GET /di/v1/products/0/wifi       read network settings
//
// Requests bypass any configured HTTP proxy unless UseProxy is set, since
// the device is always on the local network.
package transport
