package wire

import (
	"fmt"
	"net/http"
	"strings"
)

// Operation represents a purifier API operation.
type Operation uint8

const (
	// OpHandshake exchanges public values and establishes the session key.
	OpHandshake Operation = 1

	// OpRead gets the current air state.
	OpRead Operation = 2

	// OpWrite sets parameters. The device answers with the full state.
	OpWrite Operation = 3

	// OpNetwork gets the network settings.
	OpNetwork Operation = 4
)

// Endpoint paths.
const (
	PathSecurity = "/di/v1/products/0/security"
	PathAir      = "/di/v1/products/1/air"
	PathWifi     = "/di/v1/products/0/wifi"
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OpHandshake:
		return "Handshake"
	case OpRead:
		return "Read"
	case OpWrite:
		return "Write"
	case OpNetwork:
		return "Network"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the operation is a known operation.
func (o Operation) IsValid() bool {
	return o >= OpHandshake && o <= OpNetwork
}

// Method returns the HTTP method used for the operation.
func (o Operation) Method() string {
	switch o {
	case OpRead, OpNetwork:
		return http.MethodGet
	case OpHandshake, OpWrite:
		return http.MethodPut
	default:
		return ""
	}
}

// Path returns the endpoint path used for the operation.
func (o Operation) Path() string {
	switch o {
	case OpHandshake:
		return PathSecurity
	case OpRead, OpWrite:
		return PathAir
	case OpNetwork:
		return PathWifi
	default:
		return ""
	}
}

// IsEncrypted returns true if request and response bodies of the operation
// are wrapped in the encryption envelope.
func (o Operation) IsEncrypted() bool {
	return o == OpRead || o == OpWrite || o == OpNetwork
}

// ParseOperation parses an operation name (case-insensitive).
func ParseOperation(s string) (Operation, error) {
	for o := OpHandshake; o.IsValid(); o++ {
		if strings.EqualFold(s, o.String()) {
			return o, nil
		}
	}
	return 0, fmt.Errorf("invalid operation: %s (must be handshake, read, write, or network)", s)
}
