package discovery

import (
	"errors"
	"slices"
	"strings"
	"time"
)

const (
	// DefaultService is the DNS-SD service type purifiers advertise.
	DefaultService = "_http._tcp"

	// Domain is the mDNS domain.
	Domain = "local."

	// BrowseTimeout bounds a lookup when the context has no deadline.
	BrowseTimeout = 5 * time.Second
)

var (
	// ErrHostNotFound means a host could not be resolved by any method.
	ErrHostNotFound = errors.New("host not found")

	// ErrNotFound means a browse ended without a matching service.
	ErrNotFound = errors.New("service not found")
)

// Service is a device seen on the network.
type Service struct {
	// Instance is the DNS-SD instance name.
	Instance string

	// Host is the advertised host name without the trailing dot.
	Host string

	Port      int
	Addresses []string

	// Text holds the TXT record as key/value pairs.
	Text map[string]string
}

// IPv4 returns the first IPv4 address, or the first address of any kind.
func (s *Service) IPv4() string {
	return preferIPv4(s.Addresses)
}

func (s *Service) clone() *Service {
	out := *s
	out.Addresses = slices.Clone(s.Addresses)
	return &out
}

// parseTXT splits key=value strings. Keys without '=' map to "".
func parseTXT(strs []string) map[string]string {
	txt := make(map[string]string, len(strs))
	for _, s := range strs {
		k, v, _ := strings.Cut(s, "=")
		if k != "" {
			txt[k] = v
		}
	}
	return txt
}

// normalizeHost lowercases a host name and strips the trailing dot.
func normalizeHost(h string) string {
	return strings.ToLower(strings.TrimSuffix(h, "."))
}

// trimLocal strips a trailing ".local" label.
func trimLocal(h string) string {
	h = strings.TrimSuffix(h, ".")
	if len(h) > len(".local") && strings.EqualFold(h[len(h)-len(".local"):], ".local") {
		return h[:len(h)-len(".local")]
	}
	return h
}

// isLocal reports whether h is in the .local mDNS domain.
func isLocal(h string) bool {
	return trimLocal(h) != strings.TrimSuffix(h, ".")
}
