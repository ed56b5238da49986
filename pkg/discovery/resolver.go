package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
)

// Resolver turns a host name into a device address.
type Resolver interface {
	Resolve(ctx context.Context, host string) (string, error)
}

// LookupFunc resolves a name to addresses, like net.Resolver.LookupHost.
type LookupFunc func(ctx context.Context, host string) ([]string, error)

// ResolverConfig configures a HostResolver.
type ResolverConfig struct {
	// Lookup performs DNS resolution (default: net.DefaultResolver.LookupHost).
	Lookup LookupFunc

	// Browser is used for .local names DNS cannot resolve. Defaults to an
	// MDNSBrowser for Service. Set DisableMDNS to skip that step.
	Browser *MDNSBrowser

	// Service is the DNS-SD service type of the default browser.
	Service string

	DisableMDNS bool

	// Logger is used for debug logging. Nil disables.
	Logger *slog.Logger
}

// HostResolver resolves literals, DNS names and mDNS names.
type HostResolver struct {
	lookup  LookupFunc
	browser *MDNSBrowser
	logger  *slog.Logger
}

// NewResolver creates a HostResolver.
func NewResolver(config ResolverConfig) *HostResolver {
	r := &HostResolver{
		lookup:  config.Lookup,
		browser: config.Browser,
		logger:  config.Logger,
	}
	if r.lookup == nil {
		r.lookup = net.DefaultResolver.LookupHost
	}
	if r.browser == nil && !config.DisableMDNS {
		r.browser = NewMDNSBrowser(BrowserConfig{Service: config.Service, Logger: config.Logger})
	}
	return r
}

// Resolve returns the address for host. A ":port" suffix is preserved.
func (r *HostResolver) Resolve(ctx context.Context, host string) (string, error) {
	name, port := splitPort(strings.TrimSpace(host))
	if name == "" {
		return "", fmt.Errorf("%w: empty host", ErrHostNotFound)
	}

	if ip := net.ParseIP(name); ip != nil {
		return joinPort(ip.String(), port), nil
	}

	addrs, err := r.lookup(ctx, name)
	if err == nil && len(addrs) > 0 {
		addr := preferIPv4(addrs)
		r.debugLog("resolved via dns", "host", name, "addr", addr)
		return joinPort(addr, port), nil
	}
	if err == nil {
		err = fmt.Errorf("no addresses")
	}

	if r.browser == nil || !isLocal(name) {
		return "", fmt.Errorf("%w: %s: %v", ErrHostNotFound, name, err)
	}

	svc, merr := r.browser.FindByHost(ctx, name)
	if merr != nil || len(svc.Addresses) == 0 {
		return "", fmt.Errorf("%w: %s: dns: %v, mdns: %v", ErrHostNotFound, name, err, merr)
	}
	addr := svc.IPv4()
	r.debugLog("resolved via mdns", "host", name, "addr", addr, "instance", svc.Instance)
	return joinPort(addr, port), nil
}

func (r *HostResolver) debugLog(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

// splitPort separates an optional port. Bare IPv6 literals have no port.
func splitPort(host string) (string, string) {
	if h, p, err := net.SplitHostPort(host); err == nil {
		return h, p
	}
	return strings.Trim(host, "[]"), ""
}

func joinPort(addr, port string) string {
	if port == "" {
		return addr
	}
	return net.JoinHostPort(addr, port)
}

func preferIPv4(addrs []string) string {
	for _, a := range addrs {
		if ip := net.ParseIP(a); ip != nil && ip.To4() != nil {
			return a
		}
	}
	if len(addrs) == 0 {
		return ""
	}
	return addrs[0]
}

// Compile-time interface satisfaction check.
var _ Resolver = (*HostResolver)(nil)
