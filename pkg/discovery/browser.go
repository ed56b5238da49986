package discovery

import (
	"context"
	"log/slog"
	"net"
	"slices"
	"time"

	"github.com/enbility/zeroconf/v3"
)

// BrowseFunc runs one mDNS browse, sending entries until ctx is done.
// The default calls zeroconf.Browse. Tests inject canned entries.
type BrowseFunc func(ctx context.Context, service string, entries, removed chan *zeroconf.ServiceEntry) error

// BrowserConfig configures an MDNSBrowser.
type BrowserConfig struct {
	// Service is the DNS-SD service type (default: _http._tcp).
	Service string

	// Interface restricts browsing to one network interface.
	// Empty means all interfaces.
	Interface string

	// Timeout bounds FindByHost when ctx has no deadline (default: 5s).
	Timeout time.Duration

	// Browse replaces the zeroconf browse.
	Browse BrowseFunc

	// Logger is used for debug logging. Nil disables.
	Logger *slog.Logger
}

// MDNSBrowser finds devices over mDNS.
type MDNSBrowser struct {
	config BrowserConfig
	logger *slog.Logger
}

// NewMDNSBrowser creates a new mDNS browser.
func NewMDNSBrowser(config BrowserConfig) *MDNSBrowser {
	if config.Service == "" {
		config.Service = DefaultService
	}
	if config.Timeout <= 0 {
		config.Timeout = BrowseTimeout
	}
	b := &MDNSBrowser{config: config, logger: config.Logger}
	if b.config.Browse == nil {
		b.config.Browse = b.zeroconfBrowse
	}
	return b
}

// Browse streams services until ctx is done. Entries are aggregated by
// instance name: a service is sent when first seen and again whenever it
// gains an address. Each value sent is a snapshot owned by the receiver.
func (b *MDNSBrowser) Browse(ctx context.Context) (<-chan *Service, error) {
	out := make(chan *Service)
	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	go func() {
		defer close(out)

		services := make(map[string]*Service)
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				svc := entryToService(entry)
				existing, found := services[svc.Instance]
				if found {
					before := len(existing.Addresses)
					existing.Addresses = mergeAddresses(existing.Addresses, svc.Addresses)
					if len(existing.Addresses) == before {
						continue
					}
					svc = existing
				} else {
					services[svc.Instance] = svc
				}
				b.debugLog("mdns entry", "instance", svc.Instance, "host", svc.Host, "addrs", svc.Addresses)
				select {
				case out <- svc.clone():
				case <-ctx.Done():
					return
				}

			case entry, ok := <-removed:
				if !ok {
					removed = nil
					continue
				}
				if existing, found := services[entry.Instance]; found {
					existing.Addresses = removeAddresses(existing.Addresses, entryAddresses(entry))
					if len(existing.Addresses) == 0 {
						delete(services, entry.Instance)
					}
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		if err := b.config.Browse(ctx, b.config.Service, entries, removed); err != nil {
			b.debugLog("mdns browse failed", "error", err)
		}
	}()

	return out, nil
}

// FindByHost browses until a service advertising host (or an instance of
// that name) appears.
func (b *MDNSBrowser) FindByHost(ctx context.Context, host string) (*Service, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.config.Timeout)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results, err := b.Browse(ctx)
	if err != nil {
		return nil, err
	}

	want := normalizeHost(host)
	short := normalizeHost(trimLocal(host))
	for svc := range results {
		if normalizeHost(svc.Host) == want || normalizeHost(svc.Instance) == short {
			return svc, nil
		}
	}
	return nil, ErrNotFound
}

func (b *MDNSBrowser) zeroconfBrowse(ctx context.Context, service string, entries, removed chan *zeroconf.ServiceEntry) error {
	return zeroconf.Browse(ctx, service, Domain, entries, removed, b.browserOptions()...)
}

// browserOptions returns zeroconf client options based on config.
func (b *MDNSBrowser) browserOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption
	if b.config.Interface != "" {
		iface, err := net.InterfaceByName(b.config.Interface)
		if err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		}
	}
	return opts
}

func (b *MDNSBrowser) debugLog(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Debug(msg, args...)
	}
}

func entryToService(entry *zeroconf.ServiceEntry) *Service {
	return &Service{
		Instance:  entry.Instance,
		Host:      normalizeHost(entry.HostName),
		Port:      entry.Port,
		Addresses: entryAddresses(entry),
		Text:      parseTXT(entry.Text),
	}
}

func entryAddresses(entry *zeroconf.ServiceEntry) []string {
	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}
	return addrs
}

// mergeAddresses appends addresses not already present.
func mergeAddresses(existing, add []string) []string {
	for _, addr := range add {
		if !slices.Contains(existing, addr) {
			existing = append(existing, addr)
		}
	}
	return existing
}

func removeAddresses(addresses, drop []string) []string {
	return slices.DeleteFunc(addresses, func(a string) bool {
		return slices.Contains(drop, a)
	})
}
