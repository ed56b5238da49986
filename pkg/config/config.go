// Package config loads the purifier-ctl configuration file.
//
//	log_level: info
//	protocol_log: /var/log/purifier/session.plog
//	timeout: 10s
//	use_proxy: false
//	mdns_service: _http._tcp
//	default_device: living-room
//	devices:
//	  - name: living-room
//	    host: 192.168.1.21
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidConfig is wrapped by every validation failure.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrNoDevice means no host was given and no default device is set.
	ErrNoDevice = errors.New("no device specified")
)

// Defaults.
const (
	DefaultLogLevel    = "info"
	DefaultTimeout     = 10 * time.Second
	DefaultMDNSService = "_http._tcp"
)

// Config is the configuration file.
type Config struct {
	LogLevel      string   `yaml:"log_level" json:"log_level"`
	ProtocolLog   string   `yaml:"protocol_log,omitempty" json:"protocol_log,omitempty"`
	Timeout       Duration `yaml:"timeout" json:"timeout"`
	UseProxy      bool     `yaml:"use_proxy" json:"use_proxy"`
	MDNSService   string   `yaml:"mdns_service" json:"mdns_service"`
	DefaultDevice string   `yaml:"default_device,omitempty" json:"default_device,omitempty"`
	Devices       []Device `yaml:"devices,omitempty" json:"devices,omitempty"`
}

// Device is a named purifier.
type Device struct {
	Name string `yaml:"name" json:"name"`
	Host string `yaml:"host" json:"host"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:    DefaultLogLevel,
		Timeout:     Duration(DefaultTimeout),
		MDNSService: DefaultMDNSService,
	}
}

// DefaultPath returns ~/.config/purifier/config.yaml (or the platform
// equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "purifier.yaml")
	}
	return filepath.Join(dir, "purifier", "config.yaml")
}

// Load reads and validates the file at path. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML, fills defaults for omitted fields and validates.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the parent directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&cfg); err != nil {
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Timeout == 0 {
		c.Timeout = Duration(DefaultTimeout)
	}
	if c.MDNSService == "" {
		c.MDNSService = DefaultMDNSService
	}
}

// Validate checks field values and device uniqueness.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}

	names := make(map[string]bool, len(c.Devices))
	hosts := make(map[string]bool, len(c.Devices))
	for i, d := range c.Devices {
		if d.Name == "" || d.Host == "" {
			return fmt.Errorf("%w: device %d needs both name and host", ErrInvalidConfig, i)
		}
		if names[d.Name] {
			return fmt.Errorf("%w: duplicate device name %q", ErrInvalidConfig, d.Name)
		}
		if hosts[d.Host] {
			return fmt.Errorf("%w: duplicate device host %q", ErrInvalidConfig, d.Host)
		}
		names[d.Name] = true
		hosts[d.Host] = true
	}

	if c.DefaultDevice != "" {
		if _, ok := c.Device(c.DefaultDevice); !ok {
			return fmt.Errorf("%w: default_device %q is not listed in devices", ErrInvalidConfig, c.DefaultDevice)
		}
	}
	return nil
}

// Device looks up a device by name.
func (c Config) Device(name string) (Device, bool) {
	for _, d := range c.Devices {
		if d.Name == name {
			return d, true
		}
	}
	return Device{}, false
}

// ResolveHost maps a device name to its host. Anything that is not a
// device name is returned unchanged. Empty input selects the default
// device.
func (c Config) ResolveHost(nameOrHost string) (string, error) {
	if nameOrHost == "" {
		if c.DefaultDevice == "" {
			return "", ErrNoDevice
		}
		nameOrHost = c.DefaultDevice
	}
	if d, ok := c.Device(nameOrHost); ok {
		return d.Host, nil
	}
	return nameOrHost, nil
}

// Level returns the slog level for LogLevel.
func (c Config) Level() slog.Level {
	l, _ := ParseLevel(c.LogLevel)
	return l
}

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, s)
	}
}
