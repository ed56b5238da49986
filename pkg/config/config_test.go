package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
log_level: debug
protocol_log: /tmp/session.plog
timeout: 3s
use_proxy: true
mdns_service: _philips._tcp
default_device: living-room
devices:
  - name: living-room
    host: 192.168.1.21
  - name: bedroom
    host: purifier-bedroom.local
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, "/tmp/session.plog", cfg.ProtocolLog)
	assert.Equal(t, 3*time.Second, time.Duration(cfg.Timeout))
	assert.True(t, cfg.UseProxy)
	assert.Equal(t, "_philips._tcp", cfg.MDNSService)
	require.Len(t, cfg.Devices, 2)
	assert.Equal(t, Device{Name: "bedroom", Host: "purifier-bedroom.local"}, cfg.Devices[1])
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("devices: []\n"))
	require.NoError(t, err)
	assert.Equal(t, Default(), Config{LogLevel: cfg.LogLevel, Timeout: cfg.Timeout, MDNSService: cfg.MDNSService})

	cfg, err = Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, time.Duration(cfg.Timeout))
}

func TestParseTimeoutSeconds(t *testing.T) {
	cfg, err := Parse([]byte("timeout: 15\n"))
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, time.Duration(cfg.Timeout))
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown key":        "colour: red\n",
		"bad level":          "log_level: loud\n",
		"bad timeout":        "timeout: soon\n",
		"negative timeout":   "timeout: -1s\n",
		"duplicate name":     "devices:\n  - {name: a, host: h1}\n  - {name: a, host: h2}\n",
		"duplicate host":     "devices:\n  - {name: a, host: h1}\n  - {name: b, host: h1}\n",
		"missing host":       "devices:\n  - {name: a}\n",
		"unknown default":    "default_device: x\n",
		"timeout not scalar": "timeout: [1]\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "purifier", "config.yaml")

	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 3s")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveReportsWriteErrors(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	assert.Error(t, Save("/dev/full", Default()))

	dir := t.TempDir()
	assert.Error(t, Save(dir, Default()), "saving over a directory should fail")
}

func TestResolveHost(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	host, err := cfg.ResolveHost("")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.21", host)

	host, err = cfg.ResolveHost("bedroom")
	require.NoError(t, err)
	assert.Equal(t, "purifier-bedroom.local", host)

	host, err = cfg.ResolveHost("10.0.0.9")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.9", host)

	_, err = Default().ResolveHost("")
	assert.ErrorIs(t, err, ErrNoDevice)
}
