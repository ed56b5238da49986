package interactive

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purifier-protocol/purifier-go/internal/fakedevice"
	"github.com/purifier-protocol/purifier-go/pkg/client"
	"github.com/purifier-protocol/purifier-go/pkg/discovery"
)

func newShell(t *testing.T) (*Shell, *bytes.Buffer, *fakedevice.Device) {
	t.Helper()
	dev := fakedevice.New()
	t.Cleanup(dev.Close)

	session := client.New(client.Config{
		Host:     dev.Addr(),
		Resolver: discovery.NewResolver(discovery.ResolverConfig{DisableMDNS: true}),
	})
	var out bytes.Buffer
	return New(session, &out), &out, dev
}

func TestShellRequiresConnect(t *testing.T) {
	sh, out, dev := newShell(t)
	ctx := context.Background()

	assert.False(t, sh.Execute(ctx, "get pwr"))
	assert.Contains(t, out.String(), "Error: not connected")
	assert.Equal(t, 0, dev.RequestCount())
	assert.Equal(t, "purifier> ", sh.prompt())
}

func TestShellSession(t *testing.T) {
	sh, out, dev := newShell(t)
	ctx := context.Background()

	sh.Execute(ctx, "connect")
	require.Contains(t, out.String(), "Connected to "+dev.Addr())
	assert.Equal(t, "purifier["+dev.Addr()+"]> ", sh.prompt())

	out.Reset()
	sh.Execute(ctx, "set mode=P aqil=75")
	assert.Contains(t, out.String(), `"aqil": 75`)
	mode, _ := dev.State().Get("mode")
	assert.Equal(t, "P", mode)

	out.Reset()
	sh.Execute(ctx, "set mode=X")
	assert.Contains(t, out.String(), `Error: value "X" is not allowed for "mode"`)

	out.Reset()
	sh.Execute(ctx, "info")
	assert.Contains(t, out.String(), "State:      CONNECTED")
	assert.Contains(t, out.String(), "Connection: ")

	out.Reset()
	sh.Execute(ctx, "disconnect")
	sh.Execute(ctx, "info")
	assert.Contains(t, out.String(), "State:      DISCONNECTED")
	assert.NotContains(t, out.String(), "Connection: ")
}

func TestShellMiscCommands(t *testing.T) {
	sh, out, _ := newShell(t)
	ctx := context.Background()

	assert.False(t, sh.Execute(ctx, "   "))
	assert.Empty(t, out.String())

	sh.Execute(ctx, "frobnicate")
	assert.Contains(t, out.String(), "Unknown command: frobnicate")

	out.Reset()
	sh.Execute(ctx, "params")
	assert.Contains(t, out.String(), "ddp")

	assert.True(t, sh.Execute(ctx, "QUIT"))
}
