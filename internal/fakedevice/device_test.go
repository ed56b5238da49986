package fakedevice

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purifier-protocol/purifier-go/pkg/envelope"
	"github.com/purifier-protocol/purifier-go/pkg/handshake"
	"github.com/purifier-protocol/purifier-go/pkg/transport"
	"github.com/purifier-protocol/purifier-go/pkg/wire"
)

func TestDeviceProtocol(t *testing.T) {
	key := handshake.SessionKey{0x9a, 0x21, 0xea, 0x4f}
	d := New(WithSessionKey(key))
	defer d.Close()

	ctx := context.Background()
	tr := transport.NewHTTPClient(transport.ClientConfig{})

	_, err := tr.Get(ctx, d.Addr(), wire.PathAir)
	require.ErrorIs(t, err, transport.ErrUnexpectedStatus, "reads before a handshake are refused")

	initiator, err := handshake.NewInitiator(nil)
	require.NoError(t, err)
	reqBody, err := wire.EncodeHandshakeRequest(initiator.Request())
	require.NoError(t, err)

	respBody, err := tr.Put(ctx, d.Addr(), wire.PathSecurity, reqBody)
	require.NoError(t, err)
	resp, err := handshake.ParseResponse(respBody)
	require.NoError(t, err)
	got, err := initiator.Complete(resp)
	require.NoError(t, err)
	assert.Equal(t, key, got)

	body, err := tr.Get(ctx, d.Addr(), wire.PathAir)
	require.NoError(t, err)
	state, err := envelope.Decrypt(key[:], body)
	require.NoError(t, err)
	assert.Equal(t, DefaultState, state.String())

	write, err := envelope.Encrypt(key[:], wire.NewPayload().With("pwr", "1").With("om", "2"))
	require.NoError(t, err)
	body, err = tr.Put(ctx, d.Addr(), wire.PathAir, write)
	require.NoError(t, err)
	echo, err := envelope.Decrypt(key[:], body)
	require.NoError(t, err)
	pwr, _ := echo.Get("pwr")
	assert.Equal(t, "1", pwr)
	assert.Equal(t, state.Keys(), echo.Keys(), "writes keep the document order")

	body, err = tr.Get(ctx, d.Addr(), wire.PathWifi)
	require.NoError(t, err)
	network, err := envelope.Decrypt(key[:], body)
	require.NoError(t, err)
	assert.Equal(t, DefaultNetwork, network.String())

	assert.Equal(t, 5, d.RequestCount())
	reqs := d.Requests()
	assert.Equal(t, http.MethodPut, reqs[1].Method)
	assert.Equal(t, wire.PathSecurity, reqs[1].Path)
}

func TestDeviceFailWith(t *testing.T) {
	d := New()
	defer d.Close()

	d.FailWith(wire.PathSecurity, http.StatusServiceUnavailable)
	tr := transport.NewHTTPClient(transport.ClientConfig{})
	_, err := tr.Put(context.Background(), d.Addr(), wire.PathSecurity, []byte(`{"diffie":"02"}`))
	assert.ErrorIs(t, err, transport.ErrUnexpectedStatus)

	d.FailWith(wire.PathSecurity, 0)
	_, err = tr.Put(context.Background(), d.Addr(), wire.PathSecurity, []byte(`{"diffie":"1"}`))
	assert.ErrorIs(t, err, transport.ErrUnexpectedStatus, "invalid public value is rejected")
}

func TestDeviceHandlers(t *testing.T) {
	d := New()
	defer d.Close()
	d.Handlers.OnHandshake = func(wire.HandshakeRequest) []byte { return []byte("<html>") }

	body, err := transport.NewHTTPClient(transport.ClientConfig{}).
		Put(context.Background(), d.Addr(), wire.PathSecurity, []byte(`{"diffie":"abcdef"}`))
	require.NoError(t, err)
	assert.True(t, bytes.Equal([]byte("<html>"), body))
}
