package envelope

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purifier-protocol/purifier-go/pkg/wire"
)

// Key negotiated in the handshake vector of package handshake.
var recordedKey = mustHex("9a21ea4f61bf33e901a81f535d0bd6ad")

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func TestOpenRecordedDeviceResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "status",
			body: "Bm3hvm2fTmxoSWXldbkwyAlLEoQm/RXDmQf3YcG451eZ/WiaRBrRfnwaVTCzyg5jdSDRZK4fJra/XHC52SmPmQiiEfNnHmR+qBzuvE0i3NzhuQQbYFZJaepj6D0t70wQjqosF+utrAHL2+Ecvu8jNXX91IgUZZHeFP3+KE+UDTA=",
			want: `{"om":"0","pwr":"0","cl":false,"aqil":50,"uil":"1","dt":0,"dtrs":0,"mode":"A","pm25":5,"iaql":2,"aqit":0,"ddp":"1","err":193}`,
		},
		{
			name: "status pm25 changed",
			body: "WQTVglfzx3QgGe12t3/vp3dDETRF+y5j6cSV9PFRU/H807UFG53TFJQ6svMGcX3fnjblFFf4UoGEqc8JJ6svNlKliV7dvo/NGvC6DkWqMLB9I5G181lOWy5FVqFAIg+nYJVEQrSTXs+BBg9Zu/XQZfsEkYtYYrX/kIYx3s3TwgQ=",
			want: `{"om":"0","pwr":"0","cl":false,"aqil":50,"uil":"1","dt":0,"dtrs":0,"mode":"A","pm25":8,"iaql":2,"aqit":0,"ddp":"1","err":193}`,
		},
		{
			name: "write echo",
			body: "dEbVcp5KebREQVf0CdRmiYOjNPrwov3jv/V5YUWrgUB0HGu4X+2RzYF0bphte2bxgy2LUHSrkmXFrFqRiHbnkHFPbmOb+Wh1Bys440qmtaHxyiNZPuhR6hhzBayck2scWsHB8pKu+beszJix5IWOhcjJJXjZQIg75+9o/+i2X9U=",
			want: `{"om":"1","pwr":"1","cl":false,"aqil":50,"uil":"1","dt":0,"dtrs":0,"mode":"A","pm25":5,"iaql":2,"aqit":0,"ddp":"1","err":193}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Decrypt(recordedKey, []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestOpenRecordedNetworkResponse(t *testing.T) {
	body := "lmYgxCIZ+6h4OXIVNk52WhssTEyvJEDShDjigBiQVJbHbmgmD4y7l38bImHhERNVrScGZ4svQkHE9rKPWfcgGr86CRH5DzjRivvrc3nDn3uAGYdiCrgszAh7W/FrSBw/cBPHOmwKAkvmsHZ4ETMywmjDcdbo6XTVmdvPentyYdYZdQ1PVHSaseNrkSkuof66gaDVh70fWnG0vL0WGgC1PmMgXx8mDSbeW0Toj2ZwKsg/ccdBIRcaS1dzwltkayb72O7pKRTRgWscrAKH5H+/nIxj81AkHGM46NV9b/vaoHqPw+/xJxR7XKmGmt0ehFus"

	// Devices may terminate the body with a newline.
	p, err := Decrypt(recordedKey, []byte(body+"\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"ssid", "password", "protection", "ipaddress", "netmask", "gateway", "dhcp", "macaddress", "cppid"}, p.Keys())
	ssid, _ := p.Get("ssid")
	assert.Equal(t, "FunBox3-6CF2", ssid)
	dhcp, _ := p.Get("dhcp")
	assert.Equal(t, true, dhcp)
	ip, _ := p.Get("ipaddress")
	assert.Equal(t, "192.168.1.21", ip)
}

func TestSealWithFixedFiller(t *testing.T) {
	tests := []struct {
		payload *wire.Payload
		want    string
	}{
		{wire.NewPayload().With("pwr", "1"), "5p39pvNYzioFmTNjlUc7OA=="},
		{wire.NewPayload().With("mode", "M").With("om", "2"), "2H1kwA3HLqh/aHQPxsFH4bXZpz9JN78gNVM6WwqTcPc="},
	}

	for _, tt := range tests {
		t.Run(tt.payload.String(), func(t *testing.T) {
			c, err := NewCodec(recordedKey, WithFiller(strings.NewReader("AA")))
			require.NoError(t, err)

			body, err := c.Seal(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(body))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	payloads := []*wire.Payload{
		wire.NewPayload(),
		wire.NewPayload().With("pwr", "1"),
		wire.NewPayload().With("aqil", int64(100)).With("uil", "0").With("mode", "B"),
		wire.NewPayload().With("ssid", strings.Repeat("x", 15)),
		wire.NewPayload().With("nested", wire.NewPayload().With("k", true)).With("f", 2.5),
		wire.NewPayload().With("aqil", 50),
		wire.NewPayload().With("aqil", uint8(50)).With("dt", uint16(2)),
		wire.NewPayload().With("n", uint64(math.MaxUint64)).With("m", int64(math.MinInt64)),
	}

	for i := 0; i < 8; i++ {
		key := make([]byte, KeySize)
		_, err := rand.Read(key)
		require.NoError(t, err)

		for _, p := range payloads {
			body, err := Encrypt(key, p)
			require.NoError(t, err)

			got, err := Decrypt(key, body)
			require.NoError(t, err)
			assert.True(t, got.Equal(p), "got %s, want %s", got, p)
		}
	}
}

func TestRoundTripIntegerKinds(t *testing.T) {
	body, err := Encrypt(recordedKey, wire.NewPayload().With("aqil", 50).With("n", uint64(math.MaxUint64)))
	require.NoError(t, err)

	got, err := Decrypt(recordedKey, body)
	require.NoError(t, err)

	aqil, _ := got.Get("aqil")
	assert.Equal(t, int64(50), aqil)
	n, _ := got.Get("n")
	assert.Equal(t, uint64(math.MaxUint64), n)
}

func TestSealFillerVaries(t *testing.T) {
	c, err := NewCodec(recordedKey, WithFiller(bytes.NewReader([]byte("AABB"))))
	require.NoError(t, err)

	p := wire.NewPayload().With("pwr", "1")
	first, err := c.Seal(p)
	require.NoError(t, err)
	second, err := c.Seal(p)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	_, err = c.Seal(p)
	assert.Error(t, err, "exhausted filler source should fail")
}

func TestOpenErrorsAreDistinct(t *testing.T) {
	body, err := Encrypt(recordedKey, wire.NewPayload().With("pwr", "1"))
	require.NoError(t, err)

	t.Run("invalid base64", func(t *testing.T) {
		_, err := Decrypt(recordedKey, []byte("not base64!"))
		require.ErrorIs(t, err, ErrResponseDecoding)
		assert.NotErrorIs(t, err, ErrEnvelopeMismatch)
	})

	t.Run("wrong key", func(t *testing.T) {
		wrong := bytes.Repeat([]byte{0x42}, KeySize)
		_, err := Decrypt(wrong, body)
		require.ErrorIs(t, err, ErrEnvelopeMismatch)
		assert.NotErrorIs(t, err, ErrResponseDecoding)
	})

	t.Run("truncated ciphertext", func(t *testing.T) {
		_, err := Decrypt(recordedKey, []byte("AAAA"))
		assert.ErrorIs(t, err, ErrEnvelopeMismatch)
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		plain := append([]byte("AA"), []byte("{\"ssid\":\"\xff\xfe\"}")...)
		ct, err := EncryptBlocks(recordedKey, Pad(plain, 16))
		require.NoError(t, err)

		_, err = Decrypt(recordedKey, []byte(base64.StdEncoding.EncodeToString(ct)))
		require.ErrorIs(t, err, ErrEnvelopeMismatch)
		assert.Contains(t, err.Error(), "UTF-8")
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := Decrypt(recordedKey, []byte("  \n"))
		assert.ErrorIs(t, err, ErrEnvelopeMismatch)
	})
}

func TestInvalidKeySize(t *testing.T) {
	for _, n := range []int{0, 15, 17, 32} {
		_, err := NewCodec(make([]byte, n))
		assert.ErrorIs(t, err, ErrInvalidKeySize, "size %d", n)
	}
}

func TestPadding(t *testing.T) {
	padded := Pad([]byte("AA{}"), 16)
	require.Len(t, padded, 16)
	assert.Equal(t, byte(12), padded[15])

	full := Pad(bytes.Repeat([]byte{1}, 16), 16)
	require.Len(t, full, 32)

	out, err := Unpad(full, 16)
	require.NoError(t, err)
	assert.Len(t, out, 16)

	bad := bytes.Clone(padded)
	bad[10] = 0
	_, err = Unpad(bad, 16)
	assert.ErrorIs(t, err, ErrInvalidPadding)

	_, err = Unpad([]byte{1, 2, 3}, 16)
	assert.ErrorIs(t, err, ErrInvalidPadding)
}

func TestBlocksHelpers(t *testing.T) {
	plain := bytes.Repeat([]byte{0x10}, 32)
	ct, err := EncryptBlocks(recordedKey, plain)
	require.NoError(t, err)

	back, err := DecryptBlocks(recordedKey, ct)
	require.NoError(t, err)
	assert.Equal(t, plain, back)

	_, err = EncryptBlocks(recordedKey, []byte("short"))
	assert.Error(t, err)
}
