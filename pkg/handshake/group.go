package handshake

import (
	"errors"
	"io"
	"math/big"
)

const (
	// SessionKeySize is the length of a negotiated session key.
	SessionKeySize = 16

	// ExponentBits is the size of the private exponent.
	ExponentBits = 256

	// SharedSecretSize is the big-endian width of S before truncation.
	SharedSecretSize = 128
)

const (
	generatorHex = "A4D1CBD5C3FD34126765A442EFB99905F8104DD258AC507FD6406CFF14266D31266FEA1E5C41564B777E69" +
		"0F5504F213160217B4B01B886A5E91547F9E2749F4D7FBD7D3B9A92EE1909D0D2263F80A76A6A24C087A09" +
		"1F531DBF0A0169B6A28AD662A4D18E73AFA32D779D5918D08BC8858F4DCEF97C2A24855E6EEB22B3B2E5"

	modulusHex = "B10B8F96A080E01DDE92DE5EAE5D54EC52C99FBCFB06A3C69A6A9DCA52D23B616073E28675A23D189838EF" +
		"1E2EE652C013ECB4AEA906112324975C3CD49B83BFACCBDD7D90C4BD7098488E9C219A73724EFFD6FAE564" +
		"4738FAA31A4FF55BCCC0A151AF5F0DC8B4BD45BF37DF365C1A65E68CFDA76D4DA708DF1FB2BC2E4A4371"
)

var (
	generator = mustInt(generatorHex)
	modulus   = mustInt(modulusHex)
	one       = big.NewInt(1)
)

// Generator returns a copy of g.
func Generator() *big.Int { return new(big.Int).Set(generator) }

// Modulus returns a copy of p.
func Modulus() *big.Int { return new(big.Int).Set(modulus) }

func mustInt(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("handshake: invalid group constant")
	}
	return n
}

// validPublic reports whether v is usable as a public value: 1 < v < p-1.
func validPublic(v *big.Int) bool {
	upper := new(big.Int).Sub(modulus, one)
	return v.Cmp(one) > 0 && v.Cmp(upper) < 0
}

// sharedKey derives the shared-secret key K from a peer value and our
// exponent.
func sharedKey(peer, exponent *big.Int) []byte {
	s := new(big.Int).Exp(peer, exponent, modulus)
	buf := make([]byte, SharedSecretSize)
	s.FillBytes(buf)
	return buf[:SessionKeySize]
}

// readExponent reads ExponentBits/8 bytes from r as a big-endian integer.
func readExponent(r io.Reader) (*big.Int, error) {
	buf := make([]byte, ExponentBits/8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	a := new(big.Int).SetBytes(buf)
	clear(buf)
	if a.Sign() == 0 {
		return nil, errors.New("zero exponent")
	}
	return a, nil
}
