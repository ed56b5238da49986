package envelope

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// zeroIV is the constant IV of every CBC operation in the protocol.
var zeroIV = make([]byte, aes.BlockSize)

// EncryptBlocks encrypts plaintext with AES-128-CBC and a zero IV. The
// plaintext must already be a multiple of the block size; no padding is
// added.
func EncryptBlocks(key, plaintext []byte) ([]byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}
	return encryptBlocks(block, plaintext)
}

// DecryptBlocks decrypts ciphertext with AES-128-CBC and a zero IV. No
// padding is removed.
func DecryptBlocks(key, ciphertext []byte) ([]byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}
	return decryptBlocks(block, ciphertext)
}

// Pad appends PKCS#7 padding. A full block of padding is added when data
// is already aligned.
func Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(bytes.Clone(data), bytes.Repeat([]byte{byte(n)}, n)...)
}

// Unpad strips PKCS#7 padding.
func Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidPadding, len(data))
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("%w: pad byte %d", ErrInvalidPadding, n)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrInvalidPadding
		}
	}
	return data[:len(data)-n], nil
}

func newBlock(key []byte) (cipher.Block, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidKeySize, len(key))
	}
	return aes.NewCipher(key)
}

func encryptBlocks(block cipher.Block, plaintext []byte) ([]byte, error) {
	if len(plaintext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("envelope: plaintext length %d is not a multiple of %d", len(plaintext), aes.BlockSize)
	}
	out := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, zeroIV).CryptBlocks(out, plaintext)
	return out, nil
}

func decryptBlocks(block cipher.Block, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d", ErrEnvelopeMismatch, len(ciphertext))
	}
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, zeroIV).CryptBlocks(out, ciphertext)
	return out, nil
}
