package encryption

import (
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/idelchi/arxbench/internal/speck"
)

// CiphertextLen returns the size of the ciphertext for a padded plaintext of n bytes.
func CiphertextLen(n int) int {
	return speck.BlockSize + n
}

// EncryptTo encrypts padded into dst and returns the number of bytes written.
// A fresh IV is read from the IV source and written as the first block.
// Dst must not overlap padded.
func (c *Chainer) EncryptTo(dst, padded []byte) (int, error) {
	const size = speck.BlockSize

	if len(padded)%size != 0 {
		return 0, fmt.Errorf("%w: %d bytes", ErrInvalidBlockSize, len(padded))
	}

	total := CiphertextLen(len(padded))
	if len(dst) < total {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, total, len(dst))
	}

	iv := dst[:size]
	if _, err := io.ReadFull(c.ivSource, iv); err != nil {
		return 0, fmt.Errorf("generating IV: %w", err)
	}

	prev := iv
	out := dst[size:total]

	for off := 0; off < len(padded); off += size {
		block := out[off : off+size]

		subtle.XORBytes(block, padded[off:off+size], prev)
		c.block.Encrypt(block, block)

		// Move to the next block with this block as the chaining value.
		prev = block
	}

	return total, nil
}

// DecryptTo decrypts ciphertext into dst and returns the number of bytes written.
// The chaining value for each block is the original ciphertext block, so
// dst may alias ciphertext[BlockSize:].
func (c *Chainer) DecryptTo(dst, ciphertext []byte) (int, error) {
	const size = speck.BlockSize

	if len(ciphertext) < size {
		return 0, fmt.Errorf("%w: %d bytes", ErrShortCiphertext, len(ciphertext))
	}

	if len(ciphertext)%size != 0 {
		return 0, fmt.Errorf("%w: %d bytes", ErrInvalidBlockSize, len(ciphertext))
	}

	total := len(ciphertext) - size
	if len(dst) < total {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, total, len(dst))
	}

	var prev, saved [size]byte

	copy(prev[:], ciphertext[:size])

	for off := size; off < len(ciphertext); off += size {
		copy(saved[:], ciphertext[off:off+size])

		block := dst[off-size : off]

		c.block.Decrypt(block, saved[:])
		subtle.XORBytes(block, block, prev[:])

		prev = saved
	}

	return total, nil
}
