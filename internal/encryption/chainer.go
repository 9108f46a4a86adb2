package encryption

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/idelchi/arxbench/internal/speck"
)

// Chainer encrypts and decrypts messages in CBC mode on top of a 128-bit block cipher.
type Chainer struct {
	// block is the underlying block cipher
	block cipher.Block

	// ivSource provides a fresh IV for every encryption
	ivSource io.Reader

	// strict selects Unpad over RemovePadding in Open
	strict bool
}

// Option configures a Chainer.
type Option func(*Chainer)

// WithIVSource replaces crypto/rand as the IV source.
// Tests use it to inject a fixed IV.
func WithIVSource(r io.Reader) Option {
	return func(c *Chainer) {
		c.ivSource = r
	}
}

// WithStrictPadding makes Open reject malformed padding with ErrInvalidPadding
// instead of returning the data unchanged.
func WithStrictPadding() Option {
	return func(c *Chainer) {
		c.strict = true
	}
}

// New returns a Chainer over the Speck cipher keyed with the default key.
func New(opts ...Option) *Chainer {
	chainer, _ := NewChainer(speck.New(), opts...) //nolint:errcheck // speck always has a 16-byte block

	return chainer
}

// NewChainer returns a Chainer over block, which must have a 16-byte block size.
func NewChainer(block cipher.Block, opts ...Option) (*Chainer, error) {
	if block.BlockSize() != speck.BlockSize {
		return nil, fmt.Errorf("%w: cipher block size %d", ErrInvalidBlockSize, block.BlockSize())
	}

	chainer := &Chainer{
		block:    block,
		ivSource: rand.Reader,
	}

	for _, opt := range opts {
		opt(chainer)
	}

	return chainer, nil
}

// Encrypt encrypts an already padded plaintext and returns IV‖ciphertext.
func (c *Chainer) Encrypt(padded []byte) ([]byte, error) {
	out := make([]byte, CiphertextLen(len(padded)))

	if _, err := c.EncryptTo(out, padded); err != nil {
		return nil, err
	}

	return out, nil
}

// Decrypt decrypts IV‖ciphertext and returns the still padded plaintext.
func (c *Chainer) Decrypt(ciphertext []byte) ([]byte, error) {
	out := make([]byte, max(0, len(ciphertext)-speck.BlockSize))

	n, err := c.DecryptTo(out, ciphertext)
	if err != nil {
		return nil, err
	}

	return out[:n], nil
}

// Seal pads msg and encrypts it.
func (c *Chainer) Seal(msg []byte) ([]byte, error) {
	return c.Encrypt(Pad(msg))
}

// Open decrypts ciphertext and strips the padding.
func (c *Chainer) Open(ciphertext []byte) ([]byte, error) {
	plain, err := c.Decrypt(ciphertext)
	if err != nil {
		return nil, err
	}

	if !c.strict {
		return plain[:RemovePadding(plain)], nil
	}

	unpadded, err := Unpad(plain)
	if err != nil {
		return nil, fmt.Errorf("removing padding: %w", err)
	}

	return unpadded, nil
}
