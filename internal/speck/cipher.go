package speck

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
)

// BlockSize is the Speck128 block size in bytes.
const BlockSize = 16

// ErrKeySize is returned when a key is not KeySize bytes long.
var ErrKeySize = errors.New("invalid key size")

// Cipher is a Speck128/128 instance. It implements crypto/cipher.Block.
type Cipher struct {
	schedule *Schedule
}

// New returns a cipher keyed with DefaultKey.
func New() *Cipher {
	return &Cipher{schedule: NewSchedule(DefaultKey)}
}

// NewCipher returns a cipher for the given 16-byte key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrKeySize, len(key), KeySize)
	}

	var k [KeySize]byte

	copy(k[:], key)

	return &Cipher{schedule: NewSchedule(k)}, nil
}

// Schedule returns the key schedule backing the cipher.
func (c *Cipher) Schedule() *Schedule {
	return c.schedule
}

// BlockSize returns the cipher's block size.
func (c *Cipher) BlockSize() int { return BlockSize }

// EncryptBlock runs the 32 encryption rounds over the block (x, y).
func (c *Cipher) EncryptBlock(x, y uint64) (uint64, uint64) {
	keys := c.schedule.roundKeys()

	for i := range Rounds {
		x = bits.RotateLeft64(x, -8)
		x += y
		x ^= keys[i]
		y = bits.RotateLeft64(y, 3)
		y ^= x
	}

	return x, y
}

// DecryptBlock inverts EncryptBlock, applying the rounds from last to first.
func (c *Cipher) DecryptBlock(x, y uint64) (uint64, uint64) {
	keys := c.schedule.roundKeys()

	for i := Rounds - 1; i >= 0; i-- {
		y ^= x
		y = bits.RotateLeft64(y, -3)
		x ^= keys[i]
		x -= y
		x = bits.RotateLeft64(x, 8)
	}

	return x, y
}

// Encrypt encrypts the first block of src into dst.
// Dst and src must overlap entirely or not at all.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("speck: input not full block")
	}

	x, y := c.EncryptBlock(Load(src))
	Store(dst, x, y)
}

// Decrypt decrypts the first block of src into dst.
// Dst and src must overlap entirely or not at all.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("speck: input not full block")
	}

	x, y := c.DecryptBlock(Load(src))
	Store(dst, x, y)
}

// Load splits a 16-byte block into its (x, y) words.
func Load(block []byte) (uint64, uint64) {
	y := binary.LittleEndian.Uint64(block[0:8])
	x := binary.LittleEndian.Uint64(block[8:16])

	return x, y
}

// Store writes the words (x, y) into a 16-byte block.
func Store(block []byte, x, y uint64) {
	binary.LittleEndian.PutUint64(block[0:8], y)
	binary.LittleEndian.PutUint64(block[8:16], x)
}
