package encryption

import (
	"fmt"

	"github.com/idelchi/arxbench/internal/speck"
)

// PaddedLen returns the smallest multiple of the block size that is >= n.
func PaddedLen(n int) int {
	return (n + speck.BlockSize - 1) / speck.BlockSize * speck.BlockSize
}

// Pad returns a copy of data padded to a multiple of the block size.
// Each pad byte holds the number of bytes added.
//
// Quirk: input that is already block aligned gets no padding block at all
// (pad value 0). PKCS#7 would append a full block of 16s here. Changing
// this changes the wire format, so it is kept.
func Pad(data []byte) []byte {
	padded := make([]byte, PaddedLen(len(data)))
	copy(padded, data)

	value := byte(len(padded) - len(data))
	for i := len(data); i < len(padded); i++ {
		padded[i] = value
	}

	return padded
}

// RemovePadding returns the length of data with its padding stripped.
// The last byte is taken as the pad length. A claimed value above the
// block size (or above len(data)) is treated as "no padding" and the
// length is returned unchanged.
func RemovePadding(data []byte) int {
	length := len(data)
	if length == 0 {
		return 0
	}

	value := int(data[length-1])
	if value > speck.BlockSize || value > length {
		return length
	}

	return length - value
}

// Unpad is the strict counterpart of RemovePadding.
// It returns an error if the padding is invalid.
func Unpad(data []byte) ([]byte, error) {
	length := len(data)
	if length == 0 {
		return nil, ErrEmptyData
	}

	value := int(data[length-1])
	if value > length || value > speck.BlockSize {
		return nil, fmt.Errorf("%w: pad value %d", ErrInvalidPadding, value)
	}

	for i := length - value; i < length; i++ {
		if data[i] != byte(value) {
			return nil, fmt.Errorf("%w: pad value %d", ErrInvalidPadding, value)
		}
	}

	return data[:length-value], nil
}
