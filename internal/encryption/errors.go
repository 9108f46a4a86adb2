package encryption

import "errors"

var (
	// ErrEmptyData is returned when attempting to unpad empty input data.
	ErrEmptyData = errors.New("empty data")
	// ErrInvalidPadding is returned by strict unpadding when the pad value is malformed.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrInvalidBlockSize is returned when data length is not aligned with the cipher block size.
	ErrInvalidBlockSize = errors.New("data is not a multiple of block size")
	// ErrShortCiphertext is returned when ciphertext is too short to hold an IV.
	ErrShortCiphertext = errors.New("ciphertext shorter than IV")
	// ErrShortBuffer is returned when a destination buffer cannot hold the output.
	ErrShortBuffer = errors.New("destination buffer too small")
)
