// Package speck implements the Speck128/128 ARX block cipher.
//
// The cipher works on 128-bit blocks made of two 64-bit words and uses a
// 128-bit key expanded into 32 round keys. Only add, rotate and xor are
// involved, all on uint64 with wraparound.
//
// Byte order follows the reference implementation: the y word is the
// little-endian value of bytes 0..7 of a block, the x word that of bytes
// 8..15. The key is read the same way, low word first.
package speck
