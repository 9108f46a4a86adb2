package speck

import (
	"encoding/binary"
	"math/bits"
	"sync"
)

const (
	// KeySize is the size of a Speck128/128 key in bytes.
	KeySize = 16
	// Rounds is the number of rounds, and therefore round keys, of Speck128/128.
	Rounds = 32
)

// DefaultKey is the fixed key used for the lifetime of the process.
//
//nolint:gochecknoglobals // constant key material, arrays cannot be const
var DefaultKey = [KeySize]byte{
	0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
	0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
}

// RoundKeys is the expanded key: one 64-bit word per round.
type RoundKeys [Rounds]uint64

// ExpandKey derives the round keys from key.
// It is a pure function: the same key always yields the same schedule.
func ExpandKey(key [KeySize]byte) RoundKeys {
	var keys RoundKeys

	keys[0] = binary.LittleEndian.Uint64(key[0:8])
	acc := binary.LittleEndian.Uint64(key[8:16])

	for i := range Rounds - 1 {
		acc = bits.RotateLeft64(acc, -8)
		acc += keys[i]
		acc ^= uint64(i)
		keys[i+1] = bits.RotateLeft64(keys[i], 3) ^ acc
	}

	return keys
}

// Schedule computes the round keys for a key on first use and keeps them.
// The schedule never changes once computed and is safe for concurrent use.
type Schedule struct {
	key  [KeySize]byte
	keys RoundKeys
	once sync.Once

	// expansions counts how often the key was expanded.
	expansions int
}

// NewSchedule returns an uncomputed schedule for key.
func NewSchedule(key [KeySize]byte) *Schedule {
	return &Schedule{key: key}
}

// Init expands the key unless that already happened.
func (s *Schedule) Init() {
	s.once.Do(func() {
		s.keys = ExpandKey(s.key)
		s.expansions++
	})
}

// Keys returns a copy of the round keys, computing them if needed.
func (s *Schedule) Keys() RoundKeys {
	s.Init()

	return s.keys
}

// roundKeys returns the schedule's round keys without copying.
func (s *Schedule) roundKeys() *RoundKeys {
	s.Init()

	return &s.keys
}
