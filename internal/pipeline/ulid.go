package pipeline

import (
	"crypto/rand"
	"sync"
	"time"
)

// Simple ULID generator that doesn't require external dependencies.
// ULIDs are 26-character Crockford Base32 encoded strings with timestamp prefix.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewJobID returns a sortable unique identifier for an ingestion job.
func NewJobID() string {
	return generateULID()
}

func generateULID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	// Timestamp in first 6 bytes (big-endian 48-bit).
	b[0] = byte(ts >> 40)
	b[1] = byte(ts >> 32)
	b[2] = byte(ts >> 24)
	b[3] = byte(ts >> 16)
	b[4] = byte(ts >> 8)
	b[5] = byte(ts)

	// 10 random bytes, with the sequence folded into the first two so IDs
	// generated in the same millisecond stay distinct and ordered.
	if _, err := rand.Read(b[6:]); err != nil {
		for i := 6; i < 16; i++ {
			b[i] = byte(ts >> (uint(i) % 8))
		}
	}
	b[6] = byte(lastSeq >> 8)
	b[7] = byte(lastSeq)

	// Crockford Base32 encode 128 bits into 26 characters.
	var out [26]byte
	var acc uint64
	bits := 0
	pos := 25
	for i := 15; i >= 0; i-- {
		acc |= uint64(b[i]) << bits
		bits += 8
		for bits >= 5 && pos >= 0 {
			out[pos] = crockford[acc&0x1f]
			acc >>= 5
			bits -= 5
			pos--
		}
	}
	for pos >= 0 {
		out[pos] = crockford[acc&0x1f]
		acc >>= 5
		pos--
	}
	return string(out[:])
}
