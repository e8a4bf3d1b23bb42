package reader

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var (
	idMu     sync.Mutex
	idLastMS uint64
	idSeq    uint16
)

// NewID returns a 26-character time-ordered identifier in ULID layout: a
// 48-bit millisecond timestamp followed by 80 bits of entropy, Crockford
// base32 encoded. IDs minted in the same millisecond carry an increasing
// sequence in their first entropy bytes.
func NewID() string {
	idMu.Lock()
	ts := uint64(time.Now().UnixMilli())
	if ts == idLastMS {
		idSeq++
	} else {
		idLastMS = ts
		idSeq = 0
	}
	seq := idSeq
	idMu.Unlock()

	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], ts<<16)
	rand.Read(b[6:])
	binary.BigEndian.PutUint16(b[6:8], seq)
	return encodeID(b)
}

func encodeID(b [16]byte) string {
	hi := binary.BigEndian.Uint64(b[:8])
	lo := binary.BigEndian.Uint64(b[8:])
	var out [26]byte
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = crockford[lo&31]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}
