package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Digest returns the hex sha256 of the data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Tracker remembers the digests of recently uploaded files so a re-upload of
// the exact same workbook can be flagged against its earlier batch.
type Tracker struct {
	mu       sync.Mutex
	byDigest map[string]string
	order    []string
	capacity int
}

func NewTracker(capacity int) *Tracker {
	if capacity <= 0 {
		capacity = 100
	}
	return &Tracker{
		byDigest: make(map[string]string),
		capacity: capacity,
	}
}

// Seen returns the batch id of an earlier upload with the same digest.
func (t *Tracker) Seen(digest string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	batchID, ok := t.byDigest[digest]
	return batchID, ok
}

// Remember records the digest for the given batch, evicting the oldest entry
// once the capacity is reached.
func (t *Tracker) Remember(digest, batchID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byDigest[digest]; ok {
		t.byDigest[digest] = batchID
		return
	}
	if len(t.order) >= t.capacity {
		oldest := t.order[0]
		t.order = t.order[1:]
		delete(t.byDigest, oldest)
	}
	t.byDigest[digest] = batchID
	t.order = append(t.order, digest)
}
