package testutil

import (
	"encoding/binary"
	"sync"

	"github.com/google/uuid"
)

// UUIDSequence hands out UUIDs 00000000-0000-0000-0000-000000000001,
// ...0002 and so on, so fixtures and golden files stay stable.
//
// Safe for concurrent use.
type UUIDSequence struct {
	mu  sync.Mutex
	seq uint64
}

// NewUUIDSequence creates a sequence whose first UUID ends in 1.
func NewUUIDSequence() *UUIDSequence {
	return &UUIDSequence{}
}

// Next returns the next UUID.
func (s *UUIDSequence) Next() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	var id uuid.UUID
	binary.BigEndian.PutUint64(id[8:], s.seq)
	return id
}

// Reset restarts the sequence, so the next UUID ends in 1 again.
func (s *UUIDSequence) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = 0
}
