package signature

import (
	"fmt"
	"slices"
)

// Store is an immutable, ordered collection of signatures.
type Store struct {
	sigs  []Signature
	index map[string]int
}

// NewStore builds a store holding sigs in the given order.
func NewStore(sigs ...Signature) (*Store, error) {
	s := &Store{
		sigs:  make([]Signature, 0, len(sigs)),
		index: make(map[string]int, len(sigs)),
	}
	for _, sig := range sigs {
		if sig.ID == "" {
			return nil, fmt.Errorf("signature for %q: empty id", sig.Path)
		}
		if _, ok := s.index[sig.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, sig.ID)
		}
		s.index[sig.ID] = len(s.sigs)
		s.sigs = append(s.sigs, sig)
	}
	return s, nil
}

// Len returns the number of registered signatures.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.sigs)
}

// All returns a copy of the signatures in registration order.
func (s *Store) All() []Signature {
	if s == nil {
		return nil
	}
	return slices.Clone(s.sigs)
}

// Get looks up a signature by ID.
func (s *Store) Get(id string) (Signature, bool) {
	if s == nil {
		return Signature{}, false
	}
	i, ok := s.index[id]
	if !ok {
		return Signature{}, false
	}
	return s.sigs[i], true
}

// IDs returns the signature IDs in registration order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, len(s.sigs))
	for i, sig := range s.sigs {
		ids[i] = sig.ID
	}
	return ids
}

// TotalBytes sums the byte sizes of all registered originals.
func (s *Store) TotalBytes() int64 {
	var total int64
	for _, sig := range s.All() {
		total += sig.ByteSize
	}
	return total
}
