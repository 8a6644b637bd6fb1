package icons

import "sync"

// Slot owns at most one displayed bitmap at a time.
// Swapping releases the previous handle before the new one is acquired.
type Slot struct {
	bank Bank

	mu      sync.Mutex
	current *Bitmap
}

func NewSlot(bank Bank) *Slot {
	return &Slot{bank: bank}
}

// Swap replaces the displayed bitmap with id. AssetNone clears the slot.
// Swapping to the asset already shown keeps the current handle.
// On error the slot is left empty.
func (s *Slot) Swap(id AssetID) (*Bitmap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.current.ID == id {
		return s.current, nil
	}
	if s.current != nil {
		s.bank.Release(s.current)
		s.current = nil
	}
	if id.IsNone() {
		return nil, nil
	}
	bm, err := s.bank.Acquire(id)
	if err != nil {
		return nil, err
	}
	s.current = bm
	return bm, nil
}

// Current returns the displayed bitmap, or nil.
func (s *Slot) Current() *Bitmap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Close releases the displayed bitmap.
func (s *Slot) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.bank.Release(s.current)
		s.current = nil
	}
}
