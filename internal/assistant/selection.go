package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// SelectionStorageKey is the fixed local-storage key for selected product IDs.
const SelectionStorageKey = "lorealSelectedProducts_v2"

var ErrCorruptSelection = errors.New("stored selection is not a JSON array of product IDs")

// LocalStore is the client's persistent key/value storage.
type LocalStore interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
}

// SelectionSet is the persisted set of chosen product IDs. It is stored as a
// sorted JSON array so the stored value depends only on the set's contents.
type SelectionSet struct {
	mu    sync.RWMutex
	ids   map[int]struct{}
	store LocalStore
}

func NewSelectionSet(store LocalStore) *SelectionSet {
	return &SelectionSet{
		ids:   make(map[int]struct{}),
		store: store,
	}
}

// Restore loads stored IDs into the set. An absent key leaves the set as is;
// an unreadable value leaves it untouched and returns ErrCorruptSelection.
func (s *SelectionSet) Restore(ctx context.Context) error {
	stored, ok, err := s.store.GetItem(ctx, SelectionStorageKey)
	if err != nil {
		return fmt.Errorf("failed to read stored selection: %w", err)
	}
	if !ok {
		return nil
	}

	var ids []int
	if err := json.Unmarshal([]byte(stored), &ids); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSelection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return nil
}

// Toggle flips id's membership and persists the set. It reports whether id
// is selected afterwards. A storage failure is returned but the in-memory
// change stands.
func (s *SelectionSet) Toggle(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, selected := s.ids[id]
	if selected {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
	return !selected, s.saveLocked(ctx)
}

// Clear empties the set. Clearing an empty set is a no-op and does not touch
// storage; changed reports whether anything was removed.
func (s *SelectionSet) Clear(ctx context.Context) (changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.ids) == 0 {
		return false, nil
	}
	s.ids = make(map[int]struct{})
	return true, s.saveLocked(ctx)
}

func (s *SelectionSet) Has(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

func (s *SelectionSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// IDs returns the selected IDs in ascending order.
func (s *SelectionSet) IDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

func (s *SelectionSet) sortedLocked() []int {
	ids := make([]int, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// saveLocked writes the set through to storage; callers hold s.mu so writes
// land in the order the changes were made.
func (s *SelectionSet) saveLocked(ctx context.Context) error {
	data, _ := json.Marshal(s.sortedLocked())
	if err := s.store.SetItem(ctx, SelectionStorageKey, string(data)); err != nil {
		return fmt.Errorf("failed to store selection: %w", err)
	}
	return nil
}
