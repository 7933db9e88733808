package assistant

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	mu     sync.Mutex
	items  map[string]string
	getErr error
	setErr error
	sets   int
}

func newStubStore() *stubStore {
	return &stubStore{items: make(map[string]string)}
}

func (s *stubStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *stubStore) SetItem(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	s.items[key] = value
	return nil
}

func (s *stubStore) stored() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[SelectionStorageKey]
	return v, ok
}

func TestSelectionSet_ToggleTwiceRoundTrips(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	store.items[SelectionStorageKey] = "[2,5]"

	sel := NewSelectionSet(store)
	require.NoError(t, sel.Restore(ctx))
	before := sel.IDs()

	selected, err := sel.Toggle(ctx, 3)
	require.NoError(t, err)
	assert.True(t, selected)
	stored, _ := store.stored()
	assert.Equal(t, "[2,3,5]", stored)

	selected, err = sel.Toggle(ctx, 3)
	require.NoError(t, err)
	assert.False(t, selected)

	assert.Equal(t, before, sel.IDs())
	stored, _ = store.stored()
	assert.Equal(t, "[2,5]", stored)
}

func TestSelectionSet_StoredOrderIsSorted(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	sel := NewSelectionSet(store)

	for _, id := range []int{9, 1, 4} {
		_, err := sel.Toggle(ctx, id)
		require.NoError(t, err)
	}

	stored, _ := store.stored()
	assert.Equal(t, "[1,4,9]", stored)
	assert.Equal(t, []int{1, 4, 9}, sel.IDs())
}

func TestSelectionSet_RestoreAbsentKey(t *testing.T) {
	sel := NewSelectionSet(newStubStore())
	require.NoError(t, sel.Restore(context.Background()))
	assert.Zero(t, sel.Len())
}

func TestSelectionSet_RestoreCorrupt(t *testing.T) {
	for _, raw := range []string{"not json", `{"id":1}`, `["a"]`} {
		store := newStubStore()
		store.items[SelectionStorageKey] = raw
		sel := NewSelectionSet(store)

		err := sel.Restore(context.Background())
		assert.ErrorIs(t, err, ErrCorruptSelection, raw)
		assert.Zero(t, sel.Len(), raw)
	}
}

func TestSelectionSet_RestoreStoreError(t *testing.T) {
	store := newStubStore()
	store.getErr = errors.New("disk gone")
	sel := NewSelectionSet(store)

	err := sel.Restore(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCorruptSelection)
}

func TestSelectionSet_Clear(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	sel := NewSelectionSet(store)

	changed, err := sel.Clear(ctx)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Zero(t, store.sets, "clearing an empty set does not write")

	_, err = sel.Toggle(ctx, 7)
	require.NoError(t, err)

	changed, err = sel.Clear(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Zero(t, sel.Len())
	stored, _ := store.stored()
	assert.Equal(t, "[]", stored)
}

func TestSelectionSet_SaveFailureKeepsChange(t *testing.T) {
	store := newStubStore()
	store.setErr = errors.New("read-only")
	sel := NewSelectionSet(store)

	selected, err := sel.Toggle(context.Background(), 4)
	assert.Error(t, err)
	assert.True(t, selected)
	assert.True(t, sel.Has(4))
}
