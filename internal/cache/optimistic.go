package cache

import (
	"context"

	"github.com/google/uuid"
)

// Mutator applies optimistic mutations to a list: the local change lands
// before the remote call returns, the server's entity replaces it on success,
// and the pre-mutation snapshot is restored exactly on failure.
type Mutator[T any] struct {
	list  *List[T]
	sel   *Selection[T]
	id    func(T) string
	setID func(T, string) T
}

// NewMutator creates a mutator for the given list. sel may be nil when no
// detail view is bound to the list. setID is used to stamp provisional ids
// on optimistic creates.
func NewMutator[T any](list *List[T], sel *Selection[T], id func(T) string, setID func(T, string) T) *Mutator[T] {
	return &Mutator[T]{list: list, sel: sel, id: id, setID: setID}
}

// Create appends the draft under a provisional id, then calls remote. The
// committed entity (with its server-assigned id) replaces the provisional
// entry; on failure the snapshot is restored and the error surfaced.
func (m *Mutator[T]) Create(ctx context.Context, draft T, remote func(context.Context, T) (T, error)) (T, error) {
	snapshot := m.list.Snapshot()

	provisionalID := "pending-" + uuid.NewString()
	m.list.Upsert(m.setID(draft, provisionalID))

	committed, err := remote(ctx, draft)
	if err != nil {
		m.list.Restore(snapshot)
		var zero T
		return zero, err
	}

	m.list.Remove(provisionalID)
	m.list.Upsert(committed)
	return committed, nil
}

// Update replaces the entity locally, then calls remote. The server's copy
// (which may carry recomputed fields) replaces the optimistic one; on failure
// the snapshot is restored and the error surfaced.
func (m *Mutator[T]) Update(ctx context.Context, entity T, remote func(context.Context, T) (T, error)) (T, error) {
	snapshot := m.list.Snapshot()

	m.list.Upsert(entity)

	committed, err := remote(ctx, entity)
	if err != nil {
		m.list.Restore(snapshot)
		var zero T
		return zero, err
	}

	m.list.Upsert(committed)
	return committed, nil
}

// Remove deletes the entity locally, then calls remote. On failure the
// snapshot is restored; on success a selection bound to the removed entity
// is cleared.
func (m *Mutator[T]) Remove(ctx context.Context, id string, remote func(context.Context, string) error) error {
	snapshot := m.list.Snapshot()

	m.list.Remove(id)

	if err := remote(ctx, id); err != nil {
		m.list.Restore(snapshot)
		return err
	}

	if m.sel != nil && m.sel.ID() == id {
		m.sel.Clear()
	}
	return nil
}
