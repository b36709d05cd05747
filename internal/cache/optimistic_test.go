package cache

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gestorpro/internal/models"
)

func noteMutator(l *List[models.Note], sel *Selection[models.Note]) *Mutator[models.Note] {
	return NewMutator(l, sel,
		func(n models.Note) string { return n.ID },
		func(n models.Note, id string) models.Note {
			n.ID = id
			return n
		},
	)
}

func TestCreateCommitsServerEntity(t *testing.T) {
	l := noteList()
	m := noteMutator(l, nil)

	var sawProvisional bool
	committed, err := m.Create(context.Background(), models.Note{Title: "draft"},
		func(ctx context.Context, draft models.Note) (models.Note, error) {
			// The optimistic entry is already visible while the call runs
			for _, n := range l.Items() {
				if strings.HasPrefix(n.ID, "pending-") {
					sawProvisional = true
				}
			}
			draft.ID = "server-1"
			return draft, nil
		},
	)

	require.NoError(t, err)
	require.True(t, sawProvisional)
	require.Equal(t, "server-1", committed.ID)

	require.Equal(t, 1, l.Len(), "provisional entry must be gone")
	_, ok := l.Find("server-1")
	require.True(t, ok)
}

func TestCreateRollsBackOnFailure(t *testing.T) {
	l := noteList()
	l.Replace([]models.Note{{ID: "existing"}})
	m := noteMutator(l, nil)

	boom := errors.New("backend down")
	_, err := m.Create(context.Background(), models.Note{Title: "draft"},
		func(ctx context.Context, draft models.Note) (models.Note, error) {
			return models.Note{}, boom
		},
	)

	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"existing"}, noteIDs(l))
}

func TestUpdateReplacesWithServerCopy(t *testing.T) {
	l := noteList()
	l.Replace([]models.Note{{ID: "a", Title: "v1"}})
	m := noteMutator(l, nil)

	committed, err := m.Update(context.Background(), models.Note{ID: "a", Title: "v2"},
		func(ctx context.Context, n models.Note) (models.Note, error) {
			// Server recomputes fields the client does not own
			n.CreatedAt = "2024-01-01T00:00:00Z"
			return n, nil
		},
	)

	require.NoError(t, err)
	require.Equal(t, "2024-01-01T00:00:00Z", committed.CreatedAt)

	note, ok := l.Find("a")
	require.True(t, ok)
	require.Equal(t, "v2", note.Title)
	require.Equal(t, "2024-01-01T00:00:00Z", note.CreatedAt)
}

func TestUpdateRollsBackOnFailure(t *testing.T) {
	l := noteList()
	l.Replace([]models.Note{{ID: "a", Title: "v1"}})
	m := noteMutator(l, nil)

	_, err := m.Update(context.Background(), models.Note{ID: "a", Title: "v2"},
		func(ctx context.Context, n models.Note) (models.Note, error) {
			return models.Note{}, errors.New("rejected")
		},
	)

	require.Error(t, err)
	note, _ := l.Find("a")
	require.Equal(t, "v1", note.Title, "optimistic edit must be rolled back")
}

func TestRemoveClearsSelectionOnSuccess(t *testing.T) {
	l := noteList()
	l.Replace([]models.Note{{ID: "a"}, {ID: "b"}})

	var sel Selection[models.Note]
	sel.Select("a")

	m := noteMutator(l, &sel)
	err := m.Remove(context.Background(), "a", func(ctx context.Context, id string) error {
		return nil
	})

	require.NoError(t, err)
	require.Empty(t, sel.ID())
	require.Equal(t, 1, l.Len())
}

func TestRemoveRestoresOnFailure(t *testing.T) {
	l := noteList()
	l.Replace([]models.Note{{ID: "a"}, {ID: "b"}})

	var sel Selection[models.Note]
	sel.Select("a")

	m := noteMutator(l, &sel)
	err := m.Remove(context.Background(), "a", func(ctx context.Context, id string) error {
		return errors.New("backend down")
	})

	require.Error(t, err)
	require.Equal(t, 2, l.Len())
	require.Equal(t, "a", sel.ID(), "selection survives a failed delete")
}
