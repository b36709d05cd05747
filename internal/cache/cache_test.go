package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gestorpro/internal/models"
)

func noteList() *List[models.Note] {
	l := NewList(func(n models.Note) string { return n.ID })
	l.SetSort(func(a, b models.Note) bool {
		if a.Pinned() != b.Pinned() {
			return a.Pinned()
		}
		return a.Created().After(b.Created())
	})
	return l
}

func noteIDs(l *List[models.Note]) []string {
	items := l.Items()
	ids := make([]string, len(items))
	for i, n := range items {
		ids[i] = n.ID
	}
	return ids
}

func TestListSortReappliedAfterMutations(t *testing.T) {
	l := noteList()
	l.Replace([]models.Note{
		{ID: "old", CreatedAt: "2024-01-01T00:00:00Z"},
		{ID: "new", CreatedAt: "2024-02-01T00:00:00Z"},
	})
	require.Equal(t, []string{"new", "old"}, noteIDs(l))

	// Pinning an entry via upsert must move it to the front immediately
	l.Upsert(models.Note{ID: "old", CreatedAt: "2024-01-01T00:00:00Z", IsPinned: true})
	require.Equal(t, []string{"old", "new"}, noteIDs(l))

	// A newer append lands in order, not at the tail
	l.Upsert(models.Note{ID: "newest", CreatedAt: "2024-03-01T00:00:00Z"})
	require.Equal(t, []string{"old", "newest", "new"}, noteIDs(l))
}

func TestListFindAndRemove(t *testing.T) {
	l := noteList()
	l.Replace([]models.Note{{ID: "a", Title: "first"}, {ID: "b"}})

	note, ok := l.Find("a")
	require.True(t, ok)
	require.Equal(t, "first", note.Title)

	_, ok = l.Find("missing")
	require.False(t, ok)

	require.True(t, l.Remove("a"))
	require.False(t, l.Remove("a"))
	require.Equal(t, 1, l.Len())
}

func TestListItemsReturnsCopy(t *testing.T) {
	l := noteList()
	l.Replace([]models.Note{{ID: "a"}})

	items := l.Items()
	items[0].ID = "mutated"

	_, ok := l.Find("a")
	require.True(t, ok, "mutating the returned slice must not affect the cache")
}

func TestSnapshotRestoreIsExact(t *testing.T) {
	l := noteList()
	l.Replace([]models.Note{
		{ID: "a", CreatedAt: "2024-02-01T00:00:00Z"},
		{ID: "b", CreatedAt: "2024-01-01T00:00:00Z"},
	})

	snapshot := l.Snapshot()

	l.Upsert(models.Note{ID: "c", CreatedAt: "2024-03-01T00:00:00Z"})
	l.Remove("b")

	l.Restore(snapshot)
	require.Equal(t, []string{"a", "b"}, noteIDs(l))
}

func TestSelectionRebind(t *testing.T) {
	l := noteList()
	l.Replace([]models.Note{{ID: "a", Title: "v1"}})

	var sel Selection[models.Note]
	sel.Select("a")

	// A refresh carrying the entity rebinds to the refreshed copy
	l.Replace([]models.Note{{ID: "a", Title: "v2"}})
	note, ok := sel.Rebind(l)
	require.True(t, ok)
	require.Equal(t, "v2", note.Title)
	require.Equal(t, "a", sel.ID())

	// A refresh without it clears the selection
	l.Replace([]models.Note{{ID: "b"}})
	_, ok = sel.Rebind(l)
	require.False(t, ok)
	require.Empty(t, sel.ID())
}

func TestIdenticalRefreshLeavesCacheAndSelectionUnchanged(t *testing.T) {
	notes := []models.Note{
		{ID: "a", CreatedAt: "2024-02-01T00:00:00Z"},
		{ID: "b", CreatedAt: "2024-01-01T00:00:00Z"},
	}

	l := noteList()
	l.Replace(notes)

	var sel Selection[models.Note]
	sel.Select("b")

	before := l.Items()
	l.Replace(notes)

	require.Equal(t, before, l.Items())
	note, ok := sel.Rebind(l)
	require.True(t, ok)
	require.Equal(t, "b", note.ID)
}

func TestSelectionRebindEmpty(t *testing.T) {
	l := noteList()
	var sel Selection[models.Note]

	_, ok := sel.Rebind(l)
	require.False(t, ok)
}
