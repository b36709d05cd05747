package models

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewSessionStore(t.TempDir())

	session, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, session, "missing file means no session")

	require.NoError(t, store.Save(&Session{IDSheet: "sheet-123"}))

	session, err = store.Load()
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Equal(t, "sheet-123", session.IDSheet)

	require.NoError(t, store.Clear())
	session, err = store.Load()
	require.NoError(t, err)
	require.Nil(t, session)

	// Clearing twice is fine
	require.NoError(t, store.Clear())
}

func TestSessionStorePurgesMalformedFile(t *testing.T) {
	store := NewSessionStore(t.TempDir())

	require.NoError(t, os.WriteFile(store.SessionFile, []byte("not json"), 0600))

	session, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, session)

	_, err = os.Stat(store.SessionFile)
	require.True(t, os.IsNotExist(err), "malformed file must be removed")
}

func TestSessionStorePurgesEmptyTenant(t *testing.T) {
	store := NewSessionStore(t.TempDir())

	require.NoError(t, os.WriteFile(store.SessionFile, []byte(`{"id_sheet":""}`), 0600))

	session, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, session)

	_, err = os.Stat(store.SessionFile)
	require.True(t, os.IsNotExist(err))
}
