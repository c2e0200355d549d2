package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("parses events, users and teams", func(t *testing.T) {
		path := writeSnapshot(t, `{
			"events": [{"id": "e1", "customerName": "Acme", "startTime": "2025-03-10T09:00:00", "createdBy": "u1"}],
			"users": [{"id": "u1", "email": "alice@example.com", "teamId": "t1"}],
			"teams": [{"id": "t1", "name": "Alpha"}]
		}`)

		snap, err := Load(path)
		require.NoError(t, err)

		require.Len(t, snap.Events, 1)
		assert.Equal(t, "Acme", snap.Events[0].CustomerName)
		require.NotNil(t, snap.UserByID("u1"))
		assert.Equal(t, "alice@example.com", snap.UserByID("u1").Email)
		require.NotNil(t, snap.TeamByID("t1"))
		assert.Nil(t, snap.TeamByID("t2"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeSnapshot(t, "{not json")
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestLoadOrEmpty(t *testing.T) {
	t.Run("missing file degrades to empty", func(t *testing.T) {
		snap, err := LoadOrEmpty(filepath.Join(t.TempDir(), "absent.json"))
		require.NoError(t, err)
		assert.Empty(t, snap.Events)
		assert.Empty(t, snap.Users)
	})

	t.Run("malformed json still fails", func(t *testing.T) {
		path := writeSnapshot(t, "{not json")
		_, err := LoadOrEmpty(path)
		assert.Error(t, err)
	})
}
