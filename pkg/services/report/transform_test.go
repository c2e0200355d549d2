package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sched-tools/ops-atlas/pkg/models/domain"
)

func TestSortRows(t *testing.T) {
	t.Run("sorts strings ascending", func(t *testing.T) {
		rows := []domain.Row{
			{"customerName": "Charlie"},
			{"customerName": "alice"},
			{"customerName": "Bob"},
		}

		sorted := SortRows(rows, "customerName", domain.SortAsc)

		assert.Equal(t, "alice", sorted[0]["customerName"])
		assert.Equal(t, "Bob", sorted[1]["customerName"])
		assert.Equal(t, "Charlie", sorted[2]["customerName"])
	})

	t.Run("sorts numbers descending", func(t *testing.T) {
		rows := []domain.Row{
			{"membersCount": 2},
			{"membersCount": 10},
			{"membersCount": 5},
		}

		sorted := SortRows(rows, "membersCount", domain.SortDesc)

		assert.Equal(t, 10, sorted[0]["membersCount"])
		assert.Equal(t, 5, sorted[1]["membersCount"])
		assert.Equal(t, 2, sorted[2]["membersCount"])
	})

	t.Run("nil values sort last in both directions", func(t *testing.T) {
		rows := []domain.Row{
			{"status": nil, "id": "1"},
			{"status": "approved", "id": "2"},
			{"id": "3"},
			{"status": "pending", "id": "4"},
		}

		asc := SortRows(rows, "status", domain.SortAsc)
		require.Len(t, asc, 4)
		assert.Equal(t, "2", asc[0]["id"])
		assert.Equal(t, "4", asc[1]["id"])
		assert.Nil(t, asc[2]["status"])
		assert.Nil(t, asc[3]["status"])

		desc := SortRows(rows, "status", domain.SortDesc)
		assert.Equal(t, "4", desc[0]["id"])
		assert.Equal(t, "2", desc[1]["id"])
		assert.Nil(t, desc[2]["status"])
		assert.Nil(t, desc[3]["status"])
	})

	t.Run("mixed types keep original order", func(t *testing.T) {
		rows := []domain.Row{
			{"v": "text", "id": "1"},
			{"v": 42, "id": "2"},
			{"v": "other", "id": "3"},
		}

		sorted := SortRows(rows, "v", domain.SortAsc)

		assert.Equal(t, "1", sorted[0]["id"])
		assert.Equal(t, "2", sorted[1]["id"])
		assert.Equal(t, "3", sorted[2]["id"])
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		rows := []domain.Row{
			{"id": "b"},
			{"id": "a"},
		}

		_ = SortRows(rows, "id", domain.SortAsc)

		assert.Equal(t, "b", rows[0]["id"])
		assert.Equal(t, "a", rows[1]["id"])
	})
}

func TestSelectColumns(t *testing.T) {
	rows := []domain.Row{
		{"id": "1", "customerName": "Alice", "status": "approved"},
		{"id": "2", "customerName": "Bob", "status": "pending"},
	}

	t.Run("projects onto the named keys", func(t *testing.T) {
		projected := SelectColumns(rows, []string{"id", "status"})

		require.Len(t, projected, 2)
		assert.Equal(t, domain.Row{"id": "1", "status": "approved"}, projected[0])
		assert.Equal(t, domain.Row{"id": "2", "status": "pending"}, projected[1])
	})

	t.Run("unknown keys are omitted", func(t *testing.T) {
		projected := SelectColumns(rows, []string{"id", "missing"})

		require.Len(t, projected, 2)
		assert.Equal(t, domain.Row{"id": "1"}, projected[0])
	})

	t.Run("empty column list returns rows unchanged", func(t *testing.T) {
		projected := SelectColumns(rows, nil)
		assert.Equal(t, rows, projected)
	})
}
