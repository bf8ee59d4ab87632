package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zotools/pubsync/internal/reconcile"
	"github.com/zotools/pubsync/internal/zotero"
)

func item(key, reportNumber, url string) zotero.Item {
	return zotero.Item{
		Key: key,
		Data: zotero.ItemData{
			Title:        "Title for " + key,
			ReportNumber: reportNumber,
			URL:          url,
			ItemType:     "report",
			Date:         "2020",
		},
	}
}

func needs(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func TestReconcile(t *testing.T) {
	t.Run("keeps matches with links, reports the rest", func(t *testing.T) {
		// "AGNET" matches by identifier but has no link: the link filter
		// runs first, so it is dropped and reported as a gap.
		items := []zotero.Item{
			item("K1", "pnw 615", "https://example.org/pnw615"),
			item("K2", "AGNET", ""),
			item("K3", "FS123", "https://example.org/fs123"),
		}

		result := reconcile.Reconcile(items, needs("PNW 615", "AGNET"))

		require.Len(t, result.Records, 1)
		assert.Equal(t, "K1", result.Records[0].Key)
		assert.Equal(t, "pnw 615", result.Records[0].ReportNumber)
		assert.Equal(t, "pnw_615.png", result.Records[0].Thumbnail)

		assert.Equal(t, 3, result.Fetched)
		assert.Equal(t, 1, result.DroppedNoLink)
		assert.Equal(t, []string{"AGNET"}, result.Gaps)
	})

	t.Run("empty needs keeps nothing and reports nothing", func(t *testing.T) {
		items := []zotero.Item{
			item("K1", "PNW 615", "https://example.org/pnw615"),
		}

		result := reconcile.Reconcile(items, needs())

		assert.Empty(t, result.Records)
		assert.Empty(t, result.Gaps)
	})

	t.Run("empty catalog yields full gap report", func(t *testing.T) {
		result := reconcile.Reconcile(nil, needs("PNW 615", "AGNET"))

		assert.Empty(t, result.Records)
		assert.Equal(t, []string{"AGNET", "PNW 615"}, result.Gaps)
	})

	t.Run("records keep fetch order", func(t *testing.T) {
		items := []zotero.Item{
			item("K3", "FS123", "https://example.org/3"),
			item("K1", "PNW 615", "https://example.org/1"),
			item("K2", "AGNET", "https://example.org/2"),
		}

		result := reconcile.Reconcile(items, needs("FS123", "PNW 615", "AGNET"))

		require.Len(t, result.Records, 3)
		assert.Equal(t, "K3", result.Records[0].Key)
		assert.Equal(t, "K1", result.Records[1].Key)
		assert.Equal(t, "K2", result.Records[2].Key)
	})

	t.Run("needs sharing a normalized key are satisfied together", func(t *testing.T) {
		items := []zotero.Item{
			item("K1", "PNW615", "https://example.org/pnw615"),
		}

		result := reconcile.Reconcile(items, needs("PNW 615", "pnw-615"))

		require.Len(t, result.Records, 1)
		assert.Empty(t, result.Gaps)
	})

	t.Run("needs sharing a normalized key gap exactly once", func(t *testing.T) {
		result := reconcile.Reconcile(nil, needs("PNW 615", "pnw-615"))

		assert.Equal(t, []string{"PNW 615"}, result.Gaps)
	})

	t.Run("all matching records for one key are kept", func(t *testing.T) {
		items := []zotero.Item{
			item("K1", "PNW 615", "https://example.org/a"),
			item("K2", "pnw-615", "https://example.org/b"),
		}

		result := reconcile.Reconcile(items, needs("PNW 615"))

		assert.Len(t, result.Records, 2)
		assert.Empty(t, result.Gaps)
	})

	t.Run("non-matching records are dropped silently", func(t *testing.T) {
		items := []zotero.Item{
			item("K1", "RMRS 42", "https://example.org/rmrs42"),
		}

		result := reconcile.Reconcile(items, needs("PNW 615"))

		assert.Empty(t, result.Records)
		assert.Zero(t, result.DroppedNoLink)
		assert.Equal(t, []string{"PNW 615"}, result.Gaps)
	})
}
