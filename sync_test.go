package pubsync_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zotools/pubsync"
	"github.com/zotools/pubsync/internal/export"
	"github.com/zotools/pubsync/pkg/errors"
	"github.com/zotools/pubsync/pkg/logging"
)

const catalogResponse = `[
  {"key": "K1", "data": {"title": "PNW pub", "reportNumber": "pnw 615", "url": "https://example.org/pnw615", "itemType": "report", "date": "2019"}},
  {"key": "K2", "data": {"title": "AGNET pub", "reportNumber": "AGNET", "itemType": "report", "date": "2020"}},
  {"key": "K3", "data": {"title": "FS pub", "reportNumber": "FS123", "url": "https://example.org/fs123", "itemType": "report", "date": "2021"}}
]`

func newPipeline(t *testing.T, serverURL, needsContent string, extra ...pubsync.Option) (*pubsync.Pipeline, string) {
	t.Helper()

	dir := t.TempDir()
	needsPath := filepath.Join(dir, "needed_pubs.csv")
	require.NoError(t, os.WriteFile(needsPath, []byte(needsContent), 0o644))
	outPath := filepath.Join(dir, "pubs_export.csv")

	opts := append([]pubsync.Option{
		pubsync.WithGroup("12345"),
		pubsync.WithAPIURL(serverURL),
		pubsync.WithNeedsFile(needsPath),
		pubsync.WithOutputFile(outPath),
		pubsync.WithLogger(&logging.Nop),
	}, extra...)

	p, err := pubsync.New(opts...)
	require.NoError(t, err)
	return p, outPath
}

func catalogServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestPipelineRun(t *testing.T) {
	t.Run("matched record with link is exported, link-less match is a gap", func(t *testing.T) {
		server := catalogServer(t, catalogResponse)
		p, outPath := newPipeline(t, server.URL, "reportNumber\nPNW 615\nEMPTY\nAGNET\n")

		run, err := p.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, run.Needed)
		assert.Equal(t, outPath, run.ExportPath)
		assert.Equal(t, []string{"AGNET"}, run.Reconciliation.Gaps)

		records, err := export.ReadCSV(outPath)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "K1", records[0].Key)
		assert.Equal(t, "pnw 615", records[0].ReportNumber)
		assert.Equal(t, "pnw_615.png", records[0].Thumbnail)
	})

	t.Run("empty needs list exports nothing and reports nothing", func(t *testing.T) {
		server := catalogServer(t, catalogResponse)
		p, outPath := newPipeline(t, server.URL, "reportNumber\n")

		run, err := p.Run(context.Background())
		require.NoError(t, err)

		assert.Empty(t, run.Reconciliation.Records)
		assert.Empty(t, run.Reconciliation.Gaps)

		records, err := export.ReadCSV(outPath)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("remote 500 aborts without touching the output file", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
		}))
		defer server.Close()

		p, outPath := newPipeline(t, server.URL, "reportNumber\nPNW 615\n")

		_, err := p.Run(context.Background())
		require.Error(t, err)

		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)

		_, statErr := os.Stat(outPath)
		assert.True(t, os.IsNotExist(statErr), "output file must not be created on abort")
	})

	t.Run("missing needs file aborts before the fetch", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		p, err := pubsync.New(
			pubsync.WithGroup("12345"),
			pubsync.WithAPIURL(server.URL),
			pubsync.WithNeedsFile(filepath.Join(t.TempDir(), "absent.csv")),
			pubsync.WithLogger(&logging.Nop),
		)
		require.NoError(t, err)

		_, err = p.Run(context.Background())
		require.Error(t, err)

		var cfgErr *errors.ConfigError
		assert.ErrorAs(t, err, &cfgErr)
		assert.Zero(t, requests)
	})

	t.Run("dry run skips the export write", func(t *testing.T) {
		server := catalogServer(t, catalogResponse)
		p, outPath := newPipeline(t, server.URL, "reportNumber\nPNW 615\n", pubsync.WithDryRun(true))

		run, err := p.Run(context.Background())
		require.NoError(t, err)

		assert.Empty(t, run.ExportPath)
		assert.Len(t, run.Reconciliation.Records, 1)

		_, statErr := os.Stat(outPath)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("run report written when configured", func(t *testing.T) {
		server := catalogServer(t, catalogResponse)
		reportPath := filepath.Join(t.TempDir(), "run_report.yaml")
		p, _ := newPipeline(t, server.URL, "reportNumber\nPNW 615\nAGNET\n",
			pubsync.WithReportFile(reportPath))

		_, err := p.Run(context.Background())
		require.NoError(t, err)

		content, err := os.ReadFile(reportPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "retained: 1")
		assert.Contains(t, string(content), "- AGNET")
	})
}

func TestNew(t *testing.T) {
	t.Run("group is required", func(t *testing.T) {
		_, err := pubsync.New()
		require.Error(t, err)

		var cfgErr *errors.ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	})
}
