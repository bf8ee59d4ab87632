package pubsync

import (
	"context"
	"time"

	"github.com/zotools/pubsync/internal/export"
	"github.com/zotools/pubsync/internal/reconcile"
	"github.com/zotools/pubsync/internal/reflist"
	"github.com/zotools/pubsync/internal/report"
	"github.com/zotools/pubsync/internal/zotero"
)

// RunResult is the outcome of one completed sync run.
type RunResult struct {
	// Needed is the number of unique required identifiers.
	Needed int

	// Reconciliation holds the retained records, counts, and gap report.
	Reconciliation reconcile.Result

	// ExportPath is the written export file, empty on a dry run.
	ExportPath string
}

// Run executes the four stages of the sync in order: load the needs
// list, fetch the remote catalog, reconcile, export. The first failing
// stage aborts the run; the export file is only touched after every
// filtering decision is final, so a failed run leaves no partial output.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := p.config.logger

	// Stage 1: reference loader
	needed, err := reflist.Load(p.config.needsFile)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("path", p.config.needsFile).
		Int("needed", len(needed)).
		Msg("Loaded needs list")

	// Stage 2: catalog fetcher
	client := zotero.NewClient(p.config.apiURL, p.config.timeout)
	items, err := client.Items(ctx, p.config.groupID, p.config.collectionKey, p.config.limit)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("group", p.config.groupID).
		Int("fetched", len(items)).
		Msg("Fetched items from Zotero")

	// Stage 3: reconciler
	result := reconcile.Reconcile(items, needed)
	log.Info().
		Int("retained", len(result.Records)).
		Int("dropped_no_link", result.DroppedNoLink).
		Int("missing", len(result.Gaps)).
		Msg("Reconciled catalog against needs list")
	for _, raw := range result.Gaps {
		log.Warn().Str("reportNumber", raw).Msg("Needed publication not found in library")
	}

	run := &RunResult{
		Needed:         len(needed),
		Reconciliation: result,
	}

	// Stage 4: exporter
	if p.config.dryRun {
		log.Info().Msg("Dry run, skipping export write")
	} else {
		if err := export.WriteCSV(p.config.outputFile, result.Records); err != nil {
			return nil, err
		}
		run.ExportPath = p.config.outputFile
		log.Info().
			Str("path", p.config.outputFile).
			Int("rows", len(result.Records)).
			Msg("Wrote export")
	}

	if p.config.reportFile != "" {
		reportData := export.NewRunReport(result, time.Now())
		if err := export.WriteReport(p.config.reportFile, reportData); err != nil {
			return nil, err
		}
		log.Info().Str("path", p.config.reportFile).Msg("Wrote run report")
	}

	if p.config.summary != nil {
		report.Summary(p.config.summary, result, len(needed))
	}

	return run, nil
}
