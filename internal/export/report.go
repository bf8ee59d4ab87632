package export

import (
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/zotools/pubsync/internal/reconcile"
	"github.com/zotools/pubsync/pkg/errors"
)

// RunReport is the machine-readable summary of one sync run.
type RunReport struct {
	GeneratedAt   string   `yaml:"generated_at"`
	Fetched       int      `yaml:"fetched"`
	DroppedNoLink int      `yaml:"dropped_no_link"`
	Retained      int      `yaml:"retained"`
	Missing       []string `yaml:"missing,omitempty"`
}

// NewRunReport builds a report from a reconciliation result.
func NewRunReport(result reconcile.Result, now time.Time) RunReport {
	return RunReport{
		GeneratedAt:   now.UTC().Format(time.RFC3339),
		Fetched:       result.Fetched,
		DroppedNoLink: result.DroppedNoLink,
		Retained:      len(result.Records),
		Missing:       result.Gaps,
	}
}

// WriteReport writes the run report as YAML to path, overwriting any
// existing file.
func WriteReport(path string, report RunReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
