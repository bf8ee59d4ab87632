// Package pubsync synchronizes a local list of needed publication
// identifiers against a remote Zotero group library and exports the
// matching records as CSV. It is a single-pass batch pipeline: one
// fetch, one reconciliation, one write.
package pubsync

import (
	"fmt"

	"github.com/zotools/pubsync/internal/transport"
	"github.com/zotools/pubsync/internal/zotero"
	"github.com/zotools/pubsync/pkg/errors"
	"github.com/zotools/pubsync/pkg/logging"
)

// Default file paths used when no option overrides them.
const (
	DefaultNeedsFile  = "needed_pubs.csv"
	DefaultOutputFile = "pubs_export.csv"
)

// Pipeline runs the sync stages against one configured group library.
type Pipeline struct {
	config *config
}

// New creates a new Pipeline with the given options.
func New(opts ...Option) (*Pipeline, error) {
	c := &config{
		limit:      zotero.MaxPageSize,
		needsFile:  DefaultNeedsFile,
		outputFile: DefaultOutputFile,
		apiURL:     zotero.DefaultBaseURL,
		timeout:    transport.DefaultTimeout,
		logger:     logging.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	if c.groupID == "" {
		return nil, &errors.ConfigError{
			Component: "pipeline",
			Message:   "group ID is required",
		}
	}

	return &Pipeline{config: c}, nil
}
