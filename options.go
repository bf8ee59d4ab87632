package pubsync

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Option is a function that configures a Pipeline instance
type Option func(*config) error

// config holds the pipeline configuration. Constructed once at startup
// and read-only afterwards.
type config struct {
	groupID       string
	collectionKey string
	limit         int

	needsFile  string
	outputFile string
	reportFile string

	apiURL  string
	timeout time.Duration

	dryRun  bool
	logger  *zerolog.Logger
	summary io.Writer
}

// WithGroup sets the Zotero group library to fetch from. Required.
func WithGroup(groupID string) Option {
	return func(c *config) error {
		c.groupID = groupID
		return nil
	}
}

// WithCollection restricts the fetch to one collection within the group.
func WithCollection(collectionKey string) Option {
	return func(c *config) error {
		c.collectionKey = collectionKey
		return nil
	}
}

// WithLimit caps the number of items fetched in the single request.
func WithLimit(limit int) Option {
	return func(c *config) error {
		c.limit = limit
		return nil
	}
}

// WithNeedsFile sets the path of the local required-identifiers CSV.
func WithNeedsFile(path string) Option {
	return func(c *config) error {
		c.needsFile = path
		return nil
	}
}

// WithOutputFile sets the path of the CSV export.
func WithOutputFile(path string) Option {
	return func(c *config) error {
		c.outputFile = path
		return nil
	}
}

// WithReportFile enables the YAML run report at the given path.
func WithReportFile(path string) Option {
	return func(c *config) error {
		c.reportFile = path
		return nil
	}
}

// WithAPIURL overrides the Zotero API base URL.
func WithAPIURL(url string) Option {
	return func(c *config) error {
		c.apiURL = url
		return nil
	}
}

// WithTimeout sets the ceiling on the catalog request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) error {
		c.timeout = timeout
		return nil
	}
}

// WithDryRun fetches and reconciles but skips the export write.
func WithDryRun(enabled bool) Option {
	return func(c *config) error {
		c.dryRun = enabled
		return nil
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithSummaryWriter sets where the operator-facing summary is rendered.
func WithSummaryWriter(w io.Writer) Option {
	return func(c *config) error {
		c.summary = w
		return nil
	}
}
