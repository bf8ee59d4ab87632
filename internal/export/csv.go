// Package export serializes the reconciled record set: the CSV export
// consumed downstream and the optional YAML run report.
package export

import (
	"encoding/csv"
	"os"

	"github.com/zotools/pubsync/internal/reconcile"
	"github.com/zotools/pubsync/pkg/errors"
)

// Header is the export column order. Internal normalization keys are
// never written.
var Header = []string{"key", "title", "reportNumber", "url", "itemType", "date", "thumbnail"}

// WriteCSV writes the retained records to path, one row per record in
// reconciler order, overwriting any existing file.
func WriteCSV(path string, records []reconcile.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(Header); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	for _, r := range records {
		row := []string{r.Key, r.Title, r.ReportNumber, r.URL, r.ItemType, r.Date, r.Thumbnail}
		if err := writer.Write(row); err != nil {
			_ = f.Close()
			return errors.WrapIO("write", path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	return nil
}

// ReadCSV reads an export file back into records. Used by tests and by
// downstream tooling that wants the typed form instead of raw CSV.
func ReadCSV(path string) ([]reconcile.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}
	if len(rows) == 0 {
		return nil, errors.NewParseError("csv", path, "missing header row", nil)
	}
	if len(rows[0]) != len(Header) {
		return nil, errors.NewParseError("csv", path, "unexpected column count", nil)
	}

	records := make([]reconcile.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, reconcile.Record{
			Key:          row[0],
			Title:        row[1],
			ReportNumber: row[2],
			URL:          row[3],
			ItemType:     row[4],
			Date:         row[5],
			Thumbnail:    row[6],
		})
	}
	return records, nil
}
