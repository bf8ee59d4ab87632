// Package reflist loads the local list of required publication
// identifiers from a CSV file.
package reflist

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/zotools/pubsync/pkg/errors"
)

// Column is the header name of the identifier column in the needs file.
const Column = "reportNumber"

// Sentinel marks an entry with no identifier assigned. Matched exactly,
// case-sensitive.
const Sentinel = "EMPTY"

// Load reads the needs file at path and returns the set of unique,
// non-empty, non-sentinel identifier strings. Identifiers are carried
// raw: match normalization happens later, applied uniformly to both
// sides of the reconciliation.
func Load(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError("needs file", "file not found: "+path, err)
		}
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	return parse(f, path)
}

func parse(r io.Reader, source string) (map[string]struct{}, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewParseError("csv", source, "file is empty", nil)
	}
	if err != nil {
		return nil, errors.WrapParse("csv", source, err)
	}

	column := -1
	for i, name := range header {
		if strings.TrimSpace(stripBOM(name)) == Column {
			column = i
			break
		}
	}
	if column < 0 {
		return nil, errors.NewParseError("csv", source, "missing required column "+Column, nil)
	}

	needed := make(map[string]struct{})
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", source, err)
		}
		if column >= len(record) {
			continue
		}

		// NFC so identifiers typed in different editors compare equal.
		value := norm.NFC.String(strings.TrimSpace(record[column]))
		if value == "" || value == Sentinel {
			continue
		}
		needed[value] = struct{}{}
	}

	return needed, nil
}

// stripBOM removes a UTF-8 byte order mark left by spreadsheet exports.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
