// Package reconcile joins fetched library items against the set of
// required identifiers. Everything here is a pure function over in-memory
// data; no I/O happens in this package.
package reconcile

import (
	"sort"

	"github.com/zotools/pubsync/internal/zotero"
)

// Record is one exportable catalog record with its derived thumbnail.
type Record struct {
	Key          string
	Title        string
	ReportNumber string
	URL          string
	ItemType     string
	Date         string
	Thumbnail    string
}

// Result holds the outcome of one reconciliation pass.
type Result struct {
	// Records are the retained records, in fetch order.
	Records []Record

	// Fetched is the number of items the catalog returned.
	Fetched int

	// DroppedNoLink counts items discarded for lacking a resolvable URL.
	DroppedNoLink int

	// Gaps lists required identifiers, by raw form, with no retained
	// match. Sorted for deterministic reporting. Advisory only.
	Gaps []string
}

// Reconcile filters the fetched items against the needed identifier set.
// The link filter runs before the join, so a matching item without a URL
// still surfaces in the gap report; that mirrors the behavior downstream
// operators already rely on.
func Reconcile(items []zotero.Item, needed map[string]struct{}) Result {
	result := Result{Fetched: len(items)}

	// Normalized needs, each resolved back to one raw form for reporting.
	// When several raws share a key, the smallest raw wins so the gap
	// report stays deterministic.
	neededKeys := make(map[string]string, len(needed))
	for raw := range needed {
		key := Normalize(raw)
		if prev, ok := neededKeys[key]; !ok || raw < prev {
			neededKeys[key] = raw
		}
	}

	matched := make(map[string]struct{}, len(neededKeys))
	for _, item := range items {
		if item.Data.URL == "" {
			result.DroppedNoLink++
			continue
		}
		key := Normalize(item.Data.ReportNumber)
		if _, ok := neededKeys[key]; !ok {
			continue
		}
		matched[key] = struct{}{}
		result.Records = append(result.Records, Record{
			Key:          item.Key,
			Title:        item.Data.Title,
			ReportNumber: item.Data.ReportNumber,
			URL:          item.Data.URL,
			ItemType:     item.Data.ItemType,
			Date:         item.Data.Date,
			Thumbnail:    Thumbnail(item.Data.ReportNumber),
		})
	}

	for key, raw := range neededKeys {
		if _, ok := matched[key]; !ok {
			result.Gaps = append(result.Gaps, raw)
		}
	}
	sort.Strings(result.Gaps)

	return result
}
