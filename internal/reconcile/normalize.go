package reconcile

import (
	"regexp"
	"strings"
)

// ThumbnailExt is the image extension appended to derived thumbnail names.
const ThumbnailExt = ".png"

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize transforms a raw identifier into the key used for matching:
// upper-cased with every non-alphanumeric ASCII character removed.
// "pnw 615" and "PNW-615" both normalize to "PNW615". Total over any
// string; an absent identifier is the empty string.
func Normalize(id string) string {
	id = strings.ToUpper(id)
	var b strings.Builder
	b.Grow(len(id))
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Thumbnail derives a thumbnail filename from a raw report number:
// lower-cased, each whitespace run collapsed to one underscore, with the
// image extension appended. "PNW 615" becomes "pnw_615.png". An absent
// or empty report number yields the empty string.
func Thumbnail(reportNumber string) string {
	if reportNumber == "" {
		return ""
	}
	name := strings.ToLower(reportNumber)
	name = whitespaceRun.ReplaceAllString(name, "_")
	return name + ThumbnailExt
}
