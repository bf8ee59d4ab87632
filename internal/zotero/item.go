package zotero

// Item represents one top-level item in a Zotero library response.
type Item struct {
	Key  string   `json:"key"`
	Data ItemData `json:"data"`
}

// ItemData holds the bibliographic fields of an item. Fields absent from
// the response decode to empty strings; a missing url is logically empty,
// not an error.
type ItemData struct {
	Title        string `json:"title"`
	ReportNumber string `json:"reportNumber"`
	URL          string `json:"url"`
	ItemType     string `json:"itemType"`
	Date         string `json:"date"`
}
