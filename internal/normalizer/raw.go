package normalizer

import (
	"influencerdash/pkg/utils"
)

// Table names.
const (
	TableInfluencers = "influencers"
	TablePosts       = "posts"
	TableTracking    = "tracking"
	TablePayouts     = "payouts"
)

// RawRow maps a folded header key to the cell text as written.
type RawRow map[string]string

// RawTable is one input file before normalization.
type RawTable struct {
	Name   string
	Source string
	Header []string
	Rows   []RawRow
}

// RawTables is the full set of input tables keyed by table name.
type RawTables map[string]*RawTable

var headers = utils.NewStringHelper()

// NewRawTable builds a table from a header and its records. Header keys are
// folded with HeaderKey; when two headers fold to the same key the first
// column wins. Short records simply lack the trailing cells.
func NewRawTable(name, source string, header []string, records [][]string) *RawTable {
	keys := make([]string, len(header))
	seen := make(map[string]bool, len(header))

	for i, h := range header {
		k := headers.HeaderKey(h)
		if k == "" || seen[k] {
			continue
		}

		seen[k] = true
		keys[i] = k
	}

	rows := make([]RawRow, 0, len(records))

	for _, rec := range records {
		if isBlankRecord(rec) {
			continue
		}

		row := make(RawRow, len(keys))

		for i, k := range keys {
			if k == "" || i >= len(rec) {
				continue
			}

			row[k] = rec[i]
		}

		rows = append(rows, row)
	}

	return &RawTable{
		Name:   name,
		Source: source,
		Header: header,
		Rows:   rows,
	}
}

// HasColumn reports whether the folded header contains key.
func (t *RawTable) HasColumn(key string) bool {
	k := headers.HeaderKey(key)
	for _, h := range t.Header {
		if headers.HeaderKey(h) == k {
			return true
		}
	}

	return false
}

func isBlankRecord(rec []string) bool {
	for _, cell := range rec {
		if headers.TrimWhitespace(cell) != "" {
			return false
		}
	}

	return true
}
