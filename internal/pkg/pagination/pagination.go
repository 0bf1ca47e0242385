package pagination

import "strings"

const (
	DefaultPage = 1
	DefaultSize = 10
)

// Params carries the listing knobs every collection endpoint accepts. Zero or
// negative values fall back to the documented defaults on Normalize.
type Params struct {
	Page      int
	Size      int
	SortBy    string
	Ascending bool
}

func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Size < 1 {
		p.Size = DefaultSize
	}
	p.SortBy = strings.ToLower(strings.TrimSpace(p.SortBy))
	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Size
}

// OrderClause resolves the requested sort key against a whitelist of
// key -> column mappings. Unknown keys fall back to the entity default.
func (p Params) OrderClause(columns map[string]string, defaultColumn string, defaultAscending bool) string {
	column, ok := columns[p.SortBy]
	ascending := p.Ascending
	if !ok {
		column = defaultColumn
		ascending = defaultAscending
	}
	if ascending {
		return column + " ASC"
	}
	return column + " DESC"
}
