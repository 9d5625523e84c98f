// Package pagination implements offset page/limit pagination for list endpoints.
package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 4
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 20
)

// Params holds normalized pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps page to at least 1 and limit to [1, MaxLimit], applying
// DefaultLimit when limit is absent or non-positive.
func Normalize(page, limit int) Params {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Metadata describes a page of results for response envelopes.
type Metadata struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// BuildMetadata derives page metadata from the normalized params and the
// total row count.
func BuildMetadata(p Params, total int64) Metadata {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Metadata{
		Page:        p.Page,
		Limit:       p.Limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: p.Page < totalPages,
		HasPrevPage: p.Page > 1 && total > 0,
	}
}
