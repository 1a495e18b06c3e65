package models

// SearchRequest carries one trail-search invocation: a free-text term,
// pagination controls, the raw filter map, and the active unit system
type SearchRequest struct {
	SearchTerm string                 `json:"searchTerm"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	Filters    map[string]interface{} `json:"filters"`
	Unit       string                 `json:"unit"` // Imperial or Metric

	// Acting user, set by the auth middleware rather than the client
	UserID *int64 `json:"-"`
}

// SearchResult is one page of matches. TotalCount reflects the full
// match count before pagination; Trails only the current page.
type SearchResult struct {
	TotalCount int64   `json:"totalCount"`
	Trails     []Trail `json:"trails"`
}
