package domain

// RunResult summarizes a single pipeline run. It is built incrementally
// across the run and immutable once returned.
type RunResult struct {
	TotalArticles    int      `json:"total_articles"`
	IncidentsCreated int      `json:"incidents_created"`
	Errors           []string `json:"errors"`
	ProcessedSources []string `json:"processed_sources"`
}

// Degraded reports whether the run completed with partial failures.
// A nonempty error list means degraded, not failed.
func (r *RunResult) Degraded() bool {
	return len(r.Errors) > 0
}
