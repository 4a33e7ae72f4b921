// ABOUTME: Version recommendation and advisory models
// ABOUTME: Scored catalog entries, the recommendation bundle, and advisory messages

package models

// ScoredEntry is a catalog entry with its score for one evaluation.
// Scores are only comparable within the same evaluation.
type ScoredEntry struct {
	CatalogEntry
	Score int `json:"score"`
}

// VersionRecommendation is the version scorer's output
type VersionRecommendation struct {
	Recommended       ScoredEntry   `json:"recommended"`
	Current           *CatalogEntry `json:"current"`       // nil when the selected version is unknown
	CurrentFound      bool          `json:"current_found"`
	SelectedVersion   string        `json:"selected_version"`
	SelectedIsOptimal bool          `json:"selected_is_optimal"`
	Alternatives      []ScoredEntry `json:"alternatives"`          // At most 3, catalog order
	Suggestions       []string      `json:"suggestions,omitempty"` // Close matches for an unknown selection
}

// AdvisorySeverity classifies an advisory
type AdvisorySeverity string

const (
	SeverityWarning AdvisorySeverity = "warning"
	SeverityInfo    AdvisorySeverity = "info"
)

// AdvisoryCategory tags an advisory for icon selection
type AdvisoryCategory string

const (
	CategoryCPU         AdvisoryCategory = "cpu"
	CategoryMemory      AdvisoryCategory = "memory"
	CategoryWorkers     AdvisoryCategory = "workers"
	CategoryScalability AdvisoryCategory = "scalability"
	CategoryQueueing    AdvisoryCategory = "queueing"
)

// Advisory is a single warning or informational message
type Advisory struct {
	Severity AdvisorySeverity `json:"severity"`
	Message  string           `json:"message"`
	Category AdvisoryCategory `json:"category"`
}

// IsWarning reports whether the advisory is a warning
func (a Advisory) IsWarning() bool {
	return a.Severity == SeverityWarning
}
