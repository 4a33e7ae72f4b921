// ABOUTME: Request and response models for the recommendation API
// ABOUTME: JSON-serializable inputs snapshot, full plan, and error envelope

package models

// Inputs is the full input snapshot for one recomputation
type Inputs struct {
	Hardware        HardwareProfile `json:"hardware" yaml:"hardware"`
	Workload        WorkloadProfile `json:"workload" yaml:"workload"`
	Mode            DeploymentMode  `json:"mode" yaml:"mode"`
	SelectedVersion string          `json:"version" yaml:"version"`
}

// DefaultInputs mirrors the calculator's initial form values
func DefaultInputs() Inputs {
	return Inputs{
		Hardware:        HardwareProfile{CPUCores: 4, MemoryGB: 8, StorageGB: 100},
		Workload:        WorkloadProfile{ExpectedUnits: 50, AvgSubtasksPerUnit: 10, ConcurrentUnits: 10},
		Mode:            ModeStandalone,
		SelectedVersion: "2.8.0",
	}
}

// Plan is the complete engine output for one input snapshot
type Plan struct {
	Inputs     Inputs                `json:"inputs"`
	Sizing     SizingResult          `json:"sizing"`
	Versions   VersionRecommendation `json:"versions"`
	Advisories []Advisory            `json:"advisories"`
	Config     string                `json:"config"`
}

// WarningCount returns the number of warning advisories
func (p *Plan) WarningCount() int {
	n := 0
	for _, a := range p.Advisories {
		if a.IsWarning() {
			n++
		}
	}
	return n
}

// BatchRequest carries several input snapshots
type BatchRequest struct {
	Items []Inputs `json:"items"`
}

// BatchResponse returns plans in request order
type BatchResponse struct {
	Plans []Plan `json:"plans"`
}

// CatalogResponse lists the active catalog
type CatalogResponse struct {
	Name       string         `json:"name"`
	Comparator string         `json:"comparator"`
	Entries    []CatalogEntry `json:"entries"`
}

// HealthResponse reports service status
type HealthResponse struct {
	Status         string `json:"status"`
	Catalog        string `json:"catalog"`
	CatalogEntries int    `json:"catalog_entries"`
	Comparator     string `json:"comparator"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error       string   `json:"error"`
	Details     string   `json:"details,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Code        int      `json:"code"`
}
