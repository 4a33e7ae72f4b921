// ABOUTME: Renders the exportable orchestrator configuration block
// ABOUTME: Uses an embedded text/template with sprig helpers

package services

import (
	"bytes"
	"embed"
	"fmt"
	"math"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/markalston/workflow-sizer/backend/models"
)

//go:embed templates/config.tmpl
var templateFS embed.FS

const (
	configTemplateName = "config.tmpl"
	runsPerDAGScale    = 16
)

var (
	configTmpl     *template.Template
	configTmplErr  error
	configTmplOnce sync.Once
)

func loadConfigTemplate() (*template.Template, error) {
	configTmplOnce.Do(func() {
		configTmpl, configTmplErr = template.New(configTemplateName).
			Funcs(sprig.TxtFuncMap()).
			ParseFS(templateFS, "templates/"+configTemplateName)
	})
	return configTmpl, configTmplErr
}

// configView is the data passed to the config template
type configView struct {
	Version              string
	Mode                 models.DeploymentMode
	CPUCores             int
	MemoryGB             int
	StorageGB            int
	Executor             string
	MaxActiveTasksPerDAG int
	MaxActiveRunsPerDAG  int
	Workers              int
	TasksPerWorker       int
	Parallelism          int
	PoolSize             int
	MaxOverflow          int
	Schedulers           int
	DBConnections        int
}

// ConfigExporter renders configuration blocks
type ConfigExporter struct{}

// NewConfigExporter creates a new config exporter
func NewConfigExporter() *ConfigExporter {
	return &ConfigExporter{}
}

// Render produces the configuration text for the given inputs and sizing
func (x *ConfigExporter) Render(in models.Inputs, sizing models.SizingResult) (string, error) {
	tmpl, err := loadConfigTemplate()
	if err != nil {
		return "", fmt.Errorf("loading config template: %w", err)
	}

	view := configView{
		Version:              in.SelectedVersion,
		Mode:                 in.Mode,
		CPUCores:             in.Hardware.CPUCores,
		MemoryGB:             in.Hardware.MemoryGB,
		StorageGB:            in.Hardware.StorageGB,
		Executor:             in.Mode.ExecutorName(),
		MaxActiveTasksPerDAG: in.Workload.AvgSubtasksPerUnit,
		MaxActiveRunsPerDAG:  MaxActiveRunsPerDAG(in.Workload),
		Workers:              sizing.WorkerCount,
		TasksPerWorker:       tasksPerWorker,
		Parallelism:          saturatingInt(float64(sizing.WorkerCount) * tasksPerWorker),
		PoolSize:             ceilDiv(sizing.DBConnectionPoolSize, 2),
		MaxOverflow:          ceilDiv(sizing.DBConnectionPoolSize, 4),
		Schedulers:           sizing.SchedulerCount,
		DBConnections:        sizing.DBConnectionPoolSize,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, configTemplateName, view); err != nil {
		return "", fmt.Errorf("rendering config: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// MaxActiveRunsPerDAG scales the concurrent share of workflows to a 16-run budget.
// Zero expected units yields 0.
func MaxActiveRunsPerDAG(wl models.WorkloadProfile) int {
	if wl.ExpectedUnits <= 0 {
		return 0
	}
	return saturatingInt(math.Ceil(float64(wl.ConcurrentUnits) / float64(wl.ExpectedUnits) * runsPerDAGScale))
}

func ceilDiv(n, d int) int {
	return saturatingInt(math.Ceil(float64(n) / float64(d)))
}
