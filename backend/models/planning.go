// ABOUTME: Data models for deployment sizing calculations
// ABOUTME: Hardware and workload inputs plus the derived worker/scheduler sizing result

package models

import (
	"fmt"
	"strings"
)

// HardwareProfile describes the capacity available to the deployment
type HardwareProfile struct {
	CPUCores  int `json:"cpu_cores" yaml:"cpu_cores"`
	MemoryGB  int `json:"memory_gb" yaml:"memory_gb"`
	StorageGB int `json:"storage_gb" yaml:"storage_gb"`
}

// WorkloadProfile describes the expected workflow load
type WorkloadProfile struct {
	ExpectedUnits      int `json:"expected_units" yaml:"expected_units"`             // Workflow definitions (DAGs)
	AvgSubtasksPerUnit int `json:"avg_subtasks_per_unit" yaml:"avg_subtasks_per_unit"` // Tasks per DAG
	ConcurrentUnits    int `json:"concurrent_units" yaml:"concurrent_units"`         // DAGs running at once
}

// TotalTasks returns the number of tasks across all workflow definitions.
// The product is taken in float64 so large workloads cannot overflow.
func (w WorkloadProfile) TotalTasks() float64 {
	return float64(w.ExpectedUnits) * float64(w.AvgSubtasksPerUnit)
}

// DeploymentMode selects how the orchestrator is deployed
type DeploymentMode string

const (
	ModeStandalone       DeploymentMode = "standalone"
	ModeContainerCompose DeploymentMode = "container-compose"
	ModeOrchestrated     DeploymentMode = "orchestrated"
	ModeQueueExecutor    DeploymentMode = "queue-executor"
)

// DeploymentModes lists every mode in display order
var DeploymentModes = []DeploymentMode{
	ModeStandalone,
	ModeContainerCompose,
	ModeOrchestrated,
	ModeQueueExecutor,
}

// modeAliases maps legacy identifiers onto modes
var modeAliases = map[string]DeploymentMode{
	"docker":         ModeContainerCompose,
	"compose":        ModeContainerCompose,
	"kubernetes":     ModeOrchestrated,
	"k8s":            ModeOrchestrated,
	"celery":         ModeQueueExecutor,
	"queue":          ModeQueueExecutor,
	"queue_executor": ModeQueueExecutor,
}

// ParseDeploymentMode resolves a mode name or alias (case-insensitive)
func ParseDeploymentMode(s string) (DeploymentMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, m := range DeploymentModes {
		if string(m) == name {
			return m, nil
		}
	}
	if m, ok := modeAliases[name]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown deployment mode %q (expected one of %s)", s, modeNames())
}

// Valid reports whether m is one of the known modes
func (m DeploymentMode) Valid() bool {
	for _, known := range DeploymentModes {
		if m == known {
			return true
		}
	}
	return false
}

// DisplayName returns a human-friendly label
func (m DeploymentMode) DisplayName() string {
	switch m {
	case ModeStandalone:
		return "Standalone"
	case ModeContainerCompose:
		return "Container Compose"
	case ModeOrchestrated:
		return "Orchestrated"
	case ModeQueueExecutor:
		return "Queue Executor"
	default:
		return string(m)
	}
}

// ExecutorName returns the executor written to the exported configuration
func (m DeploymentMode) ExecutorName() string {
	if m == ModeOrchestrated {
		return "OrchestratedExecutor"
	}
	return "QueueExecutor"
}

func modeNames() string {
	names := make([]string, len(DeploymentModes))
	for i, m := range DeploymentModes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// SizingResult is the derived deployment size for one set of inputs
type SizingResult struct {
	WorkerCount          int     `json:"worker_count"`
	SchedulerCount       int     `json:"scheduler_count"`
	DBConnectionPoolSize int     `json:"db_connection_pool_size"`
	CPUUtilizationPct    float64 `json:"cpu_utilization_pct"`    // Uncapped, one decimal
	MemoryUtilizationPct float64 `json:"memory_utilization_pct"` // Uncapped, one decimal
	PeakConcurrentTasks  int     `json:"peak_concurrent_tasks"`  // Rounded up
}
