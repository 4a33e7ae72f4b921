// ABOUTME: Advisory rule engine for sizing results
// ABOUTME: Emits ordered warnings and info messages for CPU, memory, workers, scale, and queueing

package services

import (
	"github.com/markalston/workflow-sizer/backend/models"
)

// Thresholds for advisory rules
const (
	cpuCriticalPct      = 90.0
	cpuModeratePct      = 70.0
	memoryHighPct       = 85.0
	standaloneUnitLimit = 200
)

// Advisory messages
const (
	MsgCPUVeryHigh    = "CPU utilization very high: consider adding more CPU cores or reducing concurrent tasks"
	MsgCPUModerate    = "CPU utilization moderate: monitor performance under load"
	MsgMemoryHigh     = "Memory utilization high: consider increasing memory allocation"
	MsgLowWorkers     = "Low worker count may bottleneck parallel execution"
	MsgHighUnitCount  = "High workflow count detected: consider orchestrated deployment for better scalability"
	MsgTasksWillQueue = "Peak concurrent tasks may exceed worker capacity: tasks will queue"
)

// AdvisoryEngine evaluates the advisory rules against a sizing result
type AdvisoryEngine struct{}

// NewAdvisoryEngine creates a new advisory engine
func NewAdvisoryEngine() *AdvisoryEngine {
	return &AdvisoryEngine{}
}

// Advise returns advisories in rule order. The slice is never nil.
func (e *AdvisoryEngine) Advise(sizing models.SizingResult, wl models.WorkloadProfile, mode models.DeploymentMode) []models.Advisory {
	advisories := []models.Advisory{}

	// CPU: warning and info are mutually exclusive
	if sizing.CPUUtilizationPct > cpuCriticalPct {
		advisories = append(advisories, warning(models.CategoryCPU, MsgCPUVeryHigh))
	} else if sizing.CPUUtilizationPct > cpuModeratePct {
		advisories = append(advisories, info(models.CategoryCPU, MsgCPUModerate))
	}

	if sizing.MemoryUtilizationPct > memoryHighPct {
		advisories = append(advisories, warning(models.CategoryMemory, MsgMemoryHigh))
	}

	if sizing.WorkerCount < minWorkers {
		advisories = append(advisories, info(models.CategoryWorkers, MsgLowWorkers))
	}

	if wl.ExpectedUnits > standaloneUnitLimit && mode == models.ModeStandalone {
		advisories = append(advisories, warning(models.CategoryScalability, MsgHighUnitCount))
	}

	// Compare against the unrounded peak so fractional overflow still counts
	if PeakConcurrentTasks(wl) > float64(sizing.WorkerCount)*tasksPerWorker {
		advisories = append(advisories, warning(models.CategoryQueueing, MsgTasksWillQueue))
	}

	return advisories
}

func warning(category models.AdvisoryCategory, msg string) models.Advisory {
	return models.Advisory{Severity: models.SeverityWarning, Message: msg, Category: category}
}

func info(category models.AdvisoryCategory, msg string) models.Advisory {
	return models.Advisory{Severity: models.SeverityInfo, Message: msg, Category: category}
}
