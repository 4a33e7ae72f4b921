// ABOUTME: Capacity sizing calculator for orchestrator deployments
// ABOUTME: Derives worker, scheduler, and DB pool counts plus utilization from hardware and workload

package services

import (
	"math"

	"github.com/markalston/workflow-sizer/backend/models"
)

const (
	// Fraction of all tasks that can plausibly run at the same time
	peakTaskFraction = 0.3
	tasksPerWorker   = 4

	workerCPUCores    = 0.5
	workerMemoryGB    = 1.0
	schedulerCPUCores = 1.0
	schedulerMemoryGB = 2.0

	minWorkers                = 2
	minOrchestratedSchedulers = 2
	unitsPerScheduler         = 100

	minDBPool           = 20
	dbConnsPerWorker    = 5
	dbConnsPerScheduler = 10
)

// SizingCalculator computes deployment sizing
type SizingCalculator struct{}

// NewSizingCalculator creates a new sizing calculator
func NewSizingCalculator() *SizingCalculator {
	return &SizingCalculator{}
}

// Size derives the deployment size for the given hardware, workload, and mode.
// Inputs are assumed validated; utilization is left uncapped so overcommit shows.
func (c *SizingCalculator) Size(hw models.HardwareProfile, wl models.WorkloadProfile, mode models.DeploymentMode) models.SizingResult {
	peak := PeakConcurrentTasks(wl)

	// Float64 until the hardware ceilings apply, which may pull workers below
	// the minimum; rule 3 reports it
	workers := saturatingInt(math.Min(
		math.Max(minWorkers, math.Ceil(peak/tasksPerWorker)),
		math.Min(
			math.Floor(float64(hw.CPUCores)/workerCPUCores),
			math.Floor(float64(hw.MemoryGB)/workerMemoryGB))))

	schedulers := 1
	if mode == models.ModeOrchestrated {
		schedulers = int(math.Ceil(float64(wl.ExpectedUnits) / unitsPerScheduler))
		if schedulers < minOrchestratedSchedulers {
			schedulers = minOrchestratedSchedulers
		}
	}

	dbPool := saturatingInt(math.Max(minDBPool,
		float64(workers)*dbConnsPerWorker+float64(schedulers)*dbConnsPerScheduler))

	cpuUsed := float64(workers)*workerCPUCores + float64(schedulers)*schedulerCPUCores
	memUsed := float64(workers)*workerMemoryGB + float64(schedulers)*schedulerMemoryGB

	return models.SizingResult{
		WorkerCount:          workers,
		SchedulerCount:       schedulers,
		DBConnectionPoolSize: dbPool,
		CPUUtilizationPct:    utilizationPct(cpuUsed, float64(hw.CPUCores)),
		MemoryUtilizationPct: utilizationPct(memUsed, float64(hw.MemoryGB)),
		PeakConcurrentTasks:  saturatingInt(math.Ceil(peak)),
	}
}

// PeakConcurrentTasks is the unrounded peak task estimate used by every stage
func PeakConcurrentTasks(wl models.WorkloadProfile) float64 {
	byConcurrency := float64(wl.ConcurrentUnits) * float64(wl.AvgSubtasksPerUnit)
	byTotal := wl.TotalTasks() * peakTaskFraction
	return math.Min(byConcurrency, byTotal)
}

// saturatingInt converts f to int, pinning values outside the int range to
// its bounds. Go leaves out-of-range float conversions implementation-defined.
func saturatingInt(f float64) int {
	switch {
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}

func utilizationPct(used, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return round1(used / capacity * 100)
}

// round1 rounds half away from zero to one decimal place
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
