// ABOUTME: Plan computation and rendering shared by the plan-producing commands
// ABOUTME: Computes locally or against the API and prints text, JSON, or YAML

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/markalston/workflow-sizer/backend/models"
	"github.com/markalston/workflow-sizer/cli/internal/client"
)

// computePlan runs the engine in-process, or asks the backend when remote is set
func computePlan(ctx context.Context, in models.Inputs, remote bool) (*models.Plan, error) {
	if remote {
		return client.New(GetAPIURL()).Recommend(ctx, in)
	}

	engine, err := newEngine()
	if err != nil {
		return nil, err
	}
	plan, err := engine.Recompute(in)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// writeStructured prints v as indented JSON or as YAML using its json tags
func writeStructured(w io.Writer, format string, v any) error {
	if format == outputYAML {
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// formatPlanHuman formats a plan for human readability
func formatPlanHuman(plan *models.Plan, showConfig bool) string {
	var b strings.Builder
	s := plan.Sizing
	in := plan.Inputs

	fmt.Fprintf(&b, "Deployment:   %s (%s)\n", in.Mode.DisplayName(), in.Mode.ExecutorName())
	fmt.Fprintf(&b, "Hardware:     %d cores, %d GB memory, %d GB storage\n",
		in.Hardware.CPUCores, in.Hardware.MemoryGB, in.Hardware.StorageGB)
	fmt.Fprintf(&b, "Workload:     %d workflows x %d tasks, %d concurrent\n\n",
		in.Workload.ExpectedUnits, in.Workload.AvgSubtasksPerUnit, in.Workload.ConcurrentUnits)

	fmt.Fprintf(&b, "Workers:      %d\n", s.WorkerCount)
	fmt.Fprintf(&b, "Schedulers:   %d\n", s.SchedulerCount)
	fmt.Fprintf(&b, "DB pool:      %d\n", s.DBConnectionPoolSize)
	fmt.Fprintf(&b, "Peak tasks:   %d\n", s.PeakConcurrentTasks)
	fmt.Fprintf(&b, "CPU:          %.1f%%\n", s.CPUUtilizationPct)
	fmt.Fprintf(&b, "Memory:       %.1f%%\n\n", s.MemoryUtilizationPct)

	b.WriteString(formatVersionsHuman(plan.Versions))

	if len(plan.Advisories) > 0 {
		b.WriteString("\nAdvisories:\n")
		for _, a := range plan.Advisories {
			b.WriteString("  " + formatAdvisory(a) + "\n")
		}
	}

	if showConfig {
		b.WriteString("\nConfiguration:\n")
		b.WriteString(plan.Config)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatVersionsHuman(v models.VersionRecommendation) string {
	var b strings.Builder
	r := v.Recommended
	fmt.Fprintf(&b, "Recommended:  %s (%s, score %d, runtime %s+)\n", r.Version, r.Status, r.Score, r.MinRuntime)

	switch {
	case v.SelectedIsOptimal:
		fmt.Fprintf(&b, "Selected:     %s (optimal)\n", v.SelectedVersion)
	case v.CurrentFound:
		fmt.Fprintf(&b, "Selected:     %s (consider upgrading to %s)\n", v.SelectedVersion, r.Version)
	default:
		fmt.Fprintf(&b, "Selected:     %s (not in catalog", v.SelectedVersion)
		if len(v.Suggestions) > 0 {
			fmt.Fprintf(&b, "; did you mean %s?", strings.Join(v.Suggestions, ", "))
		}
		b.WriteString(")\n")
	}

	if len(v.Alternatives) > 0 {
		alts := make([]string, len(v.Alternatives))
		for i, a := range v.Alternatives {
			alts[i] = fmt.Sprintf("%s (%d)", a.Version, a.Score)
		}
		fmt.Fprintf(&b, "Alternatives: %s\n", strings.Join(alts, ", "))
	}
	return b.String()
}

func formatAdvisory(a models.Advisory) string {
	symbol := "i"
	if a.IsWarning() {
		symbol = "!"
	}
	return fmt.Sprintf("%s [%s] %s", symbol, a.Category, a.Message)
}
