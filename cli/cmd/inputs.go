// ABOUTME: Shared sizing input flags for recommend, export, and check
// ABOUTME: Merges a profile file with explicitly set flags, then normalizes and validates

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/markalston/workflow-sizer/backend/models"
	"github.com/markalston/workflow-sizer/backend/services"
	"github.com/markalston/workflow-sizer/cli/internal/profile"
)

// inputFlags holds one command's sizing flags
type inputFlags struct {
	profile    string
	cpu        int
	memory     int
	storage    int
	units      int
	subtasks   int
	concurrent int
	mode       string
	version    string
	remote     bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	d := models.DefaultInputs()
	flags := cmd.Flags()
	flags.StringVarP(&f.profile, "profile", "p", "", "YAML or JSON profile file; explicit flags override its values")
	flags.IntVar(&f.cpu, "cpu", d.Hardware.CPUCores, "CPU cores")
	flags.IntVar(&f.memory, "memory", d.Hardware.MemoryGB, "Memory in GB")
	flags.IntVar(&f.storage, "storage", d.Hardware.StorageGB, "Storage in GB")
	flags.IntVar(&f.units, "units", d.Workload.ExpectedUnits, "Expected workflow definitions")
	flags.IntVar(&f.subtasks, "subtasks", d.Workload.AvgSubtasksPerUnit, "Average tasks per workflow")
	flags.IntVar(&f.concurrent, "concurrent", d.Workload.ConcurrentUnits, "Workflows running at once")
	flags.StringVar(&f.mode, "mode", string(d.Mode), "Deployment mode: standalone, container-compose, orchestrated, queue-executor")
	flags.StringVar(&f.version, "version", d.SelectedVersion, "Selected orchestrator release")
	flags.BoolVar(&f.remote, "remote", false, "Compute on the backend API instead of locally")
}

// resolve builds validated inputs. changed reports whether a flag was set
// on the command line.
func (f *inputFlags) resolve(changed func(name string) bool) (models.Inputs, error) {
	in := models.DefaultInputs()
	if f.profile != "" {
		loaded, err := profile.Load(f.profile)
		if err != nil {
			return models.Inputs{}, err
		}
		in = loaded
	}

	override := func(name string, dst *int, v int) {
		if f.profile == "" || changed(name) {
			*dst = v
		}
	}
	override("cpu", &in.Hardware.CPUCores, f.cpu)
	override("memory", &in.Hardware.MemoryGB, f.memory)
	override("storage", &in.Hardware.StorageGB, f.storage)
	override("units", &in.Workload.ExpectedUnits, f.units)
	override("subtasks", &in.Workload.AvgSubtasksPerUnit, f.subtasks)
	override("concurrent", &in.Workload.ConcurrentUnits, f.concurrent)
	if f.profile == "" || changed("mode") {
		in.Mode = models.DeploymentMode(f.mode)
	}
	if f.profile == "" || changed("version") {
		in.SelectedVersion = f.version
	}

	in = services.NormalizeInputs(in)
	if err := services.ValidateInputs(in); err != nil {
		return models.Inputs{}, err
	}
	return in, nil
}

// resolveFromCommand reads the changed set from cmd's flags
func (f *inputFlags) resolveFromCommand(cmd *cobra.Command) (models.Inputs, error) {
	return f.resolve(cmd.Flags().Changed)
}
