// ABOUTME: Input validation for sizing requests and version identifiers
// ABOUTME: Rejects non-positive inputs at the API and CLI boundary before the engine runs

package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/markalston/workflow-sizer/backend/models"
)

// versionPattern matches catalog version identifiers (digits, dots, pre-release suffixes)
var versionPattern = regexp.MustCompile(`^[0-9A-Za-z][0-9A-Za-z.+_-]{0,63}$`)

// sanitizeForLog removes control characters from strings to prevent log injection
// when including user input in error messages
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}

// ValidateVersionID checks that a version identifier is safe to echo back
func ValidateVersionID(version string) error {
	if version == "" {
		return fmt.Errorf("version cannot be empty")
	}
	if !versionPattern.MatchString(version) {
		return fmt.Errorf("invalid version format: %s", sanitizeForLog(version))
	}
	return nil
}

// ValidateInputs checks every numeric input is positive and the mode is known.
// All problems are reported together.
func ValidateInputs(in models.Inputs) error {
	var errs []error

	positive := []struct {
		field string
		value int
	}{
		{"cpu_cores", in.Hardware.CPUCores},
		{"memory_gb", in.Hardware.MemoryGB},
		{"storage_gb", in.Hardware.StorageGB},
		{"expected_units", in.Workload.ExpectedUnits},
		{"avg_subtasks_per_unit", in.Workload.AvgSubtasksPerUnit},
		{"concurrent_units", in.Workload.ConcurrentUnits},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be a positive integer, got %d", p.field, p.value))
		}
	}

	if !in.Mode.Valid() {
		errs = append(errs, fmt.Errorf("unknown deployment mode: %s", sanitizeForLog(string(in.Mode))))
	}

	if in.SelectedVersion != "" {
		if err := ValidateVersionID(in.SelectedVersion); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// NormalizeInputs resolves mode aliases and fills an empty mode or version with
// the defaults. Invalid modes are left untouched for ValidateInputs to report.
func NormalizeInputs(in models.Inputs) models.Inputs {
	if in.Mode == "" {
		in.Mode = models.ModeStandalone
	} else if m, err := models.ParseDeploymentMode(string(in.Mode)); err == nil {
		in.Mode = m
	}
	if in.SelectedVersion == "" {
		in.SelectedVersion = models.DefaultInputs().SelectedVersion
	}
	return in
}
