// ABOUTME: Discovers example sizing profiles shipped with the repository
// ABOUTME: Looks in WORKFLOW_SIZER_PROFILES_PATH or ./profiles

package samples

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SampleFile represents a discovered sample profile
type SampleFile struct {
	Name string // Filename (e.g., "orchestrated-150.yaml")
	Path string // Full path to the file
}

var profileExts = []string{".yaml", ".yml", ".json"}

// Discover finds all profile files in the given directory
func Discover(dir string) ([]SampleFile, error) {
	if dir == "" {
		return []SampleFile{}, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []SampleFile{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []SampleFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !slices.Contains(profileExts, strings.ToLower(filepath.Ext(entry.Name()))) {
			continue
		}
		files = append(files, SampleFile{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
		})
	}

	return files, nil
}

// FindSamplesDir locates the example profiles directory.
// Checks in order:
// 1. WORKFLOW_SIZER_PROFILES_PATH environment variable
// 2. ./profiles relative to basePath
func FindSamplesDir(basePath string) string {
	if envPath := os.Getenv("WORKFLOW_SIZER_PROFILES_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	samplesDir := filepath.Join(basePath, "profiles")
	if _, err := os.Stat(samplesDir); err == nil {
		return samplesDir
	}

	return ""
}
