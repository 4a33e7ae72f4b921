// ABOUTME: Manages the recently opened and saved profiles list for the TUI
// ABOUTME: Stores absolute profile paths in the user config directory

package recentfiles

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// MaxRecentFiles is the maximum number of recent profiles to keep
const MaxRecentFiles = 5

// RecentFiles manages the list of recently used profiles
type RecentFiles struct {
	configDir string
	files     []string
}

type recentData struct {
	Files []string `json:"files"`
}

// New creates a new RecentFiles manager with the given config directory
func New(configDir string) *RecentFiles {
	return &RecentFiles{configDir: configDir}
}

// DefaultConfigDir returns workflow-sizer's directory under the user config dir
// ($XDG_CONFIG_HOME on Linux)
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "workflow-sizer")
}

func (rf *RecentFiles) configFile() string {
	return filepath.Join(rf.configDir, "recent.json")
}

// Load reads the list from disk, dropping profiles that no longer exist
func (rf *RecentFiles) Load() ([]string, error) {
	data, err := os.ReadFile(rf.configFile())
	if os.IsNotExist(err) {
		rf.files = []string{}
		return rf.files, nil
	}
	if err != nil {
		return nil, err
	}

	var recent recentData
	if err := json.Unmarshal(data, &recent); err != nil {
		// Corrupt list, start fresh
		rf.files = []string{}
		return rf.files, nil
	}

	rf.files = make([]string, 0, len(recent.Files))
	for _, path := range recent.Files {
		if _, err := os.Stat(path); err == nil {
			rf.files = append(rf.files, path)
		}
	}

	return rf.files, nil
}

// Save writes the list to disk, keeping at most MaxRecentFiles entries
func (rf *RecentFiles) Save(files []string) error {
	if err := os.MkdirAll(rf.configDir, 0755); err != nil {
		return err
	}

	if len(files) > MaxRecentFiles {
		files = files[:MaxRecentFiles]
	}
	rf.files = files

	data, err := json.MarshalIndent(recentData{Files: files}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(rf.configFile(), data, 0644)
}

// Add records path as the most recent profile
func (rf *RecentFiles) Add(path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	if rf.files == nil {
		if _, err := rf.Load(); err != nil {
			rf.files = []string{}
		}
	}

	newFiles := make([]string, 0, len(rf.files)+1)
	newFiles = append(newFiles, path)
	for _, f := range rf.files {
		if f != path {
			newFiles = append(newFiles, f)
		}
	}

	return rf.Save(newFiles)
}

// List returns the current list of recent profiles
func (rf *RecentFiles) List() []string {
	if rf.files == nil {
		rf.Load()
	}
	return rf.files
}
