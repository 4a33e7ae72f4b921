// ABOUTME: Tests for example profile discovery
// ABOUTME: Validates extension filtering and directory lookup order

package samples

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscover(t *testing.T) {
	tmpDir := t.TempDir()

	os.WriteFile(filepath.Join(tmpDir, "small.yaml"), []byte("{}"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "medium.YML"), []byte("{}"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "large.json"), []byte("{}"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "readme.txt"), []byte("ignore"), 0644)
	os.MkdirAll(filepath.Join(tmpDir, "nested.yaml"), 0755)

	files, err := Discover(tmpDir)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	if len(files) != 3 {
		t.Errorf("expected 3 profile files, got %d", len(files))
	}
	for _, f := range files {
		if f.Name == "readme.txt" || f.Name == "nested.yaml" {
			t.Errorf("unexpected entry: %s", f.Name)
		}
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	files, err := Discover("/nonexistent/path")
	if err != nil {
		t.Fatalf("Discover() should not error for missing dir, got: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected empty list for missing dir, got %d", len(files))
	}

	if files, _ := Discover(""); len(files) != 0 {
		t.Errorf("expected empty list for empty dir name, got %d", len(files))
	}
}

func TestSampleFileInfo(t *testing.T) {
	tmpDir := t.TempDir()

	samplePath := filepath.Join(tmpDir, "orchestrated-150.yaml")
	os.WriteFile(samplePath, []byte("mode: orchestrated\n"), 0644)

	files, err := Discover(tmpDir)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].Name != "orchestrated-150.yaml" {
		t.Errorf("expected name 'orchestrated-150.yaml', got '%s'", files[0].Name)
	}
	if files[0].Path != samplePath {
		t.Errorf("expected path %s, got %s", samplePath, files[0].Path)
	}
}

func TestFindSamplesDir(t *testing.T) {
	tmpDir := t.TempDir()

	samplesDir := filepath.Join(tmpDir, "profiles")
	os.MkdirAll(samplesDir, 0755)

	if found := FindSamplesDir(tmpDir); found != samplesDir {
		t.Errorf("expected %s, got %s", samplesDir, found)
	}
}

func TestFindSamplesDirNotFound(t *testing.T) {
	if found := FindSamplesDir(t.TempDir()); found != "" {
		t.Errorf("expected empty string for missing profiles dir, got %s", found)
	}
}

func TestFindSamplesDirFromEnv(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("WORKFLOW_SIZER_PROFILES_PATH", tmpDir)

	if found := FindSamplesDir("/some/other/path"); found != tmpDir {
		t.Errorf("expected %s from env, got %s", tmpDir, found)
	}
}
