// ABOUTME: Loads release catalogs from embedded YAML or from a file on disk
// ABOUTME: Validates entries and returns immutable models.Catalog values

package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/markalston/workflow-sizer/backend/models"
)

// DefaultName is the catalog used when none is configured
const DefaultName = "default"

//go:embed catalogs/*.yaml
var builtinFS embed.FS

// ErrUnknownCatalog is returned for a built-in catalog name that does not exist
var ErrUnknownCatalog = errors.New("unknown catalog")

type catalogFile struct {
	Name    string      `yaml:"name"`
	Entries []entryFile `yaml:"entries"`
}

type entryFile struct {
	Version    string `yaml:"version"`
	Released   string `yaml:"released"`
	Status     string `yaml:"status"`
	MinRuntime string `yaml:"min_runtime"`
}

// Names lists the built-in catalogs, sorted
func Names() []string {
	files, err := builtinFS.ReadDir("catalogs")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(f.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Builtin returns one of the embedded catalogs by name
func Builtin(name string) (*models.Catalog, error) {
	data, err := builtinFS.ReadFile("catalogs/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownCatalog, name, strings.Join(Names(), ", "))
	}
	return Parse(name, data)
}

// Default returns the default built-in catalog.
// It panics if the embedded data is malformed, which tests guard against.
func Default() *models.Catalog {
	c, err := Builtin(DefaultName)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog %q: %v", DefaultName, err))
	}
	return c
}

// Load reads a catalog file from disk
func Load(path string) (*models.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(path, data)
}

// Resolve picks a catalog from a file path when set, otherwise by built-in name
func Resolve(name, path string) (*models.Catalog, error) {
	if path != "" {
		return Load(path)
	}
	if name == "" {
		name = DefaultName
	}
	return Builtin(name)
}

// Parse decodes and validates catalog YAML. fallbackName is used when the
// document does not carry a name.
func Parse(fallbackName string, data []byte) (*models.Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", fallbackName, err)
	}

	entries, err := validate(file.Entries)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", fallbackName, err)
	}

	name := file.Name
	if name == "" {
		name = fallbackName
	}
	return models.NewCatalog(name, entries), nil
}

func validate(raw []entryFile) ([]models.CatalogEntry, error) {
	if len(raw) == 0 {
		return nil, errors.New("catalog has no entries")
	}

	var errs []error
	seen := make(map[string]bool, len(raw))
	entries := make([]models.CatalogEntry, 0, len(raw))

	for i, e := range raw {
		version := strings.TrimSpace(e.Version)
		if version == "" {
			errs = append(errs, fmt.Errorf("entry %d: version is required", i))
			continue
		}
		if seen[version] {
			errs = append(errs, fmt.Errorf("entry %d: duplicate version %q", i, version))
			continue
		}
		seen[version] = true

		status, err := models.ParseLifecycleStatus(e.Status)
		if err != nil {
			errs = append(errs, fmt.Errorf("entry %d (%s): %w", i, version, err))
			continue
		}

		entries = append(entries, models.CatalogEntry{
			Version:    version,
			Released:   e.Released,
			Status:     status,
			MinRuntime: e.MinRuntime,
		})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return entries, nil
}
