// ABOUTME: Version catalog models for orchestrator releases
// ABOUTME: Immutable ordered table of releases with lifecycle status and runtime floor

package models

import (
	"fmt"
	"strings"
)

// LifecycleStatus is a release's maturity tag
type LifecycleStatus string

const (
	StatusStable      LifecycleStatus = "stable"
	StatusRecommended LifecycleStatus = "recommended"
	StatusLatest      LifecycleStatus = "latest"
	StatusBeta        LifecycleStatus = "beta"
)

// ParseLifecycleStatus resolves a status name (case-insensitive)
func ParseLifecycleStatus(s string) (LifecycleStatus, error) {
	switch st := LifecycleStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusStable, StatusRecommended, StatusLatest, StatusBeta:
		return st, nil
	}
	return "", fmt.Errorf("unknown lifecycle status %q", s)
}

// CatalogEntry is a single known release
type CatalogEntry struct {
	Version    string          `json:"version" yaml:"version"`
	Released   string          `json:"released" yaml:"released"`       // YYYY-MM
	Status     LifecycleStatus `json:"status" yaml:"status"`
	MinRuntime string          `json:"min_runtime" yaml:"min_runtime"` // Minimum supported runtime version
}

// Catalog is an ordered, read-only list of releases.
// Order is significant: scoring ties and alternatives follow it.
type Catalog struct {
	name    string
	entries []CatalogEntry
}

// NewCatalog copies entries into a new catalog
func NewCatalog(name string, entries []CatalogEntry) *Catalog {
	cp := make([]CatalogEntry, len(entries))
	copy(cp, entries)
	return &Catalog{name: name, entries: cp}
}

// Name returns the catalog's identifier
func (c *Catalog) Name() string {
	return c.name
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in catalog order
func (c *Catalog) Entries() []CatalogEntry {
	cp := make([]CatalogEntry, len(c.entries))
	copy(cp, c.entries)
	return cp
}

// Lookup finds an entry by exact version identifier
func (c *Catalog) Lookup(version string) (CatalogEntry, bool) {
	for _, e := range c.entries {
		if e.Version == version {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// IDs returns the version identifiers in catalog order
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.Version
	}
	return ids
}
