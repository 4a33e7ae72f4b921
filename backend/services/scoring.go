// ABOUTME: Version scorer ranking catalog releases against a sizing result
// ABOUTME: Additive integer scoring with pluggable lexical or semver version comparison

package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/agnivade/levenshtein"

	"github.com/markalston/workflow-sizer/backend/models"
)

// ErrEmptyCatalog is returned when scoring against a catalog with no entries
var ErrEmptyCatalog = errors.New("catalog has no entries")

const (
	maxAlternatives      = 3
	maxSuggestions       = 3
	maxSuggestionEditLen = 2
)

// Version thresholds used by the scoring rules
const (
	versionModern   = "2.8.0"
	versionCurrent  = "2.9.0"
	versionMemoryOK = "2.7.0"
)

var statusWeights = map[models.LifecycleStatus]int{
	models.StatusRecommended: 3,
	models.StatusStable:      2,
	models.StatusLatest:      1,
	models.StatusBeta:        -2,
}

// VersionComparator orders two version identifiers, returning -1, 0, or 1
type VersionComparator interface {
	Name() string
	Compare(a, b string) int
}

// LexicalComparator compares identifiers as raw strings.
// "2.10.0" sorts before "2.9.0" under this ordering.
type LexicalComparator struct{}

func (LexicalComparator) Name() string { return "lexical" }

func (LexicalComparator) Compare(a, b string) int {
	return strings.Compare(a, b)
}

// SemverComparator compares identifiers numerically, falling back to
// lexical order when either side is not a valid semantic version.
type SemverComparator struct{}

func (SemverComparator) Name() string { return "semver" }

func (SemverComparator) Compare(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	return va.Compare(vb)
}

// ComparatorByName resolves "lexical" (or "") and "semver"
func ComparatorByName(name string) (VersionComparator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lexical":
		return LexicalComparator{}, nil
	case "semver":
		return SemverComparator{}, nil
	default:
		return nil, fmt.Errorf("unknown version comparator %q (expected lexical or semver)", name)
	}
}

// VersionScorer ranks catalog entries for a given sizing result
type VersionScorer struct {
	cmp VersionComparator
}

// NewVersionScorer creates a scorer; a nil comparator means lexical
func NewVersionScorer(cmp VersionComparator) *VersionScorer {
	if cmp == nil {
		cmp = LexicalComparator{}
	}
	return &VersionScorer{cmp: cmp}
}

// Comparator returns the comparator in use
func (s *VersionScorer) Comparator() VersionComparator {
	return s.cmp
}

// Score computes one entry's additive score
func (s *VersionScorer) Score(entry models.CatalogEntry, sizing models.SizingResult, wl models.WorkloadProfile) int {
	atLeast := func(threshold string) bool {
		return s.cmp.Compare(entry.Version, threshold) >= 0
	}

	score := 0
	if atLeast(versionModern) {
		score += 2
	}
	if atLeast(versionCurrent) {
		score++
	}
	score += statusWeights[entry.Status]

	if sizing.CPUUtilizationPct > 80 && atLeast(versionModern) {
		score += 2
	}
	if sizing.MemoryUtilizationPct > 80 && atLeast(versionMemoryOK) {
		score++
	}
	if wl.ExpectedUnits > 100 && atLeast(versionModern) {
		score += 2
	}
	if sizing.WorkerCount > 10 && atLeast(versionCurrent) {
		score++
	}
	return score
}

// Recommend scores every catalog entry and picks the best one.
// An unknown selected version is reported through CurrentFound, not an error.
func (s *VersionScorer) Recommend(catalog *models.Catalog, sizing models.SizingResult, wl models.WorkloadProfile, selected string) (models.VersionRecommendation, error) {
	if catalog == nil || catalog.Len() == 0 {
		return models.VersionRecommendation{}, ErrEmptyCatalog
	}

	entries := catalog.Entries()
	scored := make([]models.ScoredEntry, len(entries))
	best := 0
	for i, e := range entries {
		scored[i] = models.ScoredEntry{CatalogEntry: e, Score: s.Score(e, sizing, wl)}
		// strict > keeps the first maximal entry
		if scored[i].Score > scored[best].Score {
			best = i
		}
	}

	rec := models.VersionRecommendation{
		Recommended:     scored[best],
		SelectedVersion: selected,
		Alternatives:    make([]models.ScoredEntry, 0, maxAlternatives),
	}

	for _, e := range scored {
		if e.Score >= scored[best].Score-1 {
			rec.Alternatives = append(rec.Alternatives, e)
			if len(rec.Alternatives) == maxAlternatives {
				break
			}
		}
	}

	if current, ok := catalog.Lookup(selected); ok {
		rec.Current = &current
		rec.CurrentFound = true
		rec.SelectedIsOptimal = current.Version == rec.Recommended.Version
	} else {
		rec.Suggestions = SuggestVersions(catalog, selected)
	}

	return rec, nil
}

// SuggestVersions returns close catalog matches for an unknown identifier,
// nearest first with catalog order breaking ties
func SuggestVersions(catalog *models.Catalog, version string) []string {
	if version == "" {
		return nil
	}

	type candidate struct {
		id   string
		dist int
	}
	var candidates []candidate
	for _, id := range catalog.IDs() {
		d := levenshtein.ComputeDistance(version, id)
		if d <= maxSuggestionEditLen {
			candidates = append(candidates, candidate{id: id, dist: d})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	var out []string
	for _, c := range candidates {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, c.id)
	}
	return out
}
