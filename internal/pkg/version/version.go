// Package version computes semantic version tags for GitMuse.
package version

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/blang/semver/v4"
)

// Bump selects which component of the version triple increments.
type Bump int

const (
	BumpPatch Bump = iota
	BumpMinor
	BumpMajor
)

// String returns the string representation of a Bump.
func (b Bump) String() string {
	switch b {
	case BumpPatch:
		return "patch"
	case BumpMinor:
		return "minor"
	case BumpMajor:
		return "major"
	default:
		return "unknown"
	}
}

// ParseBump parses a bump type from its string form.
func ParseBump(s string) (Bump, error) {
	switch s {
	case "patch":
		return BumpPatch, nil
	case "minor":
		return BumpMinor, nil
	case "major":
		return BumpMajor, nil
	default:
		return BumpPatch, fmt.Errorf("invalid bump type %q (expected patch, minor, or major)", s)
	}
}

// Baseline is the first tag created in a repository with no semver tags.
// It is used as-is; the bump type is not applied on top of it.
var Baseline = semver.Version{Major: 0, Minor: 1, Patch: 0}

// tagRE matches plain vMAJOR.MINOR.PATCH tags (leading "v" optional).
// Tags that do not match are skipped rather than silently sorted.
var tagRE = regexp.MustCompile(`^v?(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)$`)

// ErrNoTags indicates that no semver-shaped tags exist.
var ErrNoTags = errors.New("version: no semver tags found")

// Parse extracts a semver version from a single tag name.
func Parse(tag string) (semver.Version, error) {
	m := tagRE.FindStringSubmatch(tag)
	if m == nil {
		return semver.Version{}, fmt.Errorf("tag %q is not a semver tag", tag)
	}
	return semver.Parse(m[1] + "." + m[2] + "." + m[3])
}

// Latest returns the highest semver version among the given tags.
// Tags that do not match the vMAJOR.MINOR.PATCH pattern are ignored.
// Returns ErrNoTags when no tag matches.
func Latest(tags []string) (semver.Version, error) {
	var versions []semver.Version
	for _, tag := range tags {
		v, err := Parse(tag)
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	if len(versions) == 0 {
		return semver.Version{}, ErrNoTags
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].GT(versions[j])
	})
	return versions[0], nil
}

// Apply transforms a version triple according to the bump type:
// major increments major and zeroes minor and patch, minor increments
// minor and zeroes patch, patch increments patch only.
func Apply(v semver.Version, b Bump) semver.Version {
	switch b {
	case BumpMajor:
		return semver.Version{Major: v.Major + 1}
	case BumpMinor:
		return semver.Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return semver.Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// Format serializes a version as a tag string, v<major>.<minor>.<patch>.
func Format(v semver.Version) string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Next computes the next tag string from the existing tag set and a
// bump type. With no semver tags present the baseline v0.1.0 is
// returned directly, without applying the bump.
func Next(tags []string, b Bump) string {
	latest, err := Latest(tags)
	if err != nil {
		return Format(Baseline)
	}
	return Format(Apply(latest, b))
}
