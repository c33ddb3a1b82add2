package resolvers

import (
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
)

// SemverResolver implements ports.VersionResolver using Masterminds/semver.
// It selects the highest installed version satisfying a constraint.
type SemverResolver struct{}

// NewSemverResolver creates a semver-based version resolver.
func NewSemverResolver() *SemverResolver {
	return &SemverResolver{}
}

// Resolve picks the highest version in available that satisfies
// constraint. An empty constraint or "latest" matches anything.
func (r *SemverResolver) Resolve(constraint string, available []string) (string, error) {
	var c *semver.Constraints
	var err error

	if constraint == "" || constraint == "latest" {
		c, err = semver.NewConstraint(">= 0")
	} else {
		c, err = semver.NewConstraint(constraint)
	}
	if err != nil {
		return "", fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}

	var valid []*semver.Version
	for _, vStr := range available {
		v, err := semver.NewVersion(vStr)
		if err != nil {
			continue // skip non-semver installs
		}
		if c.Check(v) {
			valid = append(valid, v)
		}
	}

	if len(valid) == 0 {
		return "", fmt.Errorf("no installed version satisfies %q", constraint)
	}

	sort.Sort(semver.Collection(valid))
	return valid[len(valid)-1].Original(), nil
}
