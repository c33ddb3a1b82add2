// Package services holds the domain services for plugin resolution.
package services

import (
	"strings"
	"unicode"
)

// NamingConvention derives a candidate exported type name from a
// plugin short name. Conventions are tried in a fixed order; the
// first candidate that exists in the registry wins.
type NamingConvention func(name string) string

// DashToCamel capitalizes each dash-delimited segment:
// "dashed-class-name" -> "DashedClassName".
func DashToCamel(name string) string {
	return camelize(name, '-')
}

// UnderscoreToCamel capitalizes each underscore-delimited segment:
// "underscore_class_name" -> "UnderscoreClassName".
func UnderscoreToCamel(name string) string {
	return camelize(name, '_')
}

// Capitalize upcases only the first rune: "classname" -> "Classname".
func Capitalize(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// MangledCandidates returns the candidate type names produced by the
// pure naming transforms, in precedence order, deduplicated. The
// exact-case scan against registry contents runs before these; see
// RegisteredTypeResolver.
func MangledCandidates(name string) []string {
	candidates := []string{
		DashToCamel(name),
		UnderscoreToCamel(name),
		Capitalize(name),
	}

	seen := make(map[string]struct{}, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func camelize(name string, sep rune) string {
	var b strings.Builder
	for _, segment := range strings.FieldsFunc(name, func(r rune) bool { return r == sep }) {
		b.WriteString(Capitalize(segment))
	}
	return b.String()
}
