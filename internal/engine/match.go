package engine

import (
	"regexp"
	"strings"
)

// Matches reports whether name matches the glob pattern. The only wildcard is
// `*`, which matches zero or more characters; every other character is
// literal. Matching is case-sensitive and covers the full name, so an empty
// pattern matches only the empty name.
func Matches(pattern, name string) bool {
	re, err := compileGlob(pattern)
	if err != nil {
		return pattern == name
	}
	return re.MatchString(name)
}

// compileGlob turns a glob pattern into an anchored regular expression.
func compileGlob(pattern string) (*regexp.Regexp, error) {
	segments := strings.Split(pattern, "*")
	quoted := make([]string, len(segments))
	for i, segment := range segments {
		quoted[i] = regexp.QuoteMeta(segment)
	}
	return regexp.Compile("^" + strings.Join(quoted, ".*") + "$")
}
