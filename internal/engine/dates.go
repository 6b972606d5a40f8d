package engine

import (
	"strings"
	"time"
)

// strftime directives supported in date patterns, with the Go layout fragment
// and the fixed character width each one occupies in a rendered suffix.
var dateDirectives = map[byte]struct {
	layout string
	width  int
}{
	'Y': {"2006", 4},
	'y': {"06", 2},
	'm': {"01", 2},
	'd': {"02", 2},
	'j': {"002", 3},
	'H': {"15", 2},
	'M': {"04", 2},
	'S': {"05", 2},
}

// ExtractSuffixDate parses the trailing date token of an index name against a
// strftime-style pattern such as "%Y.%m.%d". The pattern's rendered width
// decides how many trailing characters form the token. A false return means
// the name carries no parseable suffix for that pattern; this is not an
// error, the index is simply of unknown age.
func ExtractSuffixDate(name, datePattern string) (time.Time, bool) {
	layout, width, ok := translateDatePattern(datePattern)
	if !ok || width == 0 || len(name) < width {
		return time.Time{}, false
	}
	suffix := name[len(name)-width:]
	parsed, err := time.Parse(layout, suffix)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// translateDatePattern converts a strftime-style pattern into a Go time
// layout plus the fixed width of the rendered token. Separator characters
// pass through literally. Unsupported directives make the whole pattern
// unusable rather than partially matched.
func translateDatePattern(pattern string) (string, int, bool) {
	var layout strings.Builder
	width := 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			layout.WriteByte(c)
			width++
			continue
		}
		if i+1 >= len(pattern) {
			return "", 0, false
		}
		i++
		if pattern[i] == '%' {
			layout.WriteByte('%')
			width++
			continue
		}
		directive, ok := dateDirectives[pattern[i]]
		if !ok {
			return "", 0, false
		}
		layout.WriteString(directive.layout)
		width += directive.width
	}
	return layout.String(), width, true
}

// AgeDays returns the whole number of days from the suffix date to today,
// negative when the suffix is in the future. Both dates are truncated to
// midnight UTC first.
func AgeDays(today, suffix time.Time) int {
	return int(truncateToDay(today).Sub(truncateToDay(suffix)).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
