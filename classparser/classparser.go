// Package classparser normalizes the free-text class labels students enter
// at registration ("Year 7A", "Yr 8 B", "10C") so dashboards can group them
// by year level.
package classparser

import (
	"regexp"
	"strconv"
	"strings"
)

var classRe = regexp.MustCompile(`(?i)^(?:year|yr|y)?\s*(\d{1,2})\s*([A-Za-z]?)$`)

func normalize(label string) string {
	label = strings.TrimSpace(label)
	label = strings.ReplaceAll(label, " ", " ")
	label = strings.ReplaceAll(label, "-", " ")
	return strings.Join(strings.Fields(label), " ")
}

// Parse extracts the year level and section letter from a class label.
// Returns ok=false for labels it cannot interpret ("Room 12 Kōwhai" and the
// like), which callers group under their raw label instead.
func Parse(label string) (year int, section string, ok bool) {
	m := classRe.FindStringSubmatch(normalize(label))
	if m == nil {
		return 0, "", false
	}

	year, err := strconv.Atoi(m[1])
	if err != nil || year < 1 || year > 13 {
		return 0, "", false
	}

	return year, strings.ToUpper(m[2]), true
}

// YearLabel returns the canonical "Year N" grouping label for a class
// label, or the normalized label itself when it cannot be parsed.
func YearLabel(label string) string {
	year, _, ok := Parse(label)
	if !ok {
		return normalize(label)
	}
	return "Year " + strconv.Itoa(year)
}
