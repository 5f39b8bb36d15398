package season

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// StartYearFloor is the first season the system tracks. Rows keyed to
// earlier years are rejected, not relabeled.
const StartYearFloor = 2013

var labelPattern = regexp.MustCompile(`^(\d{4})-\d{2}$`)

// Label canonicalizes a season start year into the "YYYY-YY" label used as
// the join key across every source, e.g. 2023 -> "2023-24", 1999 -> "1999-00".
func Label(year int) string {
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// ParseStartYear extracts a valid season start year from a free-text token.
// Tokens that do not encode a 4-digit year at or after StartYearFloor are
// rejected with an error so callers can count them instead of mislabeling.
func ParseStartYear(token string) (int, error) {
	s := strings.TrimSpace(token)
	if m := labelPattern.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("season token %q is not a year: %w", token, err)
	}
	if year < StartYearFloor {
		return 0, fmt.Errorf("season start year %d predates %d", year, StartYearFloor)
	}
	return year, nil
}

// StartYear returns the start year encoded in a "YYYY-YY" label.
func StartYear(label string) (int, error) {
	m := labelPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, fmt.Errorf("invalid season label %q", label)
	}
	return strconv.Atoi(m[1])
}

// Since returns every season label from StartYearFloor up to (and not
// including) the season starting in the current calendar year.
func Since(now time.Time) []string {
	var labels []string
	for year := StartYearFloor; year < now.Year(); year++ {
		labels = append(labels, Label(year))
	}
	return labels
}
