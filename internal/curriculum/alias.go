package curriculum

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/uam-aleman/wochenkontext/internal/scope"
)

// ErrInvalidWeek is returned by ParseWeek for tokens that are not a week.
var ErrInvalidWeek = errors.New("invalid week")

var courseAliases = map[string]scope.CourseLevel{
	"a1":       scope.CourseA1,
	"aleman1":  scope.CourseA1,
	"aleman-1": scope.CourseA1,
	"a2":       scope.CourseA2,
	"aleman2":  scope.CourseA2,
	"aleman-2": scope.CourseA2,
}

var courseSlugs = map[scope.CourseLevel]string{
	scope.CourseA1: "aleman1",
	scope.CourseA2: "aleman2",
}

var weekToken = regexp.MustCompile(`^w?(\d{1,2})$`)

// NormalizeCourse maps any accepted spelling of a course ("A1", "aleman1",
// "Alemán 1", "aleman-1") onto its course level.
func NormalizeCourse(input string) (scope.CourseLevel, bool) {
	lvl, ok := courseAliases[foldKey(input)]
	return lvl, ok
}

// ParseWeek accepts "3", "03", "w3" and "w03".
func ParseWeek(token string) (int, error) {
	m := weekToken.FindStringSubmatch(strings.ToLower(strings.TrimSpace(token)))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeek, token)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeek, token)
	}
	return n, nil
}

// FormatWeekSlug renders the canonical two-digit week slug, e.g. "w03".
func FormatWeekSlug(week int) string {
	return fmt.Sprintf("w%02d", week)
}

// CourseSlug returns the student-facing slug of a course level, or "".
func CourseSlug(level scope.CourseLevel) string {
	return courseSlugs[level]
}

// SessionID joins the course slug and week slug, e.g. "aleman1-w01".
func SessionID(level scope.CourseLevel, week int) string {
	return CourseSlug(level) + "-" + FormatWeekSlug(week)
}

// foldKey case-folds, strips accents and joins words with "-".
func foldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	folded := cases.Fold().String(stripped)
	return strings.Join(strings.FieldsFunc(folded, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_'
	}), "-")
}
