package analytics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/stemsi/perfdash/internal/model"
)

// StudentFilter holds the categorical filters of the roster page.
// An empty value disables that dimension.
type StudentFilter struct {
	Department string
	Year       string
}

// FilterStudents returns the students matching the free-text query and every
// categorical filter, in input order.
//
// The query is matched case-insensitively as a substring of first name, last
// name, student code or email. A year filter that is not an integer matches
// no student.
func FilterStudents(students []model.Student, query string, f StudentFilter) []model.Student {
	q := strings.ToLower(query)

	year, yearSet, yearOK := parseYear(f.Year)

	out := make([]model.Student, 0, len(students))
	for _, s := range students {
		if q != "" && !matchesQuery(s, q) {
			continue
		}
		if f.Department != "" && s.Department != f.Department {
			continue
		}
		if yearSet && (!yearOK || s.YearOfStudy != year) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matchesQuery(s model.Student, q string) bool {
	return strings.Contains(strings.ToLower(s.FirstName), q) ||
		strings.Contains(strings.ToLower(s.LastName), q) ||
		strings.Contains(strings.ToLower(s.StudentID), q) ||
		strings.Contains(strings.ToLower(s.Email), q)
}

// parseYear returns the parsed year, whether a filter was given at all, and
// whether it parsed.
func parseYear(raw string) (year int, set bool, ok bool) {
	if raw == "" {
		return 0, false, false
	}
	y, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, true, false
	}
	return y, true, true
}

// Departments lists the distinct departments in first-seen order.
func Departments(students []model.Student) []string {
	groups := GroupBy(students, func(s model.Student) string { return s.Department })
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Key
	}
	return out
}

// Years lists the distinct years of study, ascending.
func Years(students []model.Student) []int {
	seen := make(map[int]struct{})
	out := make([]int, 0)
	for _, s := range students {
		if _, ok := seen[s.YearOfStudy]; ok {
			continue
		}
		seen[s.YearOfStudy] = struct{}{}
		out = append(out, s.YearOfStudy)
	}
	sort.Ints(out)
	return out
}
