// Package curriculum holds the authored week contexts and the registry that
// resolves a (course, week) reference to one of them.
package curriculum

import (
	"slices"

	"github.com/uam-aleman/wochenkontext/internal/scope"
)

// Registry maps (course, week) to a validated week context. It is populated
// once at construction and never mutated, so all methods are safe for
// concurrent use without locking.
type Registry struct {
	weeks    map[scope.Key]entry
	byCourse map[scope.CourseLevel][]int
	maxWeek  int
}

func newRegistry(weeks map[scope.Key]entry, maxWeek int) *Registry {
	r := &Registry{
		weeks:    weeks,
		byCourse: make(map[scope.CourseLevel][]int),
		maxWeek:  maxWeek,
	}
	for k := range weeks {
		r.byCourse[k.Course] = append(r.byCourse[k.Course], k.Week)
	}
	for _, ws := range r.byCourse {
		slices.Sort(ws)
	}
	return r
}

// MaxWeek is the upper bound of the valid week range.
func (r *Registry) MaxWeek() int { return r.maxWeek }

// Resolve returns a copy of the context for course and week. course may be
// any accepted alias. Unknown courses and weeks report false.
func (r *Registry) Resolve(course string, week int) (scope.WeekContext, bool) {
	level, ok := NormalizeCourse(course)
	if !ok {
		return scope.WeekContext{}, false
	}
	e, ok := r.weeks[scope.Key{Course: level, Week: week}]
	if !ok {
		return scope.WeekContext{}, false
	}
	return e.ctx.Clone(), true
}

// ResolveSlug is Resolve with a week token such as "w01" or "3".
func (r *Registry) ResolveSlug(course, week string) (scope.WeekContext, bool) {
	n, err := ParseWeek(week)
	if err != nil {
		return scope.WeekContext{}, false
	}
	return r.Resolve(course, n)
}

// Exists reports whether a context is registered for course and week.
func (r *Registry) Exists(course string, week int) bool {
	level, ok := NormalizeCourse(course)
	if !ok {
		return false
	}
	_, ok = r.weeks[scope.Key{Course: level, Week: week}]
	return ok
}

// ListWeeks returns the registered weeks of course in ascending order.
func (r *Registry) ListWeeks(course string) []int {
	level, ok := NormalizeCourse(course)
	if !ok {
		return []int{}
	}
	return append([]int{}, r.byCourse[level]...)
}

// ListCourses returns the courses with at least one registered week.
func (r *Registry) ListCourses() []scope.CourseLevel {
	out := make([]scope.CourseLevel, 0, len(r.byCourse))
	for c := range r.byCourse {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Summarize returns a read-only projection of a registered context.
func (r *Registry) Summarize(course string, week int) (Summary, bool) {
	level, ok := NormalizeCourse(course)
	if !ok {
		return Summary{}, false
	}
	e, ok := r.weeks[scope.Key{Course: level, Week: week}]
	if !ok {
		return Summary{}, false
	}
	return summarize(e.ctx), true
}

// AssertValid fails with a *ConfigurationError unless course and week refer
// to a registered context.
func (r *Registry) AssertValid(course string, week int) error {
	level, ok := NormalizeCourse(course)
	if !ok {
		return &ConfigurationError{Kind: UnknownCourse, Course: course, Week: week, MaxWeek: r.maxWeek}
	}
	if week < 1 || week > r.maxWeek {
		return &ConfigurationError{Kind: WeekOutOfRange, Course: string(level), Week: week, MaxWeek: r.maxWeek}
	}
	if _, ok := r.weeks[scope.Key{Course: level, Week: week}]; !ok {
		return &ConfigurationError{Kind: WeekNotImplemented, Course: string(level), Week: week, MaxWeek: r.maxWeek}
	}
	return nil
}

// Source returns where the registered context for course and week came from.
func (r *Registry) Source(course string, week int) (string, bool) {
	level, ok := NormalizeCourse(course)
	if !ok {
		return "", false
	}
	e, ok := r.weeks[scope.Key{Course: level, Week: week}]
	return e.source, ok
}
