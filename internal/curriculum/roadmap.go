package curriculum

import (
	"fmt"

	"github.com/uam-aleman/wochenkontext/internal/scope"
)

type plannedCourse struct {
	title string
	weeks []string
}

// plannedWeeks is the published course plan. Only weeks with a registered
// context are active.
var plannedWeeks = map[scope.CourseLevel]plannedCourse{
	scope.CourseA1: {
		title: "Alemán 1: Fundamentos",
		weeks: []string{
			"Begrüßungen",
			"W-Fragen und Zahlen bis 12",
			"Essen & Trinken",
			"Freizeit",
			"Familie",
			"Wohnen",
			"Körper",
			"Termine",
			"Kleidung",
			"Abschluss",
		},
	},
	scope.CourseA2: {
		title: "Alemán 2: Intermedio",
		weeks: []string{
			"Konrads Geschichte",
			"Tagesablauf und Uhrzeit",
			"Arbeitswelt",
			"Gesundheit",
			"Medien & Tech",
			"Umwelt",
			"Politik",
			"Geschichte",
			"Zukunft",
			"Finale",
		},
	},
}

// Roadmap returns the planned weeks of a course. Registered weeks missing
// from the plan are appended using their context title.
func (r *Registry) Roadmap(course string) (Roadmap, bool) {
	level, ok := NormalizeCourse(course)
	if !ok {
		return Roadmap{}, false
	}
	plan := plannedWeeks[level]

	rm := Roadmap{Course: level, Title: plan.title, Path: CourseSlug(level)}
	seen := make(map[int]bool)
	for i, title := range plan.weeks {
		week := i + 1
		seen[week] = true
		rm.Weeks = append(rm.Weeks, RoadmapEntry{
			Week:   week,
			Slug:   FormatWeekSlug(week),
			Title:  fmt.Sprintf("Woche %d: %s", week, title),
			Active: r.Exists(string(level), week),
		})
	}
	for _, week := range r.ListWeeks(string(level)) {
		if seen[week] {
			continue
		}
		e := r.weeks[scope.Key{Course: level, Week: week}]
		rm.Weeks = append(rm.Weeks, RoadmapEntry{
			Week:   week,
			Slug:   FormatWeekSlug(week),
			Title:  e.ctx.Title,
			Active: true,
		})
	}
	return rm, true
}
