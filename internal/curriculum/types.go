package curriculum

import "github.com/uam-aleman/wochenkontext/internal/scope"

// Summary is a lightweight projection of a week context.
type Summary struct {
	Course          scope.CourseLevel           `json:"course" yaml:"course"`
	Week            int                         `json:"week" yaml:"week"`
	Slug            string                      `json:"slug" yaml:"slug"`
	Title           string                      `json:"title" yaml:"title"`
	FocalPoint      string                      `json:"focal_point,omitempty" yaml:"focal_point,omitempty"`
	Grammar         []scope.GrammarTopic        `json:"grammar" yaml:"grammar"`
	Vocabulary      []scope.VocabularyTopic     `json:"vocabulary" yaml:"vocabulary"`
	Sociopragmatics []scope.SociopragmaticTopic `json:"sociopragmatics" yaml:"sociopragmatics"`
	MaxIssues       int                         `json:"max_issues" yaml:"max_issues"`
}

// RoadmapEntry is one planned week of a course.
type RoadmapEntry struct {
	Week   int    `json:"week" yaml:"week"`
	Slug   string `json:"slug" yaml:"slug"`
	Title  string `json:"title" yaml:"title"`
	Active bool   `json:"active" yaml:"active"`
}

// Roadmap is the planned sequence of weeks for a course.
type Roadmap struct {
	Course scope.CourseLevel `json:"course" yaml:"course"`
	Title  string            `json:"title" yaml:"title"`
	Path   string            `json:"path" yaml:"path"`
	Weeks  []RoadmapEntry    `json:"weeks" yaml:"weeks"`
}

func summarize(c scope.WeekContext) Summary {
	return Summary{
		Course:          c.Course,
		Week:            c.Week,
		Slug:            FormatWeekSlug(c.Week),
		Title:           c.Title,
		FocalPoint:      c.FocalPoint(),
		Grammar:         c.Taught.Grammar.Topics(),
		Vocabulary:      c.Taught.Vocabulary.Topics(),
		Sociopragmatics: append([]scope.SociopragmaticTopic(nil), c.Taught.Sociopragmatics...),
		MaxIssues:       c.Correction.MaxIssues,
	}
}
