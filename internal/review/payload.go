// Package review turns a resolved week context and a student submission into
// the instruction payload handed to feedback generation.
package review

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/uam-aleman/wochenkontext/internal/scope"
)

// TopicSummary lists topics per domain.
type TopicSummary struct {
	Grammar         []scope.GrammarTopic        `json:"grammar"`
	Vocabulary      []scope.VocabularyTopic     `json:"vocabulary"`
	Sociopragmatics []scope.SociopragmaticTopic `json:"sociopragmatics"`
}

// InstructionPayload is everything a feedback generator needs to review one
// submission within the scope of its week. It carries no phrasing.
type InstructionPayload struct {
	Course              scope.CourseLevel       `json:"course"`
	Week                int                     `json:"week"`
	Title               string                  `json:"title"`
	StudentName         string                  `json:"student_name"`
	Correctable         []scope.CorrectionTopic `json:"correctable"`
	Forbidden           []scope.CorrectionTopic `json:"forbidden"`
	MaxIssues           int                     `json:"max_issues"`
	AvoidOverCorrection bool                    `json:"avoid_over_correction"`
	Tolerance           scope.Tolerance         `json:"tolerance,omitempty"`
	Focus               []string                `json:"focus,omitempty"`
	Taught              TopicSummary            `json:"taught"`
	NotTaught           TopicSummary            `json:"not_taught"`
	SubmissionText      string                  `json:"submission_text"`
}

// InvariantViolation means authored data reached the payload builder in a
// state validation should have rejected.
type InvariantViolation struct {
	Key    scope.Key
	Reason string
	Topics []scope.CorrectionTopic
}

func (e *InvariantViolation) Error() string {
	msg := fmt.Sprintf("payload invariant violated for %s: %s", e.Key, e.Reason)
	if len(e.Topics) > 0 {
		parts := make([]string, len(e.Topics))
		for i, t := range e.Topics {
			parts[i] = string(t)
		}
		msg += " (" + strings.Join(parts, ", ") + ")"
	}
	return msg
}

// BuildPayload assembles the payload for one submission. Topic lists are
// copied and sorted so equal inputs always produce equal payloads. The
// submission text is kept verbatim.
func BuildPayload(c scope.WeekContext, submissionText, studentName string) (InstructionPayload, error) {
	correctable := sortedCanonical(c.Correction.MayCorrect)
	forbidden := sortedCanonical(c.Correction.MustNotCorrect)

	if overlap := intersect(correctable, forbidden); len(overlap) > 0 {
		return InstructionPayload{}, violation(&InvariantViolation{
			Key:    c.Key(),
			Reason: "topics are both correctable and forbidden",
			Topics: overlap,
		})
	}
	if c.Correction.MaxIssues < 1 || c.Correction.MaxIssues > scope.MaxIssuesLimit {
		return InstructionPayload{}, violation(&InvariantViolation{
			Key:    c.Key(),
			Reason: fmt.Sprintf("max issues %d outside [1, %d]", c.Correction.MaxIssues, scope.MaxIssuesLimit),
		})
	}

	return InstructionPayload{
		Course:              c.Course,
		Week:                c.Week,
		Title:               c.Title,
		StudentName:         strings.TrimSpace(studentName),
		Correctable:         correctable,
		Forbidden:           forbidden,
		MaxIssues:           c.Correction.MaxIssues,
		AvoidOverCorrection: c.Correction.AvoidOverCorrection,
		Tolerance:           c.Correction.Tolerance,
		Focus:               slices.Clone(c.Correction.Focus),
		Taught: TopicSummary{
			Grammar:         sorted(c.Taught.Grammar.Topics()),
			Vocabulary:      sorted(c.Taught.Vocabulary.Topics()),
			Sociopragmatics: sorted(c.Taught.Sociopragmatics),
		},
		NotTaught: TopicSummary{
			Grammar:         sorted(c.NotTaught.Grammar),
			Vocabulary:      sorted(c.NotTaught.Vocabulary),
			Sociopragmatics: sorted(c.NotTaught.Sociopragmatics),
		},
		SubmissionText: submissionText,
	}, nil
}

func violation(v *InvariantViolation) error {
	slog.Error("payload invariant violated",
		"key", v.Key.String(),
		"reason", v.Reason,
		"topics", v.Topics,
	)
	return v
}

func sorted[T ~string](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	slices.Sort(out)
	return slices.Compact(out)
}

func sortedCanonical(in []scope.CorrectionTopic) []scope.CorrectionTopic {
	out := make([]scope.CorrectionTopic, len(in))
	for i, t := range in {
		out[i] = t.Canonical()
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// intersect expects both inputs sorted.
func intersect(a, b []scope.CorrectionTopic) []scope.CorrectionTopic {
	var out []scope.CorrectionTopic
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}
