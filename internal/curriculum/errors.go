package curriculum

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCourse      = errors.New("unknown course")
	ErrWeekOutOfRange     = errors.New("week out of range")
	ErrWeekNotImplemented = errors.New("week not implemented")
	ErrDuplicateWeek      = errors.New("duplicate week context")
)

// FaultKind classifies a ConfigurationError.
type FaultKind int

const (
	UnknownCourse FaultKind = iota + 1
	WeekOutOfRange
	WeekNotImplemented
)

func (k FaultKind) String() string {
	switch k {
	case UnknownCourse:
		return "unknown_course"
	case WeekOutOfRange:
		return "week_out_of_range"
	case WeekNotImplemented:
		return "week_not_implemented"
	}
	return "unknown"
}

// ConfigurationError is returned by AssertValid when a caller refers to a
// course or week that should have been rejected earlier.
type ConfigurationError struct {
	Kind    FaultKind
	Course  string
	Week    int
	MaxWeek int
}

func (e *ConfigurationError) Error() string {
	switch e.Kind {
	case UnknownCourse:
		return fmt.Sprintf("unknown course %q", e.Course)
	case WeekOutOfRange:
		return fmt.Sprintf("week %d of course %q is out of range [1, %d]", e.Week, e.Course, e.MaxWeek)
	case WeekNotImplemented:
		return fmt.Sprintf("week %d of course %q is not implemented", e.Week, e.Course)
	}
	return fmt.Sprintf("invalid course %q week %d", e.Course, e.Week)
}

// Unwrap exposes the sentinel matching Kind so errors.Is works.
func (e *ConfigurationError) Unwrap() error {
	switch e.Kind {
	case UnknownCourse:
		return ErrUnknownCourse
	case WeekOutOfRange:
		return ErrWeekOutOfRange
	case WeekNotImplemented:
		return ErrWeekNotImplemented
	}
	return nil
}
