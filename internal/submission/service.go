// Package submission accepts student writing, reviews it within the scope of
// its course week and records the result.
package submission

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/uam-aleman/wochenkontext/internal/curriculum"
	"github.com/uam-aleman/wochenkontext/internal/review"
	"github.com/uam-aleman/wochenkontext/internal/scope"
)

// AcceptedMessage is returned to the student after a successful submission.
const AcceptedMessage = "Actividad recibida correctamente"

// Result is the outcome of Service.Submit.
type Result struct {
	Message  string          `json:"message"`
	Feedback string          `json:"feedback"`
	Record   Record          `json:"-"`
	Review   review.Feedback `json:"-"`
}

// Service orchestrates validation, scope resolution, feedback generation and
// persistence of submissions.
type Service struct {
	registry  *curriculum.Registry
	generator review.FeedbackGenerator
	store     Store
	events    EventLogger
	now       func() time.Time
	newID     func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithEventLogger records submission events with l.
func WithEventLogger(l EventLogger) Option {
	return func(s *Service) { s.events = l }
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService creates a submission service.
func NewService(registry *curriculum.Registry, generator review.FeedbackGenerator, store Store, opts ...Option) *Service {
	s := &Service{
		registry:  registry,
		generator: generator,
		store:     store,
		events:    NopEventLogger{},
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates in, reviews it against the registered week context and
// stores the record. Invalid input yields *InputError; a course or week
// without a registered context yields *curriculum.ConfigurationError.
func (s *Service) Submit(ctx context.Context, in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	in = in.normalized()

	week, err := curriculum.ParseWeek(in.Week)
	if err != nil {
		return Result{}, &InputError{Fields: map[string]string{"week": fieldMessages["week"]}}
	}
	if err := s.registry.AssertValid(in.Level, week); err != nil {
		sessionID := in.Level + "-" + curriculum.FormatWeekSlug(week)
		if level, ok := curriculum.NormalizeCourse(in.Level); ok {
			sessionID = curriculum.SessionID(level, week)
		}
		s.logEvent(ctx, Event{
			SessionID: sessionID,
			EventType: EventScopeRejected,
			Data:      map[string]any{"level": in.Level, "week": week, "error": err.Error()},
		})
		return Result{}, err
	}
	wc, ok := s.registry.Resolve(in.Level, week)
	if !ok {
		return Result{}, fmt.Errorf("resolve %s week %d: context disappeared", in.Level, week)
	}

	payload, err := review.BuildPayload(wc, in.Content, in.StudentName())
	if err != nil {
		return Result{}, fmt.Errorf("building payload: %w", err)
	}

	fb, err := s.generator.Generate(ctx, payload)
	if err != nil {
		s.logEvent(ctx, Event{
			SessionID: curriculum.SessionID(wc.Course, wc.Week),
			EventType: EventFeedbackFailed,
			Data:      map[string]any{"error": err.Error()},
		})
		return Result{}, fmt.Errorf("reviewing submission: %w", err)
	}

	rec := Record{
		ID:             s.newID(),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		StudentName:    in.StudentName(),
		Email:          in.Email,
		Level:          curriculum.CourseSlug(wc.Course),
		WeekID:         curriculum.FormatWeekSlug(wc.Week),
		SessionID:      curriculum.SessionID(wc.Course, wc.Week),
		Content:        in.Content,
		Feedback:       fb.Content,
		Model:          fb.Model,
		Scope:          scope.Snapshot(wc),
		SubmissionType: SubmissionTypeWritten,
		ActivityMode:   ActivityModeGuided,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return Result{}, fmt.Errorf("saving submission: %w", err)
	}

	s.logEvent(ctx, Event{
		SubmissionID: rec.ID,
		SessionID:    rec.SessionID,
		EventType:    EventRecorded,
		Data: map[string]any{
			"cached":     fb.Cached,
			"model":      fb.Model,
			"provider":   fb.Provider,
			"tokens":     fb.Tokens,
			"max_issues": payload.MaxIssues,
		},
		CreatedAt: rec.CreatedAt,
	})

	slog.Info("submission recorded",
		"id", rec.ID,
		"session_id", rec.SessionID,
		"cached", fb.Cached,
	)

	return Result{
		Message:  AcceptedMessage,
		Feedback: fb.Content,
		Record:   rec,
		Review:   fb,
	}, nil
}

func (s *Service) logEvent(ctx context.Context, e Event) {
	if err := s.events.LogEvent(ctx, e); err != nil {
		slog.Warn("submission event not recorded", "type", e.EventType, "error", err)
	}
}

// List returns stored submissions. Level and WeekID accept any course alias
// and week token.
func (s *Service) List(ctx context.Context, f Filter) ([]Record, error) {
	if f.Level != "" {
		level, ok := curriculum.NormalizeCourse(f.Level)
		if !ok {
			return nil, &InputError{Fields: map[string]string{"level": fieldMessages["level"]}}
		}
		f.Level = curriculum.CourseSlug(level)
	}
	if f.WeekID != "" {
		week, err := curriculum.ParseWeek(f.WeekID)
		if err != nil {
			return nil, &InputError{Fields: map[string]string{"week": fieldMessages["week"]}}
		}
		f.WeekID = curriculum.FormatWeekSlug(week)
	}
	return s.store.List(ctx, f)
}
