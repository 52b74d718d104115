package curriculum

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/uam-aleman/wochenkontext/internal/scope"
)

//go:embed weeks/*.yaml
var embedded embed.FS

// DefaultMaxWeek is the last valid week number of any course.
const DefaultMaxWeek = 12

// Weeks returns the week contexts shipped with the binary.
func Weeks() fs.FS {
	sub, err := fs.Sub(embedded, "weeks")
	if err != nil {
		panic(err)
	}
	return sub
}

// DuplicatePolicy decides what happens when two sources define the same
// (course, week).
type DuplicatePolicy int

const (
	// DuplicateLastWins keeps the later definition and logs a warning.
	DuplicateLastWins DuplicatePolicy = iota
	// DuplicateReject fails registry construction with ErrDuplicateWeek.
	DuplicateReject
)

// ParseDuplicatePolicy accepts "last-wins" and "reject".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last-wins", "last_wins":
		return DuplicateLastWins, nil
	case "reject":
		return DuplicateReject, nil
	}
	return 0, fmt.Errorf("unknown duplicate policy %q", s)
}

func (p DuplicatePolicy) String() string {
	if p == DuplicateReject {
		return "reject"
	}
	return "last-wins"
}

type options struct {
	duplicates DuplicatePolicy
	maxWeek    int
	logger     *slog.Logger
}

// Option configures a Registry.
type Option func(*options)

// WithDuplicatePolicy sets how duplicate (course, week) keys are resolved.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(o *options) { o.duplicates = p }
}

// WithMaxWeek sets the upper bound of the valid week range.
func WithMaxWeek(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxWeek = n
		}
	}
}

// WithLogger sets the logger used during construction.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		duplicates: DuplicateLastWins,
		maxWeek:    DefaultMaxWeek,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var defaultRegistry = sync.OnceValues(func() (*Registry, error) {
	return NewRegistry(Weeks())
})

// Default returns the registry built from the embedded week contexts. It is
// constructed once; concurrent first callers share the same result.
func Default() (*Registry, error) {
	return defaultRegistry()
}

// NewRegistry loads every *.yaml / *.yml file in fsys in lexical path order.
// All invalid files are reported together.
func NewRegistry(fsys fs.FS, opts ...Option) (*Registry, error) {
	o := newOptions(opts)
	b := newBuilder(o)

	var errs []error
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch path.Ext(p) {
		case ".yaml", ".yml":
		default:
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		ctx, err := scope.ParseNamed(p, data)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if err := b.add(ctx, p); err != nil {
			errs = append(errs, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading curriculum: %w", err)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("loading curriculum: %w", errors.Join(errs...))
	}

	r := b.build()
	o.logger.Info("curriculum loaded", "weeks", len(r.weeks), "courses", len(r.byCourse))
	return r, nil
}

// FromContexts builds a registry from Go values, validating each one.
func FromContexts(ctxs []scope.WeekContext, opts ...Option) (*Registry, error) {
	o := newOptions(opts)
	b := newBuilder(o)

	var errs []error
	for i, c := range ctxs {
		if err := c.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := b.add(c.Clone(), fmt.Sprintf("contexts[%d]", i)); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("building registry: %w", errors.Join(errs...))
	}
	return b.build(), nil
}

type entry struct {
	ctx    scope.WeekContext
	source string
}

type builder struct {
	opts  options
	weeks map[scope.Key]entry
}

func newBuilder(o options) *builder {
	return &builder{opts: o, weeks: make(map[scope.Key]entry)}
}

func (b *builder) add(c scope.WeekContext, source string) error {
	key := c.Key()
	if c.Week > b.opts.maxWeek {
		return fmt.Errorf("%s: week %d is outside [1, %d]", source, c.Week, b.opts.maxWeek)
	}
	if prev, ok := b.weeks[key]; ok {
		if b.opts.duplicates == DuplicateReject {
			return fmt.Errorf("%w: %s defined in %s and %s", ErrDuplicateWeek, key, prev.source, source)
		}
		b.opts.logger.Warn("duplicate week context replaced",
			"key", key.String(),
			"previous", prev.source,
			"source", source,
		)
	}
	b.weeks[key] = entry{ctx: c, source: source}
	return nil
}

func (b *builder) build() *Registry {
	return newRegistry(b.weeks, b.opts.maxWeek)
}
