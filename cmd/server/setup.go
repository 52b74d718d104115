package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/uam-aleman/wochenkontext/internal/ai"
	"github.com/uam-aleman/wochenkontext/internal/curriculum"
	"github.com/uam-aleman/wochenkontext/internal/platform/cache"
	"github.com/uam-aleman/wochenkontext/internal/platform/config"
	"github.com/uam-aleman/wochenkontext/internal/platform/database"
	"github.com/uam-aleman/wochenkontext/internal/review"
	"github.com/uam-aleman/wochenkontext/internal/submission"
)

// application holds the wired server and the resources it must release.
type application struct {
	server  *server
	closers []func()
}

func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func loadRegistry(cfg config.CurriculumConfig) (*curriculum.Registry, error) {
	policy, err := curriculum.ParseDuplicatePolicy(cfg.DuplicatePolicy)
	if err != nil {
		return nil, err
	}
	fsys := curriculum.Weeks()
	if cfg.Path != "" {
		fsys = os.DirFS(cfg.Path)
	}
	return curriculum.NewRegistry(fsys,
		curriculum.WithMaxWeek(cfg.MaxWeek),
		curriculum.WithDuplicatePolicy(policy),
	)
}

func newAIRouter(cfg config.AIConfig) *ai.Router {
	client := &http.Client{Timeout: cfg.Timeout}
	router := ai.NewRouter()

	if cfg.DeepSeek.APIKey != "" {
		opts := []ai.OpenAIOption{ai.WithHTTPClient(client)}
		if cfg.DeepSeek.BaseURL != "" {
			opts = append(opts, ai.WithBaseURL(cfg.DeepSeek.BaseURL))
		}
		if cfg.DeepSeek.Model != "" {
			opts = append(opts, ai.WithDefaultModel(cfg.DeepSeek.Model))
		}
		router.Register("deepseek", ai.NewDeepSeekProvider(cfg.DeepSeek.APIKey, opts...))
	}
	if cfg.OpenAI.APIKey != "" {
		opts := []ai.OpenAIOption{ai.WithHTTPClient(client)}
		if cfg.OpenAI.BaseURL != "" {
			opts = append(opts, ai.WithBaseURL(cfg.OpenAI.BaseURL))
		}
		if cfg.OpenAI.Model != "" {
			opts = append(opts, ai.WithDefaultModel(cfg.OpenAI.Model))
		}
		router.Register("openai", ai.NewOpenAIProvider(cfg.OpenAI.APIKey, opts...))
	}
	return router
}

// setup wires the registry, review pipeline and stores described by cfg.
func setup(ctx context.Context, cfg *config.Config) (*application, error) {
	app := &application{}

	registry, err := loadRegistry(cfg.Curriculum)
	if err != nil {
		return nil, err
	}

	checks := map[string]func(context.Context) error{}

	var generator review.FeedbackGenerator = review.PendingGenerator{}
	router := newAIRouter(cfg.AI)
	if router.HasProvider() {
		generator = review.NewAIGenerator(router,
			review.WithTemperature(cfg.AI.Temperature),
			review.WithMaxTokens(cfg.AI.MaxTokens),
		)
		checks["ai"] = router.HealthCheck
	} else {
		slog.Warn("no AI provider configured, feedback will be a placeholder")
	}

	// Placeholder feedback is never cached.
	if cfg.Cache.URL != "" && router.HasProvider() {
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("connecting cache: %w", err)
		}
		app.closers = append(app.closers, func() { c.Close() })
		checks["cache"] = c.HealthCheck
		generator = review.NewCachedGenerator(generator, review.NewRedisFeedbackCache(c.Client, cfg.Cache.FeedbackTTL))
	} else if cfg.Cache.URL != "" {
		slog.Info("feedback cache skipped, no AI provider configured")
	}

	var store submission.Store = submission.NewMemoryStore()
	var events submission.EventLogger = submission.NopEventLogger{}
	if cfg.Database.URL != "" {
		if cfg.Database.Migrate {
			if err := database.Migrate(ctx, cfg.Database.URL); err != nil {
				app.Close()
				return nil, err
			}
		}
		db, err := database.New(ctx, cfg.Database.URL,
			database.WithPoolSize(cfg.Database.MaxConns, cfg.Database.MinConns),
		)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, db.Close)
		checks["database"] = db.HealthCheck

		pg, err := submission.NewPostgresStore(db.Pool)
		if err != nil {
			app.Close()
			return nil, err
		}
		store = pg
		events = submission.NewPostgresEventLogger(db.Pool)
	} else {
		slog.Warn("no database configured, submissions are kept in memory")
	}

	app.server = &server{
		registry:    registry,
		submissions: submission.NewService(registry, generator, store, submission.WithEventLogger(events)),
		checks:      checks,
	}
	return app, nil
}
