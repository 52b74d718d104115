//go:build integration

package submission_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/uam-aleman/wochenkontext/internal/platform/database"
	"github.com/uam-aleman/wochenkontext/internal/scope"
	"github.com/uam-aleman/wochenkontext/internal/submission"
)

func startPostgres(t *testing.T) (*submission.PostgresStore, *pgxpool.Pool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	ctr, err := postgres.Run(ctx, "postgres:17-alpine",
		postgres.WithDatabase("wochenkontext"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(ctx, dsn))

	db, err := database.New(ctx, dsn, database.WithPoolSize(4, 1))
	require.NoError(t, err)
	t.Cleanup(db.Close)

	store, err := submission.NewPostgresStore(db.Pool)
	require.NoError(t, err)
	return store, db.Pool
}

func TestPostgresStore(t *testing.T) {
	store, pool := startPostgres(t)
	ctx := context.Background()

	seed(t, store)

	rec := submission.Record{
		ID:             "9b2f0c1e-7d4a-4c55-8f0e-3a1d2b3c4d5e",
		FirstName:      "Ana",
		LastName:       "López",
		StudentName:    "Ana López",
		Level:          "aleman2",
		WeekID:         "w02",
		SessionID:      "aleman2-w02",
		Content:        "Ich stehe um sieben Uhr auf.",
		Feedback:       "<p>Gut!</p>",
		Model:          "deepseek-chat",
		SubmissionType: submission.SubmissionTypeWritten,
		ActivityMode:   submission.ActivityModeGuided,
		Scope: scope.ScopeSnapshot{
			Course:     scope.CourseA2,
			Week:       2,
			Title:      "Alltag",
			MayCorrect: []string{"Verbformen"},
			MaxIssues:  4,
		},
		CreatedAt: time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, rec))

	got, found, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, rec.Scope, got.Scope)
	require.Equal(t, rec.Content, got.Content)
	require.Empty(t, got.Email)
	require.True(t, rec.CreatedAt.Equal(got.CreatedAt))

	_, found, err = store.Get(ctx, "00000000-0000-0000-0000-0000000000ff")
	require.NoError(t, err)
	require.False(t, found)

	all, err := store.List(ctx, submission.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	require.Equal(t, rec.ID, all[0].ID)

	a1w1, err := store.List(ctx, submission.Filter{Level: "aleman1", WeekID: "w01", Limit: 1})
	require.NoError(t, err)
	require.Len(t, a1w1, 1)
	require.Equal(t, "00000000-0000-0000-0000-000000000004", a1w1[0].ID)

	events := submission.NewPostgresEventLogger(pool)
	require.NoError(t, events.LogEvent(ctx, submission.Event{
		SubmissionID: rec.ID,
		SessionID:    rec.SessionID,
		EventType:    submission.EventRecorded,
		Data:         map[string]any{"cached": true},
	}))
	require.NoError(t, events.LogEvent(ctx, submission.Event{
		SessionID: "aleman1-w09",
		EventType: submission.EventScopeRejected,
	}))

	var n int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM submission_events`).Scan(&n))
	require.Equal(t, 2, n)
}
