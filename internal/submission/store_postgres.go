package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var recordColumns = []string{
	"id::text",
	"first_name",
	"last_name",
	"student_name",
	"COALESCE(user_email, '')",
	"level",
	"week_id",
	"session_id",
	"content_text",
	"ai_feedback",
	"COALESCE(ai_model, '')",
	"pedagogical_context",
	"submission_type",
	"activity_mode",
	"created_at",
}

// PostgresStore is a PostgreSQL-backed Store over the submissions table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store on pool. The schema is managed by
// database.Migrate.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Save(ctx context.Context, rec Record) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if rec.ID == "" {
		return fmt.Errorf("record id is required")
	}
	scopeJSON, err := json.Marshal(rec.Scope)
	if err != nil {
		return fmt.Errorf("encode scope snapshot: %w", err)
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO submissions (
			id, first_name, last_name, student_name, user_email,
			level, week_id, session_id, content_text, ai_feedback, ai_model,
			pedagogical_context, submission_type, activity_mode, created_at)
		 VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		rec.ID,
		rec.FirstName,
		rec.LastName,
		rec.StudentName,
		nullIfEmpty(rec.Email),
		rec.Level,
		rec.WeekID,
		rec.SessionID,
		rec.Content,
		rec.Feedback,
		nullIfEmpty(rec.Model),
		scopeJSON,
		rec.SubmissionType,
		rec.ActivityMode,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("save submission: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Record, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	query, args, err := psql.Select(recordColumns...).
		From("submissions").
		Where(sq.Expr("id::text = ?", id)).
		ToSql()
	if err != nil {
		return Record{}, false, fmt.Errorf("build query: %w", err)
	}

	rec, err := scanRecord(s.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("get submission: %w", err)
	}
	return rec, true, nil
}

func (s *PostgresStore) List(ctx context.Context, f Filter) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	b := psql.Select(recordColumns...).
		From("submissions").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(f.limit()))
	if f.Level != "" {
		b = b.Where(sq.Eq{"level": f.Level})
	}
	if f.WeekID != "" {
		b = b.Where(sq.Eq{"week_id": f.WeekID})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return out, nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	var scopeJSON []byte
	err := row.Scan(
		&rec.ID,
		&rec.FirstName,
		&rec.LastName,
		&rec.StudentName,
		&rec.Email,
		&rec.Level,
		&rec.WeekID,
		&rec.SessionID,
		&rec.Content,
		&rec.Feedback,
		&rec.Model,
		&scopeJSON,
		&rec.SubmissionType,
		&rec.ActivityMode,
		&rec.CreatedAt,
	)
	if err != nil {
		return Record{}, err
	}
	if len(scopeJSON) > 0 {
		if err := json.Unmarshal(scopeJSON, &rec.Scope); err != nil {
			return Record{}, fmt.Errorf("decode scope snapshot: %w", err)
		}
	}
	return rec, nil
}

func nullIfEmpty(v string) any {
	if v == "" {
		return nil
	}
	return v
}
