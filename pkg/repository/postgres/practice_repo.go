package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexphase/nexcareer/pkg/apperr"
	"github.com/nexphase/nexcareer/pkg/practice"
)

const practiceColumns = `id, user_id, application_id, type, questions, created_at`

// PracticeRepository implements practice.Repository. Questions are stored as
// one JSONB array per session.
type PracticeRepository struct {
	pool *pgxpool.Pool
}

var _ practice.Repository = (*PracticeRepository)(nil)

func NewPracticeRepository(pool *pgxpool.Pool) *PracticeRepository {
	return &PracticeRepository{pool: pool}
}

func scanSession(row pgx.Row) (practice.Session, error) {
	var (
		s   practice.Session
		raw []byte
	)
	if err := row.Scan(&s.ID, &s.UserID, &s.ApplicationID, &s.Type, &raw, &s.CreatedAt); err != nil {
		return practice.Session{}, err
	}
	qs, err := fromJSONB[practice.Question](raw)
	if err != nil {
		return practice.Session{}, fmt.Errorf("decode questions: %w", err)
	}
	s.Questions = qs
	s.CreatedAt = s.CreatedAt.UTC()
	return s, nil
}

func (r *PracticeRepository) list(ctx context.Context, sql string, args ...any) ([]practice.Session, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []practice.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PracticeRepository) FindByID(ctx context.Context, id uuid.UUID) (practice.Session, error) {
	s, err := scanSession(r.pool.QueryRow(ctx,
		`SELECT `+practiceColumns+` FROM practice_sessions WHERE id = $1`, id))
	return s, notFound(err)
}

func (r *PracticeRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]practice.Session, error) {
	return r.list(ctx, `
SELECT `+practiceColumns+` FROM practice_sessions
WHERE user_id = $1
ORDER BY created_at DESC`, userID)
}

func (r *PracticeRepository) FindByApplicationID(ctx context.Context, applicationID uuid.UUID) ([]practice.Session, error) {
	return r.list(ctx, `
SELECT `+practiceColumns+` FROM practice_sessions
WHERE application_id = $1
ORDER BY created_at DESC`, applicationID)
}

func (r *PracticeRepository) Create(ctx context.Context, s practice.Session) (practice.Session, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	raw, err := jsonb(s.Questions)
	if err != nil {
		return practice.Session{}, err
	}
	return scanSession(r.pool.QueryRow(ctx, `
INSERT INTO practice_sessions (`+practiceColumns+`)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+practiceColumns, s.ID, s.UserID, s.ApplicationID, s.Type, raw, s.CreatedAt))
}

func (r *PracticeRepository) UpdateQuestions(ctx context.Context, id uuid.UUID, questions []practice.Question) (practice.Session, error) {
	raw, err := jsonb(questions)
	if err != nil {
		return practice.Session{}, err
	}
	s, err := scanSession(r.pool.QueryRow(ctx, `
UPDATE practice_sessions SET questions = $2 WHERE id = $1
RETURNING `+practiceColumns, id, raw))
	return s, notFound(err)
}

func (r *PracticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM practice_sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
