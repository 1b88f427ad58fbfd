package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexphase/nexcareer/pkg/apperr"
	"github.com/nexphase/nexcareer/pkg/application"
)

const applicationColumns = `id, user_id, company, position, status, applied_date, notes, url,
	followed_up_at, interview_date, created_at, updated_at`

// ApplicationRepository implements application.Repository backed by PostgreSQL (pgx).
type ApplicationRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

var _ application.Repository = (*ApplicationRepository)(nil)

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool, now: func() time.Time { return time.Now().UTC() }}
}

func scanApplication(row pgx.Row) (application.Application, error) {
	var a application.Application
	err := row.Scan(&a.ID, &a.UserID, &a.Company, &a.Position, &a.Status, &a.AppliedDate,
		&a.Notes, &a.URL, &a.FollowedUpAt, &a.InterviewDate, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return application.Application{}, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}

func (r *ApplicationRepository) list(ctx context.Context, sql string, args ...any) ([]application.Application, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []application.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	a, err := scanApplication(r.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	return a, notFound(err)
}

func (r *ApplicationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx, `
SELECT `+applicationColumns+` FROM applications
WHERE user_id = $1
ORDER BY created_at DESC`, userID)
}

func (r *ApplicationRepository) FindByStatus(ctx context.Context, userID uuid.UUID, status application.Status) ([]application.Application, error) {
	return r.list(ctx, `
SELECT `+applicationColumns+` FROM applications
WHERE user_id = $1 AND status = $2
ORDER BY created_at DESC`, userID, status)
}

func (r *ApplicationRepository) Search(ctx context.Context, userID uuid.UUID, keyword string) ([]application.Application, error) {
	return r.list(ctx, `
SELECT `+applicationColumns+` FROM applications
WHERE user_id = $1 AND (company ILIKE $2 OR position ILIKE $2 OR notes ILIKE $2)
ORDER BY created_at DESC`, userID, likePattern(keyword))
}

const insertApplication = `
INSERT INTO applications (` + applicationColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + applicationColumns

func insertArgs(a application.Application) []any {
	return []any{a.ID, a.UserID, a.Company, a.Position, a.Status, a.AppliedDate, a.Notes, a.URL,
		a.FollowedUpAt, a.InterviewDate, a.CreatedAt, a.UpdatedAt}
}

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	r.stamp(&a)
	return scanApplication(r.pool.QueryRow(ctx, insertApplication, insertArgs(a)...))
}

// CreateMany inserts all rows in one transaction using a pipelined batch.
func (r *ApplicationRepository) CreateMany(ctx context.Context, apps []application.Application) ([]application.Application, error) {
	if len(apps) == 0 {
		return []application.Application{}, nil
	}
	out := make([]application.Application, 0, len(apps))
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for i := range apps {
			a := apps[i]
			r.stamp(&a)
			batch.Queue(insertApplication, insertArgs(a)...)
		}
		br := tx.SendBatch(ctx, batch)
		for range apps {
			a, err := scanApplication(br.QueryRow())
			if err != nil {
				_ = br.Close()
				return fmt.Errorf("insert application: %w", err)
			}
			out = append(out, a)
		}
		return br.Close()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ApplicationRepository) Update(ctx context.Context, id uuid.UUID, p application.Patch) (application.Application, error) {
	var set setList
	if v, ok := p.Company.Get(); ok {
		set.add("company", v)
	}
	if v, ok := p.Position.Get(); ok {
		set.add("position", v)
	}
	if v, ok := p.Status.Get(); ok {
		set.add("status", v)
	}
	if v, ok := p.AppliedDate.Get(); ok {
		set.add("applied_date", v)
	}
	if v, ok := p.Notes.Get(); ok {
		set.add("notes", v)
	}
	if v, ok := p.URL.Get(); ok {
		set.add("url", v)
	}
	if v, ok := p.FollowedUpAt.Get(); ok {
		set.add("followed_up_at", v)
	}
	if v, ok := p.InterviewDate.Get(); ok {
		set.add("interview_date", v)
	}
	set.add("updated_at", r.now())
	where := set.arg(id)

	a, err := scanApplication(r.pool.QueryRow(ctx,
		`UPDATE applications SET `+set.String()+` WHERE id = `+where+` RETURNING `+applicationColumns,
		set.args...))
	return a, notFound(err)
}

func (r *ApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) GetStats(ctx context.Context, userID uuid.UUID) (application.Stats, error) {
	apps, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return application.Stats{}, err
	}
	return application.ComputeStats(apps, r.now()), nil
}

func (r *ApplicationRepository) stamp(a *application.Application) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := r.now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}
	if a.Status == "" {
		a.Status = application.StatusSaved
	}
}
