package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexphase/nexcareer/pkg/profile"
)

const profileColumns = `id, user_id, name, email, phone, summary, skills, education, experience,
	resume_url, created_at, updated_at`

// ProfileRepository implements profile.Repository. List fields live in JSONB columns.
type ProfileRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

var _ profile.Repository = (*ProfileRepository)(nil)

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool, now: func() time.Time { return time.Now().UTC() }}
}

func scanProfile(row pgx.Row) (profile.Profile, error) {
	var (
		p                             profile.Profile
		skills, education, experience []byte
	)
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Email, &p.Phone, &p.Summary,
		&skills, &education, &experience, &p.ResumeURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return profile.Profile{}, err
	}
	if p.Skills, err = fromJSONB[string](skills); err != nil {
		return profile.Profile{}, fmt.Errorf("decode skills: %w", err)
	}
	if p.Education, err = fromJSONB[profile.Education](education); err != nil {
		return profile.Profile{}, fmt.Errorf("decode education: %w", err)
	}
	if p.Experience, err = fromJSONB[profile.Experience](experience); err != nil {
		return profile.Profile{}, fmt.Errorf("decode experience: %w", err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

// profileArgs returns the values for profileColumns in order.
func profileArgs(p profile.Profile) ([]any, error) {
	skills, err := jsonb(p.Skills)
	if err != nil {
		return nil, err
	}
	education, err := jsonb(p.Education)
	if err != nil {
		return nil, err
	}
	experience, err := jsonb(p.Experience)
	if err != nil {
		return nil, err
	}
	return []any{p.ID, p.UserID, p.Name, p.Email, p.Phone, p.Summary,
		skills, education, experience, p.ResumeURL, p.CreatedAt, p.UpdatedAt}, nil
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	p, err := scanProfile(r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID))
	return p, notFound(err)
}

func (r *ProfileRepository) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	r.stamp(&p)
	args, err := profileArgs(p)
	if err != nil {
		return profile.Profile{}, err
	}
	return scanProfile(r.pool.QueryRow(ctx, `
INSERT INTO profiles (`+profileColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING `+profileColumns, args...))
}

func (r *ProfileRepository) Update(ctx context.Context, userID uuid.UUID, p profile.Patch) (profile.Profile, error) {
	var set setList
	if v, ok := p.Name.Get(); ok {
		set.add("name", v)
	}
	if v, ok := p.Email.Get(); ok {
		set.add("email", v)
	}
	if v, ok := p.Phone.Get(); ok {
		set.add("phone", v)
	}
	if v, ok := p.Summary.Get(); ok {
		set.add("summary", v)
	}
	if v, ok := p.Skills.Get(); ok {
		raw, err := jsonb(v)
		if err != nil {
			return profile.Profile{}, err
		}
		set.add("skills", raw)
	}
	if v, ok := p.Education.Get(); ok {
		raw, err := jsonb(v)
		if err != nil {
			return profile.Profile{}, err
		}
		set.add("education", raw)
	}
	if v, ok := p.Experience.Get(); ok {
		raw, err := jsonb(v)
		if err != nil {
			return profile.Profile{}, err
		}
		set.add("experience", raw)
	}
	if v, ok := p.ResumeURL.Get(); ok {
		set.add("resume_url", v)
	}
	set.add("updated_at", r.now())
	where := set.arg(userID)

	out, err := scanProfile(r.pool.QueryRow(ctx,
		`UPDATE profiles SET `+set.String()+` WHERE user_id = `+where+` RETURNING `+profileColumns,
		set.args...))
	return out, notFound(err)
}

// Upsert inserts p or replaces every column of the user's existing profile
// except id and created_at.
func (r *ProfileRepository) Upsert(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	r.stamp(&p)
	args, err := profileArgs(p)
	if err != nil {
		return profile.Profile{}, err
	}
	return scanProfile(r.pool.QueryRow(ctx, `
INSERT INTO profiles (`+profileColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (user_id) DO UPDATE SET
	name = EXCLUDED.name,
	email = EXCLUDED.email,
	phone = EXCLUDED.phone,
	summary = EXCLUDED.summary,
	skills = EXCLUDED.skills,
	education = EXCLUDED.education,
	experience = EXCLUDED.experience,
	resume_url = EXCLUDED.resume_url,
	updated_at = EXCLUDED.updated_at
RETURNING `+profileColumns, args...))
}

func (r *ProfileRepository) stamp(p *profile.Profile) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := r.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}
