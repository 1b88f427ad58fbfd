package profile

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nexphase/nexcareer/pkg/opt"
)

// Education is one entry of a profile's education history.
type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Field  string `json:"field"`
	Year   string `json:"year"`
}

// Experience is one entry of a profile's work history.
type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Profile is a user's career profile. There is at most one per user.
type Profile struct {
	ID         uuid.UUID    `json:"id"`
	UserID     uuid.UUID    `json:"userId"`
	Name       *string      `json:"name"`
	Email      *string      `json:"email"`
	Phone      *string      `json:"phone"`
	Summary    *string      `json:"summary"`
	Skills     []string     `json:"skills"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	ResumeURL  *string      `json:"resumeUrl"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// IsComplete reports whether the profile has a name, an email, at least one
// skill and at least one education or experience entry.
func (p Profile) IsComplete() bool {
	return !blank(p.Name) && !blank(p.Email) && len(p.Skills) > 0 &&
		(len(p.Education) > 0 || len(p.Experience) > 0)
}

// Patch lists the columns of a partial update.
type Patch struct {
	Name       opt.Field[*string]
	Email      opt.Field[*string]
	Phone      opt.Field[*string]
	Summary    opt.Field[*string]
	Skills     opt.Field[[]string]
	Education  opt.Field[[]Education]
	Experience opt.Field[[]Experience]
	ResumeURL  opt.Field[*string]
}

func (p Patch) Empty() bool {
	return !p.Name.Set && !p.Email.Set && !p.Phone.Set && !p.Summary.Set &&
		!p.Skills.Set && !p.Education.Set && !p.Experience.Set && !p.ResumeURL.Set
}

// Apply returns p's values laid over base.
func (p Patch) Apply(base Profile) Profile {
	if v, ok := p.Name.Get(); ok {
		base.Name = v
	}
	if v, ok := p.Email.Get(); ok {
		base.Email = v
	}
	if v, ok := p.Phone.Get(); ok {
		base.Phone = v
	}
	if v, ok := p.Summary.Get(); ok {
		base.Summary = v
	}
	if v, ok := p.Skills.Get(); ok {
		base.Skills = v
	}
	if v, ok := p.Education.Get(); ok {
		base.Education = v
	}
	if v, ok := p.Experience.Get(); ok {
		base.Experience = v
	}
	if v, ok := p.ResumeURL.Get(); ok {
		base.ResumeURL = v
	}
	return base
}

// Repository is the persistence port for profiles.
// FindByUserID returns apperr.ErrNotFound when the user has no profile.
type Repository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
	Create(ctx context.Context, p Profile) (Profile, error)
	Update(ctx context.Context, userID uuid.UUID, p Patch) (Profile, error)
	Upsert(ctx context.Context, p Profile) (Profile, error)
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
