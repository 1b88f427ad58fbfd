package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nexphase/nexcareer/pkg/opt"
)

// Status is the pipeline stage of an application.
type Status string

const (
	StatusSaved     Status = "Saved"
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

// AllStatuses lists statuses in pipeline order.
var AllStatuses = []Status{StatusSaved, StatusApplied, StatusInterview, StatusOffer, StatusRejected}

var nextStatuses = map[Status][]Status{
	StatusSaved:     {StatusApplied},
	StatusApplied:   {StatusInterview, StatusRejected},
	StatusInterview: {StatusOffer, StatusRejected},
	StatusOffer:     {},
	StatusRejected:  {},
}

// Valid reports whether s is one of the five known statuses.
func (s Status) Valid() bool {
	_, ok := nextStatuses[s]
	return ok
}

// NextStatuses returns the statuses an application would normally move to
// from s. It is a UI hint only; updates accept any valid status.
func NextStatuses(s Status) []Status {
	next, ok := nextStatuses[s]
	if !ok {
		return []Status{}
	}
	return append([]Status{}, next...)
}

// FollowUpAfter is how long an application may sit in Applied before a
// follow-up is due, and how long a follow-up counts as recent.
const FollowUpAfter = 7 * 24 * time.Hour

// Application is a tracked job application.
type Application struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"userId"`
	Company       string     `json:"company"`
	Position      string     `json:"position"`
	Status        Status     `json:"status"`
	AppliedDate   *time.Time `json:"appliedDate"`
	Notes         *string    `json:"notes"`
	URL           *string    `json:"url"`
	FollowedUpAt  *time.Time `json:"followedUpAt"`
	InterviewDate *time.Time `json:"interviewDate"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// NeedsFollowUp reports whether the application has been waiting in Applied
// for at least FollowUpAfter with no recent follow-up.
func (a Application) NeedsFollowUp(now time.Time) bool {
	if a.Status != StatusApplied || a.AppliedDate == nil {
		return false
	}
	if now.Sub(*a.AppliedDate) < FollowUpAfter {
		return false
	}
	return a.FollowedUpAt == nil || now.Sub(*a.FollowedUpAt) >= FollowUpAfter
}

// Patch lists the columns of a partial update. Unset fields are left alone.
type Patch struct {
	Company       opt.Field[string]
	Position      opt.Field[string]
	Status        opt.Field[Status]
	AppliedDate   opt.Field[*time.Time]
	Notes         opt.Field[*string]
	URL           opt.Field[*string]
	FollowedUpAt  opt.Field[*time.Time]
	InterviewDate opt.Field[*time.Time]
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return !p.Company.Set && !p.Position.Set && !p.Status.Set && !p.AppliedDate.Set &&
		!p.Notes.Set && !p.URL.Set && !p.FollowedUpAt.Set && !p.InterviewDate.Set
}

// Repository is the persistence port for applications.
// FindByID returns apperr.ErrNotFound when no row matches.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (Application, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]Application, error)
	FindByStatus(ctx context.Context, userID uuid.UUID, status Status) ([]Application, error)
	Search(ctx context.Context, userID uuid.UUID, keyword string) ([]Application, error)
	Create(ctx context.Context, a Application) (Application, error)
	CreateMany(ctx context.Context, apps []Application) ([]Application, error)
	Update(ctx context.Context, id uuid.UUID, p Patch) (Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetStats(ctx context.Context, userID uuid.UUID) (Stats, error)
}
