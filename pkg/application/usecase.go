package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nexphase/nexcareer/pkg/apperr"
	"github.com/nexphase/nexcareer/pkg/opt"
)

const (
	errCompanyRequired  = apperr.ValidationError("Company name is required")
	errPositionRequired = apperr.ValidationError("Position is required")
	errInvalidStatus    = apperr.ValidationError("Invalid application status")
)

// UseCase groups the application-tracking operations.
type UseCase interface {
	Create(ctx context.Context, in CreateInput) (Application, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*Application, error)
	List(ctx context.Context, userID uuid.UUID, status *Status) ([]Application, error)
	Update(ctx context.Context, in UpdateInput) (Application, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Search(ctx context.Context, userID uuid.UUID, keyword string) ([]Application, error)
	Import(ctx context.Context, userID uuid.UUID, records []ImportRecord) (ImportResult, error)
	Stats(ctx context.Context, userID uuid.UUID) (Stats, error)
	MarkFollowedUp(ctx context.Context, id, userID uuid.UUID) (Application, error)
	NeedingFollowUp(ctx context.Context, userID uuid.UUID) ([]Application, error)
}

// CreateInput describes a new application. Empty Status means Saved.
type CreateInput struct {
	UserID      uuid.UUID
	Company     string
	Position    string
	Status      Status
	AppliedDate *time.Time
	Notes       *string
	URL         *string
}

// UpdateInput carries only the fields the caller wants to change.
type UpdateInput struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Company       opt.Field[string]
	Position      opt.Field[string]
	Status        opt.Field[Status]
	AppliedDate   opt.Field[*time.Time]
	Notes         opt.Field[*string]
	URL           opt.Field[*string]
	FollowedUpAt  opt.Field[*time.Time]
	InterviewDate opt.Field[*time.Time]
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) Create(ctx context.Context, in CreateInput) (Application, error) {
	company := strings.TrimSpace(in.Company)
	if company == "" {
		return Application{}, errCompanyRequired
	}
	position := strings.TrimSpace(in.Position)
	if position == "" {
		return Application{}, errPositionRequired
	}
	status := in.Status
	if status == "" {
		status = StatusSaved
	}
	if !status.Valid() {
		return Application{}, errInvalidStatus
	}
	now := s.now()
	return s.repo.Create(ctx, Application{
		ID:          uuid.New(),
		UserID:      in.UserID,
		Company:     company,
		Position:    position,
		Status:      status,
		AppliedDate: in.AppliedDate,
		Notes:       trimmedOrNil(in.Notes),
		URL:         trimmedOrNil(in.URL),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// GetByID hides records owned by someone else behind the same nil result as
// a missing record.
func (s *service) GetByID(ctx context.Context, id, userID uuid.UUID) (*Application, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if a.UserID != userID {
		return nil, nil
	}
	return &a, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, status *Status) ([]Application, error) {
	if status != nil {
		return s.repo.FindByStatus(ctx, userID, *status)
	}
	return s.repo.FindByUserID(ctx, userID)
}

func (s *service) Update(ctx context.Context, in UpdateInput) (Application, error) {
	current, err := s.owned(ctx, in.ID, in.UserID)
	if err != nil {
		return Application{}, err
	}

	var p Patch
	if company, ok := in.Company.Get(); ok {
		company = strings.TrimSpace(company)
		if company == "" {
			return Application{}, errCompanyRequired
		}
		p.Company = opt.Some(company)
	}
	if position, ok := in.Position.Get(); ok {
		position = strings.TrimSpace(position)
		if position == "" {
			return Application{}, errPositionRequired
		}
		p.Position = opt.Some(position)
	}
	if status, ok := in.Status.Get(); ok {
		if !status.Valid() {
			return Application{}, errInvalidStatus
		}
		p.Status = opt.Some(status)
	}
	p.AppliedDate = in.AppliedDate
	p.Notes = opt.Map(in.Notes, trimmedOrNil)
	p.URL = opt.Map(in.URL, trimmedOrNil)
	p.FollowedUpAt = in.FollowedUpAt
	p.InterviewDate = in.InterviewDate

	if p.Empty() {
		return current, nil
	}
	return s.repo.Update(ctx, in.ID, p)
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Search(ctx context.Context, userID uuid.UUID, keyword string) ([]Application, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []Application{}, nil
	}
	return s.repo.Search(ctx, userID, keyword)
}

// Import validates every record independently. Invalid rows are reported by
// index and the rest are created in a single batch.
func (s *service) Import(ctx context.Context, userID uuid.UUID, records []ImportRecord) (ImportResult, error) {
	res := ImportResult{Imported: []Application{}, Errors: []ImportError{}}
	now := s.now()
	valid := make([]Application, 0, len(records))
	for i, rec := range records {
		company := strings.TrimSpace(rec.Company)
		if company == "" {
			res.Errors = append(res.Errors, ImportError{Index: i, Error: errCompanyRequired.Error()})
			continue
		}
		position := strings.TrimSpace(rec.Position)
		if position == "" {
			res.Errors = append(res.Errors, ImportError{Index: i, Error: errPositionRequired.Error()})
			continue
		}
		valid = append(valid, Application{
			ID:          uuid.New(),
			UserID:      userID,
			Company:     company,
			Position:    position,
			Status:      NormalizeStatus(rec.Status),
			AppliedDate: ParseDateLenient(rec.AppliedDate),
			Notes:       trimmedOrNil(&rec.Notes),
			URL:         trimmedOrNil(&rec.URL),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if len(valid) == 0 {
		return res, nil
	}
	created, err := s.repo.CreateMany(ctx, valid)
	if err != nil {
		return ImportResult{}, err
	}
	res.Imported = created
	return res, nil
}

func (s *service) Stats(ctx context.Context, userID uuid.UUID) (Stats, error) {
	return s.repo.GetStats(ctx, userID)
}

func (s *service) MarkFollowedUp(ctx context.Context, id, userID uuid.UUID) (Application, error) {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return Application{}, err
	}
	now := s.now()
	return s.repo.Update(ctx, id, Patch{FollowedUpAt: opt.Some(&now)})
}

func (s *service) NeedingFollowUp(ctx context.Context, userID uuid.UUID) ([]Application, error) {
	apps, err := s.repo.FindByStatus(ctx, userID, StatusApplied)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := []Application{}
	for _, a := range apps {
		if a.NeedsFollowUp(now) {
			out = append(out, a)
		}
	}
	return out, nil
}

// owned loads an application for a mutation, separating "missing" from
// "someone else's".
func (s *service) owned(ctx context.Context, id, userID uuid.UUID) (Application, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if a.UserID != userID {
		return Application{}, apperr.ErrForbidden
	}
	return a, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
