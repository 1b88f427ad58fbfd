package profile

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nexphase/nexcareer/pkg/ai"
	"github.com/nexphase/nexcareer/pkg/apperr"
	"github.com/nexphase/nexcareer/pkg/filestore"
	"github.com/nexphase/nexcareer/pkg/opt"
	"github.com/nexphase/nexcareer/pkg/resume"
)

// ResumeBucket is the storage bucket holding uploaded resumes.
const ResumeBucket = "resumes"

const (
	errResumeRequired    = apperr.ValidationError("Resume file is required")
	errResumeFormat      = apperr.ValidationError("Unsupported resume format: upload a PDF, DOCX or plain-text file")
	errResumeEmptyOfText = apperr.ValidationError("no text could be extracted from the resume")
)

var reUnsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type UseCase interface {
	Get(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Update(ctx context.Context, in UpdateInput) (Profile, error)
	ParseResume(ctx context.Context, userID uuid.UUID, data []byte, fileName string) (ParseResumeResult, error)
	ResumeLink(ctx context.Context, userID uuid.UUID, expiresIn time.Duration) (string, error)
}

// UpdateInput carries only the fields the caller wants to change.
type UpdateInput struct {
	UserID     uuid.UUID
	Name       opt.Field[*string]
	Email      opt.Field[*string]
	Phone      opt.Field[*string]
	Summary    opt.Field[*string]
	Skills     opt.Field[[]string]
	Education  opt.Field[[]Education]
	Experience opt.Field[[]Experience]
}

type ParseResumeResult struct {
	Profile   Profile `json:"profile"`
	ResumeURL string  `json:"resumeUrl"`
}

type service struct {
	repo    Repository
	parser  resume.Parser
	storage filestore.Service
	ai      ai.Service
	now     func() time.Time
}

func NewService(repo Repository, parser resume.Parser, storage filestore.Service, aiSvc ai.Service) UseCase {
	return &service{
		repo:    repo,
		parser:  parser,
		storage: storage,
		ai:      aiSvc,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Update creates the profile from the given fields when the user has none.
func (s *service) Update(ctx context.Context, in UpdateInput) (Profile, error) {
	patch := Patch{
		Name:       opt.Map(in.Name, trimmedOrNil),
		Email:      opt.Map(in.Email, trimmedOrNil),
		Phone:      opt.Map(in.Phone, trimmedOrNil),
		Summary:    opt.Map(in.Summary, trimmedOrNil),
		Skills:     opt.Map(in.Skills, cleanSkills),
		Education:  opt.Map(in.Education, cleanEducation),
		Experience: opt.Map(in.Experience, cleanExperience),
	}

	current, err := s.repo.FindByUserID(ctx, in.UserID)
	if errors.Is(err, apperr.ErrNotFound) {
		now := s.now()
		return s.repo.Create(ctx, patch.Apply(Profile{
			ID:         uuid.New(),
			UserID:     in.UserID,
			Skills:     []string{},
			Education:  []Education{},
			Experience: []Experience{},
			CreatedAt:  now,
			UpdatedAt:  now,
		}))
	}
	if err != nil {
		return Profile{}, err
	}
	if patch.Empty() {
		return current, nil
	}
	return s.repo.Update(ctx, in.UserID, patch)
}

// ParseResume runs extract, upload, AI parse and merge in that order and
// stops at the first failing stage. A failure after the upload leaves the
// stored file in place.
func (s *service) ParseResume(ctx context.Context, userID uuid.UUID, data []byte, fileName string) (ParseResumeResult, error) {
	if len(data) == 0 {
		return ParseResumeResult{}, errResumeRequired
	}

	ex := s.parser.ExtractText(ctx, data)
	if ex.Failed() {
		if errors.Is(ex.Err, resume.ErrUnsupportedFormat) {
			return ParseResumeResult{}, errResumeFormat
		}
		return ParseResumeResult{}, fmt.Errorf("failed to extract text from resume: %w", ex.Err)
	}
	if strings.TrimSpace(ex.Data.Text) == "" {
		return ParseResumeResult{}, errResumeEmptyOfText
	}

	objectPath := fmt.Sprintf("%s/%d_%s", userID, s.now().UnixMilli(), safeFileName(fileName))
	up := s.storage.Upload(ctx, filestore.UploadInput{
		Bucket:      ResumeBucket,
		Path:        objectPath,
		Data:        data,
		ContentType: contentType(fileName),
		Upsert:      true,
	})
	if up.Failed() {
		return ParseResumeResult{}, fmt.Errorf("failed to upload resume: %w", up.Err)
	}
	resumeURL := up.Data

	parsed := s.ai.ParseResume(ctx, ex.Data.Text)
	if parsed.Failed() {
		return ParseResumeResult{}, fmt.Errorf("failed to parse resume: %w", parsed.Err)
	}
	if parsed.Data == nil {
		return ParseResumeResult{}, errors.New("AI returned no resume data")
	}

	var existing *Profile
	cur, err := s.repo.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		existing = &cur
	case !errors.Is(err, apperr.ErrNotFound):
		return ParseResumeResult{}, err
	}

	merged := Merge(existing, *parsed.Data)
	merged.UserID = userID
	merged.ResumeURL = &resumeURL
	now := s.now()
	if existing == nil {
		merged.CreatedAt = now
	}
	merged.UpdatedAt = now

	saved, err := s.repo.Upsert(ctx, merged)
	if err != nil {
		return ParseResumeResult{}, err
	}
	return ParseResumeResult{Profile: saved, ResumeURL: resumeURL}, nil
}

// ResumeLink returns a time-limited download URL for the user's last
// uploaded resume.
func (s *service) ResumeLink(ctx context.Context, userID uuid.UUID, expiresIn time.Duration) (string, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if blank(p.ResumeURL) {
		return "", apperr.ErrNotFound
	}
	objectPath, ok := objectPathFromURL(*p.ResumeURL, ResumeBucket)
	if !ok {
		return "", fmt.Errorf("unrecognised resume url %q", *p.ResumeURL)
	}
	signed := s.storage.SignedURL(ctx, ResumeBucket, objectPath, expiresIn)
	if signed.Failed() {
		return "", fmt.Errorf("failed to sign resume url: %w", signed.Err)
	}
	return signed.Data, nil
}

// objectPathFromURL returns the part of a public object URL after /<bucket>/.
func objectPathFromURL(u, bucket string) (string, bool) {
	marker := "/" + bucket + "/"
	i := strings.LastIndex(u, marker)
	if i < 0 {
		return "", false
	}
	p := u[i+len(marker):]
	if j := strings.IndexAny(p, "?#"); j >= 0 {
		p = p[:j]
	}
	return p, p != ""
}

func safeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Trim(reUnsafeName.ReplaceAllString(name, "_"), "_.")
	if name == "" {
		return "resume"
	}
	return name
}

func contentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt", ".md":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
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

func cleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func cleanEducation(in []Education) []Education {
	out := make([]Education, 0, len(in))
	for _, e := range in {
		e = Education{
			School: strings.TrimSpace(e.School),
			Degree: strings.TrimSpace(e.Degree),
			Field:  strings.TrimSpace(e.Field),
			Year:   strings.TrimSpace(e.Year),
		}
		if e != (Education{}) {
			out = append(out, e)
		}
	}
	return out
}

func cleanExperience(in []Experience) []Experience {
	out := make([]Experience, 0, len(in))
	for _, e := range in {
		e = Experience{
			Company:     strings.TrimSpace(e.Company),
			Role:        strings.TrimSpace(e.Role),
			Duration:    strings.TrimSpace(e.Duration),
			Description: strings.TrimSpace(e.Description),
		}
		if e != (Experience{}) {
			out = append(out, e)
		}
	}
	return out
}
