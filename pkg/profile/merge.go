package profile

import (
	"strings"

	"github.com/google/uuid"

	"github.com/nexphase/nexcareer/pkg/ai"
	"github.com/nexphase/nexcareer/pkg/nlp"
)

// Merge lays parsed resume data under an existing profile. Existing scalar
// fields win unless blank, skills are unioned with existing ones first, and
// education/experience entries are appended only when their natural key
// (school+degree, company+role) is new. existing may be nil.
func Merge(existing *Profile, parsed ai.ResumeData) Profile {
	var out Profile
	if existing != nil {
		out = *existing
	} else {
		out.ID = uuid.New()
	}

	out.Name = preferExisting(out.Name, parsed.Name)
	out.Email = preferExisting(out.Email, parsed.Email)
	out.Phone = preferExisting(out.Phone, parsed.Phone)
	out.Summary = preferExisting(out.Summary, parsed.Summary)
	out.Skills = nlp.UniqueFold(out.Skills, parsed.Skills)
	out.Education = mergeEducation(out.Education, parsed.Education)
	out.Experience = mergeExperience(out.Experience, parsed.Experience)
	return out
}

func preferExisting(cur *string, parsed string) *string {
	if !blank(cur) {
		return cur
	}
	parsed = strings.TrimSpace(parsed)
	if parsed == "" {
		return cur
	}
	return &parsed
}

func mergeEducation(existing []Education, parsed []ai.ResumeEducation) []Education {
	out := make([]Education, 0, len(existing)+len(parsed))
	seen := make(map[string]struct{}, len(existing)+len(parsed))
	for _, e := range existing {
		seen[nlp.CompositeKey(e.School, e.Degree)] = struct{}{}
		out = append(out, e)
	}
	for _, p := range parsed {
		e := Education{
			School: strings.TrimSpace(p.School),
			Degree: strings.TrimSpace(p.Degree),
			Field:  strings.TrimSpace(p.Field),
			Year:   strings.TrimSpace(p.Year),
		}
		if e.School == "" && e.Degree == "" {
			continue
		}
		k := nlp.CompositeKey(e.School, e.Degree)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}
	return out
}

func mergeExperience(existing []Experience, parsed []ai.ResumeExperience) []Experience {
	out := make([]Experience, 0, len(existing)+len(parsed))
	seen := make(map[string]struct{}, len(existing)+len(parsed))
	for _, e := range existing {
		seen[nlp.CompositeKey(e.Company, e.Role)] = struct{}{}
		out = append(out, e)
	}
	for _, p := range parsed {
		e := Experience{
			Company:     strings.TrimSpace(p.Company),
			Role:        strings.TrimSpace(p.Role),
			Duration:    strings.TrimSpace(p.Duration),
			Description: strings.TrimSpace(p.Description),
		}
		if e.Company == "" && e.Role == "" {
			continue
		}
		k := nlp.CompositeKey(e.Company, e.Role)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}
	return out
}
