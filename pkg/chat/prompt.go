package chat

import (
	"fmt"
	"strings"

	"github.com/nexphase/nexcareer/pkg/application"
	"github.com/nexphase/nexcareer/pkg/profile"
)

const (
	maxPromptApplications = 10
	maxPromptExperience   = 3
)

const persona = `You are a friendly, practical career assistant. You help the user with
their job search: tailoring resumes, preparing for interviews, following up on
applications and planning next steps.`

const instructions = `Guidelines:
- Answer in the user's language.
- Be specific and actionable; prefer short paragraphs and bullet lists.
- Use the profile and applications above when relevant, but never invent facts about them.
- If you do not know something, say so.`

// systemPrompt renders the per-request context. p may be nil and apps may be
// empty, in which case the matching section is left out.
func systemPrompt(p *profile.Profile, apps []application.Application) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\n")

	if section := profileSection(p); section != "" {
		b.WriteString(section)
		b.WriteString("\n")
	}

	if len(apps) > 0 {
		b.WriteString("User's recent applications:\n")
		for i, a := range apps {
			if i == maxPromptApplications {
				break
			}
			fmt.Fprintf(&b, "- %s: %s (%s)\n", a.Company, a.Position, a.Status)
		}
		b.WriteString("\n")
	}

	b.WriteString(instructions)
	return b.String()
}

func profileSection(p *profile.Profile) string {
	if p == nil {
		return ""
	}
	var lines []string
	if p.Name != nil && strings.TrimSpace(*p.Name) != "" {
		lines = append(lines, "Name: "+strings.TrimSpace(*p.Name))
	}
	if len(p.Skills) > 0 {
		lines = append(lines, "Skills: "+strings.Join(p.Skills, ", "))
	}
	if len(p.Experience) > 0 {
		lines = append(lines, "Experience:")
		for i, e := range p.Experience {
			if i == maxPromptExperience {
				break
			}
			line := fmt.Sprintf("- %s at %s", e.Role, e.Company)
			if e.Duration != "" {
				line += fmt.Sprintf(" (%s)", e.Duration)
			}
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "User profile:\n" + strings.Join(lines, "\n") + "\n"
}
