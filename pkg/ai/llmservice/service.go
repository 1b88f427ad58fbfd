// Package llmservice implements ai.Service on top of any llm.ChatModel.
package llmservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/nexphase/nexcareer/pkg/ai"
	"github.com/nexphase/nexcareer/pkg/llm"
	"github.com/nexphase/nexcareer/pkg/result"
)

type Service struct {
	llm      llm.ChatModel
	maxChars int
}

var _ ai.Service = (*Service)(nil)

func New(model llm.ChatModel) *Service {
	return &Service{llm: model, maxChars: 12000}
}

var errEmptyReply = errors.New("empty response from AI")

func (s *Service) Chat(ctx context.Context, messages []ai.Message) result.Result[string] {
	if s.llm == nil {
		return result.Fail[string](errors.New("LLM is not configured"))
	}
	msgs := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, llm.Message{Role: string(m.Role), Content: m.Content})
	}
	reply, err := s.llm.Chat(ctx, msgs)
	if err != nil {
		return result.Fail[string](err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return result.Fail[string](errEmptyReply)
	}
	return result.Ok(reply)
}

const resumeSystemPrompt = "You are a resume parser. Return the result STRICTLY as JSON, without markdown, code fences or commentary. Always return empty arrays as [], never null. Do not invent facts."

const resumeUserPrompt = `Resume text:
<<<
%s
>>>

Return STRICTLY one JSON object with this schema:
{
  "name": string,
  "email": string,
  "phone": string,
  "summary": string,
  "skills": string[],
  "education": [{"school":string,"degree":string,"field":string,"year":string}],
  "experience": [{"company":string,"role":string,"duration":string,"description":string}]
}

Rules:
- No extra fields
- No markdown
- Use "" for unknown strings and [] for empty lists
`

func (s *Service) ParseResume(ctx context.Context, text string) result.Result[*ai.ResumeData] {
	if s.llm == nil {
		return result.Fail[*ai.ResumeData](errors.New("LLM is not configured"))
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return result.Fail[*ai.ResumeData](errors.New("empty resume text"))
	}
	if len([]rune(text)) > s.maxChars {
		text = string([]rune(text)[:s.maxChars])
	}
	raw, err := s.llm.Ask(ctx, resumeSystemPrompt, fmt.Sprintf(resumeUserPrompt, text))
	if err != nil {
		return result.Fail[*ai.ResumeData](err)
	}
	var data ai.ResumeData
	if err := decodeJSON(raw, '{', '}', &data); err != nil {
		return result.Fail[*ai.ResumeData](fmt.Errorf("could not parse resume JSON from AI: %w", err))
	}
	if data.Skills == nil {
		data.Skills = []string{}
	}
	if data.Education == nil {
		data.Education = []ai.ResumeEducation{}
	}
	if data.Experience == nil {
		data.Experience = []ai.ResumeExperience{}
	}
	return result.Ok(&data)
}

var questionFocus = map[string]string{
	"behavioral":       "behavioral questions about teamwork, conflict, leadership and past decisions (STAR-style)",
	"technical":        "technical questions that test practical engineering knowledge",
	"company_specific": "questions a hiring team at this specific company would ask, mixing motivation, culture fit and role fit",
}

func (s *Service) GenerateInterviewQuestions(ctx context.Context, p ai.QuestionParams) result.Result[[]string] {
	if s.llm == nil {
		return result.Fail[[]string](errors.New("LLM is not configured"))
	}
	if p.Count <= 0 {
		p.Count = 5
	}
	focus, ok := questionFocus[p.Type]
	if !ok {
		focus = "general interview questions"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Generate exactly %d %s.\n", p.Count, focus)
	if p.Company != "" || p.Position != "" {
		fmt.Fprintf(&b, "The candidate is interviewing for %q at %q.\n", p.Position, p.Company)
	}
	if len(p.Skills) > 0 {
		fmt.Fprintf(&b, "Focus on these skills: %s.\n", strings.Join(p.Skills, ", "))
	}
	b.WriteString("Return ONLY a JSON array of question strings, no numbering and no markdown.")

	raw, err := s.llm.Ask(ctx, "You are an experienced interviewer preparing a mock interview.", b.String())
	if err != nil {
		return result.Fail[[]string](err)
	}
	questions := parseQuestions(raw)
	if len(questions) == 0 {
		return result.Fail[[]string](errors.New("AI returned no questions"))
	}
	if len(questions) > p.Count {
		questions = questions[:p.Count]
	}
	return result.Ok(questions)
}

const feedbackSystemPrompt = "You are an interview coach. Give concise, constructive feedback: what worked, what to improve, and a stronger sample answer outline. Keep it under 200 words."

func (s *Service) GenerateFeedback(ctx context.Context, question, answer string) result.Result[string] {
	if s.llm == nil {
		return result.Fail[string](errors.New("LLM is not configured"))
	}
	user := fmt.Sprintf("Interview question:\n%s\n\nCandidate answer:\n%s", question, answer)
	raw, err := s.llm.Ask(ctx, feedbackSystemPrompt, user)
	if err != nil {
		return result.Fail[string](err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return result.Fail[string](errEmptyReply)
	}
	return result.Ok(raw)
}

// decodeJSON parses raw as JSON, falling back to the outermost openCh..closeCh
// span when the model wrapped its answer in prose or a code fence.
func decodeJSON(raw string, openCh, closeCh byte, v any) error {
	raw = strings.TrimSpace(raw)
	err := json.Unmarshal([]byte(raw), v)
	if err == nil {
		return nil
	}
	if i := strings.IndexByte(raw, openCh); i >= 0 {
		if j := strings.LastIndexByte(raw, closeCh); j > i {
			return json.Unmarshal([]byte(raw[i:j+1]), v)
		}
	}
	return err
}

var reListMarker = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•])\s*`)

// parseQuestions accepts a JSON array or, failing that, one question per line.
func parseQuestions(raw string) []string {
	var list []string
	if err := decodeJSON(raw, '[', ']', &list); err != nil {
		list = strings.Split(raw, "\n")
	}
	out := make([]string, 0, len(list))
	for _, q := range list {
		q = strings.TrimSpace(reListMarker.ReplaceAllString(q, ""))
		if q == "" || strings.HasPrefix(q, "```") {
			continue
		}
		out = append(out, q)
	}
	return out
}
