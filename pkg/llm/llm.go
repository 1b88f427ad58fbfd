package llm

import "context"

// Message is a single chat-completion turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// It hides concrete providers to preserve dependency direction.
type ChatModel interface {
	// Ask sends one system and one user message.
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// Chat sends a full conversation.
	Chat(ctx context.Context, messages []Message) (string, error)
}
