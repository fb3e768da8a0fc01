// File: services/assistant/session.go
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Generator is one ongoing exchange with the text generator. Turns are
// strictly sequential; the façade guarantees at most one in-flight call.
type Generator interface {
	SendTurn(ctx context.Context, userText string) (string, error)
}

// GeneratorFactory opens a fresh generator session for one conversation.
type GeneratorFactory func(ctx context.Context) (Generator, error)

// GeminiSession wraps a stateful Gemini chat seeded with the system
// instruction and response schema. The handle itself is not serializable;
// transcript continuity across restarts comes from the history store.
type GeminiSession struct {
	chat *genai.ChatSession
}

// NewGeminiSession creates a Gemini chat session for one conversation.
func NewGeminiSession(ctx context.Context, apiKey, modelName string) (*GeminiSession, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(SystemInstruction)}}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = ResponseSchema()

	return &GeminiSession{chat: model.StartChat()}, nil
}

// SendTurn sends one user turn and returns the raw generator output.
func (g *GeminiSession) SendTurn(ctx context.Context, userText string) (string, error) {
	resp, err := g.chat.SendMessage(ctx, genai.Text(userText))
	if err != nil {
		return "", fmt.Errorf("gemini send turn: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

// GeminiFactory returns a GeneratorFactory bound to the given credentials,
// or nil when no API key is configured so the service starts unavailable.
func GeminiFactory(apiKey, modelName string) GeneratorFactory {
	if apiKey == "" {
		return nil
	}
	return func(ctx context.Context) (Generator, error) {
		return NewGeminiSession(ctx, apiKey, modelName)
	}
}
