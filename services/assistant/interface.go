// File: services/assistant/interface.go
package assistant

import (
	"context"

	"baturite/models"
)

// AssistantService is the single entry point the presentation layer uses to
// talk to the conversational assistant.
type AssistantService interface {
	// History returns the transcript of the user's conversation, creating it
	// (restore or welcome turn) on first access.
	History(ctx context.Context, user models.UserProfile) ([]models.ChatMessage, error)

	// SendMessage appends the user turn, obtains the assistant turn and
	// returns the messages added by this exchange. Blank input and calls made
	// while a turn is in flight are no-ops returning an empty slice. Transport
	// failures never surface: they resolve to the fixed fallback message.
	SendMessage(ctx context.Context, user models.UserProfile, text string) ([]models.ChatMessage, error)

	// SetFeedback toggles the reaction on one assistant message: the same
	// value clears it, a different one replaces it.
	SetFeedback(ctx context.Context, userID, messageID string, fb models.Feedback) (*models.ChatMessage, error)

	// IsBusy reports whether a turn is currently in flight for the user.
	IsBusy(userID string) bool

	// ClearHistory drops the conversation and its persisted transcript.
	ClearHistory(ctx context.Context, userID string) error
}
