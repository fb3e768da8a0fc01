// File: services/assistant/service.go
package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"baturite/models"
	"baturite/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultAssistantService orchestrates one conversation per user: it owns the
// message list, serializes mutations behind a per-conversation lock and keeps
// at most one generator turn in flight.
type DefaultAssistantService struct {
	Store        HistoryStore
	NewGenerator GeneratorFactory
	TurnTimeout  time.Duration

	mu    sync.Mutex
	convs map[string]*conversation
}

type conversation struct {
	mu          sync.Mutex
	gen         Generator
	messages    []models.ChatMessage
	inFlight    bool
	unavailable bool
}

func NewDefaultAssistantService(store HistoryStore, factory GeneratorFactory, turnTimeout time.Duration) *DefaultAssistantService {
	return &DefaultAssistantService{
		Store:        store,
		NewGenerator: factory,
		TurnTimeout:  turnTimeout,
		convs:        make(map[string]*conversation),
	}
}

// conversation returns the user's conversation, creating it on first access:
// persisted history is restored verbatim; otherwise a single synthetic welcome
// turn seeds the transcript. A missing credential yields an unavailable
// conversation that refuses turns but keeps the rest of the app usable.
func (s *DefaultAssistantService) conversation(ctx context.Context, user models.UserProfile) *conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conv, ok := s.convs[user.ID]; ok {
		return conv
	}

	logger := utils.GetLogger()
	conv := &conversation{}

	if s.NewGenerator == nil {
		logger.Error("assistant: no Gemini API key configured, assistant unavailable")
		conv.unavailable = true
		conv.messages = []models.ChatMessage{newModelMessage(UnavailableText)}
		s.convs[user.ID] = conv
		return conv
	}

	gen, err := s.NewGenerator(ctx)
	if err != nil {
		logger.Error("assistant: failed to open generator session", zap.Error(err))
		conv.unavailable = true
		conv.messages = []models.ChatMessage{newModelMessage(UnavailableText)}
		s.convs[user.ID] = conv
		return conv
	}
	conv.gen = gen

	saved, err := s.Store.Load(ctx, user.ID)
	if err != nil {
		logger.Error("assistant: failed to load persisted history", zap.Error(err))
	}
	if len(saved) > 0 {
		// The generator session starts fresh per process lifetime; only the
		// transcript display is continuous.
		conv.messages = saved
	} else {
		conv.messages = []models.ChatMessage{newModelMessage(WelcomeText(user.DisplayName))}
		s.persist(ctx, user.ID, conv.messages)
	}

	s.convs[user.ID] = conv
	return conv
}

// History returns a snapshot of the user's transcript.
func (s *DefaultAssistantService) History(ctx context.Context, user models.UserProfile) ([]models.ChatMessage, error) {
	conv := s.conversation(ctx, user)
	conv.mu.Lock()
	defer conv.mu.Unlock()
	out := make([]models.ChatMessage, len(conv.messages))
	copy(out, conv.messages)
	return out, nil
}

// SendMessage runs one full turn. Guards are no-ops returning an empty slice;
// every failure past the guards resolves to the fixed fallback message.
func (s *DefaultAssistantService) SendMessage(ctx context.Context, user models.UserProfile, text string) ([]models.ChatMessage, error) {
	conv := s.conversation(ctx, user)
	logger := utils.GetLogger()

	conv.mu.Lock()
	if strings.TrimSpace(text) == "" || conv.inFlight || conv.unavailable {
		conv.mu.Unlock()
		return nil, nil
	}

	userMsg := models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      models.RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	}
	conv.messages = append(conv.messages, userMsg)
	conv.inFlight = true
	s.persist(ctx, user.ID, conv.messages)
	conv.mu.Unlock()

	turnCtx := ctx
	if s.TurnTimeout > 0 {
		var cancel context.CancelFunc
		turnCtx, cancel = context.WithTimeout(ctx, s.TurnTimeout)
		defer cancel()
	}

	var reply models.ChatMessage
	raw, err := conv.gen.SendTurn(turnCtx, text)
	if err != nil {
		logger.Error("assistant: generator turn failed, using fallback", zap.Error(err))
		reply = newModelMessage(FallbackText)
		reply.Actions = FallbackActions()
	} else {
		reply = InterpretReply(raw)
	}

	conv.mu.Lock()
	conv.messages = append(conv.messages, reply)
	conv.inFlight = false
	s.persist(ctx, user.ID, conv.messages)
	conv.mu.Unlock()

	return []models.ChatMessage{userMsg, reply}, nil
}

// SetFeedback toggles the reaction on one message of the user's conversation.
func (s *DefaultAssistantService) SetFeedback(ctx context.Context, userID, messageID string, fb models.Feedback) (*models.ChatMessage, error) {
	s.mu.Lock()
	conv, ok := s.convs[userID]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("no active conversation for user %s", userID)
	}

	conv.mu.Lock()
	defer conv.mu.Unlock()

	for i := range conv.messages {
		if conv.messages[i].ID != messageID {
			continue
		}
		current := conv.messages[i].Feedback
		if current != nil && *current == fb {
			conv.messages[i].Feedback = nil
		} else {
			value := fb
			conv.messages[i].Feedback = &value
		}
		s.persist(ctx, userID, conv.messages)
		msg := conv.messages[i]
		return &msg, nil
	}
	return nil, fmt.Errorf("message %s not found for user %s", messageID, userID)
}

// IsBusy reports whether a turn is in flight for the user.
func (s *DefaultAssistantService) IsBusy(userID string) bool {
	s.mu.Lock()
	conv, ok := s.convs[userID]
	s.mu.Unlock()
	if !ok {
		return false
	}
	conv.mu.Lock()
	defer conv.mu.Unlock()
	return conv.inFlight
}

// ClearHistory drops the in-memory conversation and its persisted transcript.
func (s *DefaultAssistantService) ClearHistory(ctx context.Context, userID string) error {
	s.mu.Lock()
	delete(s.convs, userID)
	s.mu.Unlock()
	if err := s.Store.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear history for user %s: %w", userID, err)
	}
	return nil
}

// persist writes the transcript best-effort: a failed write loses at most the
// latest turn and must not block the conversation.
func (s *DefaultAssistantService) persist(ctx context.Context, userID string, messages []models.ChatMessage) {
	if err := s.Store.Save(ctx, userID, messages); err != nil {
		utils.GetLogger().Error("assistant: failed to persist history", zap.Error(err))
	}
}

func newModelMessage(content string) models.ChatMessage {
	return models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      models.RoleModel,
		Content:   content,
		Timestamp: time.Now(),
	}
}
