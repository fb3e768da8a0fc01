package assistant_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"baturite/models"
	"baturite/services/assistant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string][]models.ChatMessage
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]models.ChatMessage)}
}

func (s *memoryStore) Load(_ context.Context, userID string) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := s.data[userID]
	out := make([]models.ChatMessage, len(saved))
	copy(out, saved)
	return out, nil
}

func (s *memoryStore) Save(_ context.Context, userID string, messages []models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := make([]models.ChatMessage, len(messages))
	copy(saved, messages)
	s.data[userID] = saved
	return nil
}

func (s *memoryStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return nil
}

// scriptedGenerator returns canned outputs, optionally blocking until released
// so tests can observe the in-flight state.
type scriptedGenerator struct {
	mu      sync.Mutex
	outputs []string
	err     error
	turns   int

	started chan struct{}
	release chan struct{}
}

func (g *scriptedGenerator) SendTurn(_ context.Context, _ string) (string, error) {
	if g.started != nil {
		g.started <- struct{}{}
	}
	if g.release != nil {
		<-g.release
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.turns++
	if g.err != nil {
		return "", g.err
	}
	if len(g.outputs) == 0 {
		return `{"responseText":"ok"}`, nil
	}
	out := g.outputs[0]
	if len(g.outputs) > 1 {
		g.outputs = g.outputs[1:]
	}
	return out, nil
}

func (g *scriptedGenerator) turnCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.turns
}

func factoryFor(gen assistant.Generator) assistant.GeneratorFactory {
	return func(context.Context) (assistant.Generator, error) {
		return gen, nil
	}
}

var testUser = models.UserProfile{ID: "user-1", DisplayName: "Maria da Silva"}

func TestHistory_WelcomeOnFirstContact(t *testing.T) {
	store := newMemoryStore()
	svc := assistant.NewDefaultAssistantService(store, factoryFor(&scriptedGenerator{}), 0)

	messages, err := svc.History(context.Background(), testUser)

	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, models.RoleModel, messages[0].Role)
	assert.Equal(t, assistant.WelcomeText("Maria da Silva"), messages[0].Content)
	assert.Contains(t, messages[0].Content, "Olá, Maria!")

	// The welcome turn is persisted so a reload does not regenerate it.
	saved, _ := store.Load(context.Background(), testUser.ID)
	require.Len(t, saved, 1)
}

func TestHistory_RestoreDoesNotRegenerateWelcome(t *testing.T) {
	store := newMemoryStore()
	persisted := []models.ChatMessage{
		{ID: "m1", Role: models.RoleModel, Content: "Olá!", Timestamp: time.Now()},
		{ID: "m2", Role: models.RoleUser, Content: "onde pago iptu", Timestamp: time.Now()},
		{ID: "m3", Role: models.RoleModel, Content: "Na seção de Serviços Online.", Timestamp: time.Now()},
	}
	require.NoError(t, store.Save(context.Background(), testUser.ID, persisted))

	svc := assistant.NewDefaultAssistantService(store, factoryFor(&scriptedGenerator{}), 0)
	messages, err := svc.History(context.Background(), testUser)

	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "m1", messages[0].ID)
	assert.Equal(t, "m3", messages[2].ID)
}

func TestSendMessage_RoundTrip(t *testing.T) {
	store := newMemoryStore()
	gen := &scriptedGenerator{outputs: []string{`{"responseText":"X","actions":[{"type":"NAVIGATE","buttonText":"Go","payload":{"view":"NOTICIAS_LIST"}}]}`}}
	svc := assistant.NewDefaultAssistantService(store, factoryFor(gen), 0)

	appended, err := svc.SendMessage(context.Background(), testUser, "quais as notícias?")

	require.NoError(t, err)
	require.Len(t, appended, 2)
	assert.Equal(t, models.RoleUser, appended[0].Role)
	assert.Equal(t, "quais as notícias?", appended[0].Content)
	assert.Equal(t, models.RoleModel, appended[1].Role)
	assert.Equal(t, "X", appended[1].Content)
	require.Len(t, appended[1].Actions, 1)

	// Full transcript: welcome + user + assistant, persisted wholesale.
	history, err := svc.History(context.Background(), testUser)
	require.NoError(t, err)
	assert.Len(t, history, 3)
	saved, _ := store.Load(context.Background(), testUser.ID)
	assert.Len(t, saved, 3)
}

func TestSendMessage_TransportFailureFallback(t *testing.T) {
	store := newMemoryStore()
	gen := &scriptedGenerator{err: errors.New("network down")}
	svc := assistant.NewDefaultAssistantService(store, factoryFor(gen), 0)

	appended, err := svc.SendMessage(context.Background(), testUser, "qual horário da prefeitura?")

	require.NoError(t, err, "transport failures never surface")
	require.Len(t, appended, 2)

	fallback := appended[1]
	assert.Equal(t, assistant.FallbackText, fallback.Content)
	require.Len(t, fallback.Actions, 2)

	assert.Equal(t, models.ActionOpenURL, fallback.Actions[0].Type)
	assert.Equal(t, "Acessar Site Oficial", fallback.Actions[0].ButtonText)
	assert.Equal(t, "https://www.baturite.ce.gov.br", fallback.Actions[0].Payload.URL)

	assert.Equal(t, models.ActionNavigate, fallback.Actions[1].Type)
	assert.Equal(t, "Ver Contatos Úteis", fallback.Actions[1].ButtonText)
	assert.Equal(t, models.ViewContatosList, fallback.Actions[1].Payload.View)
}

func TestSendMessage_EmptyInputGuard(t *testing.T) {
	store := newMemoryStore()
	gen := &scriptedGenerator{}
	svc := assistant.NewDefaultAssistantService(store, factoryFor(gen), 0)

	for _, text := range []string{"", "   ", "\n\t"} {
		appended, err := svc.SendMessage(context.Background(), testUser, text)
		require.NoError(t, err)
		assert.Empty(t, appended)
	}

	history, _ := svc.History(context.Background(), testUser)
	assert.Len(t, history, 1, "only the welcome turn")
	assert.Equal(t, 0, gen.turnCount(), "transport never invoked")
}

func TestSendMessage_AtMostOneInFlight(t *testing.T) {
	store := newMemoryStore()
	gen := &scriptedGenerator{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	svc := assistant.NewDefaultAssistantService(store, factoryFor(gen), 0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.SendMessage(context.Background(), testUser, "primeira pergunta")
	}()
	<-gen.started
	assert.True(t, svc.IsBusy(testUser.ID))

	appended, err := svc.SendMessage(context.Background(), testUser, "segunda pergunta")
	require.NoError(t, err)
	assert.Empty(t, appended, "second send while in flight is a no-op")

	close(gen.release)
	<-done

	assert.False(t, svc.IsBusy(testUser.ID))
	history, _ := svc.History(context.Background(), testUser)
	assert.Len(t, history, 3, "welcome + first user turn + reply")
	assert.Equal(t, 1, gen.turnCount())
}

func TestSetFeedback_Toggling(t *testing.T) {
	store := newMemoryStore()
	svc := assistant.NewDefaultAssistantService(store, factoryFor(&scriptedGenerator{}), 0)

	messages, err := svc.History(context.Background(), testUser)
	require.NoError(t, err)
	msgID := messages[0].ID

	// Setting once applies.
	msg, err := svc.SetFeedback(context.Background(), testUser.ID, msgID, models.FeedbackLike)
	require.NoError(t, err)
	require.NotNil(t, msg.Feedback)
	assert.Equal(t, models.FeedbackLike, *msg.Feedback)

	// Same value again clears.
	msg, err = svc.SetFeedback(context.Background(), testUser.ID, msgID, models.FeedbackLike)
	require.NoError(t, err)
	assert.Nil(t, msg.Feedback)

	// Like then dislike replaces: only one active value.
	_, err = svc.SetFeedback(context.Background(), testUser.ID, msgID, models.FeedbackLike)
	require.NoError(t, err)
	msg, err = svc.SetFeedback(context.Background(), testUser.ID, msgID, models.FeedbackDislike)
	require.NoError(t, err)
	require.NotNil(t, msg.Feedback)
	assert.Equal(t, models.FeedbackDislike, *msg.Feedback)
}

func TestSetFeedback_UnknownMessage(t *testing.T) {
	store := newMemoryStore()
	svc := assistant.NewDefaultAssistantService(store, factoryFor(&scriptedGenerator{}), 0)
	_, err := svc.History(context.Background(), testUser)
	require.NoError(t, err)

	_, err = svc.SetFeedback(context.Background(), testUser.ID, "missing-id", models.FeedbackLike)
	assert.Error(t, err)
}

func TestUnavailable_WithoutCredential(t *testing.T) {
	store := newMemoryStore()
	svc := assistant.NewDefaultAssistantService(store, nil, 0)

	messages, err := svc.History(context.Background(), testUser)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, assistant.UnavailableText, messages[0].Content)

	// Turns are refused without ever touching the network.
	appended, err := svc.SendMessage(context.Background(), testUser, "olá?")
	require.NoError(t, err)
	assert.Empty(t, appended)
}

func TestClearHistory(t *testing.T) {
	store := newMemoryStore()
	gen := &scriptedGenerator{}
	svc := assistant.NewDefaultAssistantService(store, factoryFor(gen), 0)

	_, err := svc.SendMessage(context.Background(), testUser, "onde pago iptu")
	require.NoError(t, err)

	require.NoError(t, svc.ClearHistory(context.Background(), testUser.ID))
	saved, _ := store.Load(context.Background(), testUser.ID)
	assert.Empty(t, saved)

	// The next contact starts a fresh conversation with a new welcome turn.
	messages, err := svc.History(context.Background(), testUser)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, assistant.WelcomeText(testUser.DisplayName), messages[0].Content)
}
