package models

import "time"

// ChatRole identifies who produced a conversation turn.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// Feedback is the user's reaction to an assistant turn.
type Feedback string

const (
	FeedbackLike    Feedback = "like"
	FeedbackDislike Feedback = "dislike"
)

// ActionType is the closed set of commands the assistant may embed in a turn.
// Unknown values are ignored at dispatch time, never fatal.
type ActionType string

const (
	ActionNavigate ActionType = "NAVIGATE"
	ActionOpenURL  ActionType = "OPEN_URL"
	ActionCall     ActionType = "CALL"
)

// ViewID names an in-app screen the assistant may navigate to.
type ViewID string

const (
	ViewProtocoloForm           ViewID = "PROTOCOLO_FORM"
	ViewProtocolosList          ViewID = "PROTOCOLOS_LIST"
	ViewNoticiasList            ViewID = "NOTICIAS_LIST"
	ViewMapaServicos            ViewID = "MAPA_SERVICOS"
	ViewSecretariasList         ViewID = "SECRETARIAS_LIST"
	ViewTurismoDashboard        ViewID = "TURISMO_DASHBOARD"
	ViewContatosList            ViewID = "CONTATOS_LIST"
	ViewServicosOnlineDashboard ViewID = "SERVICOS_ONLINE_DASHBOARD"
	ViewAgendamentosList        ViewID = "AGENDAMENTOS_LIST"
	ViewTurismoList             ViewID = "TURISMO_LIST"
)

// KnownViews is the navigable surface exposed to the dispatcher.
var KnownViews = map[ViewID]bool{
	ViewProtocoloForm:           true,
	ViewProtocolosList:          true,
	ViewNoticiasList:            true,
	ViewMapaServicos:            true,
	ViewSecretariasList:         true,
	ViewTurismoDashboard:        true,
	ViewContatosList:            true,
	ViewServicosOnlineDashboard: true,
	ViewAgendamentosList:        true,
	ViewTurismoList:             true,
}

// ActionPayload carries the data for one action. Exactly one shape is
// meaningful per action type; the other fields stay empty.
type ActionPayload struct {
	// NAVIGATE
	View   ViewID            `json:"view,omitempty" bson:"view,omitempty"`
	Params map[string]string `json:"params,omitempty" bson:"params,omitempty"`
	// OPEN_URL
	URL string `json:"url,omitempty" bson:"url,omitempty"`
	// CALL
	PhoneNumber string `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
}

// ChatAction is a single button the UI renders inside an assistant turn.
type ChatAction struct {
	Type       ActionType    `json:"type" bson:"type"`
	ButtonText string        `json:"buttonText" bson:"buttonText"`
	Payload    ActionPayload `json:"payload" bson:"payload"`
}

// StructuredContent holds organized facts for display alongside the response
// text. Every field is optional; absence means not applicable.
type StructuredContent struct {
	Address      string   `json:"address,omitempty" bson:"address,omitempty"`
	Phone        string   `json:"phone,omitempty" bson:"phone,omitempty"`
	OpeningHours string   `json:"openingHours,omitempty" bson:"openingHours,omitempty"`
	Documents    []string `json:"documents,omitempty" bson:"documents,omitempty"`
}

// ChatMessage is one conversational turn, user or assistant.
type ChatMessage struct {
	ID                string             `json:"id" bson:"id"`
	Role              ChatRole           `json:"role" bson:"role"`
	Content           string             `json:"content" bson:"content"`
	Timestamp         time.Time          `json:"timestamp" bson:"timestamp"`
	StructuredContent *StructuredContent `json:"structuredContent,omitempty" bson:"structuredContent,omitempty"`
	Actions           []ChatAction       `json:"actions,omitempty" bson:"actions,omitempty"`
	Feedback          *Feedback          `json:"feedback,omitempty" bson:"feedback,omitempty"`
}

// ChatRequest is the payload coming from the frontend into /api/assistant/chat.
type ChatRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	DisplayName string `json:"display_name"`
	Text        string `json:"text"`
}

// ChatResponse returns the turns appended by one exchange.
type ChatResponse struct {
	Messages []ChatMessage `json:"messages"`
}

// FeedbackRequest toggles the reaction on one assistant message.
type FeedbackRequest struct {
	UserID    string   `json:"user_id" binding:"required"`
	MessageID string   `json:"message_id" binding:"required"`
	Feedback  Feedback `json:"feedback" binding:"required"`
}
