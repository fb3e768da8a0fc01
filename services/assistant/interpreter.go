// File: services/assistant/interpreter.go
package assistant

import (
	"encoding/json"
	"strings"
	"time"

	"baturite/models"
	"baturite/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// generatorReply mirrors the JSON contract the schema mandates.
type generatorReply struct {
	ResponseText      string                    `json:"responseText"`
	StructuredContent *models.StructuredContent `json:"structuredContent"`
	Actions           []models.ChatAction       `json:"actions"`
}

// InterpretReply converts raw generator output into a displayable assistant
// turn. It degrades field-by-field and never fails: malformed JSON becomes the
// raw text itself, an absent responseText becomes a fixed placeholder.
func InterpretReply(raw string) models.ChatMessage {
	msg := models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      models.RoleModel,
		Timestamp: time.Now(),
	}

	jsonText := stripCodeFence(raw)

	var reply generatorReply
	if err := json.Unmarshal([]byte(jsonText), &reply); err != nil {
		utils.GetLogger().Warn("assistant: generator reply is not valid JSON, using raw text",
			zap.Error(err))
		if jsonText == "" {
			msg.Content = NoValidReplyText
		} else {
			msg.Content = jsonText
		}
		return msg
	}

	msg.Content = reply.ResponseText
	if msg.Content == "" {
		msg.Content = NotUnderstoodText
	}
	msg.StructuredContent = reply.StructuredContent
	msg.Actions = reply.Actions
	return msg
}

// stripCodeFence removes surrounding markdown fences the generator sometimes
// adds despite being instructed to emit bare JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
