package assistant_test

import (
	"strings"
	"testing"

	"baturite/models"
	"baturite/services/assistant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	genai "github.com/google/generative-ai-go/genai"
)

func TestFallbackActions(t *testing.T) {
	actions := assistant.FallbackActions()

	require.Len(t, actions, 2)
	assert.Equal(t, models.ActionOpenURL, actions[0].Type)
	assert.Equal(t, "Acessar Site Oficial", actions[0].ButtonText)
	assert.Equal(t, assistant.OfficialSiteURL, actions[0].Payload.URL)
	assert.Equal(t, models.ActionNavigate, actions[1].Type)
	assert.Equal(t, "Ver Contatos Úteis", actions[1].ButtonText)
	assert.Equal(t, models.ViewContatosList, actions[1].Payload.View)
}

func TestWelcomeText(t *testing.T) {
	assert.Contains(t, assistant.WelcomeText("Maria da Silva"), "Olá, Maria!")
	assert.Contains(t, assistant.WelcomeText("João"), "Olá, João!")
	assert.Contains(t, assistant.WelcomeText(""), "Olá, Cidadão!")
	assert.Contains(t, assistant.WelcomeText("   "), "Olá, Cidadão!")
}

func TestSystemInstructionCarriesFallbackContract(t *testing.T) {
	// The instruction and the orchestration fallback must quote the same text,
	// otherwise the interpreter cannot rely on the literal.
	assert.Contains(t, assistant.SystemInstruction, assistant.FallbackText)
	assert.Contains(t, assistant.SystemInstruction, assistant.OfficialSiteURL)
	assert.Contains(t, assistant.SystemInstruction, string(models.ViewContatosList))
}

func TestSystemInstructionNamesEveryView(t *testing.T) {
	for view := range models.KnownViews {
		assert.True(t, strings.Contains(assistant.SystemInstruction, string(view)),
			"view %s missing from system instruction", view)
	}
}

func TestResponseSchemaShape(t *testing.T) {
	schema := assistant.ResponseSchema()

	require.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, []string{"responseText"}, schema.Required)

	require.Contains(t, schema.Properties, "responseText")
	require.Contains(t, schema.Properties, "structuredContent")
	require.Contains(t, schema.Properties, "actions")

	structured := schema.Properties["structuredContent"]
	assert.True(t, structured.Nullable)
	for _, field := range []string{"address", "phone", "openingHours", "documents"} {
		assert.Contains(t, structured.Properties, field)
	}

	actions := schema.Properties["actions"]
	require.Equal(t, genai.TypeArray, actions.Type)
	item := actions.Items
	require.NotNil(t, item)
	for _, field := range []string{"type", "buttonText", "payload"} {
		assert.Contains(t, item.Properties, field)
	}
	payload := item.Properties["payload"]
	for _, field := range []string{"view", "params", "url", "phoneNumber"} {
		assert.Contains(t, payload.Properties, field)
	}
}
