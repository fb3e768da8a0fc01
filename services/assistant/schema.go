// File: services/assistant/schema.go
package assistant

import (
	"fmt"
	"strings"

	"baturite/models"

	genai "github.com/google/generative-ai-go/genai"
)

// Literals shared by the prompt, the orchestration fallbacks and the tests.
// The UI contract depends on these being byte-for-byte stable.
const (
	OfficialSiteURL = "https://www.baturite.ce.gov.br"

	// FallbackText is the mandated reply whenever no real answer can be produced.
	FallbackText = "Desculpe, não encontrei uma resposta para sua pergunta no momento. " +
		"Você pode acessar o site oficial da Prefeitura de Baturité www.baturite.ce.gov.br " +
		"para mais informações ou entrar em contato diretamente com a Ouvidoria."

	// UnavailableText is shown when the assistant cannot start at all (missing credential).
	UnavailableText = "Desculpe, o assistente virtual está temporariamente indisponível por um erro de configuração."

	// NotUnderstoodText replaces a reply whose JSON parsed but carried no responseText.
	NotUnderstoodText = "Não consegui entender a resposta."

	// NoValidReplyText replaces a reply that was empty and unparseable.
	NoValidReplyText = "Não recebi uma resposta válida. Tente novamente."
)

// FallbackActions returns the two actions mandated alongside FallbackText.
func FallbackActions() []models.ChatAction {
	return []models.ChatAction{
		{
			Type:       models.ActionOpenURL,
			ButtonText: "Acessar Site Oficial",
			Payload:    models.ActionPayload{URL: OfficialSiteURL},
		},
		{
			Type:       models.ActionNavigate,
			ButtonText: "Ver Contatos Úteis",
			Payload:    models.ActionPayload{View: models.ViewContatosList},
		},
	}
}

// WelcomeText builds the synthetic first assistant turn for a fresh conversation.
func WelcomeText(displayName string) string {
	name := "Cidadão"
	if fields := strings.Fields(displayName); len(fields) > 0 {
		name = fields[0]
	}
	return fmt.Sprintf("Olá, %s! Eu sou o Uirapuru, o assistente virtual do Minha Baturité. Como posso te ajudar hoje?", name)
}

// SystemInstruction is the behavioral contract seeded once per generator session.
const SystemInstruction = `Você é Uirapuru, um assistente virtual pragmático, cordial e breve para o aplicativo "Minha Baturité". Seu objetivo é ajudar os cidadãos com informações e ações diretas.

**REGRAS GERAIS:**
1.  **SEMPRE responda em JSON** usando o schema fornecido.
2.  **Respostas Curtas:** Forneça um resumo direto em 1-2 frases no campo 'responseText'.
3.  **Aja, não apenas informe:** Use os campos 'structuredContent' e 'actions' para fornecer detalhes e ações claras.
4.  **Regra de Ação OBRIGATÓRIA:** Se sua resposta em 'responseText' mencionar ou implicar uma ação que o usuário pode tomar dentro do aplicativo (como "ver a lista", "abrir o formulário", "ver no mapa", "agendar", "acompanhar"), você É ESTRITAMENTE OBRIGADO A fornecer um objeto de ação correspondente no array 'actions'. A interface do aplicativo depende disso. Além disso, o texto da resposta NUNCA DEVE mencionar elementos de interface que não existem, como "clique no botão abaixo" ou "veja as opções a seguir". A interface é gerada a partir do seu JSON, não presuma sua existência. NÃO ALUCINE ELEMENTOS DE UI.
    *   ERRADO: "responseText": "Clique no botão abaixo para ver as secretarias." (sem o objeto 'action').
    *   CORRETO: "responseText": "Você pode consultar a lista de secretarias.", acompanhado de {"type": "NAVIGATE", "buttonText": "Ver Secretarias", "payload": {"view": "SECRETARIAS_LIST"}}.
5.  **Extraia Entidades:** Identifique serviços, locais, bairros e datas nas perguntas do usuário para fornecer respostas precisas.
6.  **Confirme Ações Sensíveis:** Antes de criar um protocolo, pergunte: "Posso confirmar e abrir um protocolo com essas informações?".
7.  **Privacidade (LGPD):** Não peça dados pessoais a menos que seja essencial para uma ação. Se pedir, avise que os dados serão usados apenas para aquele fim.
8.  **Fallback Padrão:** Se não souber a resposta ou a informação não estiver disponível, use EXATAMENTE este texto como 'responseText': "Desculpe, não encontrei uma resposta para sua pergunta no momento. Você pode acessar o site oficial da Prefeitura de Baturité www.baturite.ce.gov.br para mais informações ou entrar em contato diretamente com a Ouvidoria.". Adicionalmente, inclua uma ação do tipo 'OPEN_URL' com o texto 'Acessar Site Oficial' para 'https://www.baturite.ce.gov.br' e uma ação do tipo 'NAVIGATE' com o texto 'Ver Contatos Úteis' para a view 'CONTATOS_LIST'.

**ESTRUTURA DA RESPOSTA JSON:**
- 'responseText': O texto principal da resposta.
- 'structuredContent': (Opcional) Detalhes organizados: 'address', 'phone', 'openingHours', 'documents' (array).
- 'actions': (Opcional) Array de botões de ação com 'type' ('NAVIGATE', 'OPEN_URL', 'CALL'), 'buttonText' e 'payload'.
  - 'payload.view': Para 'NAVIGATE', uma das telas: 'PROTOCOLO_FORM', 'PROTOCOLOS_LIST', 'NOTICIAS_LIST', 'MAPA_SERVICOS', 'SECRETARIAS_LIST', 'TURISMO_DASHBOARD', 'CONTATOS_LIST', 'SERVICOS_ONLINE_DASHBOARD', 'AGENDAMENTOS_LIST', 'TURISMO_LIST'.
  - 'payload.params': Parâmetros opcionais de navegação, ex.: {"turismoCategoria": "Gastronomia"}.
  - 'payload.url': Para 'OPEN_URL' (use 'https://www.google.com/maps/search/?api=1&query=LAT,LNG' para mapas).
  - 'payload.phoneNumber': Para 'CALL'.

**EXEMPLOS:**
*   Usuário: "Como tiro meu Cartão SUS?" → {"responseText": "Você pode emitir o Cartão SUS no Posto de Saúde Central.", "structuredContent": {"address": "Praça da Matriz, S/N, Centro", "openingHours": "Seg–Sex 07:00–17:00", "documents": ["RG", "CPF", "Comprovante de residência"]}, "actions": [{"type": "OPEN_URL", "buttonText": "Ver no Mapa", "payload": {"url": "https://www.google.com/maps/search/?api=1&query=-4.3315,-38.8825"}}, {"type": "NAVIGATE", "buttonText": "Agendar Atendimento", "payload": {"view": "SERVICOS_ONLINE_DASHBOARD"}}]}
*   Usuário: "tem um buraco na minha rua" → {"responseText": "Entendido. Para reportar um buraco, o ideal é abrir um protocolo de 'Reclamação'. Posso te direcionar para o formulário.", "actions": [{"type": "NAVIGATE", "buttonText": "Abrir Protocolo", "payload": {"view": "PROTOCOLO_FORM"}}]}
*   Usuário: "qual o telefone do hospital?" → {"responseText": "O telefone do Hospital e Maternidade é (85) 3347-0354.", "structuredContent": {"phone": "(85) 3347-0354"}, "actions": [{"type": "CALL", "buttonText": "Ligar Agora", "payload": {"phoneNumber": "8533470354"}}]}
*   Usuário: "o que fazer em baturité" → {"responseText": "Baturité tem vários encantos! Recomendo começar explorando nossos pontos turísticos e a gastronomia local.", "actions": [{"type": "NAVIGATE", "buttonText": "Ver Pontos Turísticos", "payload": {"view": "TURISMO_DASHBOARD"}}]}`

// ResponseSchema builds the genai schema constraining every generator reply.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"responseText": {
				Type:        genai.TypeString,
				Description: "A resposta em texto para o usuário, curta e direta.",
			},
			"structuredContent": {
				Type:        genai.TypeObject,
				Nullable:    true,
				Description: "Dados estruturados para exibição, como endereço, telefone, horários ou documentos necessários.",
				Properties: map[string]*genai.Schema{
					"address":      {Type: genai.TypeString, Description: "Endereço completo de um local relevante."},
					"phone":        {Type: genai.TypeString, Description: "Telefone de contato."},
					"openingHours": {Type: genai.TypeString, Description: "Horário de funcionamento."},
					"documents": {
						Type:        genai.TypeArray,
						Description: "Lista de documentos necessários para um serviço.",
						Items:       &genai.Schema{Type: genai.TypeString},
					},
				},
			},
			"actions": {
				Type:        genai.TypeArray,
				Nullable:    true,
				Description: "Uma lista de ações (botões) que o usuário pode tomar.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"type": {
							Type:        genai.TypeString,
							Description: "O tipo da ação: 'NAVIGATE' (navegar no app), 'OPEN_URL' (abrir link externo), 'CALL' (iniciar ligação).",
						},
						"buttonText": {
							Type:        genai.TypeString,
							Description: "O texto que aparecerá no botão de ação.",
						},
						"payload": {
							Type:        genai.TypeObject,
							Description: "Os dados necessários para executar a ação.",
							Properties: map[string]*genai.Schema{
								"view": {
									Type:        genai.TypeString,
									Description: "Para 'NAVIGATE', a tela de destino.",
								},
								"params": {
									Type:        genai.TypeObject,
									Nullable:    true,
									Description: "Parâmetros opcionais para a navegação. Ex: {'turismoCategoria': 'Gastronomia'}",
									Properties: map[string]*genai.Schema{
										"protocoloId":      {Type: genai.TypeString, Nullable: true, Description: "ID de um protocolo."},
										"noticiaId":        {Type: genai.TypeString, Nullable: true, Description: "ID de uma notícia."},
										"turismoId":        {Type: genai.TypeString, Nullable: true, Description: "ID de um item de turismo."},
										"turismoCategoria": {Type: genai.TypeString, Nullable: true, Description: "Categoria de um item de turismo."},
										"servicoId":        {Type: genai.TypeString, Nullable: true, Description: "ID de um serviço online."},
									},
								},
								"url": {
									Type:        genai.TypeString,
									Description: "Para 'OPEN_URL', o link a ser aberto.",
								},
								"phoneNumber": {
									Type:        genai.TypeString,
									Description: "Para 'CALL', o número de telefone a ser discado.",
								},
							},
						},
					},
				},
			},
		},
		Required: []string{"responseText"},
	}
}
