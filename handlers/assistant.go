package handlers

import (
	"net/http"

	"baturite/models"
	"baturite/services/assistant"
	"baturite/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssistantHandler exposes the assistant orchestration service over HTTP.
type AssistantHandler struct {
	Svc assistant.AssistantService
}

func NewAssistantHandler(svc assistant.AssistantService) *AssistantHandler {
	return &AssistantHandler{Svc: svc}
}

// ChatHandler runs one conversation turn.
func (h *AssistantHandler) ChatHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid assistant chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	user := models.UserProfile{ID: req.UserID, DisplayName: req.DisplayName}
	messages, err := h.Svc.SendMessage(c.Request.Context(), user, req.Text)
	if err != nil {
		logger.Error("Assistant chat failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{Messages: messages})
}

// HistoryHandler returns the user's transcript, creating the conversation on
// first access (restore or welcome turn).
func (h *AssistantHandler) HistoryHandler(c *gin.Context) {
	userID := c.Param("userID")
	user := models.UserProfile{ID: userID, DisplayName: c.Query("name")}

	messages, err := h.Svc.History(c.Request.Context(), user)
	if err != nil {
		utils.GetLogger().Error("Failed to load assistant history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages":  messages,
		"isLoading": h.Svc.IsBusy(userID),
	})
}

// FeedbackHandler toggles a like/dislike on one message.
func (h *AssistantHandler) FeedbackHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid feedback request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if req.Feedback != models.FeedbackLike && req.Feedback != models.FeedbackDislike {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feedback must be 'like' or 'dislike'"})
		return
	}

	msg, err := h.Svc.SetFeedback(c.Request.Context(), req.UserID, req.MessageID, req.Feedback)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Message not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, msg)
}

// ClearHistoryHandler drops the conversation and its persisted transcript.
func (h *AssistantHandler) ClearHistoryHandler(c *gin.Context) {
	userID := c.Param("userID")
	if err := h.Svc.ClearHistory(c.Request.Context(), userID); err != nil {
		utils.GetLogger().Error("Failed to clear assistant history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear history"})
		return
	}
	c.Status(http.StatusNoContent)
}

// dispatchDirective records the single side effect produced by an action. It
// implements the dispatcher collaborators; the client executes the directive.
type dispatchDirective struct {
	Kind        string            `json:"kind"`
	View        models.ViewID     `json:"view,omitempty"`
	Params      map[string]string `json:"params,omitempty"`
	URL         string            `json:"url,omitempty"`
	PhoneNumber string            `json:"phoneNumber,omitempty"`
}

func (d *dispatchDirective) Navigate(view models.ViewID, params map[string]string) {
	d.Kind = "navigate"
	d.View = view
	d.Params = params
}

func (d *dispatchDirective) OpenURL(rawURL string) {
	d.Kind = "open_url"
	d.URL = rawURL
}

func (d *dispatchDirective) Dial(phoneNumber string) {
	d.Kind = "call"
	d.PhoneNumber = phoneNumber
}

// DispatchHandler resolves an action into a client-executable directive.
// Rejected or unknown actions yield dispatched=false, never an error status.
func (h *AssistantHandler) DispatchHandler(c *gin.Context) {
	var action models.ChatAction
	if err := c.ShouldBindJSON(&action); err != nil {
		utils.GetLogger().Error("Invalid dispatch request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	directive := &dispatchDirective{}
	dispatcher := assistant.Dispatcher{Nav: directive, Opener: directive, Dialer: directive}
	dispatcher.Dispatch(action)

	if directive.Kind == "" {
		c.JSON(http.StatusOK, gin.H{"dispatched": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dispatched": true, "directive": directive})
}
