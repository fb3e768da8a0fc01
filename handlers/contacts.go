package handlers

import (
	"net/http"

	contactRepo "baturite/database/repository/contact"
	"baturite/models"
	"baturite/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContactHandler serves the useful-contacts catalog.
type ContactHandler struct {
	Repo contactRepo.ContactRepository
}

func NewContactHandler(repo contactRepo.ContactRepository) *ContactHandler {
	return &ContactHandler{Repo: repo}
}

// ListContactsHandler returns all contacts, optionally filtered by category.
func (h *ContactHandler) ListContactsHandler(c *gin.Context) {
	category := c.Query("category")

	var contacts []models.Contact
	var err error
	if category != "" {
		contacts, err = h.Repo.GetByCategory(category)
	} else {
		contacts, err = h.Repo.GetAll()
	}
	if err != nil {
		utils.GetLogger().Error("Failed to list contacts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list contacts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

// GetContactHandler returns one contact by ID.
func (h *ContactHandler) GetContactHandler(c *gin.Context) {
	contact, err := h.Repo.GetByID(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Contact not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, contact)
}
