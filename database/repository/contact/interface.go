package contactRepo

import "baturite/models"

// ContactRepository exposes the useful-contacts catalog.
type ContactRepository interface {
	GetAll() ([]models.Contact, error)
	GetByCategory(category string) ([]models.Contact, error)
	GetByID(id string) (*models.Contact, error)
	Upsert(contact *models.Contact) error
}
