package models

import "time"

// Contact is one entry of the municipal useful-contacts catalog, the
// destination of the assistant's "Ver Contatos Úteis" fallback action.
type Contact struct {
	ID           string    `json:"id" bson:"id"`
	Name         string    `json:"name" bson:"name"`
	Category     string    `json:"category" bson:"category"`
	Phone        string    `json:"phone" bson:"phone"`
	Address      string    `json:"address,omitempty" bson:"address,omitempty"`
	OpeningHours string    `json:"openingHours,omitempty" bson:"openingHours,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}
