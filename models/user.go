package models

// UserProfile is the slice of the citizen profile the assistant needs: an
// identity for history scoping and a display name for the welcome turn.
type UserProfile struct {
	ID          string `json:"id" bson:"id"`
	DisplayName string `json:"displayName" bson:"displayName"`
}
