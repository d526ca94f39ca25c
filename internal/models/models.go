package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Owned carries the columns every account-scoped row shares. JSON names are
// the backend column names so rows round-trip through the REST backend
// unchanged. Zero values are omitted so inserts let the backend fill them.
type Owned struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id,omitempty"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// BeforeCreate assigns a uuid when the row has none. Only the gorm backend
// runs hooks; the hosted backend generates ids itself.
func (o *Owned) BeforeCreate(*gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// GetUserID implements policy.Ownable.
func (o *Owned) GetUserID() string {
	return o.UserID
}
