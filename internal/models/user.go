package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account of the self-hosted backend. The hosted backend keeps
// its users on the auth service and never touches this table.
type User struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// All returns every model managed by the self-hosted backend, in migration order.
func All() []any {
	return []any{
		&User{},
		&Client{},
		&Quote{},
		&Job{},
		&EmailTemplate{},
		&PortfolioItem{},
	}
}
