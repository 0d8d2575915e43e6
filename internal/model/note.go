package model

import "time"

// Note is a titled text entry owned by exactly one user.
//
// The owner relation is read-only and exists for response composition;
// mutations never traverse it.
type Note struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Owner       *User     `json:"owner,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
