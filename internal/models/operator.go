package models

import (
	"time"

	"gorm.io/gorm"
)

// Operator é o usuário interno que opera o painel
type Operator struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Nome      string         `gorm:"size:255;not null" json:"nome"`
	Email     string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Senha     string         `gorm:"size:255;not null" json:"-"`
	IsAdmin   bool           `gorm:"not null" json:"isAdmin"`
}
