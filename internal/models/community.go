package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Community struct {
	gorm.Model

	Name        string `gorm:"uniqueIndex;not null"`
	Description string
	Owner       string `gorm:"not null;index"`

	Members pq.StringArray `gorm:"type:text[]"`
}
