package models

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is one row of the persisted snapshot. Row order (by ID) encodes
// account creation order, which the core's directory iteration depends on.
type User struct {
	gorm.Model

	Login    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	Name     string

	Attributes datatypes.JSON `gorm:"type:jsonb"`

	Friends     pq.StringArray `gorm:"type:text[]"`
	Invites     pq.StringArray `gorm:"type:text[]"`
	Idols       pq.StringArray `gorm:"type:text[]"`
	Crushes     pq.StringArray `gorm:"type:text[]"`
	Enemies     pq.StringArray `gorm:"type:text[]"`
	Notices     pq.StringArray `gorm:"type:text[]"`
	Messages    pq.StringArray `gorm:"type:text[]"`
	Communities pq.StringArray `gorm:"type:text[]"`
}
