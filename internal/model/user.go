package model

import "time"

// User is an application user owning identifiers and tasks.
type User struct {
	ID        uint `gorm:"primaryKey"`
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time

	Identifiers []UserIdentifier `gorm:"constraint:OnDelete:CASCADE"`
	Tasks       []Task           `gorm:"constraint:OnDelete:CASCADE"`
}
