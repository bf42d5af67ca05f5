package model

import "time"

// UserIdentifier binds an external identity (telegram_id, discord_id, ...)
// to a user. The (identifier, identifier_type) pair is unique table-wide.
type UserIdentifier struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"not null;index"`
	Identifier     string `gorm:"size:100;not null;uniqueIndex:idx_identifier_value_type"`
	IdentifierType string `gorm:"size:50;not null;uniqueIndex:idx_identifier_value_type"`
	CreatedAt      time.Time
}

func (UserIdentifier) TableName() string { return "user_ids" }
