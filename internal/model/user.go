package model

import "time"

// User is the authenticated principal. Managed only by login and seeding;
// every other entity is scoped to a user via its OwnerID.
type User struct {
	ID           string    `gorm:"column:id;primaryKey;type:varchar(20)" json:"id"`
	Name         string    `gorm:"column:name" json:"name"`
	Email        string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
