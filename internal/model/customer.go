package model

import "time"

// Customer exists for schema completeness; no CRUD handlers are exposed.
type Customer struct {
	ID             string    `gorm:"column:id;primaryKey;type:varchar(20)" json:"id"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	Email          string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Phone          string    `gorm:"column:phone" json:"phone"`
	SignupDate     time.Time `gorm:"column:signup_date" json:"signupDate"`
	TotalPurchases float64   `gorm:"column:total_purchases;default:0" json:"totalPurchases"`
	OwnerID        string    `gorm:"column:owner_id;index;not null" json:"owner"`
}
