package model

import "time"

type RewardType string

const (
	RewardTypeDiscount    RewardType = "Discount"
	RewardTypeCredit      RewardType = "Credit"
	RewardTypeFreeProduct RewardType = "Free Product"
	RewardTypeOther       RewardType = "Other"
)

// Campaign is a referral-marketing campaign owned by a single user.
// OwnerID is immutable after creation.
type Campaign struct {
	ID            string     `gorm:"column:id;primaryKey;type:varchar(20)" json:"id"`
	Name          string     `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Description   string     `gorm:"column:description;type:text;not null" json:"description"`
	RewardType    RewardType `gorm:"column:reward_type;type:varchar(20);not null" json:"rewardType"`
	RewardDetails string     `gorm:"column:reward_details;not null" json:"rewardDetails"`
	StartDate     time.Time  `gorm:"column:start_date;not null" json:"startDate"`
	EndDate       time.Time  `gorm:"column:end_date;not null" json:"endDate"`
	// No default tag: gorm would drop an explicit false from the INSERT.
	// The service sets the field on every create.
	IsActive  bool      `gorm:"column:is_active;not null" json:"isActive"`
	OwnerID   string    `gorm:"column:owner_id;index;not null" json:"owner"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
