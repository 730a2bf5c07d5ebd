package model

import "time"

type ReferrerStatus string

const (
	ReferrerStatusActive   ReferrerStatus = "Active"
	ReferrerStatusPending  ReferrerStatus = "Pending"
	ReferrerStatusInactive ReferrerStatus = "Inactive"
)

// Referrer is a person enrolled against a campaign. ReferralCode is assigned
// exactly once, at first persistence, and never regenerated. The referrals
// relation is derived by query, never stored.
type Referrer struct {
	ID           string         `gorm:"column:id;primaryKey;type:varchar(20)" json:"id"`
	Name         string         `gorm:"column:name;not null" json:"name"`
	Email        string         `gorm:"column:email;not null" json:"email"`
	CampaignID   string         `gorm:"column:campaign_id;index;not null" json:"campaign"`
	ReferralCode string         `gorm:"column:referral_code;uniqueIndex;type:varchar(16)" json:"referralCode"`
	SignupDate   time.Time      `gorm:"column:signup_date" json:"signupDate"`
	Status       ReferrerStatus `gorm:"column:status;type:varchar(10);default:'Active'" json:"status"`
	OwnerID      string         `gorm:"column:owner_id;index;not null" json:"owner"`
}
