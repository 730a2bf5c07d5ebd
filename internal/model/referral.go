package model

import "time"

type ReferralStatus string

const (
	ReferralStatusPending   ReferralStatus = "Pending"
	ReferralStatusCompleted ReferralStatus = "Completed"
	ReferralStatusDeclined  ReferralStatus = "Declined"
)

// Referral records a referred customer. CampaignID and Reward are write-once
// snapshots taken from the referrer's campaign at creation time; later
// changes to the campaign do not propagate back.
type Referral struct {
	ID                    string         `gorm:"column:id;primaryKey;type:varchar(20)" json:"id"`
	ReferredCustomerName  string         `gorm:"column:referred_customer_name;not null" json:"referredCustomerName"`
	ReferredCustomerEmail string         `gorm:"column:referred_customer_email;not null" json:"referredCustomerEmail"`
	ReferrerID            string         `gorm:"column:referrer_id;index;not null" json:"referrer"`
	CampaignID            string         `gorm:"column:campaign_id;index;not null" json:"campaign"`
	Date                  time.Time      `gorm:"column:date" json:"date"`
	PurchaseValue         float64        `gorm:"column:purchase_value;default:0" json:"purchaseValue"`
	Reward                string         `gorm:"column:reward" json:"reward"`
	Status                ReferralStatus `gorm:"column:status;type:varchar(10);default:'Pending'" json:"status"`
	OwnerID               string         `gorm:"column:owner_id;index;not null" json:"owner"`
}
