package referral

import (
	"time"

	"refermark-server/internal/model"
)

// CreateRequest: campaign and reward are accepted in the body for
// compatibility but silently discarded; both are derived from the referrer's
// campaign at creation time.
type CreateRequest struct {
	ReferredCustomerName  string     `json:"referredCustomerName" validate:"required"`
	ReferredCustomerEmail string     `json:"referredCustomerEmail" validate:"required,email"`
	Referrer              string     `json:"referrer" validate:"required"`
	Date                  *time.Time `json:"date"`
	PurchaseValue         *float64   `json:"purchaseValue"`
	Status                string     `json:"status" validate:"omitempty,oneof=Pending Completed Declined"`
	Campaign              string     `json:"campaign"`
	Reward                string     `json:"reward"`
	Owner                 string     `json:"owner"`
}

// UpdateStatusRequest restricts mutation to status and purchaseValue; any
// other field in the request body never reaches storage.
type UpdateStatusRequest struct {
	Status        *string  `json:"status" validate:"omitempty,oneof=Pending Completed Declined"`
	PurchaseValue *float64 `json:"purchaseValue"`
}

// ListFilter narrows List results; empty fields match everything.
type ListFilter struct {
	Status   string
	Campaign string
}

type ReferrerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CampaignSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CampaignDetail adds the reward projection returned by Get.
type CampaignDetail struct {
	CampaignSummary
	RewardType    model.RewardType `json:"rewardType"`
	RewardDetails string           `json:"rewardDetails"`
}

type View struct {
	model.Referral
	Referrer ReferrerSummary `json:"referrer"`
	Campaign CampaignSummary `json:"campaign"`
}

type DetailView struct {
	model.Referral
	Referrer ReferrerSummary `json:"referrer"`
	Campaign CampaignDetail  `json:"campaign"`
}
