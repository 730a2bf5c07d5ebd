package referrer

import (
	"time"

	"refermark-server/internal/model"
)

type CreateRequest struct {
	Name         string     `json:"name" validate:"required"`
	Email        string     `json:"email" validate:"required,email"`
	Campaign     string     `json:"campaign" validate:"required"`
	ReferralCode string     `json:"referralCode"`
	SignupDate   *time.Time `json:"signupDate"`
	Status       string     `json:"status" validate:"omitempty,oneof=Active Pending Inactive"`
	Owner        string     `json:"owner"`
}

type UpdateRequest struct {
	Name         *string    `json:"name"`
	Email        *string    `json:"email" validate:"omitempty,email"`
	Campaign     *string    `json:"campaign"`
	ReferralCode *string    `json:"referralCode"`
	SignupDate   *time.Time `json:"signupDate"`
	Status       *string    `json:"status" validate:"omitempty,oneof=Active Pending Inactive"`
	Owner        *string    `json:"owner"`
}

// CampaignSummary is the fixed projection expanded into referrer reads.
type CampaignSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// View shadows the raw campaign reference with the expanded summary.
type View struct {
	model.Referrer
	Campaign CampaignSummary `json:"campaign"`
}

// DetailView additionally carries the derived referrals relation, computed
// by query at read time.
type DetailView struct {
	View
	Referrals []*model.Referral `json:"referrals"`
}
