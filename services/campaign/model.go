package campaign

import "time"

// CreateRequest carries the caller-supplied campaign fields. Owner is
// accepted in the body but always overwritten with the caller's principal.
type CreateRequest struct {
	Name          string     `json:"name" validate:"required,max=100"`
	Description   string     `json:"description" validate:"required"`
	RewardType    string     `json:"rewardType" validate:"required,oneof='Discount' 'Credit' 'Free Product' 'Other'"`
	RewardDetails string     `json:"rewardDetails" validate:"required"`
	StartDate     *time.Time `json:"startDate" validate:"required"`
	EndDate       *time.Time `json:"endDate" validate:"required"`
	IsActive      *bool      `json:"isActive"`
	Owner         string     `json:"owner"`
}

// UpdateRequest applies partial updates; nil fields are left untouched.
// Owner is ignored even when present.
type UpdateRequest struct {
	Name          *string    `json:"name" validate:"omitempty,max=100"`
	Description   *string    `json:"description"`
	RewardType    *string    `json:"rewardType" validate:"omitempty,oneof='Discount' 'Credit' 'Free Product' 'Other'"`
	RewardDetails *string    `json:"rewardDetails"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	IsActive      *bool      `json:"isActive"`
	Owner         *string    `json:"owner"`
}

type Stats struct {
	TotalCampaigns  int64 `json:"totalCampaigns"`
	ActiveCampaigns int64 `json:"activeCampaigns"`
}
