package campaign

import (
	"context"
	"fmt"
	"time"

	"refermark-server/internal/model"
	"refermark-server/pkg/db/option"
	"refermark-server/pkg/errutil"
	"refermark-server/pkg/repository"
	"refermark-server/pkg/validate"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db   *gorm.DB
	node *snowflake.Node

	campaigns repository.Repository[model.Campaign]
}

type ServiceParams struct {
	fx.In

	DB   *gorm.DB
	Node *snowflake.Node
}

func NewService(p ServiceParams) *Service {
	return &Service{
		db:        p.DB,
		node:      p.Node,
		campaigns: repository.ProvideStore[model.Campaign](p.DB),
	}
}

func (s *Service) List(ctx context.Context, ownerID string) ([]*model.Campaign, error) {
	campaigns, err := s.campaigns.Find(ctx, &model.Campaign{OwnerID: ownerID}, option.WithOrder("created_at DESC"))
	if err != nil {
		zap.L().Error("failed to list campaigns", zap.Error(err))
		return nil, errutil.Internal("failed to fetch campaigns", errutil.WithErr(err))
	}
	return campaigns, nil
}

func (s *Service) Get(ctx context.Context, ownerID, campaignID string) (*model.Campaign, error) {
	return s.fetchOwned(ctx, ownerID, campaignID, "access")
}

func (s *Service) Create(ctx context.Context, ownerID string, req *CreateRequest) (*model.Campaign, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	c := &model.Campaign{
		ID:            s.node.Generate().String(),
		Name:          req.Name,
		Description:   req.Description,
		RewardType:    model.RewardType(req.RewardType),
		RewardDetails: req.RewardDetails,
		StartDate:     *req.StartDate,
		EndDate:       *req.EndDate,
		IsActive:      true,
		OwnerID:       ownerID,
		CreatedAt:     time.Now(),
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.campaigns.Create(ctx, c); err != nil {
		zap.L().Error("failed to create campaign", zap.Error(err))
		return nil, errutil.Internal("failed to create campaign", errutil.WithErr(err))
	}

	return c, nil
}

func (s *Service) Update(ctx context.Context, ownerID, campaignID string, req *UpdateRequest) (*model.Campaign, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	c, err := s.fetchOwned(ctx, ownerID, campaignID, "update")
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.RewardType != nil {
		c.RewardType = model.RewardType(*req.RewardType)
	}
	if req.RewardDetails != nil {
		c.RewardDetails = *req.RewardDetails
	}
	if req.StartDate != nil {
		c.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		c.EndDate = *req.EndDate
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Save(c).Error; err != nil {
		zap.L().Error("failed to update campaign", zap.Error(err))
		return nil, errutil.Internal("failed to update campaign", errutil.WithErr(err))
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, campaignID string) error {
	if _, err := s.fetchOwned(ctx, ownerID, campaignID, "delete"); err != nil {
		return err
	}

	if err := s.campaigns.Delete(ctx, &model.Campaign{ID: campaignID}); err != nil {
		zap.L().Error("failed to delete campaign", zap.Error(err))
		return errutil.Internal("failed to delete campaign", errutil.WithErr(err))
	}

	return nil
}

// Stats counts campaigns at call time; active means the isActive flag is set
// and the end date has not passed.
func (s *Service) Stats(ctx context.Context, ownerID string) (*Stats, error) {
	total, err := s.campaigns.Count(ctx, &model.Campaign{OwnerID: ownerID})
	if err != nil {
		zap.L().Error("failed to count campaigns", zap.Error(err))
		return nil, errutil.Internal("failed to fetch campaign stats", errutil.WithErr(err))
	}

	active, err := s.campaigns.Count(ctx,
		&model.Campaign{OwnerID: ownerID, IsActive: true},
		option.WithCondition("end_date >= ?", time.Now()),
	)
	if err != nil {
		zap.L().Error("failed to count active campaigns", zap.Error(err))
		return nil, errutil.Internal("failed to fetch campaign stats", errutil.WithErr(err))
	}

	return &Stats{TotalCampaigns: total, ActiveCampaigns: active}, nil
}

func (s *Service) fetchOwned(ctx context.Context, ownerID, campaignID, action string) (*model.Campaign, error) {
	c, err := s.campaigns.FindOne(ctx, &model.Campaign{ID: campaignID})
	if err != nil {
		zap.L().Error("failed to fetch campaign", zap.String("campaign_id", campaignID), zap.Error(err))
		return nil, errutil.Internal("failed to fetch campaign", errutil.WithErr(err))
	}
	if c == nil {
		return nil, errutil.NotFound("Campaign not found")
	}
	if c.OwnerID != ownerID {
		return nil, errutil.Unauthorized(fmt.Sprintf("Not authorized to %s this campaign", action))
	}
	return c, nil
}
