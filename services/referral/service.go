package referral

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

	referrals repository.Repository[model.Referral]
	referrers repository.Repository[model.Referrer]
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
		referrals: repository.ProvideStore[model.Referral](p.DB),
		referrers: repository.ProvideStore[model.Referrer](p.DB),
		campaigns: repository.ProvideStore[model.Campaign](p.DB),
	}
}

func (s *Service) List(ctx context.Context, ownerID string, filter ListFilter) ([]*View, error) {
	query := &model.Referral{
		OwnerID:    ownerID,
		Status:     model.ReferralStatus(filter.Status),
		CampaignID: filter.Campaign,
	}

	referrals, err := s.referrals.Find(ctx, query, option.WithOrder("date DESC"))
	if err != nil {
		zap.L().Error("failed to list referrals", zap.Error(err))
		return nil, errutil.Internal("failed to fetch referrals", errutil.WithErr(err))
	}

	referrerByID, campaignByID, err := s.expansions(ctx, referrals)
	if err != nil {
		return nil, err
	}

	views := make([]*View, 0, len(referrals))
	for _, r := range referrals {
		v := &View{
			Referral: *r,
			Referrer: ReferrerSummary{ID: r.ReferrerID},
			Campaign: CampaignSummary{ID: r.CampaignID},
		}
		if ref, ok := referrerByID[r.ReferrerID]; ok {
			v.Referrer.Name = ref.Name
			v.Referrer.Email = ref.Email
		}
		if c, ok := campaignByID[r.CampaignID]; ok {
			v.Campaign.Name = c.Name
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *Service) Get(ctx context.Context, ownerID, referralID string) (*DetailView, error) {
	r, err := s.fetchOwned(ctx, ownerID, referralID, "access")
	if err != nil {
		return nil, err
	}

	view := &DetailView{
		Referral: *r,
		Referrer: ReferrerSummary{ID: r.ReferrerID},
		Campaign: CampaignDetail{CampaignSummary: CampaignSummary{ID: r.CampaignID}},
	}

	if ref, err := s.referrers.FindOne(ctx, &model.Referrer{ID: r.ReferrerID}); err != nil {
		zap.L().Error("failed to expand referral referrer", zap.Error(err))
		return nil, errutil.Internal("failed to fetch referral", errutil.WithErr(err))
	} else if ref != nil {
		view.Referrer.Name = ref.Name
		view.Referrer.Email = ref.Email
	}

	if c, err := s.campaigns.FindOne(ctx, &model.Campaign{ID: r.CampaignID}); err != nil {
		zap.L().Error("failed to expand referral campaign", zap.Error(err))
		return nil, errutil.Internal("failed to fetch referral", errutil.WithErr(err))
	} else if c != nil {
		view.Campaign.Name = c.Name
		view.Campaign.RewardType = c.RewardType
		view.Campaign.RewardDetails = c.RewardDetails
	}

	return view, nil
}

// Create resolves the ownership chain referrer -> campaign and snapshots the
// campaign reward onto the new referral. The reads and the insert run inside
// one transaction so a concurrent delete of either parent aborts the create.
func (s *Service) Create(ctx context.Context, ownerID string, req *CreateRequest) (*model.Referral, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	r := &model.Referral{
		ID:                    s.node.Generate().String(),
		ReferredCustomerName:  req.ReferredCustomerName,
		ReferredCustomerEmail: req.ReferredCustomerEmail,
		ReferrerID:            req.Referrer,
		Date:                  time.Now(),
		Status:                model.ReferralStatusPending,
		OwnerID:               ownerID,
	}
	if req.Date != nil {
		r.Date = *req.Date
	}
	if req.PurchaseValue != nil {
		r.PurchaseValue = *req.PurchaseValue
	}
	if req.Status != "" {
		r.Status = model.ReferralStatus(req.Status)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		referrer, err := s.referrers.WithTrx(tx).FindOne(ctx, &model.Referrer{ID: req.Referrer})
		if err != nil {
			zap.L().Error("failed to fetch referrer for referral", zap.Error(err))
			return errutil.Internal("failed to create referral", errutil.WithErr(err))
		}
		if referrer == nil {
			return errutil.NotFound("Referrer not found")
		}
		if referrer.OwnerID != ownerID {
			return errutil.Unauthorized("Not authorized to use this referrer")
		}

		campaign, err := s.campaigns.WithTrx(tx).FindOne(ctx, &model.Campaign{ID: referrer.CampaignID})
		if err != nil {
			zap.L().Error("failed to fetch campaign for referral", zap.Error(err))
			return errutil.Internal("failed to create referral", errutil.WithErr(err))
		}
		if campaign == nil {
			return errutil.NotFound("Campaign not found")
		}

		// Caller-supplied campaign/reward values are discarded; the stored
		// values are a point-in-time snapshot of the referrer's campaign.
		r.CampaignID = campaign.ID
		r.Reward = campaign.RewardDetails

		if err := s.referrals.WithTrx(tx).Create(ctx, r); err != nil {
			zap.L().Error("failed to create referral", zap.Error(err))
			return errutil.Internal("failed to create referral", errutil.WithErr(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) UpdateStatus(ctx context.Context, ownerID, referralID string, req *UpdateStatusRequest) (*model.Referral, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	r, err := s.fetchOwned(ctx, ownerID, referralID, "update")
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		r.Status = model.ReferralStatus(*req.Status)
	}
	if req.PurchaseValue != nil {
		r.PurchaseValue = *req.PurchaseValue
	}

	if err := s.db.WithContext(ctx).Save(r).Error; err != nil {
		zap.L().Error("failed to update referral", zap.Error(err))
		return nil, errutil.Internal("failed to update referral", errutil.WithErr(err))
	}

	return r, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, referralID string) error {
	if _, err := s.fetchOwned(ctx, ownerID, referralID, "delete"); err != nil {
		return err
	}

	if err := s.referrals.Delete(ctx, &model.Referral{ID: referralID}); err != nil {
		zap.L().Error("failed to delete referral", zap.Error(err))
		return errutil.Internal("failed to delete referral", errutil.WithErr(err))
	}

	return nil
}

func (s *Service) fetchOwned(ctx context.Context, ownerID, referralID, action string) (*model.Referral, error) {
	r, err := s.referrals.FindOne(ctx, &model.Referral{ID: referralID})
	if err != nil {
		zap.L().Error("failed to fetch referral", zap.String("referral_id", referralID), zap.Error(err))
		return nil, errutil.Internal("failed to fetch referral", errutil.WithErr(err))
	}
	if r == nil {
		return nil, errutil.NotFound("Referral not found")
	}
	if r.OwnerID != ownerID {
		return nil, errutil.Unauthorized(fmt.Sprintf("Not authorized to %s this referral", action))
	}
	return r, nil
}

func (s *Service) expansions(ctx context.Context, referrals []*model.Referral) (map[string]*model.Referrer, map[string]*model.Campaign, error) {
	referrerByID := make(map[string]*model.Referrer)
	campaignByID := make(map[string]*model.Campaign)
	if len(referrals) == 0 {
		return referrerByID, campaignByID, nil
	}

	referrerIDs := make([]string, 0, len(referrals))
	campaignIDs := make([]string, 0, len(referrals))
	seenReferrers := make(map[string]struct{}, len(referrals))
	seenCampaigns := make(map[string]struct{}, len(referrals))
	for _, r := range referrals {
		if _, ok := seenReferrers[r.ReferrerID]; !ok {
			seenReferrers[r.ReferrerID] = struct{}{}
			referrerIDs = append(referrerIDs, r.ReferrerID)
		}
		if _, ok := seenCampaigns[r.CampaignID]; !ok {
			seenCampaigns[r.CampaignID] = struct{}{}
			campaignIDs = append(campaignIDs, r.CampaignID)
		}
	}

	referrers, err := s.referrers.Find(ctx, &model.Referrer{}, option.WithCondition("id IN ?", referrerIDs))
	if err != nil {
		zap.L().Error("failed to expand referrers", zap.Error(err))
		return nil, nil, errutil.Internal("failed to fetch referrals", errutil.WithErr(err))
	}
	for _, ref := range referrers {
		referrerByID[ref.ID] = ref
	}

	campaigns, err := s.campaigns.Find(ctx, &model.Campaign{}, option.WithCondition("id IN ?", campaignIDs))
	if err != nil {
		zap.L().Error("failed to expand campaigns", zap.Error(err))
		return nil, nil, errutil.Internal("failed to fetch referrals", errutil.WithErr(err))
	}
	for _, c := range campaigns {
		campaignByID[c.ID] = c
	}

	return referrerByID, campaignByID, nil
}
