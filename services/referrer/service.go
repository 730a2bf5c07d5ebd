package referrer

import (
	"context"
	"errors"
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

	referrers repository.Repository[model.Referrer]
	campaigns repository.Repository[model.Campaign]
	referrals repository.Repository[model.Referral]
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
		referrers: repository.ProvideStore[model.Referrer](p.DB),
		campaigns: repository.ProvideStore[model.Campaign](p.DB),
		referrals: repository.ProvideStore[model.Referral](p.DB),
	}
}

func (s *Service) List(ctx context.Context, ownerID string) ([]*View, error) {
	referrers, err := s.referrers.Find(ctx, &model.Referrer{OwnerID: ownerID}, option.WithOrder("signup_date DESC"))
	if err != nil {
		zap.L().Error("failed to list referrers", zap.Error(err))
		return nil, errutil.Internal("failed to fetch referrers", errutil.WithErr(err))
	}

	names, err := s.campaignNames(ctx, referrers)
	if err != nil {
		return nil, err
	}

	views := make([]*View, 0, len(referrers))
	for _, r := range referrers {
		views = append(views, &View{
			Referrer: *r,
			Campaign: CampaignSummary{ID: r.CampaignID, Name: names[r.CampaignID]},
		})
	}
	return views, nil
}

func (s *Service) Get(ctx context.Context, ownerID, referrerID string) (*DetailView, error) {
	r, err := s.fetchOwned(ctx, ownerID, referrerID, "access")
	if err != nil {
		return nil, err
	}

	summary := CampaignSummary{ID: r.CampaignID}
	if c, err := s.campaigns.FindOne(ctx, &model.Campaign{ID: r.CampaignID}); err != nil {
		zap.L().Error("failed to expand referrer campaign", zap.Error(err))
		return nil, errutil.Internal("failed to fetch referrer", errutil.WithErr(err))
	} else if c != nil {
		summary.Name = c.Name
	}

	referrals, err := s.referrals.Find(ctx, &model.Referral{ReferrerID: r.ID})
	if err != nil {
		zap.L().Error("failed to expand referrer referrals", zap.Error(err))
		return nil, errutil.Internal("failed to fetch referrer", errutil.WithErr(err))
	}

	return &DetailView{
		View:      View{Referrer: *r, Campaign: summary},
		Referrals: referrals,
	}, nil
}

func (s *Service) Create(ctx context.Context, ownerID string, req *CreateRequest) (*model.Referrer, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	campaign, err := s.campaigns.FindOne(ctx, &model.Campaign{ID: req.Campaign})
	if err != nil {
		zap.L().Error("failed to fetch campaign for referrer", zap.Error(err))
		return nil, errutil.Internal("failed to create referrer", errutil.WithErr(err))
	}
	if campaign == nil {
		return nil, errutil.NotFound("Campaign not found")
	}
	if campaign.OwnerID != ownerID {
		return nil, errutil.Unauthorized("Not authorized to use this campaign")
	}

	r := &model.Referrer{
		ID:         s.node.Generate().String(),
		Name:       req.Name,
		Email:      req.Email,
		CampaignID: campaign.ID,
		SignupDate: time.Now(),
		Status:     model.ReferrerStatusActive,
		OwnerID:    ownerID,
	}
	if req.SignupDate != nil {
		r.SignupDate = *req.SignupDate
	}
	if req.Status != "" {
		r.Status = model.ReferrerStatus(req.Status)
	}

	if req.ReferralCode != "" {
		r.ReferralCode = req.ReferralCode
		if err := s.referrers.Create(ctx, r); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, errutil.Conflict("Referral code already in use")
			}
			zap.L().Error("failed to create referrer", zap.Error(err))
			return nil, errutil.Internal("failed to create referrer", errutil.WithErr(err))
		}
		return r, nil
	}

	// Generated codes retry on a uniqueness conflict instead of surfacing
	// the raw storage error.
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		r.ReferralCode = generateReferralCode(referralCodeLength)
		err := s.referrers.Create(ctx, r)
		if err == nil {
			return r, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			zap.L().Warn("referral code collision, regenerating", zap.Int("attempt", attempt+1))
			continue
		}
		zap.L().Error("failed to create referrer", zap.Error(err))
		return nil, errutil.Internal("failed to create referrer", errutil.WithErr(err))
	}

	return nil, errutil.Internal("failed to allocate a unique referral code")
}

func (s *Service) Update(ctx context.Context, ownerID, referrerID string, req *UpdateRequest) (*model.Referrer, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	r, err := s.fetchOwned(ctx, ownerID, referrerID, "update")
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		r.Name = *req.Name
	}
	if req.Email != nil {
		r.Email = *req.Email
	}
	if req.Campaign != nil {
		r.CampaignID = *req.Campaign
	}
	if req.ReferralCode != nil {
		r.ReferralCode = *req.ReferralCode
	}
	if req.SignupDate != nil {
		r.SignupDate = *req.SignupDate
	}
	if req.Status != nil {
		r.Status = model.ReferrerStatus(*req.Status)
	}

	if err := s.db.WithContext(ctx).Save(r).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errutil.Conflict("Referral code already in use")
		}
		zap.L().Error("failed to update referrer", zap.Error(err))
		return nil, errutil.Internal("failed to update referrer", errutil.WithErr(err))
	}

	return r, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, referrerID string) error {
	if _, err := s.fetchOwned(ctx, ownerID, referrerID, "delete"); err != nil {
		return err
	}

	if err := s.referrers.Delete(ctx, &model.Referrer{ID: referrerID}); err != nil {
		zap.L().Error("failed to delete referrer", zap.Error(err))
		return errutil.Internal("failed to delete referrer", errutil.WithErr(err))
	}

	return nil
}

func (s *Service) Count(ctx context.Context, ownerID string) (int64, error) {
	count, err := s.referrers.Count(ctx, &model.Referrer{OwnerID: ownerID})
	if err != nil {
		zap.L().Error("failed to count referrers", zap.Error(err))
		return 0, errutil.Internal("failed to count referrers", errutil.WithErr(err))
	}
	return count, nil
}

func (s *Service) fetchOwned(ctx context.Context, ownerID, referrerID, action string) (*model.Referrer, error) {
	r, err := s.referrers.FindOne(ctx, &model.Referrer{ID: referrerID})
	if err != nil {
		zap.L().Error("failed to fetch referrer", zap.String("referrer_id", referrerID), zap.Error(err))
		return nil, errutil.Internal("failed to fetch referrer", errutil.WithErr(err))
	}
	if r == nil {
		return nil, errutil.NotFound("Referrer not found")
	}
	if r.OwnerID != ownerID {
		return nil, errutil.Unauthorized(fmt.Sprintf("Not authorized to %s this referrer", action))
	}
	return r, nil
}

func (s *Service) campaignNames(ctx context.Context, referrers []*model.Referrer) (map[string]string, error) {
	names := make(map[string]string)
	if len(referrers) == 0 {
		return names, nil
	}

	ids := make([]string, 0, len(referrers))
	seen := make(map[string]struct{}, len(referrers))
	for _, r := range referrers {
		if _, ok := seen[r.CampaignID]; ok {
			continue
		}
		seen[r.CampaignID] = struct{}{}
		ids = append(ids, r.CampaignID)
	}

	campaigns, err := s.campaigns.Find(ctx, &model.Campaign{}, option.WithCondition("id IN ?", ids))
	if err != nil {
		zap.L().Error("failed to expand campaign names", zap.Error(err))
		return nil, errutil.Internal("failed to fetch referrers", errutil.WithErr(err))
	}
	for _, c := range campaigns {
		names[c.ID] = c.Name
	}
	return names, nil
}
