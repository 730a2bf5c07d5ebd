package campaign

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"refermark-server/internal/model"
	"refermark-server/pkg/db/option"
	"refermark-server/pkg/errutil"
	"refermark-server/pkg/repository"
	"refermark-server/services/testutil"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	db := testutil.NewTestDB(t, &model.Campaign{})
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return NewService(ServiceParams{DB: db, Node: node})
}

func validCreateRequest() *CreateRequest {
	start := time.Now()
	end := start.Add(30 * 24 * time.Hour)
	return &CreateRequest{
		Name:          "Summer",
		Description:   "Summer referral push",
		RewardType:    "Discount",
		RewardDetails: "10%",
		StartDate:     &start,
		EndDate:       &end,
	}
}

func TestCreateCampaignDefaultsActive(t *testing.T) {
	svc := newTestService(t)

	c, err := svc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)
	require.True(t, c.IsActive)
	require.NotEmpty(t, c.ID)
	require.Equal(t, model.RewardTypeDiscount, c.RewardType)
}

func TestCreateCampaignExplicitlyInactive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := validCreateRequest()
	off := false
	req.IsActive = &off

	c, err := svc.Create(ctx, "user-1", req)
	require.NoError(t, err)
	require.False(t, c.IsActive)

	// The explicit false must survive the round trip to storage.
	stored, err := svc.Get(ctx, "user-1", c.ID)
	require.NoError(t, err)
	require.False(t, stored.IsActive)

	stats, err := svc.Stats(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.TotalCampaigns)
	require.Zero(t, stats.ActiveCampaigns)
}

func TestCreateCampaignForcesOwner(t *testing.T) {
	svc := newTestService(t)

	req := validCreateRequest()
	req.Owner = "someone-else"

	c, err := svc.Create(context.Background(), "user-1", req)
	require.NoError(t, err)
	require.Equal(t, "user-1", c.OwnerID)
}

func TestCreateCampaignValidationListsAllViolations(t *testing.T) {
	svc := &Service{}

	_, err := svc.Create(context.Background(), "user-1", &CreateRequest{
		Name:       "   not empty but missing everything else is fine for name",
		RewardType: "Karma",
	})
	require.Error(t, err)

	var be errutil.BaseError
	require.ErrorAs(t, err, &be)
	require.Equal(t, errutil.StatusValidationFailed, be.Code)

	fields := make(map[string]bool)
	for _, d := range be.Details {
		fields[d.Field] = true
	}
	require.True(t, fields["description"])
	require.True(t, fields["rewardType"])
	require.True(t, fields["rewardDetails"])
	require.True(t, fields["startDate"])
	require.True(t, fields["endDate"])
}

func TestCreateCampaignNameTooLong(t *testing.T) {
	svc := &Service{}

	req := validCreateRequest()
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	req.Name = string(long)

	_, err := svc.Create(context.Background(), "user-1", req)

	var be errutil.BaseError
	require.ErrorAs(t, err, &be)
	require.Equal(t, errutil.StatusValidationFailed, be.Code)
}

func TestGetCampaignNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "user-1", "missing")

	var be errutil.BaseError
	require.ErrorAs(t, err, &be)
	require.Equal(t, errutil.StatusNotFound, be.Code)
}

func TestGetCampaignWrongOwner(t *testing.T) {
	svc := newTestService(t)

	c, err := svc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "user-2", c.ID)

	var be errutil.BaseError
	require.ErrorAs(t, err, &be)
	require.Equal(t, errutil.StatusUnauthorized, be.Code)
}

func TestUpdateCampaignIgnoresOwnerField(t *testing.T) {
	svc := newTestService(t)

	c, err := svc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	otherOwner := "user-2"
	newName := "Autumn"
	updated, err := svc.Update(context.Background(), "user-1", c.ID, &UpdateRequest{
		Name:  &newName,
		Owner: &otherOwner,
	})
	require.NoError(t, err)
	require.Equal(t, "Autumn", updated.Name)
	require.Equal(t, "user-1", updated.OwnerID)
}

func TestUpdateCampaignWrongOwner(t *testing.T) {
	svc := newTestService(t)

	c, err := svc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	name := "Hijacked"
	_, err = svc.Update(context.Background(), "user-2", c.ID, &UpdateRequest{Name: &name})

	var be errutil.BaseError
	require.ErrorAs(t, err, &be)
	require.Equal(t, errutil.StatusUnauthorized, be.Code)
}

func TestDeleteCampaign(t *testing.T) {
	svc := newTestService(t)

	c, err := svc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "user-1", c.ID))

	_, err = svc.Get(context.Background(), "user-1", c.ID)
	var be errutil.BaseError
	require.ErrorAs(t, err, &be)
	require.Equal(t, errutil.StatusNotFound, be.Code)
}

func TestStatsCountsActiveAtCallTime(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	running := validCreateRequest()
	_, err := svc.Create(ctx, "user-1", running)
	require.NoError(t, err)

	expired := validCreateRequest()
	pastStart := time.Now().Add(-60 * 24 * time.Hour)
	pastEnd := time.Now().Add(-30 * 24 * time.Hour)
	expired.StartDate = &pastStart
	expired.EndDate = &pastEnd
	_, err = svc.Create(ctx, "user-1", expired)
	require.NoError(t, err)

	inactive := validCreateRequest()
	off := false
	inactive.IsActive = &off
	_, err = svc.Create(ctx, "user-1", inactive)
	require.NoError(t, err)

	// Another owner's campaigns must not leak into the counters.
	_, err = svc.Create(ctx, "user-2", validCreateRequest())
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.TotalCampaigns)
	require.Equal(t, int64(1), stats.ActiveCampaigns)
	require.LessOrEqual(t, stats.ActiveCampaigns, stats.TotalCampaigns)
}

type mockCampaignRepository struct {
	findFn func(ctx context.Context, query *model.Campaign, opts ...option.QueryOption) ([]*model.Campaign, error)
}

func (m *mockCampaignRepository) WithTrx(tx *gorm.DB) repository.Repository[model.Campaign] {
	return m
}

func (m *mockCampaignRepository) Find(ctx context.Context, query *model.Campaign, opts ...option.QueryOption) ([]*model.Campaign, error) {
	if m.findFn != nil {
		return m.findFn(ctx, query, opts...)
	}
	return nil, nil
}

func (m *mockCampaignRepository) FindOne(context.Context, *model.Campaign, ...option.QueryOption) (*model.Campaign, error) {
	return nil, nil
}
func (m *mockCampaignRepository) Create(context.Context, *model.Campaign) error     { return nil }
func (m *mockCampaignRepository) Update(context.Context, string, any) error         { return nil }
func (m *mockCampaignRepository) Delete(context.Context, *model.Campaign) error     { return nil }
func (m *mockCampaignRepository) Count(context.Context, *model.Campaign, ...option.QueryOption) (int64, error) {
	return 0, nil
}

func TestListCampaignsRepositoryError(t *testing.T) {
	svc := &Service{campaigns: &mockCampaignRepository{
		findFn: func(ctx context.Context, _ *model.Campaign, _ ...option.QueryOption) ([]*model.Campaign, error) {
			return nil, errors.New("boom")
		},
	}}

	_, err := svc.List(context.Background(), "user-1")

	var be errutil.BaseError
	require.ErrorAs(t, err, &be)
	require.Equal(t, errutil.StatusInternal, be.Code)
}
