package offer_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/ecopontos/ecopontos-api/internal/app/offer"
	"github.com/ecopontos/ecopontos-api/internal/domain/model"
	"github.com/ecopontos/ecopontos-api/internal/domain/repository"
	"github.com/ecopontos/ecopontos-api/internal/mocks"
	"github.com/ecopontos/ecopontos-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var couponPattern = regexp.MustCompile(`^#\d+-\d{4}$`)

func activeOffer(id uint, cost int) *model.OfferEntity {
	return &model.OfferEntity{
		ID:       id,
		Title:    "Desconto na feira",
		Cost:     cost,
		Active:   true,
		MarketID: "market-1",
	}
}

func TestOfferService_Redeem(t *testing.T) {
	logger := testutils.TestLogger(t)

	t.Run("successful redemption", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockOffers := new(mocks.MockOfferRepository)
		mockRedemptions := new(mocks.MockRedemptionRepository)
		service := offer.NewService(mockOffers, mockRedemptions, nil, nil, logger)

		entity := activeOffer(7, 50)
		expected := &model.Redemption{
			ID:         1,
			UserID:     "user-1",
			OfferID:    7,
			CostAtTime: 50,
			CouponCode: "#7-1234",
		}

		mockOffers.On("GetOfferByID", mock.Anything, uint(7)).Return(entity, nil).Once()
		mockRedemptions.On("RedeemOffer", mock.Anything, "user-1", entity,
			mock.MatchedBy(func(code string) bool { return couponPattern.MatchString(code) })).
			Return(expected, nil).Once()

		redemption, err := service.Redeem(ctx, "user-1", 7)

		require.NoError(t, err)
		assert.Equal(t, expected, redemption)
		mockOffers.AssertExpectations(t)
		mockRedemptions.AssertExpectations(t)
	})

	t.Run("offer not found", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockOffers := new(mocks.MockOfferRepository)
		mockRedemptions := new(mocks.MockRedemptionRepository)
		service := offer.NewService(mockOffers, mockRedemptions, nil, nil, logger)

		mockOffers.On("GetOfferByID", mock.Anything, uint(99)).
			Return(nil, repository.ErrOfferNotFound).Once()

		_, err := service.Redeem(ctx, "user-1", 99)

		require.ErrorIs(t, err, repository.ErrOfferNotFound)
		mockRedemptions.AssertNotCalled(t, "RedeemOffer")
	})

	t.Run("inactive offer is unavailable", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockOffers := new(mocks.MockOfferRepository)
		mockRedemptions := new(mocks.MockRedemptionRepository)
		service := offer.NewService(mockOffers, mockRedemptions, nil, nil, logger)

		entity := activeOffer(7, 50)
		entity.Active = false
		mockOffers.On("GetOfferByID", mock.Anything, uint(7)).Return(entity, nil).Once()

		_, err := service.Redeem(ctx, "user-1", 7)

		require.ErrorIs(t, err, offer.ErrOfferUnavailable)
		mockRedemptions.AssertNotCalled(t, "RedeemOffer")
	})

	t.Run("offer not started yet", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockOffers := new(mocks.MockOfferRepository)
		mockRedemptions := new(mocks.MockRedemptionRepository)
		service := offer.NewService(mockOffers, mockRedemptions, nil, nil, logger)

		entity := activeOffer(7, 50)
		future := time.Now().Add(24 * time.Hour)
		entity.ValidFrom = &future
		mockOffers.On("GetOfferByID", mock.Anything, uint(7)).Return(entity, nil).Once()

		_, err := service.Redeem(ctx, "user-1", 7)

		require.ErrorIs(t, err, offer.ErrOfferNotStarted)
		mockRedemptions.AssertNotCalled(t, "RedeemOffer")
	})

	t.Run("expired offer", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockOffers := new(mocks.MockOfferRepository)
		mockRedemptions := new(mocks.MockRedemptionRepository)
		service := offer.NewService(mockOffers, mockRedemptions, nil, nil, logger)

		entity := activeOffer(7, 50)
		past := time.Now().Add(-24 * time.Hour)
		entity.ValidUntil = &past
		mockOffers.On("GetOfferByID", mock.Anything, uint(7)).Return(entity, nil).Once()

		_, err := service.Redeem(ctx, "user-1", 7)

		require.ErrorIs(t, err, offer.ErrOfferExpired)
		mockRedemptions.AssertNotCalled(t, "RedeemOffer")
	})

	t.Run("insufficient points", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockOffers := new(mocks.MockOfferRepository)
		mockRedemptions := new(mocks.MockRedemptionRepository)
		service := offer.NewService(mockOffers, mockRedemptions, nil, nil, logger)

		entity := activeOffer(7, 5000)
		mockOffers.On("GetOfferByID", mock.Anything, uint(7)).Return(entity, nil).Once()
		mockRedemptions.On("RedeemOffer", mock.Anything, "user-1", entity, mock.AnythingOfType("string")).
			Return(nil, repository.ErrInsufficientPoints).Once()

		_, err := service.Redeem(ctx, "user-1", 7)

		require.ErrorIs(t, err, repository.ErrInsufficientPoints)
		mockRedemptions.AssertExpectations(t)
	})

	t.Run("coupon collision triggers a single retry", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockOffers := new(mocks.MockOfferRepository)
		mockRedemptions := new(mocks.MockRedemptionRepository)
		service := offer.NewService(mockOffers, mockRedemptions, nil, nil, logger)

		entity := activeOffer(7, 50)
		expected := &model.Redemption{ID: 2, UserID: "user-1", OfferID: 7, CostAtTime: 50, CouponCode: "#7-4321"}

		mockOffers.On("GetOfferByID", mock.Anything, uint(7)).Return(entity, nil).Once()
		mockRedemptions.On("RedeemOffer", mock.Anything, "user-1", entity, mock.AnythingOfType("string")).
			Return(nil, repository.ErrDuplicateKey).Once()
		mockRedemptions.On("RedeemOffer", mock.Anything, "user-1", entity, mock.AnythingOfType("string")).
			Return(expected, nil).Once()

		redemption, err := service.Redeem(ctx, "user-1", 7)

		require.NoError(t, err)
		assert.Equal(t, expected, redemption)
		mockRedemptions.AssertExpectations(t)
	})

	t.Run("collision on retry surfaces the error", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockOffers := new(mocks.MockOfferRepository)
		mockRedemptions := new(mocks.MockRedemptionRepository)
		service := offer.NewService(mockOffers, mockRedemptions, nil, nil, logger)

		entity := activeOffer(7, 50)
		mockOffers.On("GetOfferByID", mock.Anything, uint(7)).Return(entity, nil).Once()
		mockRedemptions.On("RedeemOffer", mock.Anything, "user-1", entity, mock.AnythingOfType("string")).
			Return(nil, repository.ErrDuplicateKey).Twice()

		_, err := service.Redeem(ctx, "user-1", 7)

		require.ErrorIs(t, err, repository.ErrDuplicateKey)
		mockRedemptions.AssertExpectations(t)
	})
}

func TestOfferService_ListActive(t *testing.T) {
	logger := testutils.TestLogger(t)

	expectedOffers := []*model.Offer{
		{ID: 1, Title: "Desconto na feira", Cost: 50, Active: true, MarketID: "market-1", MarketName: "Mercado Verde"},
	}

	t.Run("cache miss populates cache", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockOffers := new(mocks.MockOfferRepository)
		mockCache := new(mocks.MockCache)
		service := offer.NewService(mockOffers, nil, mockCache, nil, logger)

		mockCache.On("Get", mock.Anything, "offers:active", mock.AnythingOfType("*[]*model.Offer")).
			Return(false, nil).Once()
		mockOffers.On("ListActiveOffers", mock.Anything).Return(expectedOffers, nil).Once()
		mockCache.On("Set", mock.Anything, "offers:active", expectedOffers, 30*time.Second).
			Return(nil).Once()

		offers, err := service.ListActive(ctx)

		require.NoError(t, err)
		assert.Equal(t, expectedOffers, offers)
		mockCache.AssertExpectations(t)
		mockOffers.AssertExpectations(t)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockOffers := new(mocks.MockOfferRepository)
		mockCache := new(mocks.MockCache)
		service := offer.NewService(mockOffers, nil, mockCache, nil, logger)

		mockCache.On("Get", mock.Anything, "offers:active", mock.AnythingOfType("*[]*model.Offer")).
			Return(true, nil, func(dest interface{}) {
				ptr := dest.(*[]*model.Offer)
				*ptr = expectedOffers
			}).Once()

		offers, err := service.ListActive(ctx)

		require.NoError(t, err)
		assert.Equal(t, expectedOffers, offers)
		mockOffers.AssertNotCalled(t, "ListActiveOffers")
	})
}

func TestOfferService_CreateOffer(t *testing.T) {
	logger := testutils.TestLogger(t)

	t.Run("creates active offer and invalidates cache", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockOffers := new(mocks.MockOfferRepository)
		mockCache := new(mocks.MockCache)
		service := offer.NewService(mockOffers, nil, mockCache, nil, logger)

		mockOffers.On("CreateOffer", mock.Anything, mock.MatchedBy(func(e *model.OfferEntity) bool {
			return e.Active && e.MarketID == "market-1" && e.Title == "Desconto na feira" && e.Cost == 50
		})).Return(nil).Once()
		mockCache.On("Delete", mock.Anything, "offers:active").Return(nil).Once()

		created, err := service.CreateOffer(ctx, "market-1", offer.CreateOfferInput{
			Title: "Desconto na feira",
			Cost:  50,
		})

		require.NoError(t, err)
		assert.True(t, created.Active)
		assert.Equal(t, "market-1", created.MarketID)
		mockOffers.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})
}

func TestOfferService_SetActive(t *testing.T) {
	logger := testutils.TestLogger(t)

	t.Run("toggles and invalidates cache", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockOffers := new(mocks.MockOfferRepository)
		mockCache := new(mocks.MockCache)
		service := offer.NewService(mockOffers, nil, mockCache, nil, logger)

		mockOffers.On("SetOfferActive", mock.Anything, uint(7), "market-1", false).Return(nil).Once()
		mockCache.On("Delete", mock.Anything, "offers:active").Return(nil).Once()

		err := service.SetActive(ctx, 7, "market-1", false)

		require.NoError(t, err)
		mockOffers.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("unknown offer passes the error through", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockOffers := new(mocks.MockOfferRepository)
		mockCache := new(mocks.MockCache)
		service := offer.NewService(mockOffers, nil, mockCache, nil, logger)

		mockOffers.On("SetOfferActive", mock.Anything, uint(99), "market-1", true).
			Return(repository.ErrOfferNotFound).Once()

		err := service.SetActive(ctx, 99, "market-1", true)

		require.ErrorIs(t, err, repository.ErrOfferNotFound)
		mockCache.AssertNotCalled(t, "Delete")
	})
}

func TestOfferService_ListByMarket(t *testing.T) {
	logger := testutils.TestLogger(t)

	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	mockOffers := new(mocks.MockOfferRepository)
	service := offer.NewService(mockOffers, nil, nil, nil, logger)

	expected := []*model.Offer{
		{ID: 1, Title: "Ativa", Active: true, MarketID: "market-1"},
		{ID: 2, Title: "Inativa", Active: false, MarketID: "market-1"},
	}
	mockOffers.On("ListOffersByMarket", mock.Anything, "market-1").Return(expected, nil).Once()

	offers, err := service.ListByMarket(ctx, "market-1")

	require.NoError(t, err)
	assert.Equal(t, expected, offers)

	var errTest = errors.New("db down")
	mockOffers.On("ListOffersByMarket", mock.Anything, "market-2").Return(nil, errTest).Once()

	_, err = service.ListByMarket(ctx, "market-2")
	require.ErrorIs(t, err, errTest)
}
