package mocks

import (
	"context"

	"github.com/ecopontos/ecopontos-api/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository é um mock para repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.UserEntity) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.UserEntity, error) {
	args := m.Called(ctx, email)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.UserEntity), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (*model.UserEntity, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.UserEntity), args.Error(1)
}

// MockMarketRepository é um mock para repository.MarketRepository
type MockMarketRepository struct {
	mock.Mock
}

func (m *MockMarketRepository) CreateMarket(ctx context.Context, market *model.MarketEntity) error {
	args := m.Called(ctx, market)
	return args.Error(0)
}

func (m *MockMarketRepository) GetMarketByCNPJ(ctx context.Context, cnpj string) (*model.MarketEntity, error) {
	args := m.Called(ctx, cnpj)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.MarketEntity), args.Error(1)
}

func (m *MockMarketRepository) GetMarketByID(ctx context.Context, id string) (*model.MarketEntity, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.MarketEntity), args.Error(1)
}

func (m *MockMarketRepository) ListMarkets(ctx context.Context) ([]*model.Market, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*model.Market), args.Error(1)
}

// MockOfferRepository é um mock para repository.OfferRepository
type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) CreateOffer(ctx context.Context, offer *model.OfferEntity) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockOfferRepository) GetOfferByID(ctx context.Context, id uint) (*model.OfferEntity, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.OfferEntity), args.Error(1)
}

func (m *MockOfferRepository) ListActiveOffers(ctx context.Context) ([]*model.Offer, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*model.Offer), args.Error(1)
}

func (m *MockOfferRepository) ListOffersByMarket(ctx context.Context, marketID string) ([]*model.Offer, error) {
	args := m.Called(ctx, marketID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*model.Offer), args.Error(1)
}

func (m *MockOfferRepository) SetOfferActive(ctx context.Context, id uint, marketID string, active bool) error {
	args := m.Called(ctx, id, marketID, active)
	return args.Error(0)
}

// MockRedemptionRepository é um mock para repository.RedemptionRepository
type MockRedemptionRepository struct {
	mock.Mock
}

func (m *MockRedemptionRepository) RedeemOffer(ctx context.Context, userID string, offer *model.OfferEntity, couponCode string) (*model.Redemption, error) {
	args := m.Called(ctx, userID, offer, couponCode)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.Redemption), args.Error(1)
}
