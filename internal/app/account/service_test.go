package account_test

import (
	"testing"

	"github.com/ecopontos/ecopontos-api/internal/app/account"
	"github.com/ecopontos/ecopontos-api/internal/domain/model"
	"github.com/ecopontos/ecopontos-api/internal/domain/repository"
	"github.com/ecopontos/ecopontos-api/internal/mocks"
	"github.com/ecopontos/ecopontos-api/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAccountService_RegisterUser(t *testing.T) {
	logger := testutils.TestLogger(t)

	t.Run("stores hashed password and generated id", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockUsers := new(mocks.MockUserRepository)
		mockMarkets := new(mocks.MockMarketRepository)
		service := account.NewService(mockUsers, mockMarkets, logger)

		var stored *model.UserEntity
		mockUsers.On("CreateUser", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*model.UserEntity)
			}).
			Return(nil).Once()

		user, err := service.RegisterUser(ctx, "Maria", "maria@example.com", "senha-secreta")

		require.NoError(t, err)
		require.NotNil(t, stored)

		// ID gerado é um UUID válido
		_, err = uuid.Parse(stored.ID)
		require.NoError(t, err)

		// A senha nunca é persistida em claro
		assert.NotEqual(t, "senha-secreta", stored.Password)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("senha-secreta")))

		// O modelo público não expõe a senha e nasce com saldo zero
		assert.Equal(t, stored.ID, user.ID)
		assert.Equal(t, 0, user.Points)
	})

	t.Run("duplicate email", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockUsers := new(mocks.MockUserRepository)
		mockMarkets := new(mocks.MockMarketRepository)
		service := account.NewService(mockUsers, mockMarkets, logger)

		mockUsers.On("CreateUser", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
			Return(repository.ErrDuplicateKey).Once()

		_, err := service.RegisterUser(ctx, "Maria", "maria@example.com", "senha-secreta")

		require.ErrorIs(t, err, repository.ErrDuplicateKey)
	})
}

func TestAccountService_RegisterMarket(t *testing.T) {
	logger := testutils.TestLogger(t)

	t.Run("stores geolocation and starts unverified", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockUsers := new(mocks.MockUserRepository)
		mockMarkets := new(mocks.MockMarketRepository)
		service := account.NewService(mockUsers, mockMarkets, logger)

		var stored *model.MarketEntity
		mockMarkets.On("CreateMarket", mock.Anything, mock.AnythingOfType("*model.MarketEntity")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*model.MarketEntity)
			}).
			Return(nil).Once()

		market, err := service.RegisterMarket(ctx, account.RegisterMarketInput{
			Name:      "Mercado Verde LTDA",
			TradeName: "Mercado Verde",
			CNPJ:      "12.345.678/0001-90",
			Password:  "senha-secreta",
			Address:   "Rua das Flores, 100",
			Latitude:  -23.5505,
			Longitude: -46.6333,
		})

		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, -23.5505, stored.Latitude)
		assert.False(t, stored.Verified)
		assert.Equal(t, stored.ID, market.ID)
	})

	t.Run("duplicate cnpj", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		mockUsers := new(mocks.MockUserRepository)
		mockMarkets := new(mocks.MockMarketRepository)
		service := account.NewService(mockUsers, mockMarkets, logger)

		mockMarkets.On("CreateMarket", mock.Anything, mock.AnythingOfType("*model.MarketEntity")).
			Return(repository.ErrDuplicateKey).Once()

		_, err := service.RegisterMarket(ctx, account.RegisterMarketInput{
			Name:     "Mercado Verde LTDA",
			CNPJ:     "12.345.678/0001-90",
			Password: "senha-secreta",
		})

		require.ErrorIs(t, err, repository.ErrDuplicateKey)
	})
}

func TestAccountService_GetUserByID(t *testing.T) {
	logger := testutils.TestLogger(t)

	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	mockUsers := new(mocks.MockUserRepository)
	mockMarkets := new(mocks.MockMarketRepository)
	service := account.NewService(mockUsers, mockMarkets, logger)

	entity := &model.UserEntity{ID: "user-1", Name: "Maria", Email: "maria@example.com", Points: 80}
	mockUsers.On("GetUserByID", mock.Anything, "user-1").Return(entity, nil).Once()

	user, err := service.GetUserByID(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, 80, user.Points)

	mockUsers.On("GetUserByID", mock.Anything, "missing").
		Return(nil, repository.ErrUserNotFound).Once()

	_, err = service.GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}
