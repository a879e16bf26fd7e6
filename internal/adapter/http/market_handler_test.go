package http_test

import (
	"net/http"
	"testing"

	httpadapter "github.com/ecopontos/ecopontos-api/internal/adapter/http"
	"github.com/ecopontos/ecopontos-api/internal/app/account"
	"github.com/ecopontos/ecopontos-api/internal/domain/model"
	"github.com/ecopontos/ecopontos-api/internal/domain/repository"
	"github.com/ecopontos/ecopontos-api/internal/mocks"
	"github.com/ecopontos/ecopontos-api/internal/testutils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupMarketRouter(t *testing.T, mockUsers *mocks.MockUserRepository, mockMarkets *mocks.MockMarketRepository) *gin.Engine {
	logger := testutils.TestLogger(t)
	service := account.NewService(mockUsers, mockMarkets, logger)
	handler := httpadapter.NewMarketHandler(service, logger)

	router := testutils.SetupTestRouter(t)
	router.POST("/markets", handler.Register)
	router.GET("/markets", handler.List)
	return router
}

func TestMarketHandler_Register(t *testing.T) {
	t.Run("creates market", func(t *testing.T) {
		mockUsers := new(mocks.MockUserRepository)
		mockMarkets := new(mocks.MockMarketRepository)
		router := setupMarketRouter(t, mockUsers, mockMarkets)

		mockMarkets.On("CreateMarket", mock.Anything, mock.AnythingOfType("*model.MarketEntity")).
			Return(nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/markets", map[string]any{
			"name":     "Mercado Verde LTDA",
			"cnpj":     "12.345.678/0001-90",
			"password": "senha-secreta",
			"address":  "Rua das Flores, 100",
		}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
		mockMarkets.AssertExpectations(t)
	})

	t.Run("duplicate cnpj returns 409", func(t *testing.T) {
		mockUsers := new(mocks.MockUserRepository)
		mockMarkets := new(mocks.MockMarketRepository)
		router := setupMarketRouter(t, mockUsers, mockMarkets)

		mockMarkets.On("CreateMarket", mock.Anything, mock.AnythingOfType("*model.MarketEntity")).
			Return(repository.ErrDuplicateKey).Once()

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/markets", map[string]any{
			"name":     "Mercado Verde LTDA",
			"cnpj":     "12.345.678/0001-90",
			"password": "senha-secreta",
			"address":  "Rua das Flores, 100",
		}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusConflict)
	})

	t.Run("missing required fields returns 400", func(t *testing.T) {
		mockUsers := new(mocks.MockUserRepository)
		mockMarkets := new(mocks.MockMarketRepository)
		router := setupMarketRouter(t, mockUsers, mockMarkets)

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/markets", map[string]any{
			"name": "Mercado Verde LTDA",
		}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
		mockMarkets.AssertNotCalled(t, "CreateMarket")
	})
}

func TestMarketHandler_List(t *testing.T) {
	mockUsers := new(mocks.MockUserRepository)
	mockMarkets := new(mocks.MockMarketRepository)
	router := setupMarketRouter(t, mockUsers, mockMarkets)

	expected := []*model.Market{
		{ID: "market-1", Name: "Mercado Verde", Address: "Rua das Flores, 100", Latitude: -23.5505, Longitude: -46.6333},
	}
	mockMarkets.On("ListMarkets", mock.Anything).Return(expected, nil).Once()

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/markets", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var body struct {
		Markets []*model.Market `json:"markets"`
	}
	testutils.ParseResponse(t, resp, &body)
	require.Len(t, body.Markets, 1)
	assert.Equal(t, "Mercado Verde", body.Markets[0].Name)
}
