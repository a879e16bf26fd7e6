package http_test

import (
	"net/http"
	"testing"

	httpadapter "github.com/ecopontos/ecopontos-api/internal/adapter/http"
	"github.com/ecopontos/ecopontos-api/internal/app/offer"
	"github.com/ecopontos/ecopontos-api/internal/domain/model"
	"github.com/ecopontos/ecopontos-api/internal/domain/repository"
	"github.com/ecopontos/ecopontos-api/internal/infra/middleware"
	"github.com/ecopontos/ecopontos-api/internal/mocks"
	"github.com/ecopontos/ecopontos-api/internal/testutils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// asAccount injeta uma conta autenticada no contexto, como o middleware de
// autenticação faria
func asAccount(account *model.Account) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.AccountKey, account)
		c.Next()
	}
}

func userAccount() *model.Account {
	return &model.Account{ID: "user-1", Type: model.AccountTypeUser, Name: "Maria", Verified: true}
}

func marketAccount() *model.Account {
	return &model.Account{ID: "market-1", Type: model.AccountTypeMarket, Name: "Mercado Verde", Verified: true}
}

func TestOfferHandler_Redeem(t *testing.T) {
	logger := testutils.TestLogger(t)

	setup := func(t *testing.T, mockOffers *mocks.MockOfferRepository, mockRedemptions *mocks.MockRedemptionRepository) *gin.Engine {
		service := offer.NewService(mockOffers, mockRedemptions, nil, nil, logger)
		handler := httpadapter.NewOfferHandler(service, logger)

		router := testutils.SetupTestRouter(t)
		router.POST("/market/redeem", asAccount(userAccount()), handler.Redeem)
		return router
	}

	t.Run("successful redemption returns coupon", func(t *testing.T) {
		mockOffers := new(mocks.MockOfferRepository)
		mockRedemptions := new(mocks.MockRedemptionRepository)
		router := setup(t, mockOffers, mockRedemptions)

		entity := &model.OfferEntity{ID: 7, Title: "Desconto na feira", Cost: 50, Active: true, MarketID: "market-1"}
		redemption := &model.Redemption{ID: 1, UserID: "user-1", OfferID: 7, CostAtTime: 50, CouponCode: "#7-1234"}

		mockOffers.On("GetOfferByID", mock.Anything, uint(7)).Return(entity, nil).Once()
		mockRedemptions.On("RedeemOffer", mock.Anything, "user-1", entity, mock.AnythingOfType("string")).
			Return(redemption, nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/market/redeem",
			map[string]any{"offerId": 7}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusOK)

		var body struct {
			Redemption model.Redemption `json:"redemption"`
		}
		testutils.ParseResponse(t, resp, &body)
		assert.Equal(t, "#7-1234", body.Redemption.CouponCode)
		assert.Equal(t, 50, body.Redemption.CostAtTime)
	})

	t.Run("insufficient points returns 400", func(t *testing.T) {
		mockOffers := new(mocks.MockOfferRepository)
		mockRedemptions := new(mocks.MockRedemptionRepository)
		router := setup(t, mockOffers, mockRedemptions)

		entity := &model.OfferEntity{ID: 7, Cost: 5000, Active: true, MarketID: "market-1"}
		mockOffers.On("GetOfferByID", mock.Anything, uint(7)).Return(entity, nil).Once()
		mockRedemptions.On("RedeemOffer", mock.Anything, "user-1", entity, mock.AnythingOfType("string")).
			Return(nil, repository.ErrInsufficientPoints).Once()

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/market/redeem",
			map[string]any{"offerId": 7}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("inactive offer returns 400", func(t *testing.T) {
		mockOffers := new(mocks.MockOfferRepository)
		mockRedemptions := new(mocks.MockRedemptionRepository)
		router := setup(t, mockOffers, mockRedemptions)

		entity := &model.OfferEntity{ID: 7, Cost: 50, Active: false, MarketID: "market-1"}
		mockOffers.On("GetOfferByID", mock.Anything, uint(7)).Return(entity, nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/market/redeem",
			map[string]any{"offerId": 7}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("unknown offer is reported as unavailable", func(t *testing.T) {
		mockOffers := new(mocks.MockOfferRepository)
		mockRedemptions := new(mocks.MockRedemptionRepository)
		router := setup(t, mockOffers, mockRedemptions)

		mockOffers.On("GetOfferByID", mock.Anything, uint(99)).
			Return(nil, repository.ErrOfferNotFound).Once()

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/market/redeem",
			map[string]any{"offerId": 99}, nil)

		// A missing offer is indistinguishable from an inactive one
		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)

		var body map[string]string
		testutils.ParseResponse(t, resp, &body)
		assert.Equal(t, "Oferta indisponível", body["error"])
		mockRedemptions.AssertNotCalled(t, "RedeemOffer")
	})

	t.Run("missing offerId returns 400", func(t *testing.T) {
		mockOffers := new(mocks.MockOfferRepository)
		mockRedemptions := new(mocks.MockRedemptionRepository)
		router := setup(t, mockOffers, mockRedemptions)

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/market/redeem",
			map[string]any{}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	})
}

func TestOfferHandler_Create(t *testing.T) {
	logger := testutils.TestLogger(t)

	t.Run("market publishes an offer", func(t *testing.T) {
		mockOffers := new(mocks.MockOfferRepository)
		service := offer.NewService(mockOffers, nil, nil, nil, logger)
		handler := httpadapter.NewOfferHandler(service, logger)

		router := testutils.SetupTestRouter(t)
		router.POST("/market/offers", asAccount(marketAccount()), handler.Create)

		mockOffers.On("CreateOffer", mock.Anything, mock.MatchedBy(func(e *model.OfferEntity) bool {
			return e.MarketID == "market-1" && e.Title == "Desconto na feira" && e.Cost == 50
		})).Return(nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/market/offers",
			map[string]any{"title": "Desconto na feira", "cost": 50}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
		mockOffers.AssertExpectations(t)
	})

	t.Run("invalid validity window returns 400", func(t *testing.T) {
		mockOffers := new(mocks.MockOfferRepository)
		service := offer.NewService(mockOffers, nil, nil, nil, logger)
		handler := httpadapter.NewOfferHandler(service, logger)

		router := testutils.SetupTestRouter(t)
		router.POST("/market/offers", asAccount(marketAccount()), handler.Create)

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/market/offers",
			map[string]any{
				"title":      "Desconto na feira",
				"cost":       50,
				"validFrom":  "2026-09-10T00:00:00Z",
				"validUntil": "2026-09-01T00:00:00Z",
			}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
		mockOffers.AssertNotCalled(t, "CreateOffer")
	})
}

func TestOfferHandler_ListActive(t *testing.T) {
	logger := testutils.TestLogger(t)

	mockOffers := new(mocks.MockOfferRepository)
	service := offer.NewService(mockOffers, nil, nil, nil, logger)
	handler := httpadapter.NewOfferHandler(service, logger)

	router := testutils.SetupTestRouter(t)
	router.GET("/market/offers", asAccount(userAccount()), handler.ListActive)

	expected := []*model.Offer{
		{ID: 1, Title: "Desconto na feira", Cost: 50, Active: true, MarketID: "market-1", MarketName: "Mercado Verde"},
	}
	mockOffers.On("ListActiveOffers", mock.Anything).Return(expected, nil).Once()

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/market/offers", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var body struct {
		Offers []*model.Offer `json:"offers"`
	}
	testutils.ParseResponse(t, resp, &body)
	require.Len(t, body.Offers, 1)
	assert.Equal(t, "Mercado Verde", body.Offers[0].MarketName)
}

func TestOfferHandler_SetActive(t *testing.T) {
	logger := testutils.TestLogger(t)

	setup := func(t *testing.T, mockOffers *mocks.MockOfferRepository) *gin.Engine {
		service := offer.NewService(mockOffers, nil, nil, nil, logger)
		handler := httpadapter.NewOfferHandler(service, logger)

		router := testutils.SetupTestRouter(t)
		router.PATCH("/market/my-offers/:id/active", asAccount(marketAccount()), handler.SetActive)
		return router
	}

	t.Run("deactivates own offer", func(t *testing.T) {
		mockOffers := new(mocks.MockOfferRepository)
		router := setup(t, mockOffers)

		mockOffers.On("SetOfferActive", mock.Anything, uint(7), "market-1", false).Return(nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodPatch, "/market/my-offers/7/active",
			map[string]any{"active": false}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusOK)
		mockOffers.AssertExpectations(t)
	})

	t.Run("offer of another market returns 404", func(t *testing.T) {
		mockOffers := new(mocks.MockOfferRepository)
		router := setup(t, mockOffers)

		mockOffers.On("SetOfferActive", mock.Anything, uint(8), "market-1", true).
			Return(repository.ErrOfferNotFound).Once()

		resp := testutils.MakeRequest(t, router, http.MethodPatch, "/market/my-offers/8/active",
			map[string]any{"active": true}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
	})

	t.Run("invalid id returns 400", func(t *testing.T) {
		mockOffers := new(mocks.MockOfferRepository)
		router := setup(t, mockOffers)

		resp := testutils.MakeRequest(t, router, http.MethodPatch, "/market/my-offers/abc/active",
			map[string]any{"active": true}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	})
}
