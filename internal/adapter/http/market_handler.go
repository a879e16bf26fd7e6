package http

import (
	"errors"
	"net/http"

	"github.com/ecopontos/ecopontos-api/internal/app/account"
	"github.com/ecopontos/ecopontos-api/internal/domain/repository"
	apperrors "github.com/ecopontos/ecopontos-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MarketHandler expõe as rotas de cadastro e listagem de mercados parceiros
type MarketHandler struct {
	accounts *account.Service
	logger   *zap.Logger
}

func NewMarketHandler(accounts *account.Service, logger *zap.Logger) *MarketHandler {
	return &MarketHandler{
		accounts: accounts,
		logger:   logger,
	}
}

type registerMarketRequest struct {
	Name      string  `json:"name" binding:"required"`
	TradeName string  `json:"tradeName"`
	CNPJ      string  `json:"cnpj" binding:"required"`
	Password  string  `json:"password" binding:"required,min=8"`
	Address   string  `json:"address" binding:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Register cadastra um novo mercado parceiro
func (h *MarketHandler) Register(c *gin.Context) {
	var req registerMarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	market, err := h.accounts.RegisterMarket(c.Request.Context(), account.RegisterMarketInput{
		Name:      req.Name,
		TradeName: req.TradeName,
		CNPJ:      req.CNPJ,
		Password:  req.Password,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			respondError(c, h.logger, apperrors.Conflict("CNPJ já cadastrado", err))
			return
		}
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"market": market})
}

// List retorna os mercados parceiros para o mapa de pontos de coleta
func (h *MarketHandler) List(c *gin.Context) {
	markets, err := h.accounts.ListMarkets(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"markets": markets})
}
