package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ecopontos/ecopontos-api/internal/app/offer"
	"github.com/ecopontos/ecopontos-api/internal/domain/repository"
	"github.com/ecopontos/ecopontos-api/internal/infra/middleware"
	apperrors "github.com/ecopontos/ecopontos-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OfferHandler expõe o catálogo de ofertas e o resgate de pontos
type OfferHandler struct {
	offers *offer.Service
	logger *zap.Logger
}

func NewOfferHandler(offers *offer.Service, logger *zap.Logger) *OfferHandler {
	return &OfferHandler{
		offers: offers,
		logger: logger,
	}
}

type createOfferRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Cost        int        `json:"cost" binding:"required,gt=0"`
	Image       string     `json:"image"`
	ValidFrom   *time.Time `json:"validFrom"`
	ValidUntil  *time.Time `json:"validUntil"`
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type redeemRequest struct {
	OfferID uint `json:"offerId" binding:"required"`
}

// Create publica uma nova oferta em nome do mercado autenticado
func (h *OfferHandler) Create(c *gin.Context) {
	acct, ok := middleware.AccountFromContext(c)
	if !ok {
		respondError(c, h.logger, apperrors.InternalServer("Falha ao obter informações da conta", nil))
		return
	}

	var req createOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if req.ValidFrom != nil && req.ValidUntil != nil && req.ValidUntil.Before(*req.ValidFrom) {
		respondError(c, h.logger, apperrors.BadRequest("Janela de validade inválida", nil))
		return
	}

	created, err := h.offers.CreateOffer(c.Request.Context(), acct.ID, offer.CreateOfferInput{
		Title:       req.Title,
		Description: req.Description,
		Cost:        req.Cost,
		Image:       req.Image,
		ValidFrom:   req.ValidFrom,
		ValidUntil:  req.ValidUntil,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"offer": created})
}

// ListActive retorna o catálogo público de ofertas ativas
func (h *OfferHandler) ListActive(c *gin.Context) {
	offers, err := h.offers.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// ListMine retorna todas as ofertas do mercado autenticado
func (h *OfferHandler) ListMine(c *gin.Context) {
	acct, ok := middleware.AccountFromContext(c)
	if !ok {
		respondError(c, h.logger, apperrors.InternalServer("Falha ao obter informações da conta", nil))
		return
	}

	offers, err := h.offers.ListByMarket(c.Request.Context(), acct.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// SetActive alterna o estado ativo de uma oferta do mercado autenticado.
// Ofertas de outros mercados respondem 404, sem revelar se existem.
func (h *OfferHandler) SetActive(c *gin.Context) {
	acct, ok := middleware.AccountFromContext(c)
	if !ok {
		respondError(c, h.logger, apperrors.InternalServer("Falha ao obter informações da conta", nil))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, h.logger, apperrors.BadRequest("ID de oferta inválido", err))
		return
	}

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.offers.SetActive(c.Request.Context(), uint(id), acct.ID, *req.Active); err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			respondError(c, h.logger, apperrors.NotFound("Oferta", err))
			return
		}
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": uint(id), "active": *req.Active})
}

// Redeem troca pontos do usuário autenticado por um cupom. Toda falha de
// domínio, incluindo oferta inexistente, responde 400.
func (h *OfferHandler) Redeem(c *gin.Context) {
	acct, ok := middleware.AccountFromContext(c)
	if !ok {
		respondError(c, h.logger, apperrors.InternalServer("Falha ao obter informações da conta", nil))
		return
	}

	var req redeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	redemption, err := h.offers.Redeem(c.Request.Context(), acct.ID, req.OfferID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"redemption": redemption})
}
