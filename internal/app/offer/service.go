package offer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecopontos/ecopontos-api/internal/domain/model"
	"github.com/ecopontos/ecopontos-api/internal/domain/repository"
	"github.com/ecopontos/ecopontos-api/internal/infra/metrics"
	"github.com/ecopontos/ecopontos-api/pkg/cache"
	"go.uber.org/zap"
)

// Erros de regra de negócio do catálogo de ofertas e do resgate
var (
	ErrOfferUnavailable   = errors.New("oferta indisponível")
	ErrOfferNotStarted    = errors.New("oferta ainda não iniciou")
	ErrOfferExpired       = errors.New("oferta expirada")
	ErrInsufficientPoints = repository.ErrInsufficientPoints
	ErrOfferNotFound      = repository.ErrOfferNotFound
)

const (
	activeOffersCacheKey = "offers:active"
	activeOffersCacheTTL = 30 * time.Second
)

// Service gerencia o catálogo de ofertas e o resgate de pontos
type Service struct {
	offers      repository.OfferRepository
	redemptions repository.RedemptionRepository
	cache       cache.Cache
	metrics     *metrics.APIMetrics
	logger      *zap.Logger
	now         func() time.Time
}

func NewService(offers repository.OfferRepository, redemptions repository.RedemptionRepository, c cache.Cache, m *metrics.APIMetrics, logger *zap.Logger) *Service {
	if c == nil {
		c = cache.NewNoopCache()
	}
	return &Service{
		offers:      offers,
		redemptions: redemptions,
		cache:       c,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateOfferInput são os campos aceitos na publicação de uma oferta
type CreateOfferInput struct {
	Title       string
	Description string
	Cost        int
	Image       string
	ValidFrom   *time.Time
	ValidUntil  *time.Time
}

// CreateOffer publica uma nova oferta em nome do mercado autenticado
func (s *Service) CreateOffer(ctx context.Context, marketID string, input CreateOfferInput) (*model.Offer, error) {
	entity := model.OfferEntity{
		Title:       input.Title,
		Description: input.Description,
		Cost:        input.Cost,
		Image:       input.Image,
		Active:      true,
		ValidFrom:   input.ValidFrom,
		ValidUntil:  input.ValidUntil,
		MarketID:    marketID,
	}

	if err := s.offers.CreateOffer(ctx, &entity); err != nil {
		s.logger.Error("Erro ao publicar oferta",
			zap.String("market_id", marketID),
			zap.Error(err))
		return nil, err
	}

	s.invalidateActiveOffers(ctx)

	s.logger.Info("Oferta publicada",
		zap.Uint("offer_id", entity.ID),
		zap.String("market_id", marketID))
	return entity.ToModel(), nil
}

// ListActive retorna as ofertas ativas do catálogo público. O resultado é
// cacheado por um curto período para aliviar o banco na rota mais quente.
func (s *Service) ListActive(ctx context.Context) ([]*model.Offer, error) {
	var cached []*model.Offer
	if found, err := s.cache.Get(ctx, activeOffersCacheKey, &cached); err == nil && found {
		return cached, nil
	}

	offers, err := s.offers.ListActiveOffers(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, activeOffersCacheKey, offers, activeOffersCacheTTL); err != nil {
		s.logger.Warn("Erro ao cachear catálogo de ofertas", zap.Error(err))
	}

	return offers, nil
}

// ListByMarket retorna todas as ofertas do mercado autenticado,
// inclusive as inativas
func (s *Service) ListByMarket(ctx context.Context, marketID string) ([]*model.Offer, error) {
	return s.offers.ListOffersByMarket(ctx, marketID)
}

// SetActive alterna o estado ativo de uma oferta do próprio mercado.
// Retorna ErrOfferNotFound quando a oferta não existe ou pertence a outro
// mercado; os dois casos são indistinguíveis para quem chama.
func (s *Service) SetActive(ctx context.Context, id uint, marketID string, active bool) error {
	if err := s.offers.SetOfferActive(ctx, id, marketID, active); err != nil {
		return err
	}
	s.invalidateActiveOffers(ctx)
	return nil
}

// Redeem troca pontos do usuário por um cupom da oferta. As regras são
// verificadas nesta ordem: existência, oferta ativa, janela de validade e,
// por fim, saldo — o saldo só é consumido dentro da transação de débito.
func (s *Service) Redeem(ctx context.Context, userID string, offerID uint) (*model.Redemption, error) {
	offer, err := s.offers.GetOfferByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			s.rejected("not_found")
		}
		return nil, err
	}

	if !offer.Active {
		s.rejected("inactive")
		return nil, ErrOfferUnavailable
	}

	now := s.now()
	if offer.ValidFrom != nil && now.Before(*offer.ValidFrom) {
		s.rejected("not_started")
		return nil, ErrOfferNotStarted
	}
	if offer.ValidUntil != nil && now.After(*offer.ValidUntil) {
		s.rejected("expired")
		return nil, ErrOfferExpired
	}

	redemption, err := s.redemptions.RedeemOffer(ctx, userID, offer, s.couponCode(offer))
	if errors.Is(err, repository.ErrDuplicateKey) {
		// Colisão de cupom: o sufixo tem só quatro dígitos, então dois
		// resgates da mesma oferta no mesmo milissegundo truncado colidem.
		// Uma única repetição resolve na prática.
		s.logger.Warn("Colisão de código de cupom, repetindo",
			zap.Uint("offer_id", offer.ID),
			zap.String("user_id", userID))
		redemption, err = s.redemptions.RedeemOffer(ctx, userID, offer, s.couponCode(offer))
	}
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientPoints) {
			s.rejected("insufficient_points")
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RedemptionCompleted(redemption.CostAtTime)
	}
	s.logger.Info("Resgate concluído",
		zap.Uint("redemption_id", redemption.ID),
		zap.Uint("offer_id", offer.ID),
		zap.String("user_id", userID),
		zap.Int("cost", redemption.CostAtTime),
		zap.String("coupon", redemption.CouponCode))
	return redemption, nil
}

// couponCode gera o código do cupom no formato "#<oferta>-<sufixo>"
func (s *Service) couponCode(offer *model.OfferEntity) string {
	return fmt.Sprintf("#%d-%04d", offer.ID, s.now().UnixMilli()%10000)
}

func (s *Service) invalidateActiveOffers(ctx context.Context) {
	if err := s.cache.Delete(ctx, activeOffersCacheKey); err != nil {
		s.logger.Warn("Erro ao invalidar cache de ofertas", zap.Error(err))
	}
}

func (s *Service) rejected(reason string) {
	if s.metrics != nil {
		s.metrics.RedemptionRejected(reason)
	}
}
