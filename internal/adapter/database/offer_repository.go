package database

import (
	"context"
	"errors"
	"time"

	"github.com/ecopontos/ecopontos-api/internal/domain/model"
	"github.com/ecopontos/ecopontos-api/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OfferRepository implementa repository.OfferRepository sobre o GORM
type OfferRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewOfferRepository(db *gorm.DB, logger *zap.Logger) *OfferRepository {
	return &OfferRepository{db: db, logger: logger}
}

// offerRow é a linha projetada da junção entre ofertas e mercados
type offerRow struct {
	ID          uint
	Title       string
	Description string
	Cost        int
	Image       string
	Active      bool
	ValidFrom   *time.Time
	ValidUntil  *time.Time
	MarketID    string
	MarketName  string
	CreatedAt   time.Time
}

func (row *offerRow) toModel() *model.Offer {
	return &model.Offer{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Cost:        row.Cost,
		Image:       row.Image,
		Active:      row.Active,
		ValidFrom:   row.ValidFrom,
		ValidUntil:  row.ValidUntil,
		MarketID:    row.MarketID,
		MarketName:  row.MarketName,
		CreatedAt:   row.CreatedAt,
	}
}

// CreateOffer persiste uma nova oferta
func (r *OfferRepository) CreateOffer(ctx context.Context, offer *model.OfferEntity) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

// GetOfferByID busca uma oferta pelo ID
func (r *OfferRepository) GetOfferByID(ctx context.Context, id uint) (*model.OfferEntity, error) {
	var offer model.OfferEntity
	if err := r.db.WithContext(ctx).First(&offer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOfferNotFound
		}
		return nil, err
	}
	return &offer, nil
}

// ListActiveOffers retorna as ofertas ativas anotadas com o nome do mercado,
// da mais recente para a mais antiga
func (r *OfferRepository) ListActiveOffers(ctx context.Context) ([]*model.Offer, error) {
	var rows []offerRow
	err := r.db.WithContext(ctx).
		Table("offers").
		Select("offers.*, markets.name AS market_name").
		Joins("JOIN markets ON markets.id = offers.market_id").
		Where("offers.active = ?", true).
		Order("offers.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		r.logger.Error("Erro ao listar ofertas ativas", zap.Error(err))
		return nil, err
	}

	offers := make([]*model.Offer, 0, len(rows))
	for i := range rows {
		offers = append(offers, rows[i].toModel())
	}
	return offers, nil
}

// ListOffersByMarket retorna todas as ofertas de um mercado,
// independente do estado ativo, da mais recente para a mais antiga
func (r *OfferRepository) ListOffersByMarket(ctx context.Context, marketID string) ([]*model.Offer, error) {
	var entities []model.OfferEntity
	err := r.db.WithContext(ctx).
		Where("market_id = ?", marketID).
		Order("created_at DESC").
		Find(&entities).Error
	if err != nil {
		r.logger.Error("Erro ao listar ofertas do mercado",
			zap.String("market_id", marketID),
			zap.Error(err))
		return nil, err
	}

	offers := make([]*model.Offer, 0, len(entities))
	for i := range entities {
		offers = append(offers, entities[i].ToModel())
	}
	return offers, nil
}

// SetOfferActive alterna o estado ativo de uma oferta do próprio mercado
func (r *OfferRepository) SetOfferActive(ctx context.Context, id uint, marketID string, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.OfferEntity{}).
		Where("id = ? AND market_id = ?", id, marketID).
		Update("active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrOfferNotFound
	}
	return nil
}
