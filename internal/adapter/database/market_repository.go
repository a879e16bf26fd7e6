package database

import (
	"context"
	"errors"

	"github.com/ecopontos/ecopontos-api/internal/domain/model"
	"github.com/ecopontos/ecopontos-api/internal/domain/repository"
	"gorm.io/gorm"
)

// MarketRepository implementa repository.MarketRepository sobre o GORM
type MarketRepository struct {
	db *gorm.DB
}

func NewMarketRepository(db *gorm.DB) *MarketRepository {
	return &MarketRepository{db: db}
}

// CreateMarket persiste um novo mercado parceiro
func (r *MarketRepository) CreateMarket(ctx context.Context, market *model.MarketEntity) error {
	if err := r.db.WithContext(ctx).Create(market).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicateKey
		}
		return err
	}
	return nil
}

// GetMarketByCNPJ busca um mercado pelo CNPJ, incluindo o hash da senha
func (r *MarketRepository) GetMarketByCNPJ(ctx context.Context, cnpj string) (*model.MarketEntity, error) {
	var market model.MarketEntity
	if err := r.db.WithContext(ctx).Where("cnpj = ?", cnpj).First(&market).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMarketNotFound
		}
		return nil, err
	}
	return &market, nil
}

// GetMarketByID busca um mercado pelo ID
func (r *MarketRepository) GetMarketByID(ctx context.Context, id string) (*model.MarketEntity, error) {
	var market model.MarketEntity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&market).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMarketNotFound
		}
		return nil, err
	}
	return &market, nil
}

// ListMarkets retorna todos os mercados parceiros, sem o campo de senha
func (r *MarketRepository) ListMarkets(ctx context.Context) ([]*model.Market, error) {
	var entities []model.MarketEntity
	if err := r.db.WithContext(ctx).Order("name").Find(&entities).Error; err != nil {
		return nil, err
	}

	markets := make([]*model.Market, 0, len(entities))
	for i := range entities {
		markets = append(markets, entities[i].ToModel())
	}
	return markets, nil
}
