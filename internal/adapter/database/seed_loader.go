package database

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/ecopontos/ecopontos-api/internal/domain/model"
	"github.com/ecopontos/ecopontos-api/internal/domain/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// JSONSeedLoader carrega mercados e ofertas de demonstração de um arquivo JSON
type JSONSeedLoader struct {
	db     *Database
	logger *zap.Logger
}

// NewJSONSeedLoader cria um novo carregador de dados de demonstração
func NewJSONSeedLoader(db *Database, logger *zap.Logger) *JSONSeedLoader {
	return &JSONSeedLoader{
		db:     db,
		logger: logger,
	}
}

type seedOffer struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Cost        int        `json:"cost"`
	Image       string     `json:"image"`
	ValidFrom   *time.Time `json:"validFrom,omitempty"`
	ValidUntil  *time.Time `json:"validUntil,omitempty"`
}

type seedMarket struct {
	Name      string      `json:"name"`
	TradeName string      `json:"tradeName"`
	CNPJ      string      `json:"cnpj"`
	Password  string      `json:"password"`
	Address   string      `json:"address"`
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Offers    []seedOffer `json:"offers"`
}

// LoadFromJSON carrega mercados e suas ofertas de um arquivo JSON para o
// banco de dados. Mercados com CNPJ já cadastrado são pulados.
func (l *JSONSeedLoader) LoadFromJSON(filePath string) error {
	// Verificar se o arquivo existe
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		l.logger.Warn("Arquivo de dados de demonstração não encontrado", zap.String("path", filePath))
		return nil // Não é erro, apenas não há arquivo
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		l.logger.Error("Erro ao ler arquivo de demonstração", zap.String("path", filePath), zap.Error(err))
		return err
	}

	var markets []seedMarket
	if err := json.Unmarshal(data, &markets); err != nil {
		l.logger.Error("Erro ao deserializar arquivo de demonstração", zap.String("path", filePath), zap.Error(err))
		return err
	}

	if len(markets) == 0 {
		l.logger.Info("Nenhum mercado encontrado no arquivo", zap.String("path", filePath))
		return nil
	}

	marketRepo := NewMarketRepository(l.db.DB())
	offerRepo := NewOfferRepository(l.db.DB(), l.logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created := 0
	for _, seed := range markets {
		if _, err := marketRepo.GetMarketByCNPJ(ctx, seed.CNPJ); err == nil {
			l.logger.Debug("Mercado já cadastrado, pulando", zap.String("cnpj", seed.CNPJ))
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			l.logger.Error("Erro ao processar senha do mercado", zap.String("cnpj", seed.CNPJ), zap.Error(err))
			continue
		}

		entity := model.MarketEntity{
			ID:        uuid.New().String(),
			Name:      seed.Name,
			TradeName: seed.TradeName,
			CNPJ:      seed.CNPJ,
			Password:  string(hashed),
			Address:   seed.Address,
			Latitude:  seed.Latitude,
			Longitude: seed.Longitude,
			Verified:  true,
		}

		if err := marketRepo.CreateMarket(ctx, &entity); err != nil {
			if err == repository.ErrDuplicateKey {
				l.logger.Debug("Mercado já cadastrado, pulando", zap.String("cnpj", seed.CNPJ))
				continue
			}
			l.logger.Error("Erro ao inserir mercado", zap.String("cnpj", seed.CNPJ), zap.Error(err))
			continue
		}

		for _, so := range seed.Offers {
			offer := model.OfferEntity{
				Title:       so.Title,
				Description: so.Description,
				Cost:        so.Cost,
				Image:       so.Image,
				Active:      true,
				ValidFrom:   so.ValidFrom,
				ValidUntil:  so.ValidUntil,
				MarketID:    entity.ID,
			}
			if err := offerRepo.CreateOffer(ctx, &offer); err != nil {
				l.logger.Error("Erro ao inserir oferta", zap.String("title", so.Title), zap.Error(err))
			}
		}

		created++
	}

	l.logger.Info("Dados de demonstração carregados",
		zap.Int("markets", created),
		zap.String("file", filePath))
	return nil
}
