package account

import (
	"context"

	"github.com/ecopontos/ecopontos-api/internal/domain/model"
	"github.com/ecopontos/ecopontos-api/internal/domain/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service gerencia o cadastro e a consulta de contas (usuários e mercados)
type Service struct {
	users   repository.UserRepository
	markets repository.MarketRepository
	logger  *zap.Logger
}

func NewService(users repository.UserRepository, markets repository.MarketRepository, logger *zap.Logger) *Service {
	return &Service{
		users:   users,
		markets: markets,
		logger:  logger,
	}
}

// RegisterMarketInput são os campos aceitos no cadastro de um mercado
type RegisterMarketInput struct {
	Name      string
	TradeName string
	CNPJ      string
	Password  string
	Address   string
	Latitude  float64
	Longitude float64
}

// RegisterUser cadastra um novo usuário com a senha protegida por bcrypt.
// Retorna repository.ErrDuplicateKey quando o e-mail já está em uso.
func (s *Service) RegisterUser(ctx context.Context, name, email, password string) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Erro ao gerar hash da senha", zap.Error(err))
		return nil, err
	}

	user := model.UserEntity{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}

	if err := s.users.CreateUser(ctx, &user); err != nil {
		if err == repository.ErrDuplicateKey {
			s.logger.Warn("Tentativa de cadastro com e-mail já existente", zap.String("email", email))
		} else {
			s.logger.Error("Erro ao criar usuário", zap.String("email", email), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("Usuário cadastrado com sucesso", zap.String("user_id", user.ID))
	return user.ToModel(), nil
}

// RegisterMarket cadastra um novo mercado parceiro.
// Retorna repository.ErrDuplicateKey quando o CNPJ já está em uso.
func (s *Service) RegisterMarket(ctx context.Context, input RegisterMarketInput) (*model.Market, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Erro ao gerar hash da senha", zap.Error(err))
		return nil, err
	}

	market := model.MarketEntity{
		ID:        uuid.New().String(),
		Name:      input.Name,
		TradeName: input.TradeName,
		CNPJ:      input.CNPJ,
		Password:  string(hashed),
		Address:   input.Address,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}

	if err := s.markets.CreateMarket(ctx, &market); err != nil {
		if err == repository.ErrDuplicateKey {
			s.logger.Warn("Tentativa de cadastro com CNPJ já existente", zap.String("cnpj", input.CNPJ))
		} else {
			s.logger.Error("Erro ao criar mercado", zap.String("cnpj", input.CNPJ), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("Mercado cadastrado com sucesso", zap.String("market_id", market.ID))
	return market.ToModel(), nil
}

// GetUserByID retorna o perfil de um usuário
func (s *Service) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToModel(), nil
}

// GetMarketByID retorna o perfil de um mercado
func (s *Service) GetMarketByID(ctx context.Context, id string) (*model.Market, error) {
	market, err := s.markets.GetMarketByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return market.ToModel(), nil
}

// ListMarkets retorna os mercados parceiros para o mapa de pontos de coleta
func (s *Service) ListMarkets(ctx context.Context) ([]*model.Market, error) {
	return s.markets.ListMarkets(ctx)
}
