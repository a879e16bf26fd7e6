package auth

import (
	"context"
	"errors"
	"time"

	"github.com/ecopontos/ecopontos-api/internal/domain/model"
	"github.com/ecopontos/ecopontos-api/internal/domain/repository"
	"github.com/ecopontos/ecopontos-api/pkg/security"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials é o único erro exposto por falha de autenticação.
// Identidade desconhecida e senha incorreta não são distinguíveis para o
// chamador externo.
var ErrInvalidCredentials = errors.New("credenciais inválidas")

// AuthService gerencia operações de autenticação
type AuthService struct {
	keyManager    *security.KeyManager
	users         repository.UserRepository
	markets       repository.MarketRepository
	tokenDuration time.Duration
	logger        *zap.Logger
}

// NewAuthService cria um novo serviço de autenticação
func NewAuthService(keyManager *security.KeyManager, users repository.UserRepository, markets repository.MarketRepository, tokenDuration time.Duration, logger *zap.Logger) *AuthService {
	if tokenDuration <= 0 {
		tokenDuration = 24 * time.Hour
	}
	return &AuthService{
		keyManager:    keyManager,
		users:         users,
		markets:       markets,
		tokenDuration: tokenDuration,
		logger:        logger,
	}
}

// LoginUser autentica um usuário pelo e-mail e gera um token de sessão
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("Falha na autenticação de usuário", zap.String("email", email), zap.Error(err))
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("Senha incorreta para usuário", zap.String("user_id", user.ID))
		return nil, "", ErrInvalidCredentials
	}

	account := user.Account()
	token, err := s.keyManager.GenerateToken(account.ID, account.Type, account.Name, account.Verified, s.tokenDuration)
	if err != nil {
		s.logger.Error("Falha ao gerar token", zap.String("user_id", user.ID), zap.Error(err))
		return nil, "", err
	}

	s.logger.Info("Login de usuário bem-sucedido", zap.String("user_id", user.ID))
	return user.ToModel(), token, nil
}

// LoginMarket autentica um mercado pelo CNPJ e gera um token de sessão
func (s *AuthService) LoginMarket(ctx context.Context, cnpj, password string) (*model.Market, string, error) {
	market, err := s.markets.GetMarketByCNPJ(ctx, cnpj)
	if err != nil {
		s.logger.Warn("Falha na autenticação de mercado", zap.String("cnpj", cnpj), zap.Error(err))
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(market.Password), []byte(password)); err != nil {
		s.logger.Warn("Senha incorreta para mercado", zap.String("market_id", market.ID))
		return nil, "", ErrInvalidCredentials
	}

	account := market.Account()
	token, err := s.keyManager.GenerateToken(account.ID, account.Type, account.Name, account.Verified, s.tokenDuration)
	if err != nil {
		s.logger.Error("Falha ao gerar token", zap.String("market_id", market.ID), zap.Error(err))
		return nil, "", err
	}

	s.logger.Info("Login de mercado bem-sucedido", zap.String("market_id", market.ID))
	return market.ToModel(), token, nil
}

// ValidateToken valida um token de sessão e retorna a identidade da conta
func (s *AuthService) ValidateToken(tokenString string) (*model.Account, error) {
	claims, err := s.keyManager.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	return &model.Account{
		ID:       claims.AccountID,
		Type:     claims.AccountType,
		Name:     claims.Name,
		Verified: claims.Verified,
	}, nil
}
