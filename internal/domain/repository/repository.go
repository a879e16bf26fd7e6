package repository

import (
	"context"
	"errors"

	"github.com/ecopontos/ecopontos-api/internal/domain/model"
)

// Erros sentinela compartilhados pelos repositórios
var (
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrMarketNotFound     = errors.New("mercado não encontrado")
	ErrOfferNotFound      = errors.New("oferta não encontrada")
	ErrDuplicateKey       = errors.New("registro já cadastrado")
	ErrInsufficientPoints = errors.New("saldo de pontos insuficiente")
)

// UserRepository define a interface para acesso a dados de usuários
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.UserEntity) error
	GetUserByEmail(ctx context.Context, email string) (*model.UserEntity, error)
	GetUserByID(ctx context.Context, id string) (*model.UserEntity, error)
}

// MarketRepository define a interface para acesso a dados de mercados parceiros
type MarketRepository interface {
	CreateMarket(ctx context.Context, market *model.MarketEntity) error
	GetMarketByCNPJ(ctx context.Context, cnpj string) (*model.MarketEntity, error)
	GetMarketByID(ctx context.Context, id string) (*model.MarketEntity, error)
	ListMarkets(ctx context.Context) ([]*model.Market, error)
}

// OfferRepository define a interface para acesso a dados de ofertas
type OfferRepository interface {
	CreateOffer(ctx context.Context, offer *model.OfferEntity) error
	GetOfferByID(ctx context.Context, id uint) (*model.OfferEntity, error)
	ListActiveOffers(ctx context.Context) ([]*model.Offer, error)
	ListOffersByMarket(ctx context.Context, marketID string) ([]*model.Offer, error)
	SetOfferActive(ctx context.Context, id uint, marketID string, active bool) error
}

// RedemptionRepository executa o resgate transacional de uma oferta
type RedemptionRepository interface {
	// RedeemOffer debita os pontos do usuário e registra o resgate em uma
	// única transação. Retorna ErrInsufficientPoints quando o saldo não
	// cobre o custo no momento do débito e ErrDuplicateKey quando o cupom
	// colide com um já emitido.
	RedeemOffer(ctx context.Context, userID string, offer *model.OfferEntity, couponCode string) (*model.Redemption, error)
}
