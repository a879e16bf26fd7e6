package database

import (
	"context"
	"errors"

	"github.com/ecopontos/ecopontos-api/internal/domain/model"
	"github.com/ecopontos/ecopontos-api/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RedemptionRepository implementa repository.RedemptionRepository sobre o GORM
type RedemptionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewRedemptionRepository(db *gorm.DB, logger *zap.Logger) *RedemptionRepository {
	return &RedemptionRepository{db: db, logger: logger}
}

// RedeemOffer debita os pontos do usuário e registra o resgate em uma única
// transação. O débito é condicionado ao saldo no momento do UPDATE, de modo
// que dois resgates concorrentes nunca deixam o saldo negativo: o segundo
// UPDATE não afeta nenhuma linha e a transação é desfeita.
func (r *RedemptionRepository) RedeemOffer(ctx context.Context, userID string, offer *model.OfferEntity, couponCode string) (*model.Redemption, error) {
	var entity model.RedemptionEntity

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.UserEntity{}).
			Where("id = ? AND points >= ?", userID, offer.Cost).
			UpdateColumn("points", gorm.Expr("points - ?", offer.Cost))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrInsufficientPoints
		}

		entity = model.RedemptionEntity{
			UserID:     userID,
			OfferID:    offer.ID,
			CostAtTime: offer.Cost,
			CouponCode: couponCode,
		}
		if err := tx.Create(&entity).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return repository.ErrDuplicateKey
			}
			return err
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, repository.ErrInsufficientPoints) && !errors.Is(err, repository.ErrDuplicateKey) {
			r.logger.Error("Falha na transação de resgate",
				zap.String("user_id", userID),
				zap.Uint("offer_id", offer.ID),
				zap.Error(err))
		}
		return nil, err
	}

	return entity.ToModel(), nil
}
