package model

import "time"

// Redemption é o recibo imutável de uma troca de pontos por oferta
type Redemption struct {
	ID         uint      `json:"id"`
	UserID     string    `json:"userId"`
	OfferID    uint      `json:"offerId"`
	CostAtTime int       `json:"costAtTime"`
	CouponCode string    `json:"couponCode"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RedemptionEntity é a representação de banco de dados de um resgate.
// Nunca é atualizada nem removida depois de criada.
type RedemptionEntity struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     string    `gorm:"index;not null;type:uuid"`
	OfferID    uint      `gorm:"index;not null"`
	CostAtTime int       `gorm:"not null"`
	CouponCode string    `gorm:"uniqueIndex;not null;size:40"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// TableName define o nome da tabela
func (RedemptionEntity) TableName() string {
	return "redemptions"
}

// ToModel converte a entidade para o modelo público
func (e *RedemptionEntity) ToModel() *Redemption {
	return &Redemption{
		ID:         e.ID,
		UserID:     e.UserID,
		OfferID:    e.OfferID,
		CostAtTime: e.CostAtTime,
		CouponCode: e.CouponCode,
		CreatedAt:  e.CreatedAt,
	}
}
