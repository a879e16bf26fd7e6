package model

import "time"

// Offer representa uma oferta publicada por um mercado parceiro.
// MarketName é preenchido apenas na listagem pública.
type Offer struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Cost        int        `json:"cost"`
	Image       string     `json:"image"`
	Active      bool       `json:"active"`
	ValidFrom   *time.Time `json:"validFrom,omitempty"`
	ValidUntil  *time.Time `json:"validUntil,omitempty"`
	MarketID    string     `json:"marketId"`
	MarketName  string     `json:"marketName,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// OfferEntity é a representação de banco de dados de uma oferta
type OfferEntity struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null;size:120"`
	Description string `gorm:"size:500"`
	Cost        int    `gorm:"not null"`
	Image       string `gorm:"size:60"`
	Active      bool   `gorm:"not null;default:true"`
	ValidFrom   *time.Time
	ValidUntil  *time.Time
	MarketID    string    `gorm:"index;not null;type:uuid"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// TableName define o nome da tabela
func (OfferEntity) TableName() string {
	return "offers"
}

// ToModel converte a entidade para o modelo público
func (e *OfferEntity) ToModel() *Offer {
	return &Offer{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Cost:        e.Cost,
		Image:       e.Image,
		Active:      e.Active,
		ValidFrom:   e.ValidFrom,
		ValidUntil:  e.ValidUntil,
		MarketID:    e.MarketID,
		CreatedAt:   e.CreatedAt,
	}
}
