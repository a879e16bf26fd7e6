package model

import "time"

// Market representa um mercado parceiro sem os campos sensíveis
type Market struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	TradeName string  `json:"tradeName"`
	CNPJ      string  `json:"cnpj"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Verified  bool    `json:"verified"`
}

// MarketEntity é a representação de banco de dados de um mercado parceiro
type MarketEntity struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	Name      string    `gorm:"not null;size:100"`
	TradeName string    `gorm:"size:100"`
	CNPJ      string    `gorm:"uniqueIndex;not null;size:18"`
	Password  string    `gorm:"not null"`
	Address   string    `gorm:"size:200"`
	Latitude  float64
	Longitude float64
	Verified  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName define o nome da tabela
func (MarketEntity) TableName() string {
	return "markets"
}

// ToModel converte a entidade para o modelo público, sem a senha
func (e *MarketEntity) ToModel() *Market {
	return &Market{
		ID:        e.ID,
		Name:      e.Name,
		TradeName: e.TradeName,
		CNPJ:      e.CNPJ,
		Address:   e.Address,
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
		Verified:  e.Verified,
	}
}

// Account retorna a identidade de sessão correspondente ao mercado
func (e *MarketEntity) Account() *Account {
	return &Account{
		ID:       e.ID,
		Type:     AccountTypeMarket,
		Name:     e.Name,
		Verified: e.Verified,
	}
}
