package model

import "time"

// User representa um usuário sem os campos sensíveis
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Points int    `json:"points"`
}

// UserEntity é a representação de banco de dados de um usuário
type UserEntity struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	Name      string    `gorm:"not null;size:100"`
	Email     string    `gorm:"uniqueIndex;not null;size:100"`
	Password  string    `gorm:"not null"`
	Points    int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName define o nome da tabela
func (UserEntity) TableName() string {
	return "users"
}

// ToModel converte a entidade para o modelo público, sem a senha
func (e *UserEntity) ToModel() *User {
	return &User{
		ID:     e.ID,
		Name:   e.Name,
		Email:  e.Email,
		Points: e.Points,
	}
}

// Account retorna a identidade de sessão correspondente ao usuário
func (e *UserEntity) Account() *Account {
	return &Account{
		ID:       e.ID,
		Type:     AccountTypeUser,
		Name:     e.Name,
		Verified: true,
	}
}
