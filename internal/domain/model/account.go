package model

// Tipos de conta aceitos pela API
const (
	AccountTypeUser   = "user"
	AccountTypeMarket = "market"
)

// Account é a identidade autenticada carregada pelo token de sessão.
// Pode representar um usuário ou um mercado parceiro.
type Account struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
}

// IsUser informa se a conta é de um usuário final
func (a *Account) IsUser() bool {
	return a != nil && a.Type == AccountTypeUser
}

// IsMarket informa se a conta é de um mercado parceiro
func (a *Account) IsMarket() bool {
	return a != nil && a.Type == AccountTypeMarket
}
