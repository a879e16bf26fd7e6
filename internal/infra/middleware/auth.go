package middleware

import (
	"net/http"
	"strings"

	"github.com/ecopontos/ecopontos-api/internal/app/auth"
	"github.com/ecopontos/ecopontos-api/internal/domain/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountKey é a chave do contexto onde a conta autenticada fica disponível
const AccountKey = "account"

// AuthMiddleware gerencia middlewares de autenticação
type AuthMiddleware struct {
	authService *auth.AuthService
	logger      *zap.Logger
}

// NewAuthMiddleware cria uma nova instância do middleware de autenticação
func NewAuthMiddleware(authService *auth.AuthService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		logger:      logger,
	}
}

// Authenticate valida o token Bearer e armazena a conta no contexto
func (m *AuthMiddleware) Authenticate(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header não fornecido"})
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Formato inválido do token"})
		return
	}

	account, err := m.authService.ValidateToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido ou expirado"})
		return
	}

	c.Set(AccountKey, account)
	c.Next()
}

// RequireUser exige que a conta autenticada seja de um usuário
func (m *AuthMiddleware) RequireUser(c *gin.Context) {
	account, ok := accountFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Falha ao obter informações da conta"})
		return
	}

	if !account.IsUser() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Operação disponível apenas para usuários"})
		return
	}

	c.Next()
}

// RequireMarket exige que a conta autenticada seja de um mercado
func (m *AuthMiddleware) RequireMarket(c *gin.Context) {
	account, ok := accountFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Falha ao obter informações da conta"})
		return
	}

	if !account.IsMarket() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Operação disponível apenas para mercados"})
		return
	}

	c.Next()
}

func accountFrom(c *gin.Context) (*model.Account, bool) {
	value, exists := c.Get(AccountKey)
	if !exists {
		return nil, false
	}
	account, ok := value.(*model.Account)
	return account, ok
}

// AccountFromContext retorna a conta autenticada armazenada pelo Authenticate
func AccountFromContext(c *gin.Context) (*model.Account, bool) {
	return accountFrom(c)
}
