package http

import (
	"errors"
	"net/http"

	"github.com/ecopontos/ecopontos-api/internal/app/account"
	"github.com/ecopontos/ecopontos-api/internal/domain/repository"
	"github.com/ecopontos/ecopontos-api/internal/infra/middleware"
	apperrors "github.com/ecopontos/ecopontos-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler expõe as rotas de cadastro e perfil de usuários
type UserHandler struct {
	accounts *account.Service
	logger   *zap.Logger
}

func NewUserHandler(accounts *account.Service, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		accounts: accounts,
		logger:   logger,
	}
}

type registerUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register cadastra um novo usuário
func (h *UserHandler) Register(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.accounts.RegisterUser(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			respondError(c, h.logger, apperrors.Conflict("E-mail já cadastrado", err))
			return
		}
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Me retorna o perfil da conta autenticada, usuário ou mercado
func (h *UserHandler) Me(c *gin.Context) {
	acct, ok := middleware.AccountFromContext(c)
	if !ok {
		respondError(c, h.logger, apperrors.InternalServer("Falha ao obter informações da conta", nil))
		return
	}

	if acct.IsMarket() {
		market, err := h.accounts.GetMarketByID(c.Request.Context(), acct.ID)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"market": market})
		return
	}

	user, err := h.accounts.GetUserByID(c.Request.Context(), acct.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
