package http

import (
	"net/http"

	"github.com/ecopontos/ecopontos-api/internal/app/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler expõe as rotas de login de usuários e mercados
type AuthHandler struct {
	authService *auth.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *auth.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

type userLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type marketLoginRequest struct {
	CNPJ     string `json:"cnpj" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginUser autentica um usuário por e-mail e senha
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var req userLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, token, err := h.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// LoginMarket autentica um mercado por CNPJ e senha
func (h *AuthHandler) LoginMarket(c *gin.Context) {
	var req marketLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	market, token, err := h.authService.LoginMarket(c.Request.Context(), req.CNPJ, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"market": market,
	})
}
