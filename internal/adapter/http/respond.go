package http

import (
	"errors"
	"net/http"

	"github.com/ecopontos/ecopontos-api/internal/app/auth"
	"github.com/ecopontos/ecopontos-api/internal/app/offer"
	"github.com/ecopontos/ecopontos-api/internal/domain/repository"
	apperrors "github.com/ecopontos/ecopontos-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// toAPIError traduz os erros sentinela das camadas de serviço e repositório
// para um APIError com o status HTTP correspondente. Oferta inexistente e
// oferta inativa são a mesma falha de domínio para quem resgata: a oferta
// está indisponível.
func toAPIError(err error) *apperrors.APIError {
	var apiErr *apperrors.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, auth.ErrInvalidCredentials):
		return apperrors.Unauthorized("Credenciais inválidas", err)
	case errors.Is(err, repository.ErrOfferNotFound),
		errors.Is(err, offer.ErrOfferUnavailable):
		return apperrors.BadRequest("Oferta indisponível", err)
	case errors.Is(err, offer.ErrOfferNotStarted):
		return apperrors.BadRequest("Oferta ainda não iniciou", err)
	case errors.Is(err, offer.ErrOfferExpired):
		return apperrors.BadRequest("Oferta expirada", err)
	case errors.Is(err, repository.ErrInsufficientPoints):
		return apperrors.BadRequest("Saldo de pontos insuficiente", err)
	case errors.Is(err, repository.ErrUserNotFound):
		return apperrors.NotFound("Usuário", err)
	case errors.Is(err, repository.ErrMarketNotFound):
		return apperrors.NotFound("Mercado", err)
	case errors.Is(err, repository.ErrDuplicateKey):
		return apperrors.Conflict("", err)
	default:
		return apperrors.InternalServer("", err)
	}
}

// respondError escreve a resposta de erro correspondente. Erros de servidor
// são registrados aqui, com o erro original; o cliente recebe apenas a
// mensagem genérica.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	apiErr := toAPIError(err)
	if apiErr.Code >= http.StatusInternalServerError {
		logger.Error("Erro ao atender requisição",
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Error(err))
	}
	c.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
}

// respondBindError trata falhas de validação do corpo da requisição
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
}
