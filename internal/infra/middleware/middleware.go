package middleware

import (
	"time"

	"github.com/ecopontos/ecopontos-api/internal/app/auth"
	"github.com/ecopontos/ecopontos-api/internal/infra/metrics"
	"github.com/ecopontos/ecopontos-api/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Middleware contém todos os middlewares da aplicação
type Middleware struct {
	logger              *zap.Logger
	authMiddleware      *AuthMiddleware
	recoveryMiddleware  *RecoveryMiddleware
	securityMiddleware  *SecurityMiddleware
	tracingMiddleware   *TracingMiddleware
	metricsMiddleware   *MetricsMiddleware
	rateLimitMiddleware *RateLimitMiddleware
}

// NewMiddleware cria um novo conjunto de middlewares. O limiter pode ser nil
// quando o Redis não está disponível.
func NewMiddleware(logger *zap.Logger, authService *auth.AuthService, apiMetrics *metrics.APIMetrics, limiter *ratelimit.RedisLimiter, serviceName string) *Middleware {
	return &Middleware{
		logger:              logger,
		authMiddleware:      NewAuthMiddleware(authService, logger),
		recoveryMiddleware:  NewRecoveryMiddleware(logger),
		securityMiddleware:  NewSecurityMiddleware(logger),
		tracingMiddleware:   NewTracingMiddleware(logger, serviceName),
		metricsMiddleware:   NewMetricsMiddleware(apiMetrics, logger),
		rateLimitMiddleware: NewRateLimitMiddleware(limiter, apiMetrics, logger),
	}
}

// Metrics retorna o middleware de métricas
func (m *Middleware) Metrics() gin.HandlerFunc {
	return m.metricsMiddleware.Middleware()
}

// Authenticate valida o token da requisição
func (m *Middleware) Authenticate(c *gin.Context) {
	m.authMiddleware.Authenticate(c)
}

// RequireUser exige conta de usuário autenticada
func (m *Middleware) RequireUser(c *gin.Context) {
	m.authMiddleware.RequireUser(c)
}

// RequireMarket exige conta de mercado autenticada
func (m *Middleware) RequireMarket(c *gin.Context) {
	m.authMiddleware.RequireMarket(c)
}

// Recovery middleware para recuperação de pânicos
func (m *Middleware) Recovery() gin.HandlerFunc {
	return m.recoveryMiddleware.Recovery()
}

// Logger middleware para logging de requisições
func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)

		m.logger.Info("request completed",
			zap.String("path", path),
			zap.String("method", c.Request.Method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}

// SecurityHeaders middleware para adicionar cabeçalhos de segurança
func (m *Middleware) SecurityHeaders() gin.HandlerFunc {
	return m.securityMiddleware.Headers()
}

// CORS middleware para configurar CORS
func (m *Middleware) CORS() gin.HandlerFunc {
	return m.securityMiddleware.CORS()
}

// Tracing retorna o middleware de tracing
func (m *Middleware) Tracing() gin.HandlerFunc {
	return m.tracingMiddleware.Middleware()
}

// LoginRateLimit limita tentativas de login por IP
func (m *Middleware) LoginRateLimit() gin.HandlerFunc {
	return m.rateLimitMiddleware.LoginRateLimit()
}

// IPRateLimit limita requisições por IP
func (m *Middleware) IPRateLimit(limit int, period time.Duration) gin.HandlerFunc {
	return m.rateLimitMiddleware.IPRateLimit(limit, period)
}
