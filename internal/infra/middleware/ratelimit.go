package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ecopontos/ecopontos-api/internal/infra/metrics"
	"github.com/ecopontos/ecopontos-api/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitMiddleware gerencia rate limiting
type RateLimitMiddleware struct {
	limiter *ratelimit.RedisLimiter
	logger  *zap.Logger
	metrics *metrics.APIMetrics
}

// NewRateLimitMiddleware cria um novo middleware de rate limiting.
// O limiter pode ser nil quando o Redis não está configurado; nesse caso
// todos os limites viram no-ops.
func NewRateLimitMiddleware(limiter *ratelimit.RedisLimiter, metrics *metrics.APIMetrics, logger *zap.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		logger:  logger,
		metrics: metrics,
	}
}

// IPRateLimit limita requisições por IP
func (m *RateLimitMiddleware) IPRateLimit(limit int, period time.Duration) gin.HandlerFunc {
	return m.limit(func(c *gin.Context) ratelimit.LimitConfig {
		return ratelimit.LimitConfig{
			Key:         "ip:" + c.ClientIP(),
			Limit:       limit,
			Period:      period,
			BurstFactor: 1.5,
		}
	}, "ip_limit")
}

// LoginRateLimit limita tentativas de login por IP. O limite é mais
// agressivo que o geral porque as rotas de login respondem o mesmo erro
// para conta inexistente e senha errada, e força bruta é o risco aqui.
func (m *RateLimitMiddleware) LoginRateLimit() gin.HandlerFunc {
	return m.limit(func(c *gin.Context) ratelimit.LimitConfig {
		return ratelimit.LimitConfig{
			Key:         "login:" + c.ClientIP(),
			Limit:       10,
			Period:      time.Minute,
			BurstFactor: 1.0,
		}
	}, "login_limit")
}

func (m *RateLimitMiddleware) limit(configFor func(*gin.Context) ratelimit.LimitConfig, limitType string) gin.HandlerFunc {
	if m.limiter == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		config := configFor(c)

		allowed, limit, remaining, resetAfter, err := m.limiter.Allow(c.Request.Context(), config)
		if err != nil {
			// Em caso de erro no Redis, permite a requisição
			m.logger.Error("erro ao verificar rate limit", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(resetAfter).Unix(), 10))

		if !allowed {
			if m.metrics != nil {
				path := c.FullPath()
				if path == "" {
					path = c.Request.URL.Path
				}
				m.metrics.RateLimitExceeded(path, c.Request.Method, limitType)
			}

			c.Header("Retry-After", strconv.Itoa(int(resetAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "taxa de requisições excedida",
				"retry_after": int(resetAfter.Seconds()),
			})
			return
		}

		c.Next()
	}
}
