package cache

import (
	"context"
	"time"
)

// NoopCache implementa a interface Cache sem armazenar nada.
// Usado quando o cache está desabilitado na configuração.
type NoopCache struct{}

// NewNoopCache cria uma nova instância de NoopCache
func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

// Set não armazena nada
func (c *NoopCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

// Get sempre retorna cache miss
func (c *NoopCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

// Delete não faz nada
func (c *NoopCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear não faz nada
func (c *NoopCache) Clear(ctx context.Context) error {
	return nil
}

// Ping sempre está disponível
func (c *NoopCache) Ping(ctx context.Context) error {
	return nil
}
