package cache

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/imm/dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "imm_analytics_cache_hits_total",
		Help: "Leituras de analytics servidas pelo cache",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "imm_analytics_cache_misses_total",
		Help: "Leituras de analytics recalculadas por ausência no cache",
	})
	cacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "imm_analytics_cache_errors_total",
		Help: "Falhas do backend de cache, tratadas como miss",
	}, []string{"operation"})
)

// Cache combina um Store opcional com o TTL das entradas.
// Um *Cache nulo ou sem Store é válido e sempre recalcula.
type Cache struct {
	store Store
	ttl   time.Duration
}

func NewCache(store Store, ttl time.Duration) *Cache {
	return &Cache{store: store, ttl: ttl}
}

// Enabled informa se há backend configurado
func (c *Cache) Enabled() bool {
	return c != nil && c.store != nil
}

// Ping verifica o backend; sem backend configurado não há o que verificar
func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.store.Ping(ctx)
}

// Remember devolve o valor guardado em key ou executa factory e guarda o resultado.
// Erros do backend (leitura, escrita ou payload corrompido) são registrados e tratados como miss.
// Erros de factory são sempre devolvidos ao chamador e nada é gravado.
func Remember[T any](ctx context.Context, c *Cache, key string, factory func(context.Context) (T, error)) (T, error) {
	if !c.Enabled() {
		return factory(ctx)
	}

	logger := log.ForContext(ctx).WithField("cache_key", key)

	data, found, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		cacheErrors.WithLabelValues("get").Inc()
		logger.WithError(err).Warn("Falha ao ler do cache, recalculando")
	case found:
		var cached T
		decodeErr := json.Unmarshal(data, &cached)
		if decodeErr == nil {
			cacheHits.Inc()
			return cached, nil
		}
		cacheErrors.WithLabelValues("decode").Inc()
		logger.WithError(decodeErr).Warn("Entrada de cache inválida, recalculando")
	default:
		cacheMisses.Inc()
	}

	value, err := factory(ctx)
	if err != nil {
		return value, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		cacheErrors.WithLabelValues("encode").Inc()
		logger.WithError(err).Warn("Falha ao serializar valor para o cache")
		return value, nil
	}

	if err := c.store.Set(ctx, key, payload, c.ttl); err != nil {
		cacheErrors.WithLabelValues("set").Inc()
		logger.WithError(err).Warn("Falha ao gravar no cache")
	}

	return value, nil
}
