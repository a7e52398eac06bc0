package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"fireops/lageboard/internal/metrics"
)

// Service is a TTL cache for slow-moving resources (location lists, closed
// operations). The per-tick snapshot never goes through here.
type Service struct {
	cache   *gocache.Cache
	metrics *metrics.MetricsRegistry
}

// NewService creates a cache with the given default expiration and cleanup
// interval. reg may be nil.
func NewService(defaultExpiration, cleanupInterval time.Duration, reg *metrics.MetricsRegistry) *Service {
	return &Service{
		cache:   gocache.New(defaultExpiration, cleanupInterval),
		metrics: reg,
	}
}

func (s *Service) Set(key string, value interface{}, duration time.Duration) {
	s.cache.Set(key, value, duration)
}

func (s *Service) Get(key string) (interface{}, bool) {
	val, found := s.cache.Get(key)
	if s.metrics != nil {
		if found {
			s.metrics.CacheHitsTotal.WithLabelValues(keyPattern(key)).Inc()
		} else {
			s.metrics.CacheMissesTotal.WithLabelValues(keyPattern(key)).Inc()
		}
	}
	return val, found
}

func (s *Service) Delete(key string) {
	s.cache.Delete(key)
}

// GetOrSet returns the cached value for key, loading and storing it on a miss.
func (s *Service) GetOrSet(key string, duration time.Duration, loader func() (interface{}, error)) (interface{}, error) {
	if val, found := s.Get(key); found {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return nil, err
	}

	s.Set(key, val, duration)
	return val, nil
}

// keyPattern strips the variable suffix so metric cardinality stays bounded.
func keyPattern(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			return key[:i]
		}
	}
	return key
}
