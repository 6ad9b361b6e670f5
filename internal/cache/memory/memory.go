// Package memory implementa cache.Cache sobre go-cache, para despliegues
// de una sola instancia o como fallback cuando no hay Redis configurado.
package memory

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dropDatabas3/gymgate/internal/cache"
)

const cleanupInterval = 5 * time.Minute

type Store struct {
	inner *gocache.Cache
}

func New(defaultTTL time.Duration) cache.Cache {
	if defaultTTL <= 0 {
		defaultTTL = time.Minute
	}
	return &Store{inner: gocache.New(defaultTTL, cleanupInterval)}
}

func (s *Store) Get(key string) ([]byte, bool) {
	v, ok := s.inner.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (s *Store) Set(key string, value []byte, ttl time.Duration) {
	s.inner.Set(key, value, ttl)
}

func (s *Store) Delete(key string) {
	s.inner.Delete(key)
}
