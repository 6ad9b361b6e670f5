// Package cache define la interfaz mínima de caché que usan los
// servicios del gateway. Backends: memoria (dev/test) y Redis (prod).
package cache

import "time"

type Cache interface {
	Get(key string) (value []byte, ok bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}
