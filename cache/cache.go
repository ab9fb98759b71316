// Package cache holds objects that are expensive to load and shared by
// every game in the process, such as shape tables read from disk. A bot
// answering many requests reads each table once.
package cache

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/config"
)

type cache struct {
	sync.Mutex
	objects map[string]any
}

// GlobalObjectCache is our global object cache, of course.
var GlobalObjectCache = &cache{objects: make(map[string]any)}

// CreateGlobalObjectCache empties the global cache.
func CreateGlobalObjectCache() {
	GlobalObjectCache.Lock()
	defer GlobalObjectCache.Unlock()
	GlobalObjectCache.objects = make(map[string]any)
}

// Load returns the cached object for key, calling loadFunc to build it on
// a miss. Failed loads are not cached.
func Load[T any](cfg *config.Config, key string, loadFunc func(cfg *config.Config, key string) (T, error)) (T, error) {
	var zero T
	c := GlobalObjectCache
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting-obj-from-cache")
		t, ok := obj.(T)
		if !ok {
			return zero, fmt.Errorf("cache key %q holds a %T", key, obj)
		}
		return t, nil
	}
	log.Debug().Str("key", key).Msg("loading-into-cache")
	obj, err := loadFunc(cfg, key)
	if err != nil {
		return zero, err
	}
	c.objects[key] = obj
	return obj, nil
}

// Evict drops key so the next Load reads it again.
func Evict(key string) {
	GlobalObjectCache.Lock()
	defer GlobalObjectCache.Unlock()
	delete(GlobalObjectCache.objects, key)
}
