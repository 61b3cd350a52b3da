package cache

import (
	"strconv"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordlebits/config"
)

// The cache holds large objects that are expensive to build, such as a
// ranked solver over a full word list. A shell that reloads the same lists
// with the same settings gets the already-built object back.

type cache struct {
	sync.Mutex
	objects map[string]any
}

type loadFunc func(cfg *config.Config, key string) (any, error)

// GlobalObjectCache is our global object cache, of course.
var GlobalObjectCache *cache

func (c *cache) get(cfg *config.Config, key string, loadFunc loadFunc) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	log.Debug().Str("key", key).Msg("loading into cache")
	obj, err := loadFunc(cfg, key)
	if err != nil {
		return nil, err
	}
	c.objects[key] = obj
	return obj, nil
}

func CreateGlobalObjectCache() {
	GlobalObjectCache = &cache{objects: make(map[string]any)}
}

// Load returns the object stored under key, calling loadFunc to build it
// the first time.
func Load(cfg *config.Config, key string, loadFunc loadFunc) (any, error) {
	if GlobalObjectCache == nil {
		CreateGlobalObjectCache()
	}
	return GlobalObjectCache.get(cfg, key, loadFunc)
}

// Evict drops every cached object.
func Evict() {
	if GlobalObjectCache == nil {
		return
	}
	GlobalObjectCache.Lock()
	defer GlobalObjectCache.Unlock()
	clear(GlobalObjectCache.objects)
}

// Key digests a name and any number of word lists into a cache key. Lists
// with the same words in a different order get different keys.
func Key(name string, lists ...[]string) string {
	d := xxhash.New()
	d.Write([]byte(name))
	for _, l := range lists {
		d.Write([]byte{0})
		for _, w := range l {
			d.Write([]byte(w))
			d.Write([]byte{'\n'})
		}
	}
	return name + ":" + strconv.FormatUint(d.Sum64(), 16)
}
