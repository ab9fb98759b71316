package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gomoku/config"
)

func TestLoadCachesSuccess(t *testing.T) {
	is := is.New(t)
	CreateGlobalObjectCache()
	calls := 0
	load := func(cfg *config.Config, key string) (int, error) {
		calls++
		return len(key), nil
	}
	cfg := config.DefaultConfig()
	v, err := Load(cfg, "shapes.yaml", load)
	is.NoErr(err)
	is.Equal(v, 11)
	v, err = Load(cfg, "shapes.yaml", load)
	is.NoErr(err)
	is.Equal(v, 11)
	is.Equal(calls, 1)

	Evict("shapes.yaml")
	_, err = Load(cfg, "shapes.yaml", load)
	is.NoErr(err)
	is.Equal(calls, 2)
}

func TestLoadDoesNotCacheErrors(t *testing.T) {
	is := is.New(t)
	CreateGlobalObjectCache()
	calls := 0
	boom := errors.New("boom")
	load := func(cfg *config.Config, key string) (string, error) {
		calls++
		if calls == 1 {
			return "", boom
		}
		return "ok", nil
	}
	_, err := Load(config.DefaultConfig(), "k", load)
	is.True(errors.Is(err, boom))
	v, err := Load(config.DefaultConfig(), "k", load)
	is.NoErr(err)
	is.Equal(v, "ok")
}

func TestLoadWrongType(t *testing.T) {
	is := is.New(t)
	CreateGlobalObjectCache()
	_, err := Load(config.DefaultConfig(), "k", func(*config.Config, string) (int, error) { return 1, nil })
	is.NoErr(err)
	_, err = Load(config.DefaultConfig(), "k", func(*config.Config, string) (string, error) { return "", nil })
	is.True(err != nil)
}

func TestConcurrentLoadBuildsOnce(t *testing.T) {
	is := is.New(t)
	CreateGlobalObjectCache()
	var calls atomic.Int32
	load := func(cfg *config.Config, key string) (string, error) {
		calls.Add(1)
		return key, nil
	}
	cfg := config.DefaultConfig()
	var wg sync.WaitGroup
	results := make([]string, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = Load(cfg, "shared.yaml", load)
		}(i)
	}
	wg.Wait()
	for i := range results {
		is.NoErr(errs[i])
		is.Equal(results[i], "shared.yaml")
	}
	is.Equal(calls.Load(), int32(1))
}
