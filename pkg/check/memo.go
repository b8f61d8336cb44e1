package check

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// memo caches oracle answers for the duration of one resolution so
// projects shared between seeds are queried once. The cache lives and
// dies with the run; nothing persists between invocations.
type memo struct {
	oracle Oracle
	cache  *lru.Cache[string, Result]
}

func newMemo(oracle Oracle, size int) (*memo, error) {
	cache, err := lru.New[string, Result](size)
	if err != nil {
		return nil, err
	}
	return &memo{oracle: oracle, cache: cache}, nil
}

// Query returns the cached answer when present. Concurrent misses for
// the same name may each hit the oracle; they store the same answer, so
// the duplicated work is harmless.
func (m *memo) Query(ctx context.Context, name string) (Result, error) {
	if res, ok := m.cache.Get(name); ok {
		return res, nil
	}
	res, err := m.oracle.Query(ctx, name)
	if err != nil {
		return Result{}, err
	}
	m.cache.Add(name, res)
	return res, nil
}
