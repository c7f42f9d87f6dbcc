package categories

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// Lookup resolves category ids to names for detail views of other hubs,
// caching hits for ttl.
type Lookup struct {
	repo  Repository
	cache *cache.Cache
}

func NewLookup(repo Repository, ttl time.Duration) *Lookup {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Lookup{repo: repo, cache: cache.New(ttl, 2*ttl)}
}

// Names returns the names it can resolve; unknown ids are absent.
func (l *Lookup) Names(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	var missing []string
	for _, id := range ids {
		if v, ok := l.cache.Get(id); ok {
			out[id] = v.(string)
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return out, nil
	}
	found, err := l.repo.Names(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, name := range found {
		l.cache.SetDefault(id, name)
		out[id] = name
	}
	return out, nil
}

func (l *Lookup) Forget(id string) { l.cache.Delete(id) }
