package directory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedDirectory memoizes successful lookups in process memory. Only
// positive and negative hits are cached; directory outages are not, so the
// next call retries the backing directory.
type CachedDirectory struct {
	inner Directory
	cache *gocache.Cache
}

func NewCachedDirectory(inner Directory, ttl time.Duration) *CachedDirectory {
	return &CachedDirectory{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (d *CachedDirectory) Lookup(ctx context.Context, userID string) (Profile, error) {
	if cached, found := d.cache.Get(userID); found {
		return cached.(Profile), nil
	}

	profile, err := d.inner.Lookup(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	d.cache.SetDefault(userID, profile)
	return profile, nil
}
