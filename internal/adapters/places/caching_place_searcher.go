package places

import (
	"context"
	"fmt"
	"log"
	"place-backfill-service/internal/domain"
	"place-backfill-service/internal/platform/obs"
	"place-backfill-service/internal/ports"
)

// CachingPlaceSearcher answers repeated nearby searches from a SearchCache
// before delegating to the wrapped searcher. Only successful searches are stored.
// Cache failures are logged and never fail the search.
type CachingPlaceSearcher struct {
	next  ports.PlaceSearcher
	cache ports.SearchCache
}

func NewCachingPlaceSearcher(next ports.PlaceSearcher, cache ports.SearchCache) *CachingPlaceSearcher {
	return &CachingPlaceSearcher{next: next, cache: cache}
}

// CacheKey identifies a search independently of the credential used to issue it.
func CacheKey(req ports.NearbySearchRequest) string {
	return fmt.Sprintf("nearby:%s:%s:%d", req.PlaceType, req.Center, req.RadiusMeters)
}

func (c *CachingPlaceSearcher) NearbySearch(
	ctx context.Context,
	req ports.NearbySearchRequest,
) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "places.CachedNearbySearch")(&err)

	key := CacheKey(req)

	if c.cache != nil {
		cached, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			log.Printf("search cache read failed key=%s err=%v", key, err)
		} else if ok {
			return cached, nil
		}
	}

	places, err := c.next.NearbySearch(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, key, places); err != nil {
			log.Printf("search cache write failed key=%s err=%v", key, err)
		}
	}

	return places, nil
}
