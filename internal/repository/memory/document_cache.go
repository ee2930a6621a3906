package memory

import (
	"advocate-portal-client/internal/entity"
	"advocate-portal-client/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

const collectionKey = "document_collection"

// DocumentCache keeps the last fetched collection in memory. Entries never
// expire on their own; the collection is replaced on refresh and purged when
// the session is revoked.
type DocumentCache struct {
	cache *cache.Cache
}

var _ contract.DocumentCache = &DocumentCache{}

func NewDocumentCache() *DocumentCache {
	return &DocumentCache{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *DocumentCache) Replace(docs []entity.Document) {
	r.cache.Set(collectionKey, docs, cache.NoExpiration)
}

func (r *DocumentCache) All() ([]entity.Document, bool) {
	if x, found := r.cache.Get(collectionKey); found {
		return x.([]entity.Document), true
	}
	return nil, false
}

func (r *DocumentCache) Purge() {
	r.cache.Delete(collectionKey)
}
