package memory

import (
	"time"

	"pdf-insight-workspace/internal/dto"

	"github.com/patrickmn/go-cache"
)

// DocumentRepository caches per-document detail (metadata + sections) keyed
// by document id. Entries are append-only: once fetched they are never
// invalidated or refetched unless a caller explicitly overwrites them.
// Concurrent fetches for the same id are not deduplicated; the payload is
// idempotent per id, so the last writer wins harmlessly.
type DocumentRepository struct {
	cache *cache.Cache
}

func NewDocumentRepository() *DocumentRepository {
	// No expiration: section data is immutable for the lifetime of the
	// workspace and the corpus is small.
	c := cache.New(cache.NoExpiration, 10*time.Minute)
	return &DocumentRepository{
		cache: c,
	}
}

func (r *DocumentRepository) Save(documentID string, detail *dto.DocumentDetail) {
	r.cache.Set(documentID, detail, cache.DefaultExpiration)
}

func (r *DocumentRepository) Get(documentID string) (*dto.DocumentDetail, bool) {
	if x, found := r.cache.Get(documentID); found {
		return x.(*dto.DocumentDetail), true
	}
	return nil, false
}

func (r *DocumentRepository) Delete(documentID string) {
	r.cache.Delete(documentID)
}
