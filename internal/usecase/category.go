package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront/internal/domain/catalog"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/errs"
)

var ErrCategoryListFailed = errors.New("category list failed")

type CategoryRepository interface {
	ListActive(ctx context.Context) ([]*catalog.Category, error)
}

// CategoryCache serves category reads from a time-bounded in-process slot
// shared across requests.
type CategoryCache interface {
	// List returns the active categories and whether they were served from
	// the cache without a fresh query.
	List(ctx context.Context, forceRefresh bool) ([]*catalog.Category, bool, error)
	// Invalidate discards the cached entry; the next List performs a fresh
	// query.
	Invalidate()
}

type cacheEntry struct {
	categories []*catalog.Category
	fetchedAt  time.Time
}

// categoryCacheImpl is an explicit object owned by the composition root, not
// a module-level slot, so the freshness window is injectable and tests don't
// need process restarts. The mutex guards only the slot words; the refresh
// query runs outside it, so two concurrent miss callers may both refetch (the
// stampede is accepted at this scale rather than single-flighted).
type categoryCacheImpl struct {
	repo  CategoryRepository
	clock clock.Clock
	ttl   time.Duration

	mu    sync.Mutex
	entry *cacheEntry
}

func NewCategoryCache(repo CategoryRepository, clk clock.Clock, ttl time.Duration) CategoryCache {
	return &categoryCacheImpl{
		repo:  repo,
		clock: clk,
		ttl:   ttl,
	}
}

func (c *categoryCacheImpl) List(ctx context.Context, forceRefresh bool) ([]*catalog.Category, bool, error) {
	if !forceRefresh {
		c.mu.Lock()
		entry := c.entry
		fresh := entry != nil && c.clock.Now().Sub(entry.fetchedAt) < c.ttl
		c.mu.Unlock()
		if fresh {
			return entry.categories, true, nil
		}
	}

	categories, err := c.repo.ListActive(ctx)
	if err != nil {
		// Leave the slot untouched: stale-but-available data keeps serving
		// subsequent callers, only this invocation sees the failure.
		return nil, false, errs.Mark(err, ErrCategoryListFailed)
	}

	c.mu.Lock()
	c.entry = &cacheEntry{categories: categories, fetchedAt: c.clock.Now()}
	c.mu.Unlock()
	return categories, false, nil
}

func (c *categoryCacheImpl) Invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
}
