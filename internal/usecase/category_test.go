//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain/catalog"
	"storefront/internal/domain/identity"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategoryRepo struct {
	categories []*catalog.Category
	err        error
	calls      int
}

func (f *fakeCategoryRepo) ListActive(_ context.Context) ([]*catalog.Category, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func testCategories() []*catalog.Category {
	return []*catalog.Category{
		{ID: identity.Literal("cat-1"), Name: "Accessories", IsActive: true},
		{ID: identity.Literal("cat-2"), Name: "Electronics", IsActive: true},
	}
}

func TestCategoryCacheList(t *testing.T) {
	ctx := context.Background()
	window := 5 * time.Minute

	t.Run("first read queries the store", func(t *testing.T) {
		repo := &fakeCategoryRepo{categories: testCategories()}
		cache := usecase.NewCategoryCache(repo, clock.NewMockClock(time.Now()), window)

		got, cached, err := cache.List(ctx, false)
		require.NoError(t, err)
		assert.False(t, cached)
		assert.Len(t, got, 2)
		assert.Equal(t, 1, repo.calls)
	})

	t.Run("read inside the freshness window is served from cache", func(t *testing.T) {
		repo := &fakeCategoryRepo{categories: testCategories()}
		clk := clock.NewMockClock(time.Now())
		cache := usecase.NewCategoryCache(repo, clk, window)

		_, _, err := cache.List(ctx, false)
		require.NoError(t, err)

		clk.Add(window - time.Second)
		got, cached, err := cache.List(ctx, false)
		require.NoError(t, err)
		assert.True(t, cached)
		assert.Len(t, got, 2)
		assert.Equal(t, 1, repo.calls, "no second query within the window")
	})

	t.Run("read after the window elapses refetches", func(t *testing.T) {
		repo := &fakeCategoryRepo{categories: testCategories()}
		clk := clock.NewMockClock(time.Now())
		cache := usecase.NewCategoryCache(repo, clk, window)

		_, _, err := cache.List(ctx, false)
		require.NoError(t, err)

		clk.Add(window)
		_, cached, err := cache.List(ctx, false)
		require.NoError(t, err)
		assert.False(t, cached)
		assert.Equal(t, 2, repo.calls)
	})

	t.Run("read after invalidate refetches even when fresh", func(t *testing.T) {
		repo := &fakeCategoryRepo{categories: testCategories()}
		clk := clock.NewMockClock(time.Now())
		cache := usecase.NewCategoryCache(repo, clk, window)

		_, _, err := cache.List(ctx, false)
		require.NoError(t, err)

		cache.Invalidate()
		_, cached, err := cache.List(ctx, false)
		require.NoError(t, err)
		assert.False(t, cached)
		assert.Equal(t, 2, repo.calls)
	})

	t.Run("forced refresh bypasses a fresh entry", func(t *testing.T) {
		repo := &fakeCategoryRepo{categories: testCategories()}
		clk := clock.NewMockClock(time.Now())
		cache := usecase.NewCategoryCache(repo, clk, window)

		_, _, err := cache.List(ctx, false)
		require.NoError(t, err)

		_, cached, err := cache.List(ctx, true)
		require.NoError(t, err)
		assert.False(t, cached)
		assert.Equal(t, 2, repo.calls)
	})

	t.Run("refresh failure surfaces to that caller and leaves the slot intact", func(t *testing.T) {
		repo := &fakeCategoryRepo{categories: testCategories()}
		clk := clock.NewMockClock(time.Now())
		cache := usecase.NewCategoryCache(repo, clk, window)

		_, _, err := cache.List(ctx, false)
		require.NoError(t, err)

		clk.Add(window + time.Second)
		repo.err = errors.New("store unreachable")
		_, _, err = cache.List(ctx, false)
		require.True(t, errs.Is(err, usecase.ErrCategoryListFailed))

		// Store recovers: the cache republishes without having lost state in
		// between.
		repo.err = nil
		got, cached, err := cache.List(ctx, false)
		require.NoError(t, err)
		assert.False(t, cached)
		assert.Len(t, got, 2)
	})
}
