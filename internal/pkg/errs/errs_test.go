//go:build unit

package errs_test

import (
	stderrors "errors"
	"testing"

	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkAndIs(t *testing.T) {
	sentinel := stderrors.New("database operation failed")

	t.Run("marked errors match the sentinel through Is", func(t *testing.T) {
		cause := stderrors.New("connection refused")
		err := errs.Mark(cause, sentinel)

		assert.True(t, errs.Is(err, sentinel))
		assert.True(t, errs.Is(err, cause), "the cause stays reachable")
	})

	t.Run("marks are out of band for the standard library", func(t *testing.T) {
		err := errs.Mark(stderrors.New("connection refused"), sentinel)

		assert.False(t, stderrors.Is(err, sentinel))
	})

	t.Run("marking nil yields the sentinel itself", func(t *testing.T) {
		assert.Same(t, sentinel, errs.Mark(nil, sentinel))
	})

	t.Run("Is follows wrapped causes too", func(t *testing.T) {
		err := errs.Wrap(sentinel, "loading categories")
		require.Error(t, err)

		assert.True(t, errs.Is(err, sentinel))
	})
}

func TestExtractStackLines(t *testing.T) {
	t.Run("nil error yields nothing", func(t *testing.T) {
		assert.Nil(t, errs.ExtractStackLines(nil, 5))
	})

	t.Run("caps the rendered output", func(t *testing.T) {
		err := errs.Wrap(errs.New("boom"), "outer")

		lines := errs.ExtractStackLines(err, 3)
		require.NotEmpty(t, lines)
		assert.LessOrEqual(t, len(lines), 3)
	})
}
