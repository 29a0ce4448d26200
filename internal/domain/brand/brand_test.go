package brand

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBrand(t *testing.T) {
	t.Run("creates active brand with generated identifiers", func(t *testing.T) {
		b, err := NewBrand("RankMath")
		require.NoError(t, err)

		assert.Equal(t, uint(0), b.ID())
		assert.True(t, strings.HasPrefix(b.BID(), "brd_"))
		assert.Equal(t, "RankMath", b.Name())
		assert.Len(t, b.APIKey(), 32)
		assert.True(t, b.IsActive())
		assert.False(t, b.CreatedAt().IsZero())
	})

	t.Run("trims name", func(t *testing.T) {
		b, err := NewBrand("  WP Rocket  ")
		require.NoError(t, err)
		assert.Equal(t, "WP Rocket", b.Name())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewBrand("   ")
		assert.Error(t, err)
	})

	t.Run("generates distinct api keys", func(t *testing.T) {
		b1, err := NewBrand("A")
		require.NoError(t, err)
		b2, err := NewBrand("B")
		require.NoError(t, err)
		assert.NotEqual(t, b1.APIKey(), b2.APIKey())
	})
}

func TestBrand_SetID(t *testing.T) {
	b, err := NewBrand("Imagify")
	require.NoError(t, err)

	require.NoError(t, b.SetID(42))
	assert.Equal(t, uint(42), b.ID())

	assert.Error(t, b.SetID(43), "ID must be immutable once set")
}

func TestBrand_ActivateDeactivate(t *testing.T) {
	b, err := NewBrand("RankMath")
	require.NoError(t, err)

	b.Deactivate()
	assert.False(t, b.IsActive())

	b.Activate()
	assert.True(t, b.IsActive())
}

func TestReconstructBrand(t *testing.T) {
	now := time.Now().UTC()

	t.Run("restores all fields", func(t *testing.T) {
		b, err := ReconstructBrand(7, "brd_abc", "RankMath", "key123", true, now, now)
		require.NoError(t, err)
		assert.Equal(t, uint(7), b.ID())
		assert.Equal(t, "brd_abc", b.BID())
		assert.Equal(t, "key123", b.APIKey())
	})

	t.Run("rejects zero ID", func(t *testing.T) {
		_, err := ReconstructBrand(0, "brd_abc", "RankMath", "key123", true, now, now)
		assert.Error(t, err)
	})
}

func TestNewProduct(t *testing.T) {
	t.Run("creates active product", func(t *testing.T) {
		p, err := NewProduct(1, "SEO Pro", "seo-pro")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(p.PID(), "prd_"))
		assert.Equal(t, uint(1), p.BrandID())
		assert.Equal(t, "seo-pro", p.Slug())
		assert.True(t, p.IsActive())
	})

	t.Run("normalizes slug case", func(t *testing.T) {
		p, err := NewProduct(1, "SEO Pro", "SEO-Pro")
		require.NoError(t, err)
		assert.Equal(t, "seo-pro", p.Slug())
	})

	t.Run("rejects invalid slug", func(t *testing.T) {
		for _, slug := range []string{"", "with spaces", "trailing-", "-leading", "under_score"} {
			_, err := NewProduct(1, "SEO Pro", slug)
			assert.Error(t, err, "slug %q should be rejected", slug)
		}
	})

	t.Run("rejects zero brand ID", func(t *testing.T) {
		_, err := NewProduct(0, "SEO Pro", "seo-pro")
		assert.Error(t, err)
	})
}

func TestProduct_Rename(t *testing.T) {
	p, err := NewProduct(1, "SEO Pro", "seo-pro")
	require.NoError(t, err)

	require.NoError(t, p.Rename("SEO Pro Max"))
	assert.Equal(t, "SEO Pro Max", p.Name())
	assert.Equal(t, "seo-pro", p.Slug(), "slug stays fixed across renames")

	assert.Error(t, p.Rename(" "))
}
