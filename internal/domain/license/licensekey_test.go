package license

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLicenseKey(t *testing.T) {
	t.Run("creates key with public ID", func(t *testing.T) {
		k, err := NewLicenseKey(1, "GHX6-P2M4-Q8R7-T5W3", "customer@example.com")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(k.LKID(), "lk_"))
		assert.Equal(t, uint(1), k.BrandID())
		assert.Equal(t, "GHX6-P2M4-Q8R7-T5W3", k.Key())
	})

	t.Run("normalizes email", func(t *testing.T) {
		k, err := NewLicenseKey(1, "GHX6-P2M4-Q8R7-T5W3", "  Customer@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, "customer@example.com", k.CustomerEmail())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := NewLicenseKey(0, "GHX6-P2M4-Q8R7-T5W3", "a@x.com")
		assert.Error(t, err)
		_, err = NewLicenseKey(1, "", "a@x.com")
		assert.Error(t, err)
		_, err = NewLicenseKey(1, "GHX6-P2M4-Q8R7-T5W3", "  ")
		assert.Error(t, err)
	})
}

func TestLicenseKey_SetID(t *testing.T) {
	k, err := NewLicenseKey(1, "GHX6-P2M4-Q8R7-T5W3", "a@x.com")
	require.NoError(t, err)

	require.NoError(t, k.SetID(9))
	assert.Equal(t, uint(9), k.ID())
	assert.Error(t, k.SetID(10))
}

func TestReconstructLicenseKey(t *testing.T) {
	now := time.Now().UTC()

	k, err := ReconstructLicenseKey(3, "lk_abc", 2, "GHX6-P2M4-Q8R7-T5W3", "a@x.com", now, now)
	require.NoError(t, err)
	assert.Equal(t, uint(3), k.ID())
	assert.Equal(t, uint(2), k.BrandID())

	_, err = ReconstructLicenseKey(0, "lk_abc", 2, "GHX6-P2M4-Q8R7-T5W3", "a@x.com", now, now)
	assert.Error(t, err)
}
