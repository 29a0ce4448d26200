package license

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keymint/internal/domain/license/valueobjects"
	"keymint/internal/shared/errors"
)

func newTestLicense(t *testing.T, expiresAt *time.Time, maxSeats *int) *License {
	t.Helper()
	l, err := NewLicense(1, 1, expiresAt, maxSeats)
	require.NoError(t, err)
	return l
}

func inDays(d int) *time.Time {
	ts := time.Now().UTC().AddDate(0, 0, d)
	return &ts
}

func seats(n int) *int { return &n }

func TestNewLicense(t *testing.T) {
	t.Run("starts active", func(t *testing.T) {
		l := newTestLicense(t, inDays(365), seats(5))
		assert.Equal(t, valueobjects.StatusActive, l.Status())
		assert.Equal(t, 5, *l.MaxSeats())
		assert.Contains(t, l.LID(), "lic_")
	})

	t.Run("allows perpetual unlimited license", func(t *testing.T) {
		l := newTestLicense(t, nil, nil)
		assert.Nil(t, l.ExpiresAt())
		assert.Nil(t, l.MaxSeats())
	})

	t.Run("rejects zero max seats", func(t *testing.T) {
		_, err := NewLicense(1, 1, nil, seats(0))
		assert.Error(t, err)
	})

	t.Run("rejects zero parent IDs", func(t *testing.T) {
		_, err := NewLicense(0, 1, nil, nil)
		assert.Error(t, err)
		_, err = NewLicense(1, 0, nil, nil)
		assert.Error(t, err)
	})
}

func TestLicense_IsExpired(t *testing.T) {
	now := time.Now().UTC()

	t.Run("future expiration is not expired", func(t *testing.T) {
		l := newTestLicense(t, inDays(1), nil)
		assert.False(t, l.IsExpired(now))
	})

	t.Run("past expiration is expired", func(t *testing.T) {
		l := newTestLicense(t, inDays(-1), nil)
		assert.True(t, l.IsExpired(now))
	})

	t.Run("nil expiration never expires", func(t *testing.T) {
		l := newTestLicense(t, nil, nil)
		assert.False(t, l.IsExpired(now.AddDate(100, 0, 0)))
	})

	t.Run("expiry does not change stored status", func(t *testing.T) {
		l := newTestLicense(t, inDays(-1), nil)
		assert.Equal(t, valueobjects.StatusActive, l.Status())
		assert.False(t, l.IsUsable(now))
	})
}

func TestLicense_InvalidityReason(t *testing.T) {
	now := time.Now().UTC()

	t.Run("usable license has no reason", func(t *testing.T) {
		l := newTestLicense(t, inDays(1), nil)
		assert.Empty(t, l.InvalidityReason(now))
	})

	t.Run("expired", func(t *testing.T) {
		l := newTestLicense(t, inDays(-1), nil)
		assert.Equal(t, "expired", l.InvalidityReason(now))
	})

	t.Run("suspension wins over expiry", func(t *testing.T) {
		l := newTestLicense(t, inDays(-1), nil)
		require.NoError(t, l.Suspend())
		assert.Equal(t, "suspended", l.InvalidityReason(now))
	})

	t.Run("cancelled", func(t *testing.T) {
		l := newTestLicense(t, inDays(1), nil)
		require.NoError(t, l.Cancel())
		assert.Equal(t, "cancelled", l.InvalidityReason(now))
	})
}

func TestLicense_Lifecycle(t *testing.T) {
	t.Run("suspend then resume", func(t *testing.T) {
		l := newTestLicense(t, inDays(30), nil)
		require.NoError(t, l.Suspend())
		assert.Equal(t, valueobjects.StatusSuspended, l.Status())
		require.NoError(t, l.Resume())
		assert.Equal(t, valueobjects.StatusActive, l.Status())
	})

	t.Run("double suspend fails", func(t *testing.T) {
		l := newTestLicense(t, inDays(30), nil)
		require.NoError(t, l.Suspend())
		err := l.Suspend()
		require.Error(t, err)
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeInvalidTransition, appErr.Type)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		l := newTestLicense(t, inDays(30), nil)
		require.NoError(t, l.Cancel())

		for name, op := range map[string]func() error{
			"suspend": l.Suspend,
			"resume":  l.Resume,
			"cancel":  l.Cancel,
		} {
			err := op()
			require.Error(t, err, "%s after cancel must fail", name)
			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrorTypeInvalidTransition, appErr.Type)
		}
	})

	t.Run("resume from active fails", func(t *testing.T) {
		l := newTestLicense(t, inDays(30), nil)
		err := l.Resume()
		assert.True(t, errors.IsInvalidTransitionError(err))
	})
}

func TestLicense_Renew(t *testing.T) {
	now := time.Now().UTC()

	t.Run("advances expiration", func(t *testing.T) {
		l := newTestLicense(t, inDays(30), nil)
		newExp := now.AddDate(1, 0, 0)
		require.NoError(t, l.Renew(newExp, now))
		assert.True(t, l.ExpiresAt().Equal(newExp))
	})

	t.Run("rejects non-advancing date", func(t *testing.T) {
		l := newTestLicense(t, inDays(30), nil)
		err := l.Renew(now.AddDate(0, 0, 10), now)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidExpirationError(err))
	})

	t.Run("rejects equal date", func(t *testing.T) {
		exp := inDays(30)
		l := newTestLicense(t, exp, nil)
		err := l.Renew(*exp, now)
		assert.True(t, errors.IsInvalidExpirationError(err))
	})

	t.Run("expired license measures against now", func(t *testing.T) {
		l := newTestLicense(t, inDays(-30), nil)
		require.NoError(t, l.Renew(now.AddDate(0, 0, 1), now))
	})

	t.Run("does not lift suspension", func(t *testing.T) {
		l := newTestLicense(t, inDays(30), nil)
		require.NoError(t, l.Suspend())
		require.NoError(t, l.Renew(now.AddDate(1, 0, 0), now))
		assert.Equal(t, valueobjects.StatusSuspended, l.Status())
	})

	t.Run("cancelled cannot be renewed", func(t *testing.T) {
		l := newTestLicense(t, inDays(30), nil)
		require.NoError(t, l.Cancel())
		err := l.Renew(now.AddDate(1, 0, 0), now)
		assert.True(t, errors.IsInvalidTransitionError(err))
	})
}

func TestLicense_ExtendTo(t *testing.T) {
	t.Run("extends expiration and seat cap", func(t *testing.T) {
		l := newTestLicense(t, inDays(30), seats(3))
		newExp := inDays(90)
		require.NoError(t, l.ExtendTo(newExp, seats(10)))
		assert.True(t, l.ExpiresAt().Equal(*newExp))
		assert.Equal(t, 10, *l.MaxSeats())
	})

	t.Run("rejects shrinking expiration", func(t *testing.T) {
		l := newTestLicense(t, inDays(90), seats(3))
		err := l.ExtendTo(inDays(30), seats(3))
		assert.True(t, errors.IsInvalidExpirationError(err))
	})

	t.Run("nil expiration makes license perpetual", func(t *testing.T) {
		l := newTestLicense(t, inDays(30), seats(3))
		require.NoError(t, l.ExtendTo(nil, nil))
		assert.Nil(t, l.ExpiresAt())
		assert.Nil(t, l.MaxSeats())
	})
}

func TestLicense_RemainingSeats(t *testing.T) {
	t.Run("bounded license", func(t *testing.T) {
		l := newTestLicense(t, nil, seats(5))
		assert.Equal(t, 3, *l.RemainingSeats(2))
		assert.Equal(t, 0, *l.RemainingSeats(5))
		assert.Equal(t, 0, *l.RemainingSeats(7), "never negative")
	})

	t.Run("unlimited license reports nil", func(t *testing.T) {
		l := newTestLicense(t, nil, nil)
		assert.Nil(t, l.RemainingSeats(100))
	})
}
