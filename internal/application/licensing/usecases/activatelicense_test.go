package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keymint/internal/domain/license"
	"keymint/internal/shared/errors"
)

const testKey = "GHX6-P2M4-Q8R7-T5W3"

type activationFixture struct {
	*fixture
	key *license.LicenseKey
	lic *license.License
}

func newActivationFixture(t *testing.T, maxSeats *int) *activationFixture {
	t.Helper()
	f := newFixture()
	b := f.store.addBrand(t, "RankMath")
	p := f.store.addProduct(t, b.ID(), "RankMath SEO", "rankmath")
	key := f.store.addKey(t, b.ID(), testKey, "a@x.com")
	lic := f.store.addLicense(t, key.ID(), p.ID(), inDaysTest(365), maxSeats)
	return &activationFixture{fixture: f, key: key, lic: lic}
}

func newActivateUseCase(f *fixture) *ActivateLicenseUseCase {
	return NewActivateLicenseUseCase(
		f.keyRepo, f.licenseRepo, f.productRepo, f.activationRepo,
		f.tx, f.logger,
	)
}

func newDeactivateUseCase(f *fixture) *DeactivateLicenseUseCase {
	return NewDeactivateLicenseUseCase(
		f.keyRepo, f.licenseRepo, f.productRepo, f.activationRepo,
		f.tx, f.logger,
	)
}

func TestActivateLicenseUseCase_FirstActivation(t *testing.T) {
	f := newActivationFixture(t, seatsOf(3))
	uc := newActivateUseCase(f.fixture)

	result, err := uc.Execute(context.Background(), ActivateLicenseCommand{
		LicenseKey:  testKey,
		ProductSlug: "rankmath",
		InstanceID:  "https://site-a.example.com",
	})
	require.NoError(t, err)

	assert.True(t, result.IsActive)
	assert.Equal(t, "https://site-a.example.com", result.InstanceID)
	assert.Equal(t, 2, *result.RemainingSeats)
	assert.NotEmpty(t, result.Token)
}

func TestActivateLicenseUseCase_Idempotent(t *testing.T) {
	f := newActivationFixture(t, seatsOf(3))
	uc := newActivateUseCase(f.fixture)
	ctx := context.Background()

	cmd := ActivateLicenseCommand{LicenseKey: testKey, ProductSlug: "rankmath", InstanceID: "site-a"}

	first, err := uc.Execute(ctx, cmd)
	require.NoError(t, err)

	second, err := uc.Execute(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "repeat activation returns the same row")
	assert.Equal(t, *first.RemainingSeats, *second.RemainingSeats, "no extra seat consumed")

	count, err := f.activationRepo.CountActiveByLicense(ctx, f.lic.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestActivateLicenseUseCase_SeatLimit(t *testing.T) {
	f := newActivationFixture(t, seatsOf(2))
	activate := newActivateUseCase(f.fixture)
	deactivate := newDeactivateUseCase(f.fixture)
	ctx := context.Background()

	activateCmd := func(instance string) (err error) {
		_, err = activate.Execute(ctx, ActivateLicenseCommand{
			LicenseKey: testKey, ProductSlug: "rankmath", InstanceID: instance,
		})
		return err
	}

	require.NoError(t, activateCmd("site-a"))
	require.NoError(t, activateCmd("site-b"))

	err := activateCmd("site-c")
	require.Error(t, err)
	assert.True(t, errors.IsSeatLimitExceededError(err))

	_, err = deactivate.Execute(ctx, DeactivateLicenseCommand{
		LicenseKey: testKey, ProductSlug: "rankmath", InstanceID: "site-a",
	})
	require.NoError(t, err)

	assert.NoError(t, activateCmd("site-c"), "freed seat is usable again")
}

func TestActivateLicenseUseCase_RevivesInactiveRow(t *testing.T) {
	f := newActivationFixture(t, seatsOf(2))
	activate := newActivateUseCase(f.fixture)
	deactivate := newDeactivateUseCase(f.fixture)
	ctx := context.Background()

	first, err := activate.Execute(ctx, ActivateLicenseCommand{
		LicenseKey: testKey, ProductSlug: "rankmath", InstanceID: "site-a",
	})
	require.NoError(t, err)

	_, err = deactivate.Execute(ctx, DeactivateLicenseCommand{
		LicenseKey: testKey, ProductSlug: "rankmath", InstanceID: "site-a",
	})
	require.NoError(t, err)

	revived, err := activate.Execute(ctx, ActivateLicenseCommand{
		LicenseKey: testKey, ProductSlug: "rankmath", InstanceID: "site-a",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, revived.ID, "historical row is revived, not duplicated")
	assert.True(t, revived.IsActive)
	assert.Len(t, f.store.activations, 1)
}

func TestActivateLicenseUseCase_RevivalCountsAgainstCap(t *testing.T) {
	f := newActivationFixture(t, seatsOf(1))
	activate := newActivateUseCase(f.fixture)
	deactivate := newDeactivateUseCase(f.fixture)
	ctx := context.Background()

	_, err := activate.Execute(ctx, ActivateLicenseCommand{
		LicenseKey: testKey, ProductSlug: "rankmath", InstanceID: "site-a",
	})
	require.NoError(t, err)
	_, err = deactivate.Execute(ctx, DeactivateLicenseCommand{
		LicenseKey: testKey, ProductSlug: "rankmath", InstanceID: "site-a",
	})
	require.NoError(t, err)

	// site-b takes the only seat; site-a's dormant row cannot jump the cap.
	_, err = activate.Execute(ctx, ActivateLicenseCommand{
		LicenseKey: testKey, ProductSlug: "rankmath", InstanceID: "site-b",
	})
	require.NoError(t, err)

	_, err = activate.Execute(ctx, ActivateLicenseCommand{
		LicenseKey: testKey, ProductSlug: "rankmath", InstanceID: "site-a",
	})
	assert.True(t, errors.IsSeatLimitExceededError(err))
}

func TestActivateLicenseUseCase_UnlimitedSeats(t *testing.T) {
	f := newActivationFixture(t, nil)
	uc := newActivateUseCase(f.fixture)
	ctx := context.Background()

	for _, instance := range []string{"a", "b", "c", "d", "e"} {
		result, err := uc.Execute(ctx, ActivateLicenseCommand{
			LicenseKey: testKey, ProductSlug: "rankmath", InstanceID: instance,
		})
		require.NoError(t, err)
		assert.True(t, result.Unlimited)
		assert.Nil(t, result.RemainingSeats)
	}
}

func TestActivateLicenseUseCase_NotValidLicense(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, f *activationFixture)
		reason  string
	}{
		{
			name:    "suspended",
			prepare: func(t *testing.T, f *activationFixture) { require.NoError(t, f.lic.Suspend()) },
			reason:  "suspended",
		},
		{
			name:    "cancelled",
			prepare: func(t *testing.T, f *activationFixture) { require.NoError(t, f.lic.Cancel()) },
			reason:  "cancelled",
		},
		{
			name: "expired",
			prepare: func(t *testing.T, f *activationFixture) {
				// swap in a copy whose expiration has already elapsed
				lic, err := license.ReconstructLicense(
					f.lic.ID(), f.lic.LID(), f.lic.LicenseKeyID(), f.lic.ProductID(),
					f.lic.Status(), inDaysTest(-1), f.lic.MaxSeats(), nil,
					f.lic.CreatedAt(), f.lic.UpdatedAt(),
				)
				require.NoError(t, err)
				f.store.licenses[lic.ID()] = lic
			},
			reason: "expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newActivationFixture(t, seatsOf(3))
			tt.prepare(t, f)

			uc := newActivateUseCase(f.fixture)
			_, err := uc.Execute(context.Background(), ActivateLicenseCommand{
				LicenseKey: testKey, ProductSlug: "rankmath", InstanceID: "site-a",
			})
			require.Error(t, err)
			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrorTypeLicenseNotValid, appErr.Type)
			assert.Equal(t, tt.reason, appErr.Details)
		})
	}
}

func TestActivateLicenseUseCase_UnknownKeyOrProduct(t *testing.T) {
	f := newActivationFixture(t, seatsOf(3))
	uc := newActivateUseCase(f.fixture)
	ctx := context.Background()

	_, err := uc.Execute(ctx, ActivateLicenseCommand{
		LicenseKey: "AAAA-BBBB-CCCC-DDDD", ProductSlug: "rankmath", InstanceID: "site-a",
	})
	assert.True(t, errors.IsNotFoundError(err))

	_, err = uc.Execute(ctx, ActivateLicenseCommand{
		LicenseKey: testKey, ProductSlug: "unknown", InstanceID: "site-a",
	})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestDeactivateLicenseUseCase_Errors(t *testing.T) {
	f := newActivationFixture(t, seatsOf(3))
	activate := newActivateUseCase(f.fixture)
	deactivate := newDeactivateUseCase(f.fixture)
	ctx := context.Background()

	t.Run("never-activated instance", func(t *testing.T) {
		_, err := deactivate.Execute(ctx, DeactivateLicenseCommand{
			LicenseKey: testKey, ProductSlug: "rankmath", InstanceID: "ghost",
		})
		require.Error(t, err)
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeActivationNotFound, appErr.Type)
	})

	t.Run("double deactivate is an error", func(t *testing.T) {
		_, err := activate.Execute(ctx, ActivateLicenseCommand{
			LicenseKey: testKey, ProductSlug: "rankmath", InstanceID: "site-a",
		})
		require.NoError(t, err)

		_, err = deactivate.Execute(ctx, DeactivateLicenseCommand{
			LicenseKey: testKey, ProductSlug: "rankmath", InstanceID: "site-a",
		})
		require.NoError(t, err)

		_, err = deactivate.Execute(ctx, DeactivateLicenseCommand{
			LicenseKey: testKey, ProductSlug: "rankmath", InstanceID: "site-a",
		})
		require.Error(t, err)
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeActivationNotFound, appErr.Type)
	})
}

func TestDeactivateLicenseUseCase_ReportsFreedSeat(t *testing.T) {
	f := newActivationFixture(t, seatsOf(2))
	activate := newActivateUseCase(f.fixture)
	deactivate := newDeactivateUseCase(f.fixture)
	ctx := context.Background()

	_, err := activate.Execute(ctx, ActivateLicenseCommand{
		LicenseKey: testKey, ProductSlug: "rankmath", InstanceID: "site-a",
	})
	require.NoError(t, err)
	_, err = activate.Execute(ctx, ActivateLicenseCommand{
		LicenseKey: testKey, ProductSlug: "rankmath", InstanceID: "site-b",
	})
	require.NoError(t, err)

	result, err := deactivate.Execute(ctx, DeactivateLicenseCommand{
		LicenseKey: testKey, ProductSlug: "rankmath", InstanceID: "site-a",
	})
	require.NoError(t, err)

	assert.False(t, result.IsActive)
	assert.NotNil(t, result.DeactivatedAt)
	assert.Equal(t, 1, *result.RemainingSeats)
}
