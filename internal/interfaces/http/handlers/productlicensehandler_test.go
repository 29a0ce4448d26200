package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	licdto "keymint/internal/application/licensing/dto"
	"keymint/internal/application/licensing/usecases"
	"keymint/internal/interfaces/http/handlers/testutil"
	"keymint/internal/shared/errors"
)

type stubActivateUC struct {
	gotCmd usecases.ActivateLicenseCommand
	result *licdto.ActivationDTO
	err    error
}

func (s *stubActivateUC) Execute(_ context.Context, cmd usecases.ActivateLicenseCommand) (*licdto.ActivationDTO, error) {
	s.gotCmd = cmd
	return s.result, s.err
}

type stubDeactivateUC struct {
	gotCmd usecases.DeactivateLicenseCommand
	result *licdto.ActivationDTO
	err    error
}

func (s *stubDeactivateUC) Execute(_ context.Context, cmd usecases.DeactivateLicenseCommand) (*licdto.ActivationDTO, error) {
	s.gotCmd = cmd
	return s.result, s.err
}

type stubCheckStatusUC struct {
	gotCmd usecases.CheckStatusCommand
	result *licdto.KeySnapshotDTO
	err    error
}

func (s *stubCheckStatusUC) Execute(_ context.Context, cmd usecases.CheckStatusCommand) (*licdto.KeySnapshotDTO, error) {
	s.gotCmd = cmd
	return s.result, s.err
}

func newProductHandler(act *stubActivateUC, deact *stubDeactivateUC, check *stubCheckStatusUC) *ProductLicenseHandler {
	if act == nil {
		act = &stubActivateUC{}
	}
	if deact == nil {
		deact = &stubDeactivateUC{}
	}
	if check == nil {
		check = &stubCheckStatusUC{}
	}
	return NewProductLicenseHandler(act, deact, check, testutil.NewMockLogger())
}

const testLicenseKey = "GHX6-P2M4-Q8R7-T5W3"

func TestActivate(t *testing.T) {
	t.Run("activates seat", func(t *testing.T) {
		act := &stubActivateUC{result: &licdto.ActivationDTO{ID: "act_abc", InstanceID: "site-1", IsActive: true}}
		h := newProductHandler(act, nil, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/product/activate", map[string]any{
			"product_slug": "wp-rocket",
			"instance_id":  "site-1",
		})
		testutil.SetLicenseKeyContext(c, testLicenseKey)

		h.Activate(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, testLicenseKey, act.gotCmd.LicenseKey)
		assert.Equal(t, "wp-rocket", act.gotCmd.ProductSlug)
		assert.Equal(t, "site-1", act.gotCmd.InstanceID)
	})

	t.Run("requires license key context", func(t *testing.T) {
		h := newProductHandler(nil, nil, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/product/activate", map[string]any{
			"product_slug": "wp-rocket",
			"instance_id":  "site-1",
		})

		h.Activate(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects missing instance ID", func(t *testing.T) {
		h := newProductHandler(nil, nil, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/product/activate", map[string]any{
			"product_slug": "wp-rocket",
		})
		testutil.SetLicenseKeyContext(c, testLicenseKey)

		h.Activate(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps seat limit error", func(t *testing.T) {
		act := &stubActivateUC{err: errors.NewSeatLimitExceededError(3)}
		h := newProductHandler(act, nil, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/product/activate", map[string]any{
			"product_slug": "wp-rocket",
			"instance_id":  "site-4",
		})
		testutil.SetLicenseKeyContext(c, testLicenseKey)

		h.Activate(c)

		assert.Equal(t, http.StatusConflict, w.Code)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "seat_limit_exceeded", resp.Error.Type)
	})

	t.Run("maps not valid license error", func(t *testing.T) {
		act := &stubActivateUC{err: errors.NewLicenseNotValidError("suspended")}
		h := newProductHandler(act, nil, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/product/activate", map[string]any{
			"product_slug": "wp-rocket",
			"instance_id":  "site-1",
		})
		testutil.SetLicenseKeyContext(c, testLicenseKey)

		h.Activate(c)

		assert.Equal(t, http.StatusForbidden, w.Code)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "license_not_valid", resp.Error.Type)
		assert.Equal(t, "suspended", resp.Error.Details)
	})
}

func TestDeactivate(t *testing.T) {
	t.Run("deactivates seat", func(t *testing.T) {
		deact := &stubDeactivateUC{result: &licdto.ActivationDTO{ID: "act_abc", InstanceID: "site-1", IsActive: false}}
		h := newProductHandler(nil, deact, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/product/deactivate", map[string]any{
			"product_slug": "wp-rocket",
			"instance_id":  "site-1",
		})
		testutil.SetLicenseKeyContext(c, testLicenseKey)

		h.Deactivate(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "site-1", deact.gotCmd.InstanceID)
	})

	t.Run("maps missing activation error", func(t *testing.T) {
		deact := &stubDeactivateUC{err: errors.NewActivationNotFoundError("site-9")}
		h := newProductHandler(nil, deact, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/product/deactivate", map[string]any{
			"product_slug": "wp-rocket",
			"instance_id":  "site-9",
		})
		testutil.SetLicenseKeyContext(c, testLicenseKey)

		h.Deactivate(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCheck(t *testing.T) {
	t.Run("returns key snapshot", func(t *testing.T) {
		check := &stubCheckStatusUC{
			result: &licdto.KeySnapshotDTO{
				Key:           testLicenseKey,
				CustomerEmail: "buyer@example.com",
				Brand:         "WP Rocket",
				Licenses:      []*licdto.LicenseDTO{{ID: "lic_abc", ProductSlug: "wp-rocket", Status: "active", Usable: true}},
			},
		}
		h := newProductHandler(nil, nil, check)

		c, w := testutil.NewTestContext(http.MethodGet, "/api/product/check", nil)
		testutil.SetLicenseKeyContext(c, testLicenseKey)

		h.Check(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, testLicenseKey, check.gotCmd.LicenseKey)
	})

	t.Run("maps unknown key to not found", func(t *testing.T) {
		check := &stubCheckStatusUC{err: errors.NewNotFoundError("license key not found")}
		h := newProductHandler(nil, nil, check)

		c, w := testutil.NewTestContext(http.MethodGet, "/api/product/check", nil)
		testutil.SetLicenseKeyContext(c, testLicenseKey)

		h.Check(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
