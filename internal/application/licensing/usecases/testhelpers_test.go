package usecases

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"keymint/internal/domain/brand"
	"keymint/internal/domain/license"
	"keymint/internal/shared/errors"
	"keymint/internal/shared/keygen"
	"keymint/internal/shared/logger"
)

// noopLogger satisfies logger.Interface without output.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any)           {}
func (noopLogger) Info(string, ...any)            {}
func (noopLogger) Warn(string, ...any)            {}
func (noopLogger) Error(string, ...any)           {}
func (noopLogger) Fatal(string, ...any)           {}
func (l noopLogger) With(...any) logger.Interface { return l }
func (l noopLogger) Named(string) logger.Interface {
	return l
}
func (noopLogger) Debugw(string, ...interface{}) {}
func (noopLogger) Infow(string, ...interface{})  {}
func (noopLogger) Warnw(string, ...interface{})  {}
func (noopLogger) Errorw(string, ...interface{}) {}
func (noopLogger) Fatalw(string, ...interface{}) {}

// fakeTxManager runs the function directly; the in-memory stores below are
// already serialized by their own mutex.
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memStore is an in-memory implementation of every licensing repository,
// shared so relations stay consistent within one test.
type memStore struct {
	mu sync.Mutex

	brands      map[uint]*brand.Brand
	products    map[uint]*brand.Product
	keys        map[uint]*license.LicenseKey
	licenses    map[uint]*license.License
	activations map[uint]*license.Activation

	nextID uint
}

func newMemStore() *memStore {
	return &memStore{
		brands:      make(map[uint]*brand.Brand),
		products:    make(map[uint]*brand.Product),
		keys:        make(map[uint]*license.LicenseKey),
		licenses:    make(map[uint]*license.License),
		activations: make(map[uint]*license.Activation),
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) addBrand(t *testing.T, name string) *brand.Brand {
	t.Helper()
	b, err := brand.NewBrand(name)
	require.NoError(t, err)
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NoError(t, b.SetID(s.id()))
	s.brands[b.ID()] = b
	return b
}

func (s *memStore) addProduct(t *testing.T, brandID uint, name, slug string) *brand.Product {
	t.Helper()
	p, err := brand.NewProduct(brandID, name, slug)
	require.NoError(t, err)
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NoError(t, p.SetID(s.id()))
	s.products[p.ID()] = p
	return p
}

func (s *memStore) addKey(t *testing.T, brandID uint, keyString, email string) *license.LicenseKey {
	t.Helper()
	k, err := license.NewLicenseKey(brandID, keyString, email)
	require.NoError(t, err)
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NoError(t, k.SetID(s.id()))
	s.keys[k.ID()] = k
	return k
}

func (s *memStore) addLicense(t *testing.T, keyID, productID uint, expiresAt *time.Time, maxSeats *int) *license.License {
	t.Helper()
	l, err := license.NewLicense(keyID, productID, expiresAt, maxSeats)
	require.NoError(t, err)
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NoError(t, l.SetID(s.id()))
	s.licenses[l.ID()] = l
	return l
}

// brandRepo

type memBrandRepo struct{ store *memStore }

func (r *memBrandRepo) Create(_ context.Context, b *brand.Brand) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := b.SetID(r.store.id()); err != nil {
		return err
	}
	r.store.brands[b.ID()] = b
	return nil
}

func (r *memBrandRepo) GetByID(_ context.Context, id uint) (*brand.Brand, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.brands[id], nil
}

func (r *memBrandRepo) GetByAPIKey(_ context.Context, apiKey string) (*brand.Brand, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range r.store.brands {
		if b.APIKey() == apiKey {
			return b, nil
		}
	}
	return nil, nil
}

func (r *memBrandRepo) GetByName(_ context.Context, name string) (*brand.Brand, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range r.store.brands {
		if b.Name() == name {
			return b, nil
		}
	}
	return nil, nil
}

func (r *memBrandRepo) List(_ context.Context) ([]*brand.Brand, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*brand.Brand, 0, len(r.store.brands))
	for _, b := range r.store.brands {
		out = append(out, b)
	}
	return out, nil
}

func (r *memBrandRepo) Update(_ context.Context, b *brand.Brand) error { return nil }
func (r *memBrandRepo) Delete(_ context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.brands, id)
	return nil
}

// productRepo

type memProductRepo struct{ store *memStore }

func (r *memProductRepo) Create(_ context.Context, p *brand.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := p.SetID(r.store.id()); err != nil {
		return err
	}
	r.store.products[p.ID()] = p
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id uint) (*brand.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.products[id], nil
}

func (r *memProductRepo) GetByBrandAndSlug(_ context.Context, brandID uint, slug string) (*brand.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.BrandID() == brandID && p.Slug() == strings.ToLower(slug) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) ListByBrand(_ context.Context, brandID uint) ([]*brand.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*brand.Product
	for _, p := range r.store.products {
		if p.BrandID() == brandID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) ListByIDs(_ context.Context, ids []uint) ([]*brand.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*brand.Product
	for _, id := range ids {
		if p, ok := r.store.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Update(_ context.Context, p *brand.Product) error { return nil }
func (r *memProductRepo) Delete(_ context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.products, id)
	return nil
}

// keyRepo

type memKeyRepo struct{ store *memStore }

func (r *memKeyRepo) Create(_ context.Context, k *license.LicenseKey) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.keys {
		if existing.BrandID() == k.BrandID() && existing.CustomerEmail() == k.CustomerEmail() {
			return errors.NewConflictError("Duplicate entry for brand and customer email")
		}
		if existing.Key() == k.Key() {
			return errors.NewConflictError("Duplicate entry for key")
		}
	}
	if err := k.SetID(r.store.id()); err != nil {
		return err
	}
	r.store.keys[k.ID()] = k
	return nil
}

func (r *memKeyRepo) GetByID(_ context.Context, id uint) (*license.LicenseKey, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.keys[id], nil
}

func (r *memKeyRepo) GetByKey(_ context.Context, key string) (*license.LicenseKey, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, k := range r.store.keys {
		if k.Key() == key {
			return k, nil
		}
	}
	return nil, nil
}

func (r *memKeyRepo) GetByBrandAndKey(_ context.Context, brandID uint, key string) (*license.LicenseKey, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, k := range r.store.keys {
		if k.BrandID() == brandID && k.Key() == key {
			return k, nil
		}
	}
	return nil, nil
}

func (r *memKeyRepo) GetByBrandAndEmail(_ context.Context, brandID uint, email string) (*license.LicenseKey, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, k := range r.store.keys {
		if k.BrandID() == brandID && k.CustomerEmail() == email {
			return k, nil
		}
	}
	return nil, nil
}

func (r *memKeyRepo) ListByCustomerEmail(_ context.Context, email string) ([]*license.LicenseKey, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*license.LicenseKey
	for _, k := range r.store.keys {
		if k.CustomerEmail() == email {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *memKeyRepo) KeyExists(_ context.Context, key string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, k := range r.store.keys {
		if k.Key() == key {
			return true, nil
		}
	}
	return false, nil
}

func (r *memKeyRepo) Update(_ context.Context, k *license.LicenseKey) error { return nil }

// licenseRepo

type memLicenseRepo struct{ store *memStore }

func (r *memLicenseRepo) Create(_ context.Context, l *license.License) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := l.SetID(r.store.id()); err != nil {
		return err
	}
	r.store.licenses[l.ID()] = l
	return nil
}

func (r *memLicenseRepo) GetByID(_ context.Context, id uint) (*license.License, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.licenses[id], nil
}

func (r *memLicenseRepo) GetByLID(_ context.Context, lid string) (*license.License, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, l := range r.store.licenses {
		if l.LID() == lid {
			return l, nil
		}
	}
	return nil, nil
}

func (r *memLicenseRepo) GetByIDForUpdate(ctx context.Context, id uint) (*license.License, error) {
	return r.GetByID(ctx, id)
}

func (r *memLicenseRepo) GetByKeyAndProduct(_ context.Context, licenseKeyID, productID uint) (*license.License, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var newest *license.License
	for _, l := range r.store.licenses {
		if l.LicenseKeyID() == licenseKeyID && l.ProductID() == productID {
			if newest == nil || l.ID() > newest.ID() {
				newest = l
			}
		}
	}
	return newest, nil
}

func (r *memLicenseRepo) ListByLicenseKey(_ context.Context, licenseKeyID uint) ([]*license.License, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*license.License
	for _, l := range r.store.licenses {
		if l.LicenseKeyID() == licenseKeyID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *memLicenseRepo) Update(_ context.Context, l *license.License) error { return nil }

// activationRepo

type memActivationRepo struct{ store *memStore }

func (r *memActivationRepo) Create(_ context.Context, a *license.Activation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := a.SetID(r.store.id()); err != nil {
		return err
	}
	r.store.activations[a.ID()] = a
	return nil
}

func (r *memActivationRepo) GetByID(_ context.Context, id uint) (*license.Activation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.activations[id], nil
}

func (r *memActivationRepo) GetByLicenseAndInstance(_ context.Context, licenseID uint, instanceID string) (*license.Activation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var newest *license.Activation
	for _, a := range r.store.activations {
		if a.LicenseID() == licenseID && a.InstanceID() == instanceID {
			if newest == nil || a.ID() > newest.ID() {
				newest = a
			}
		}
	}
	return newest, nil
}

func (r *memActivationRepo) CountActiveByLicense(_ context.Context, licenseID uint) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	count := 0
	for _, a := range r.store.activations {
		if a.LicenseID() == licenseID && a.IsActive() {
			count++
		}
	}
	return count, nil
}

func (r *memActivationRepo) ListByLicense(_ context.Context, licenseID uint) ([]*license.Activation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*license.Activation
	for _, a := range r.store.activations {
		if a.LicenseID() == licenseID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *memActivationRepo) Update(_ context.Context, a *license.Activation) error { return nil }

// fixture bundles the shared store with one repo set.
type fixture struct {
	store          *memStore
	brandRepo      *memBrandRepo
	productRepo    *memProductRepo
	keyRepo        *memKeyRepo
	licenseRepo    *memLicenseRepo
	activationRepo *memActivationRepo
	keyGen         *keygen.Generator
	tx             fakeTxManager
	logger         noopLogger
}

func newFixture() *fixture {
	store := newMemStore()
	return &fixture{
		store:          store,
		brandRepo:      &memBrandRepo{store: store},
		productRepo:    &memProductRepo{store: store},
		keyRepo:        &memKeyRepo{store: store},
		licenseRepo:    &memLicenseRepo{store: store},
		activationRepo: &memActivationRepo{store: store},
		keyGen:         keygen.NewGenerator(keygen.DefaultMaxAttempts),
	}
}
