package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BearBump/CaseDesk/internal/models"
	"github.com/BearBump/CaseDesk/internal/storage/airbase"
)

type fakeStores struct {
	calls int
	store *models.Store
	err   error
}

func (f *fakeStores) GetByCode(ctx context.Context, code string) (*models.Store, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.store, nil
}

func (f *fakeStores) ListAll(ctx context.Context) ([]*models.Store, error) {
	return []*models.Store{f.store}, nil
}

type fakePlaybooks struct {
	calls int
	pb    *models.Playbook
	err   error
}

func (f *fakePlaybooks) GetByCategory(ctx context.Context, category string) (*models.Playbook, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.pb, nil
}

func (f *fakePlaybooks) ListAll(ctx context.Context) ([]*models.Playbook, error) {
	return []*models.Playbook{f.pb}, nil
}

type memCache struct {
	m map[string][]byte
}

func (c *memCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, ok := c.m[key]
	return b, ok, nil
}

func (c *memCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.m[key] = value
	return nil
}

func TestService_StoreByCode_CachesSecondRead(t *testing.T) {
	st := &fakeStores{store: &models.Store{StoreCode: "US01", StoreName: "Main"}}
	s := New(st, &fakePlaybooks{}, &memCache{m: map[string][]byte{}}, time.Minute)

	got, err := s.StoreByCode(context.Background(), "US01")
	require.NoError(t, err)
	require.Equal(t, "Main", got.StoreName)
	require.Equal(t, 1, st.calls)

	got, err = s.StoreByCode(context.Background(), "US01")
	require.NoError(t, err)
	require.Equal(t, "Main", got.StoreName)
	require.Equal(t, 1, st.calls)
}

func TestService_StoreByCode_NoCacheWhenTTLZero(t *testing.T) {
	st := &fakeStores{store: &models.Store{StoreCode: "US01"}}
	s := New(st, &fakePlaybooks{}, nil, 0)

	_, err := s.StoreByCode(context.Background(), "US01")
	require.NoError(t, err)
	_, err = s.StoreByCode(context.Background(), "US01")
	require.NoError(t, err)
	require.Equal(t, 2, st.calls)
}

func TestService_StoreByCode_NotFoundNotCached(t *testing.T) {
	st := &fakeStores{err: airbase.ErrNotFound}
	s := New(st, &fakePlaybooks{}, &memCache{m: map[string][]byte{}}, time.Minute)

	_, err := s.StoreByCode(context.Background(), "XX99")
	require.ErrorIs(t, err, airbase.ErrNotFound)
	_, err = s.StoreByCode(context.Background(), "XX99")
	require.ErrorIs(t, err, airbase.ErrNotFound)
	require.Equal(t, 2, st.calls)
}

func TestService_PlaybookByCategory_Cached(t *testing.T) {
	pb := &fakePlaybooks{pb: &models.Playbook{IssueCategory: "Shipping Delay", ScenarioName: "Late"}}
	s := New(&fakeStores{}, pb, &memCache{m: map[string][]byte{}}, time.Minute)

	got, err := s.PlaybookByCategory(context.Background(), "Shipping Delay")
	require.NoError(t, err)
	require.Equal(t, "Late", got.ScenarioName)

	_, err = s.PlaybookByCategory(context.Background(), "Shipping Delay")
	require.NoError(t, err)
	require.Equal(t, 1, pb.calls)
}
