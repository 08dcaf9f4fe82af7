package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adhithya-electronics/storefront-client/internal/cart/app"
	"github.com/adhithya-electronics/storefront-client/internal/cart/domain"
)

type memStore struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemStore() *memStore {
	return &memStore{m: map[string]string{}}
}

func (s *memStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *memStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *memStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

type addCall struct {
	id  string
	qty int
}

type fakeCartAPI struct {
	mu         sync.Mutex
	fetchItems []domain.LineItem
	fetchErr   error
	mergeErr   error
	addErr     error
	removeErr  error

	calls   []string // every API call in invocation order
	fetches int
	merges  [][]domain.LineItem
	adds    []addCall
	removes []string
}

func (f *fakeCartAPI) Fetch(ctx context.Context) ([]domain.LineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "fetch")
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.fetchItems, nil
}

func (f *fakeCartAPI) Add(ctx context.Context, variantID string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "add")
	f.adds = append(f.adds, addCall{id: variantID, qty: quantity})
	return f.addErr
}

func (f *fakeCartAPI) Merge(ctx context.Context, items []domain.LineItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "merge")
	f.merges = append(f.merges, items)
	return f.mergeErr
}

func (f *fakeCartAPI) Remove(ctx context.Context, variantID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "remove")
	f.removes = append(f.removes, variantID)
	return f.removeErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) (*app.Service, *fakeCartAPI, *memStore) {
	t.Helper()
	api := &fakeCartAPI{}
	store := newMemStore()
	return app.NewService(api, store, discardLogger()), api, store
}

func TestAddItem_AccumulatesDeltas(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, qty := range []int{2, 3, 1} {
		svc.AddItem(ctx, domain.LineItem{ID: "v1", Quantity: qty, Price: 10})
	}

	items := svc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 6, items[0].Quantity)
}

func TestAddItem_SingleItemScenario(t *testing.T) {
	svc, _, _ := newTestService(t)

	svc.AddItem(context.Background(), domain.LineItem{
		ID: "v1", Quantity: 2, Price: 500, StockAvailable: 5,
	})

	items := svc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, svc.TotalItems())
	assert.InDelta(t, 1000, svc.TotalPrice(), 1e-9)
}

func TestAddItem_ClampsIncomingDelta(t *testing.T) {
	svc, _, _ := newTestService(t)

	svc.AddItem(context.Background(), domain.LineItem{ID: "v1", Quantity: 7, StockAvailable: 5})

	items := svc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddItem_ClampsMergedQuantity(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	svc.AddItem(ctx, domain.LineItem{ID: "v1", Quantity: 4, StockAvailable: 5})
	svc.AddItem(ctx, domain.LineItem{ID: "v1", Quantity: 3, StockAvailable: 5})

	items := svc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity, "7 must clamp to the stock ceiling")
}

func TestAddItem_NoHeadroomLeavesCartUnchanged(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	svc.AddItem(ctx, domain.LineItem{ID: "v1", Quantity: 5, StockAvailable: 5})
	before := svc.Items()

	svc.AddItem(ctx, domain.LineItem{ID: "v1", Quantity: 2, StockAvailable: 5})

	assert.Equal(t, before, svc.Items())
}

func TestAddItem_NegativeDeltaDecrements(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	svc.AddItem(ctx, domain.LineItem{ID: "v1", Quantity: 3})
	svc.AddItem(ctx, domain.LineItem{ID: "v1", Quantity: -1})

	items := svc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddItem_AppendsUnknownID(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	svc.AddItem(ctx, domain.LineItem{ID: "v1", Quantity: 1, Price: 10})
	svc.AddItem(ctx, domain.LineItem{ID: "v2", Quantity: 2, Price: 20, Name: "Mouse"})

	items := svc.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Mouse", items[1].Name)
	assert.Equal(t, 3, svc.TotalItems())
	assert.InDelta(t, 50, svc.TotalPrice(), 1e-9)
}

func TestRemoveItem_Idempotent(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	svc.AddItem(ctx, domain.LineItem{ID: "v1", Quantity: 1})
	svc.RemoveItem(ctx, "v1")
	svc.RemoveItem(ctx, "v1")

	assert.Empty(t, svc.Items())
}

func TestTotals_AfterAddRemoveSequence(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	svc.AddItem(ctx, domain.LineItem{ID: "v1", Quantity: 2, Price: 100})
	svc.AddItem(ctx, domain.LineItem{ID: "v2", Quantity: 1, Price: 250})
	svc.AddItem(ctx, domain.LineItem{ID: "v1", Quantity: 1, Price: 100})
	svc.RemoveItem(ctx, "v2")

	assert.Equal(t, 3, svc.TotalItems())
	assert.InDelta(t, 300, svc.TotalPrice(), 1e-9)

	var want float64
	for _, it := range svc.Items() {
		want += it.Price * float64(it.Quantity)
	}
	assert.InDelta(t, want, svc.TotalPrice(), 1e-9)
}

func TestGuestMutations_ArePersisted(t *testing.T) {
	svc, api, store := newTestService(t)
	ctx := context.Background()

	svc.AddItem(ctx, domain.LineItem{ID: "v1", Quantity: 2, Price: 10})

	raw, ok := store.Get(app.GuestCartKey)
	require.True(t, ok)
	var persisted []domain.LineItem
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	require.Len(t, persisted, 1)
	assert.Equal(t, 2, persisted[0].Quantity)

	svc.RemoveItem(ctx, "v1")
	raw, ok = store.Get(app.GuestCartKey)
	require.True(t, ok)
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Empty(t, persisted)

	svc.Wait()
	assert.Empty(t, api.adds, "guest mutations must stay local")
	assert.Empty(t, api.removes)
}

func TestClearCart_DeletesGuestEntry(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()

	svc.AddItem(ctx, domain.LineItem{ID: "v1", Quantity: 1})
	svc.ClearCart()

	assert.Empty(t, svc.Items())
	_, ok := store.Get(app.GuestCartKey)
	assert.False(t, ok)
}

func TestLoadGuestCart_CorruptEntryIsEmptyCart(t *testing.T) {
	svc, _, store := newTestService(t)
	require.NoError(t, store.Set(app.GuestCartKey, "{not json"))

	svc.LoadGuestCart()

	assert.Empty(t, svc.Items())
}

func TestTokenChange_MergesThenFetches(t *testing.T) {
	svc, api, store := newTestService(t)
	ctx := context.Background()

	guest := []domain.LineItem{
		{ID: "v1", Quantity: 2, Price: 500},
		{ID: "v2", Quantity: 1, Price: 120},
	}
	raw, err := json.Marshal(guest)
	require.NoError(t, err)
	require.NoError(t, store.Set(app.GuestCartKey, string(raw)))
	svc.LoadGuestCart()

	server := []domain.LineItem{{ID: "v1", Quantity: 3, Price: 500, Name: "Laptop", StockAvailable: 9}}
	api.fetchItems = server

	svc.HandleTokenChange(ctx, "tok-1")

	require.Len(t, api.merges, 1, "merge must fire exactly once")
	assert.Equal(t, guest, api.merges[0])
	_, ok := store.Get(app.GuestCartKey)
	assert.False(t, ok, "guest entry removed after successful merge")
	assert.Equal(t, server, svc.Items(), "server list replaces local state wholesale")

	// Unchanged token must not re-run the reconciliation.
	svc.HandleTokenChange(ctx, "tok-1")
	assert.Len(t, api.merges, 1)
	assert.Equal(t, 1, api.fetches)
}

func TestTokenChange_MergeCompletesBeforeFetch(t *testing.T) {
	svc, api, store := newTestService(t)

	raw, err := json.Marshal([]domain.LineItem{{ID: "v1", Quantity: 2}})
	require.NoError(t, err)
	require.NoError(t, store.Set(app.GuestCartKey, string(raw)))
	svc.LoadGuestCart()

	api.fetchItems = []domain.LineItem{{ID: "v1", Quantity: 5}}
	svc.HandleTokenChange(context.Background(), "tok-1")

	assert.Equal(t, []string{"merge", "fetch"}, api.calls,
		"the merge must finish before the fetch is issued")
	assert.Equal(t, api.fetchItems, svc.Items())
}

func TestTokenChange_EmptyGuestCartSkipsMerge(t *testing.T) {
	svc, api, _ := newTestService(t)

	svc.HandleTokenChange(context.Background(), "tok-1")

	assert.Empty(t, api.merges)
	assert.Equal(t, 1, api.fetches)
}

func TestTokenChange_MergeFailureKeepsGuestEntry(t *testing.T) {
	svc, api, store := newTestService(t)

	raw, err := json.Marshal([]domain.LineItem{{ID: "v1", Quantity: 1}})
	require.NoError(t, err)
	require.NoError(t, store.Set(app.GuestCartKey, string(raw)))

	api.mergeErr = errors.New("boom")
	api.fetchItems = []domain.LineItem{{ID: "v9", Quantity: 1}}

	svc.HandleTokenChange(context.Background(), "tok-1")

	_, ok := store.Get(app.GuestCartKey)
	assert.True(t, ok, "failed merge must not discard the guest cart")
	assert.Equal(t, 1, api.fetches, "fetch still runs after a failed merge")
	assert.Equal(t, api.fetchItems, svc.Items())
}

func TestTokenChange_FetchFailureKeepsLocalState(t *testing.T) {
	svc, api, _ := newTestService(t)
	ctx := context.Background()

	svc.AddItem(ctx, domain.LineItem{ID: "v1", Quantity: 2})
	before := svc.Items()

	api.fetchErr = errors.New("boom")
	svc.HandleTokenChange(ctx, "tok-1")

	assert.Equal(t, before, svc.Items())
}

func TestAuthenticatedAdd_MirrorsToServer(t *testing.T) {
	svc, api, store := newTestService(t)
	ctx := context.Background()

	svc.HandleTokenChange(ctx, "tok-1")
	svc.AddItem(ctx, domain.LineItem{ID: "v1", Quantity: 2, Price: 10})
	svc.Wait()

	require.Len(t, api.adds, 1)
	assert.Equal(t, addCall{id: "v1", qty: 2}, api.adds[0])
	_, ok := store.Get(app.GuestCartKey)
	assert.False(t, ok, "authenticated mutations do not touch the guest entry")
}

func TestAuthenticatedAdd_ServerFailureIsNotRolledBack(t *testing.T) {
	svc, api, _ := newTestService(t)
	ctx := context.Background()

	svc.HandleTokenChange(ctx, "tok-1")
	api.addErr = errors.New("boom")

	svc.AddItem(ctx, domain.LineItem{ID: "v1", Quantity: 2})
	svc.Wait()

	items := svc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity, "optimistic local state stands")
}

func TestAuthenticatedRemove_MirrorsToServer(t *testing.T) {
	svc, api, _ := newTestService(t)
	ctx := context.Background()

	api.fetchItems = []domain.LineItem{{ID: "v1", Quantity: 1}}
	svc.HandleTokenChange(ctx, "tok-1")

	api.removeErr = errors.New("boom")
	svc.RemoveItem(ctx, "v1")
	svc.Wait()

	assert.Equal(t, []string{"v1"}, api.removes)
	assert.Empty(t, svc.Items(), "local removal is unconditional")
}

func TestLogout_RepersistsGuestCart(t *testing.T) {
	svc, api, store := newTestService(t)
	ctx := context.Background()

	api.fetchItems = []domain.LineItem{{ID: "v1", Quantity: 2, Price: 50}}
	svc.HandleTokenChange(ctx, "tok-1")
	require.Equal(t, api.fetchItems, svc.Items())

	svc.HandleTokenChange(ctx, "")

	raw, ok := store.Get(app.GuestCartKey)
	require.True(t, ok)
	var persisted []domain.LineItem
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Equal(t, api.fetchItems, persisted)
}

func TestReloginWithSameToken_ReRunsReconciliation(t *testing.T) {
	svc, api, _ := newTestService(t)
	ctx := context.Background()

	svc.HandleTokenChange(ctx, "tok-1")
	svc.HandleTokenChange(ctx, "")
	svc.HandleTokenChange(ctx, "tok-1")

	assert.Equal(t, 2, api.fetches, "a fresh acquisition of the same token reconciles again")
}

func TestRefresh_ReplacesLocalWithServerList(t *testing.T) {
	svc, api, _ := newTestService(t)
	ctx := context.Background()

	svc.HandleTokenChange(ctx, "tok-1")
	svc.AddItem(ctx, domain.LineItem{ID: "v2", Quantity: 1})
	svc.Wait()

	api.fetchItems = []domain.LineItem{{ID: "v1", Quantity: 3, Name: "Laptop", Price: 500}}
	require.NoError(t, svc.Refresh(ctx))

	assert.Equal(t, api.fetchItems, svc.Items())
	assert.Equal(t, 3, svc.TotalItems())
}

func TestRefresh_RequiresSession(t *testing.T) {
	svc, api, _ := newTestService(t)

	err := svc.Refresh(context.Background())

	assert.ErrorIs(t, err, app.ErrNoSession)
	assert.Zero(t, api.fetches, "a guest cart has nothing to pull")
}

func TestRefresh_FetchFailureKeepsLocalState(t *testing.T) {
	svc, api, _ := newTestService(t)
	ctx := context.Background()

	api.fetchItems = []domain.LineItem{{ID: "v1", Quantity: 2}}
	svc.HandleTokenChange(ctx, "tok-1")
	before := svc.Items()

	api.fetchErr = errors.New("boom")
	require.Error(t, svc.Refresh(ctx))

	assert.Equal(t, before, svc.Items())
}
