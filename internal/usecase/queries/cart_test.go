//go:build unit

package queries_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"unicart/internal/domain/cart"
	"unicart/internal/infra/snapshot"
	"unicart/internal/pkg/clock"
	"unicart/internal/pkg/config"
	"unicart/internal/usecase/queries"
	"unicart/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCartQueries(t *testing.T) (queries.CartQueries, *shared.Workspaces) {
	t.Helper()
	cfg := config.NewTestConfig()
	cfg.Cart.PersistDebounce = time.Hour
	ws := shared.NewWorkspaces(snapshot.NewMemoryStore(), cfg, clock.NewRealClock(), discardLogger())
	t.Cleanup(ws.Close)
	return queries.NewCartQueries(ws), ws
}

func add(t *testing.T, ws *shared.Workspaces, userID uuid.UUID, domain cart.DomainType, id string, cents int64, qty int) {
	t.Helper()
	s, err := ws.Store(context.Background(), userID, domain)
	require.NoError(t, err)
	require.NoError(t, s.AddItem(cart.Item{ID: id, Name: id, UnitPrice: cart.MustMoney(cents)}, qty))
}

func TestSummary(t *testing.T) {
	q, ws := newCartQueries(t)
	userID := uuid.New()
	add(t, ws, userID, cart.DomainMarket, "apple", 150, 2)
	add(t, ws, userID, cart.DomainMarket, "milk", 300, 1)
	add(t, ws, userID, cart.DomainGym, "day-pass", 1500, 1)

	got, err := q.Summary(context.Background(), userID)
	require.NoError(t, err)

	want := &queries.CartSummary{
		Domains: []queries.DomainCartSummary{
			{DomainType: cart.DomainRestaurant, Subtotal: cart.MustMoney(0)},
			{DomainType: cart.DomainMarket, ItemCount: 3, LineCount: 2, Subtotal: cart.MustMoney(600)},
			{DomainType: cart.DomainPharmacy, Subtotal: cart.MustMoney(0)},
			{DomainType: cart.DomainPersonalCare, Subtotal: cart.MustMoney(0)},
			{DomainType: cart.DomainGym, ItemCount: 1, LineCount: 1, Subtotal: cart.MustMoney(1500)},
		},
		ItemCount:  4,
		GrandTotal: cart.MustMoney(2100),
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b cart.Money) bool { return a.Cents() == b.Cents() })); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestAllItems_DomainOrder(t *testing.T) {
	q, ws := newCartQueries(t)
	userID := uuid.New()
	add(t, ws, userID, cart.DomainGym, "day-pass", 1500, 1)
	add(t, ws, userID, cart.DomainRestaurant, "ramen", 1200, 1)
	add(t, ws, userID, cart.DomainMarket, "apple", 150, 1)
	add(t, ws, userID, cart.DomainRestaurant, "gyoza", 600, 1)

	items, err := q.AllItems(context.Background(), userID)
	require.NoError(t, err)

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"ramen", "gyoza", "apple", "day-pass"}, ids)
}

func TestItemsByType_ReturnsCopy(t *testing.T) {
	q, ws := newCartQueries(t)
	userID := uuid.New()
	add(t, ws, userID, cart.DomainMarket, "apple", 150, 1)

	v, err := q.ItemsByType(context.Background(), userID, cart.DomainMarket)
	require.NoError(t, err)
	v.Items[0].Quantity = 99

	again, err := q.ItemsByType(context.Background(), userID, cart.DomainMarket)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].Quantity)
	assert.Equal(t, int64(150), again.TotalPrice.Cents())
}

func TestSubtotal_EmptyDomainIsZero(t *testing.T) {
	q, _ := newCartQueries(t)

	sub, err := q.Subtotal(context.Background(), uuid.New(), cart.DomainPersonalCare)

	require.NoError(t, err)
	assert.True(t, sub.IsZero())
}
