package queries

import (
	"context"

	"unicart/internal/domain/cart"
	"unicart/internal/usecase/shared"

	"github.com/google/uuid"
)

// CartQueries is the unified view over a user's domain carts. It keeps no
// state of its own and reads the live stores on every call.
type CartQueries interface {
	ItemsByType(ctx context.Context, userID uuid.UUID, domain cart.DomainType) (*DomainCartView, error)
	AllItems(ctx context.Context, userID uuid.UUID) ([]cart.Item, error)
	Subtotal(ctx context.Context, userID uuid.UUID, domain cart.DomainType) (cart.Money, error)
	Summary(ctx context.Context, userID uuid.UUID) (*CartSummary, error)
}

type cartQueriesImpl struct {
	workspaces *shared.Workspaces
}

func NewCartQueries(workspaces *shared.Workspaces) CartQueries {
	return &cartQueriesImpl{workspaces: workspaces}
}

func (q *cartQueriesImpl) ItemsByType(ctx context.Context, userID uuid.UUID, domain cart.DomainType) (*DomainCartView, error) {
	store, err := q.workspaces.Store(ctx, userID, domain)
	if err != nil {
		return nil, err
	}
	return domainView(store), nil
}

func (q *cartQueriesImpl) AllItems(ctx context.Context, userID uuid.UUID) ([]cart.Item, error) {
	stores, err := q.workspaces.Stores(ctx, userID)
	if err != nil {
		return nil, err
	}
	var items []cart.Item
	for _, s := range stores {
		items = append(items, s.Items()...)
	}
	return items, nil
}

func (q *cartQueriesImpl) Subtotal(ctx context.Context, userID uuid.UUID, domain cart.DomainType) (cart.Money, error) {
	store, err := q.workspaces.Store(ctx, userID, domain)
	if err != nil {
		return cart.Money{}, err
	}
	return store.TotalPrice(), nil
}

func (q *cartQueriesImpl) Summary(ctx context.Context, userID uuid.UUID) (*CartSummary, error) {
	stores, err := q.workspaces.Stores(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &CartSummary{Domains: make([]DomainCartSummary, 0, len(stores))}
	for _, s := range stores {
		// one consistent read per store
		items := s.Items()
		ds := DomainCartSummary{
			DomainType: s.Domain(),
			LineCount:  len(items),
			Subtotal:   cart.Subtotal(items),
		}
		for _, it := range items {
			ds.ItemCount += it.Quantity
		}
		summary.Domains = append(summary.Domains, ds)
		summary.ItemCount += ds.ItemCount
		summary.GrandTotal = summary.GrandTotal.Add(ds.Subtotal)
	}
	return summary, nil
}

func domainView(store *cart.Store) *DomainCartView {
	items := store.Items()
	v := &DomainCartView{
		DomainType: store.Domain(),
		Items:      items,
		LineCount:  len(items),
		TotalPrice: cart.Subtotal(items),
	}
	for _, it := range items {
		v.ItemCount += it.Quantity
	}
	return v
}
