package commands

import (
	"context"

	"unicart/internal/domain/cart"
	"unicart/internal/usecase/shared"

	"github.com/google/uuid"
)

type AddItemInput struct {
	ID             string
	Name           string
	UnitPriceCents int64
	Quantity       int
	ImageRef       string
	Metadata       map[string]string
}

type CartCommands interface {
	AddItem(ctx context.Context, userID uuid.UUID, domain cart.DomainType, in AddItemInput) error
	IncreaseQuantity(ctx context.Context, userID uuid.UUID, domain cart.DomainType, itemID string) error
	DecreaseQuantity(ctx context.Context, userID uuid.UUID, domain cart.DomainType, itemID string) error
	RemoveItem(ctx context.Context, userID uuid.UUID, domain cart.DomainType, itemID string) error
	Clear(ctx context.Context, userID uuid.UUID, domain cart.DomainType) error
}

type cartCommandsImpl struct {
	workspaces *shared.Workspaces
}

func NewCartCommands(workspaces *shared.Workspaces) CartCommands {
	return &cartCommandsImpl{workspaces: workspaces}
}

func (uc *cartCommandsImpl) AddItem(ctx context.Context, userID uuid.UUID, domain cart.DomainType, in AddItemInput) error {
	price, err := cart.NewMoney(in.UnitPriceCents)
	if err != nil {
		return err
	}
	store, err := uc.workspaces.Store(ctx, userID, domain)
	if err != nil {
		return err
	}
	item := cart.Item{
		ID:         in.ID,
		DomainType: domain,
		Name:       in.Name,
		UnitPrice:  price,
		ImageRef:   in.ImageRef,
		Metadata:   in.Metadata,
	}
	return store.AddItem(item, in.Quantity)
}

func (uc *cartCommandsImpl) IncreaseQuantity(ctx context.Context, userID uuid.UUID, domain cart.DomainType, itemID string) error {
	store, err := uc.workspaces.Store(ctx, userID, domain)
	if err != nil {
		return err
	}
	return store.IncreaseQuantity(itemID)
}

func (uc *cartCommandsImpl) DecreaseQuantity(ctx context.Context, userID uuid.UUID, domain cart.DomainType, itemID string) error {
	store, err := uc.workspaces.Store(ctx, userID, domain)
	if err != nil {
		return err
	}
	return store.DecreaseQuantity(itemID)
}

func (uc *cartCommandsImpl) RemoveItem(ctx context.Context, userID uuid.UUID, domain cart.DomainType, itemID string) error {
	store, err := uc.workspaces.Store(ctx, userID, domain)
	if err != nil {
		return err
	}
	return store.RemoveItem(itemID)
}

func (uc *cartCommandsImpl) Clear(ctx context.Context, userID uuid.UUID, domain cart.DomainType) error {
	store, err := uc.workspaces.Store(ctx, userID, domain)
	if err != nil {
		return err
	}
	store.Clear()
	return nil
}
