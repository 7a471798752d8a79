package repository

import (
	"context"

	"unicart/internal/domain/cart"
	"unicart/internal/infra"
	"unicart/internal/infra/db"
	"unicart/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const findDeliveryFeeSQL = `
SELECT fee_cents
FROM delivery_fees
WHERE domain_type = $1`

// DeliveryFeeRepository quotes a flat fee per domain. Domains without a
// configured row deliver for free.
type DeliveryFeeRepository struct {
	db db.DBTX
}

func NewDeliveryFeeRepository(dbtx db.DBTX) *DeliveryFeeRepository {
	return &DeliveryFeeRepository{db: dbtx}
}

func (r *DeliveryFeeRepository) EstimateDeliveryFee(ctx context.Context, _ uuid.UUID, domain cart.DomainType) (cart.Money, error) {
	var cents int64
	err := r.db.QueryRow(ctx, findDeliveryFeeSQL, string(domain)).Scan(&cents)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return cart.Money{}, nil
		}
		return cart.Money{}, infra.WrapRepoErr("failed to estimate delivery fee", err)
	}
	fee, err := cart.NewMoney(cents)
	if err != nil {
		return cart.Money{}, infra.WrapRepoErr("invalid delivery fee", err)
	}
	return fee, nil
}
