package repository

import (
	"context"

	"unicart/internal/domain/account"
	"unicart/internal/infra"
	"unicart/internal/infra/db"

	"github.com/google/uuid"
)

const (
	listAddressesSQL = `
SELECT id, label, full_address, phone, is_default
FROM addresses
WHERE user_id = $1
ORDER BY created_at, id`

	clearDefaultAddressesSQL = `
UPDATE addresses
SET is_default = FALSE, updated_at = now()
WHERE user_id = $1 AND is_default`

	markDefaultAddressSQL = `
UPDATE addresses
SET is_default = TRUE, updated_at = now()
WHERE user_id = $1 AND id = $2`
)

type AddressRepository struct {
	db db.DBTX
}

func NewAddressRepository(dbtx db.DBTX) *AddressRepository {
	return &AddressRepository{db: dbtx}
}

func (r *AddressRepository) ListAddresses(ctx context.Context, userID uuid.UUID) ([]account.Address, error) {
	rows, err := r.db.Query(ctx, listAddressesSQL, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list addresses", err)
	}
	defer rows.Close()

	addresses := make([]account.Address, 0)
	for rows.Next() {
		var a account.Address
		if err := rows.Scan(&a.ID, &a.Label, &a.FullAddress, &a.Phone, &a.IsDefault); err != nil {
			return nil, infra.WrapRepoErr("failed to scan address", err)
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate addresses", err)
	}
	return addresses, nil
}

func (r *AddressRepository) ClearDefaultAddresses(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, clearDefaultAddressesSQL, userID); err != nil {
		return infra.WrapRepoErr("failed to clear default addresses", err)
	}
	return nil
}

func (r *AddressRepository) MarkDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, markDefaultAddressSQL, userID, addressID)
	if err != nil {
		return infra.WrapRepoErr("failed to mark default address", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("address not found", nil, infra.KindNotFound)
	}
	return nil
}
