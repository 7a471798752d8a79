package repository

import (
	"context"

	"unicart/internal/domain/account"
	"unicart/internal/infra"
	"unicart/internal/infra/db"
	"unicart/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	listPaymentMethodsSQL = `
SELECT id, kind, last4, is_default
FROM payment_methods
WHERE user_id = $1
ORDER BY created_at, id`

	clearDefaultPaymentMethodsSQL = `
UPDATE payment_methods
SET is_default = FALSE, updated_at = now()
WHERE user_id = $1 AND is_default`

	markDefaultPaymentMethodSQL = `
UPDATE payment_methods
SET is_default = TRUE, updated_at = now()
WHERE user_id = $1 AND id = $2`
)

type PaymentMethodRepository struct {
	db db.DBTX
}

func NewPaymentMethodRepository(dbtx db.DBTX) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: dbtx}
}

func (r *PaymentMethodRepository) ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]account.PaymentMethod, error) {
	rows, err := r.db.Query(ctx, listPaymentMethodsSQL, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payment methods", err)
	}
	defer rows.Close()

	methods := make([]account.PaymentMethod, 0)
	for rows.Next() {
		var (
			pm    account.PaymentMethod
			kind  string
			last4 pgtype.Text
		)
		if err := rows.Scan(&pm.ID, &kind, &last4, &pm.IsDefault); err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment method", err)
		}
		pm.Kind = account.PaymentMethodKind(kind)
		pm.Last4 = pgconv.StringPtrFromPgtype(last4)
		methods = append(methods, pm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate payment methods", err)
	}
	return methods, nil
}

func (r *PaymentMethodRepository) ClearDefaultPaymentMethods(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, clearDefaultPaymentMethodsSQL, userID); err != nil {
		return infra.WrapRepoErr("failed to clear default payment methods", err)
	}
	return nil
}

func (r *PaymentMethodRepository) MarkDefaultPaymentMethod(ctx context.Context, userID, paymentMethodID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, markDefaultPaymentMethodSQL, userID, paymentMethodID)
	if err != nil {
		return infra.WrapRepoErr("failed to mark default payment method", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment method not found", nil, infra.KindNotFound)
	}
	return nil
}
