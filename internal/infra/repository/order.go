package repository

import (
	"context"
	"encoding/json"
	"time"

	"unicart/internal/domain/cart"
	"unicart/internal/domain/checkout"
	"unicart/internal/infra"
	"unicart/internal/infra/db"
	"unicart/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const defaultLeadTime = 45 * time.Minute

const (
	ownsAddressSQL = `
SELECT EXISTS (SELECT 1 FROM addresses WHERE id = $1 AND user_id = $2)`

	ownsPaymentMethodSQL = `
SELECT EXISTS (SELECT 1 FROM payment_methods WHERE id = $1 AND user_id = $2)`

	leadTimeSQL = `
SELECT lead_time_minutes
FROM delivery_fees
WHERE domain_type = $1`

	insertOrderSQL = `
INSERT INTO orders (
    idempotency_key, user_id, domain_type, address_id, payment_method_id,
    subtotal_cents, delivery_fee_cents, total_cents, estimated_delivery
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now() + make_interval(mins => $9))
ON CONFLICT (idempotency_key) DO NOTHING
RETURNING id, estimated_delivery`

	findOrderByKeySQL = `
SELECT o.id, o.estimated_delivery, o.total_cents,
       COALESCE((
           SELECT json_agg(json_build_object(
                      'itemId', l.item_id,
                      'name', l.name,
                      'quantity', l.quantity,
                      'unitPriceCents', l.unit_price_cents
                  ) ORDER BY l.line_no)
           FROM order_lines l
           WHERE l.order_id = o.id
       ), '[]'::json)
FROM orders o
WHERE o.idempotency_key = $1 AND o.user_id = $2`

	insertOrderLineSQL = `
INSERT INTO order_lines (order_id, line_no, item_id, name, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4, $5, $6)`
)

// TxRunner is implemented by uow.PostgresUoW.
type TxRunner interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error
}

// OrderRepository places orders. A second submission with the same
// idempotency key returns the stored order, whatever the new payload holds,
// and writes nothing.
type OrderRepository struct {
	tx TxRunner
}

func NewOrderRepository(tx TxRunner) *OrderRepository {
	return &OrderRepository{tx: tx}
}

func (r *OrderRepository) SubmitOrder(ctx context.Context, sub checkout.OrderSubmission) (checkout.OrderPlacement, error) {
	var placement checkout.OrderPlacement
	err := r.tx.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		p, err := placeOrder(ctx, tx, sub)
		if err != nil {
			return err
		}
		placement = p
		return nil
	})
	if err != nil {
		return checkout.OrderPlacement{}, err
	}
	return placement, nil
}

func placeOrder(ctx context.Context, tx db.DBTX, sub checkout.OrderSubmission) (checkout.OrderPlacement, error) {
	if err := ensureOwned(ctx, tx, ownsAddressSQL, sub.AddressID, sub.UserID, "address not found"); err != nil {
		return checkout.OrderPlacement{}, err
	}
	if err := ensureOwned(ctx, tx, ownsPaymentMethodSQL, sub.PaymentMethodID, sub.UserID, "payment method not found"); err != nil {
		return checkout.OrderPlacement{}, err
	}

	leadTime, err := findLeadTime(ctx, tx, sub)
	if err != nil {
		return checkout.OrderPlacement{}, err
	}

	var p checkout.OrderPlacement
	err = tx.QueryRow(ctx, insertOrderSQL,
		sub.IdempotencyKey,
		sub.UserID,
		string(sub.DomainType),
		sub.AddressID,
		sub.PaymentMethodID,
		sub.Subtotal.Cents(),
		sub.DeliveryFee.Cents(),
		sub.Total.Cents(),
		int(leadTime/time.Minute),
	).Scan(&p.OrderID, &p.EstimatedDelivery)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return findExisting(ctx, tx, sub)
		}
		return checkout.OrderPlacement{}, infra.WrapRepoErr("failed to insert order", err)
	}

	if err := insertLines(ctx, tx, p.OrderID, sub.Lines); err != nil {
		return checkout.OrderPlacement{}, err
	}
	p.Lines = sub.Lines
	p.Total = sub.Total
	return p, nil
}

func ensureOwned(ctx context.Context, tx db.DBTX, query string, id, userID uuid.UUID, notFoundMsg string) error {
	var ok bool
	if err := tx.QueryRow(ctx, query, id, userID).Scan(&ok); err != nil {
		return infra.WrapRepoErr("failed to verify ownership", err)
	}
	if !ok {
		return infra.WrapRepoErr(notFoundMsg, nil, infra.KindNotFound)
	}
	return nil
}

func findLeadTime(ctx context.Context, tx db.DBTX, sub checkout.OrderSubmission) (time.Duration, error) {
	var minutes int
	err := tx.QueryRow(ctx, leadTimeSQL, string(sub.DomainType)).Scan(&minutes)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return defaultLeadTime, nil
		}
		return 0, infra.WrapRepoErr("failed to find lead time", err)
	}
	return time.Duration(minutes) * time.Minute, nil
}

type storedLine struct {
	ItemID         string `json:"itemId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

func findExisting(ctx context.Context, tx db.DBTX, sub checkout.OrderSubmission) (checkout.OrderPlacement, error) {
	var (
		p          checkout.OrderPlacement
		totalCents int64
		linesJSON  []byte
	)
	err := tx.QueryRow(ctx, findOrderByKeySQL, sub.IdempotencyKey, sub.UserID).
		Scan(&p.OrderID, &p.EstimatedDelivery, &totalCents, &linesJSON)
	if err != nil {
		if pgconv.IsNoRows(err) {
			// key taken by another user's order
			return checkout.OrderPlacement{}, infra.WrapRepoErr("idempotency key conflict", err, infra.KindDuplicateKey)
		}
		return checkout.OrderPlacement{}, infra.WrapRepoErr("failed to find existing order", err)
	}

	var stored []storedLine
	if err := json.Unmarshal(linesJSON, &stored); err != nil {
		return checkout.OrderPlacement{}, infra.WrapRepoErr("failed to decode existing order lines", err)
	}
	total, err := cart.NewMoney(totalCents)
	if err != nil {
		return checkout.OrderPlacement{}, infra.WrapRepoErr("invalid stored order total", err)
	}
	p.Lines = make([]checkout.OrderLine, 0, len(stored))
	for _, l := range stored {
		price, err := cart.NewMoney(l.UnitPriceCents)
		if err != nil {
			return checkout.OrderPlacement{}, infra.WrapRepoErr("invalid stored line price", err)
		}
		p.Lines = append(p.Lines, checkout.OrderLine{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: price,
		})
	}
	p.Total = total
	p.Replayed = true
	return p, nil
}

func insertLines(ctx context.Context, tx db.DBTX, orderID uuid.UUID, lines []checkout.OrderLine) error {
	batch := &pgx.Batch{}
	for i, l := range lines {
		batch.Queue(insertOrderLineSQL, orderID, i+1, l.ItemID, l.Name, l.Quantity, l.UnitPrice.Cents())
	}

	sender, ok := tx.(interface {
		SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	})
	if !ok {
		for _, q := range batch.QueuedQueries {
			if _, err := tx.Exec(ctx, q.SQL, q.Arguments...); err != nil {
				return infra.WrapRepoErr("failed to insert order line", err)
			}
		}
		return nil
	}

	results := sender.SendBatch(ctx, batch)
	defer results.Close()
	for range lines {
		if _, err := results.Exec(); err != nil {
			return infra.WrapRepoErr("failed to insert order line", err)
		}
	}
	return nil
}
