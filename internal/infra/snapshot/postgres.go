package snapshot

import (
	"context"

	"unicart/internal/domain/cart"
	"unicart/internal/infra"
	"unicart/internal/infra/db"
	"unicart/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	loadSnapshotSQL = `
SELECT payload
FROM cart_snapshots
WHERE user_id = $1 AND domain_type = $2`

	saveSnapshotSQL = `
INSERT INTO cart_snapshots (user_id, domain_type, payload, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (user_id, domain_type)
DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
)

type PostgresStore struct {
	db db.DBTX
}

func NewPostgresStore(dbtx db.DBTX) *PostgresStore {
	return &PostgresStore{db: dbtx}
}

func (s *PostgresStore) Load(ctx context.Context, userID uuid.UUID, domain cart.DomainType) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRow(ctx, loadSnapshotSQL, userID, string(domain)).Scan(&payload)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to load cart snapshot", err)
	}
	return payload, nil
}

func (s *PostgresStore) Save(ctx context.Context, userID uuid.UUID, domain cart.DomainType, data []byte) error {
	if _, err := s.db.Exec(ctx, saveSnapshotSQL, userID, string(domain), data); err != nil {
		return infra.WrapRepoErr("failed to save cart snapshot", err)
	}
	return nil
}
