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

const findProfileSQL = `
SELECT user_id, display_name, email, phone, image_ref
FROM profiles
WHERE user_id = $1`

type ProfileRepository struct {
	db db.DBTX
}

func NewProfileRepository(dbtx db.DBTX) *ProfileRepository {
	return &ProfileRepository{db: dbtx}
}

func (r *ProfileRepository) FindProfile(ctx context.Context, userID uuid.UUID) (account.Profile, error) {
	var (
		p        account.Profile
		phone    pgtype.Text
		imageRef pgtype.Text
	)
	err := r.db.QueryRow(ctx, findProfileSQL, userID).Scan(&p.UserID, &p.DisplayName, &p.Email, &phone, &imageRef)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return account.Profile{}, infra.WrapRepoErr("profile not found", err, infra.KindNotFound)
		}
		return account.Profile{}, infra.WrapRepoErr("failed to find profile", err)
	}
	p.Phone = pgconv.StringFromPgtype(phone)
	p.ImageRef = pgconv.StringFromPgtype(imageRef)
	return p, nil
}
