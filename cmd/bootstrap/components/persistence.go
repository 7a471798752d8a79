package components

import (
	"unicart/internal/infra/db"
	"unicart/internal/infra/repository"
	"unicart/internal/infra/uow"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		NewBeginner,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(repository.TxRunner)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewBeginner(pool *pgxpool.Pool) uow.Beginner {
	return pool
}
