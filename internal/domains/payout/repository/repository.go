package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"stayengine/infras/otel"
	"stayengine/infras/postgres"
	"stayengine/internal/domains/payout/model"
	gDto "stayengine/shared/dto"
	gRepo "stayengine/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Payout interface {
	// InsertIfAbsentTx inserts the payout unless one already exists for its booking.
	// It reports whether a row was written.
	InsertIfAbsentTx(ctx context.Context, sqltx *sqlx.Tx, model model.Payout) (bool, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Payout, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Payout, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Payout, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Payout, error)
	// ClaimAllTx locks the matching payouts for sqltx, skipping any another transaction holds.
	ClaimAllTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Payout, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Payout]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Payout {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Payout](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) InsertIfAbsentTx(ctx context.Context, sqltx *sqlx.Tx, payout model.Payout) (bool, error) {
	return r.InsertIgnoreConflictTx(ctx, sqltx, payout, model.FieldBookingID) //nolint:wrapcheck
}

// insertIfAbsentQuery is the statement InsertIfAbsentTx runs.
func (r *repositoryImpl) insertIfAbsentQuery() string {
	return r.InsertIgnoreConflictQuery(model.FieldBookingID)
}
