package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"stayengine/infras/otel"
	"stayengine/infras/postgres"
	"stayengine/internal/domains/calendar/model"
	"stayengine/shared/constant"
	"stayengine/shared/daterange"
	gDto "stayengine/shared/dto"
	gRepo "stayengine/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Unavailability interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Unavailability) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Unavailability, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Unavailability, error)
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
	// ListOverlappingTx returns the blocks of a property overlapping window, ordered by start date.
	ListOverlappingTx(ctx context.Context, sqltx *sqlx.Tx, propertyID string, window daterange.DateRange) ([]model.Unavailability, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Unavailability]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Unavailability {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Unavailability](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) ListOverlappingTx(ctx context.Context, sqltx *sqlx.Tx, propertyID string, window daterange.DateRange) ([]model.Unavailability, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.ListOverlappingTx", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	params := gDto.QueryParams{SortBy: model.FieldStartDate, SortDir: gDto.SortDirAsc}

	return r.GetAllTx(ctx, sqltx, params, FilterOverlapping(propertyID, window)) //nolint:wrapcheck
}

// FilterOverlapping matches the blocks of a property that share at least one date with window.
func FilterOverlapping(propertyID string, window daterange.DateRange) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldPropertyID, Value: propertyID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: "window_end", Field: model.FieldStartDate, Value: window.End, Operator: gDto.FilterOperatorLess, Table: model.TableName},
			gDto.Filter{ArgName: "window_start", Field: model.FieldEndDate, Value: window.Start, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
		},
	}
}
