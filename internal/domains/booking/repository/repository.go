package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"stayengine/infras/otel"
	"stayengine/infras/postgres"
	"stayengine/internal/domains/booking/model"
	"stayengine/shared/constant"
	"stayengine/shared/daterange"
	gDto "stayengine/shared/dto"
	gRepo "stayengine/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	// ListActiveOverlappingTx returns the bookings holding dates that overlap stay, ordered by check-in.
	ListActiveOverlappingTx(ctx context.Context, sqltx *sqlx.Tx, propertyID string, stay daterange.DateRange, excludeBookingID string) ([]model.Booking, error)
	// ListCompletable returns paid bookings whose check-out date is before today.
	ListCompletable(ctx context.Context, today time.Time, limit int) ([]model.Booking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) ListActiveOverlappingTx(ctx context.Context, sqltx *sqlx.Tx, propertyID string, stay daterange.DateRange, excludeBookingID string) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.ListActiveOverlappingTx", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	params := gDto.QueryParams{SortBy: model.FieldCheckInDate, SortDir: gDto.SortDirAsc}

	return r.GetAllTx(ctx, sqltx, params, FilterActiveOverlapping(propertyID, stay, excludeBookingID)) //nolint:wrapcheck
}

func (r *repositoryImpl) ListCompletable(ctx context.Context, today time.Time, limit int) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.ListCompletable", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	params := gDto.QueryParams{Limit: limit, SortBy: model.FieldCheckOutDate, SortDir: gDto.SortDirAsc}
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Value: string(model.StatusPaid), Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldCheckOutDate, Value: daterange.Day(today), Operator: gDto.FilterOperatorLess, Table: model.TableName},
		},
	}

	return r.GetAll(ctx, params, filter) //nolint:wrapcheck
}

// FilterActiveOverlapping matches bookings of a property that hold dates inside stay.
// Half-open overlap: check_in < stay.End AND check_out > stay.Start.
func FilterActiveOverlapping(propertyID string, stay daterange.DateRange, excludeBookingID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{Field: model.FieldPropertyID, Value: propertyID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{ArgName: "holding_status", Field: model.FieldStatus, Value: model.HoldingStatuses(), Operator: gDto.FilterOperatorIn, Table: model.TableName},
		gDto.Filter{ArgName: "range_end", Field: model.FieldCheckInDate, Value: stay.End, Operator: gDto.FilterOperatorLess, Table: model.TableName},
		gDto.Filter{ArgName: "range_start", Field: model.FieldCheckOutDate, Value: stay.Start, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
	}

	if excludeBookingID != "" {
		filters = append(filters, gDto.Filter{ArgName: "exclude_id", Field: model.FieldID, Value: excludeBookingID, Operator: gDto.FilterOperatorNotEq, Table: model.TableName})
	}

	return gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd}
}
