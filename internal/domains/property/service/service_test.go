package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stayengine/config"
	otelMocks "stayengine/infras/otel/mocks"
	availabilityMocks "stayengine/internal/domains/availability/mocks"
	bookingMocks "stayengine/internal/domains/booking/mocks"
	propertyMocks "stayengine/internal/domains/property/mocks"
	"stayengine/internal/domains/property/model"
	"stayengine/internal/domains/property/model/dto"
	"stayengine/internal/domains/property/service"
	cacheMocks "stayengine/shared/cache/mocks"
	"stayengine/shared/constant"
	gDto "stayengine/shared/dto"
	"stayengine/shared/failure"
)

var (
	host  = gDto.Actor{UserID: "host-1", Role: constant.RoleHost}
	guest = gDto.Actor{UserID: "guest-1", Role: constant.RoleGuest}
	admin = gDto.Actor{UserID: "admin-1", Role: constant.RoleAdmin}
)

type fixture struct {
	svc          service.Property
	repo         *propertyMocks.MockProperty
	bookingRepo  *bookingMocks.MockBooking
	availability *availabilityMocks.MockAvailability
	cache        *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:         propertyMocks.NewMockProperty(ctrl),
		bookingRepo:  bookingMocks.NewMockBooking(ctrl),
		availability: availabilityMocks.NewMockAvailability(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.bookingRepo, f.availability, cfg, f.cache, otelMocks.NewOtel())

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func ownedProperty() model.Property {
	return model.Property{
		ID:            "property-1",
		OwnerID:       host.UserID,
		Title:         "Sea view loft",
		NightlyRate:   decimal.NewFromInt(100),
		Currency:      "USDT",
		MaxGuests:     2,
		MinimumNights: 2,
		MaximumNights: 14,
		Active:        true,
	}
}

func intPtr(v int) *int {
	return &v
}

func TestPropertyService_Create(t *testing.T) {
	req := dto.CreatePropertyRequest{Title: "Sea view loft", NightlyRate: "100", MaxGuests: 2}

	t.Run("host creates property with defaults", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, property model.Property) error {
				assert.Equal(t, host.UserID, property.OwnerID)
				assert.Equal(t, config.DefaultCurrency, property.Currency)
				assert.Equal(t, model.DefaultMinimumNights, property.MinimumNights)
				assert.True(t, property.Active)

				return nil
			})

		res, err := f.svc.Create(context.Background(), host, req)
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "100.00", res.NightlyRate)
		assert.NotEmpty(t, res.ID)
	})

	t.Run("guest cannot list property", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(context.Background(), guest, req)

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		_, err := f.svc.Create(context.Background(), host, req)

		assert.Error(t, err)
	})
}

func TestPropertyService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "cache hit",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "property:get:property-1", gomock.Any()).Return(nil)
			},
		},
		{
			name: "loaded from repository",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedProperty(), nil)
			},
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Get(context.Background(), "property-1")
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestPropertyService_GetAll(t *testing.T) {
	f := newFixture(t)

	params := gDto.QueryParams{Page: 1, Limit: 10}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Property{ownedProperty()}, nil)

	res, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 11, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Properties, 1)
}

func TestPropertyService_Update(t *testing.T) {
	tests := []struct {
		name      string
		actor     gDto.Actor
		req       dto.UpdatePropertyRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:  "owner updates rate card",
			actor: host,
			req:   dto.UpdatePropertyRequest{NightlyRate: "120"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedProperty(), nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.True(t, decimal.NewFromInt(120).Equal(fields["nightly_rate"].(decimal.Decimal)))

						return nil
					})
				f.availability.EXPECT().Invalidate(gomock.Any(), "property-1")
			},
		},
		{
			name:  "admin may update",
			actor: admin,
			req:   dto.UpdatePropertyRequest{Title: "Renamed"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedProperty(), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.availability.EXPECT().Invalidate(gomock.Any(), "property-1")
			},
		},
		{
			name:  "other user is refused",
			actor: guest,
			req:   dto.UpdatePropertyRequest{Title: "Mine now"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedProperty(), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:  "maximum below current minimum",
			actor: host,
			req:   dto.UpdatePropertyRequest{MaximumNights: intPtr(1)},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedProperty(), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "not found",
			actor: host,
			req:   dto.UpdatePropertyRequest{Title: "Gone"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(context.Background(), tt.actor, "property-1", tt.req)
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestPropertyService_Deactivate(t *testing.T) {
	t.Run("sets active to false", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedProperty(), nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, false, fields[model.FieldActive])

				return nil
			})
		f.availability.EXPECT().Invalidate(gomock.Any(), "property-1")

		err := f.svc.Deactivate(context.Background(), host, "property-1")
		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("already inactive is a no-op", func(t *testing.T) {
		f := newFixture(t)

		inactive := ownedProperty()
		inactive.Active = false

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)

		assert.NoError(t, f.svc.Deactivate(context.Background(), host, "property-1"))
	})
}

func TestPropertyService_Delete(t *testing.T) {
	t.Run("refused once bookings exist", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedProperty(), nil)
		f.bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.Delete(context.Background(), host, "property-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("deleted when unbooked", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedProperty(), nil)
		f.bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.availability.EXPECT().Invalidate(gomock.Any(), "property-1")

		err := f.svc.Delete(context.Background(), host, "property-1")
		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}
