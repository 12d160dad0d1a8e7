package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stayengine/config"
	otelMocks "stayengine/infras/otel/mocks"
	pgMocks "stayengine/infras/postgres/mocks"
	"stayengine/internal/domains/availability/model/dto"
	"stayengine/internal/domains/availability/service"
	bookingMocks "stayengine/internal/domains/booking/mocks"
	bookingModel "stayengine/internal/domains/booking/model"
	calendarMocks "stayengine/internal/domains/calendar/mocks"
	calendarModel "stayengine/internal/domains/calendar/model"
	propertyMocks "stayengine/internal/domains/property/mocks"
	propertyModel "stayengine/internal/domains/property/model"
	cacheMocks "stayengine/shared/cache/mocks"
	"stayengine/shared/daterange"
	"stayengine/shared/failure"
	"stayengine/shared/timezone"
)

var errCacheDown = errors.New("dial tcp: connection refused")

type fixture struct {
	svc          service.Availability
	propertyRepo *propertyMocks.MockProperty
	calendarRepo *calendarMocks.MockUnavailability
	bookingRepo  *bookingMocks.MockBooking
	cache        *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T, cfg *config.Config) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		propertyRepo: propertyMocks.NewMockProperty(ctrl),
		calendarRepo: calendarMocks.NewMockUnavailability(ctrl),
		bookingRepo:  bookingMocks.NewMockBooking(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	clock := timezone.FixedClock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	f.svc = service.New(pgMocks.NewTransactor(), f.propertyRepo, f.calendarRepo, f.bookingRepo, cfg, f.cache, otelMocks.NewOtel(), clock)

	return f
}

func rng(t *testing.T, start, end string) daterange.DateRange {
	t.Helper()

	dr, err := daterange.Parse(start, end)
	require.NoError(t, err)

	return dr
}

func activeProperty() propertyModel.Property {
	return propertyModel.Property{ID: "property-1", OwnerID: "host-1", MinimumNights: 1, MaximumNights: 30, Active: true}
}

func pendingBooking(t *testing.T, start, end string) bookingModel.Booking {
	dr := rng(t, start, end)

	return bookingModel.Booking{ID: "booking-1", PropertyID: "property-1", CheckInDate: dr.Start, CheckOutDate: dr.End, Status: bookingModel.StatusPending}
}

func TestCheckAvailability(t *testing.T) {
	tests := []struct {
		name          string
		stay          daterange.DateRange
		property      propertyModel.Property
		bookings      []bookingModel.Booking
		blocks        []calendarModel.Unavailability
		wantAvailable bool
		wantConflicts []string
		wantReason    string
		wantCode      int
	}{
		{
			name:          "free range",
			stay:          rng(t, "2024-06-10", "2024-06-13"),
			property:      activeProperty(),
			wantAvailable: true,
			wantConflicts: []string{},
		},
		{
			name:          "overlapping pending booking is reported clipped",
			stay:          rng(t, "2024-06-12", "2024-06-15"),
			property:      activeProperty(),
			bookings:      []bookingModel.Booking{pendingBooking(t, "2024-06-10", "2024-06-13")},
			wantConflicts: []string{"[2024-06-12, 2024-06-13)"},
		},
		{
			name:     "host block",
			stay:     rng(t, "2024-07-03", "2024-07-08"),
			property: activeProperty(),
			blocks: []calendarModel.Unavailability{
				{ID: "u-1", StartDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC), Reason: "maintenance"},
			},
			wantConflicts: []string{"[2024-07-03, 2024-07-05)"},
		},
		{
			name:       "check-in today",
			stay:       rng(t, "2024-06-01", "2024-06-03"),
			property:   activeProperty(),
			wantReason: failure.ReasonInvalidDateRange,
			wantCode:   http.StatusBadRequest,
		},
		{
			name:       "below minimum nights",
			stay:       rng(t, "2024-06-10", "2024-06-11"),
			property:   propertyModel.Property{ID: "property-1", MinimumNights: 2, MaximumNights: 5, Active: true},
			wantReason: failure.ReasonInvalidDateRange,
			wantCode:   http.StatusBadRequest,
		},
		{
			name:     "unknown property",
			stay:     rng(t, "2024-06-10", "2024-06-11"),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "inactive property",
			stay:     rng(t, "2024-06-10", "2024-06-11"),
			property: propertyModel.Property{ID: "property-1", MinimumNights: 1, Active: false},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, &config.Config{})

			f.cache.EXPECT().Get(gomock.Any(), "availability:version:property-1", gomock.Any()).Return(errCacheDown)
			f.propertyRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.property, nil)

			if tt.wantCode == 0 {
				f.calendarRepo.EXPECT().ListOverlappingTx(gomock.Any(), gomock.Any(), "property-1", tt.stay).Return(tt.blocks, nil)
				f.bookingRepo.EXPECT().ListActiveOverlappingTx(gomock.Any(), gomock.Any(), "property-1", tt.stay, "").Return(tt.bookings, nil)
			}

			res, err := f.svc.CheckAvailability(context.Background(), "property-1", tt.stay)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Equal(t, tt.wantReason, failure.GetReason(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, res.Available)

			got := make([]string, len(res.Conflicts))
			for i, c := range res.Conflicts {
				got[i] = c.String()
			}

			assert.Equal(t, tt.wantConflicts, got)
		})
	}
}

func TestCheckAvailability_RepositoryError(t *testing.T) {
	f := newFixture(t, &config.Config{})
	stay := rng(t, "2024-06-10", "2024-06-13")

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheDown)
	f.propertyRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(activeProperty(), nil)
	f.calendarRepo.EXPECT().ListOverlappingTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	_, err := f.svc.CheckAvailability(context.Background(), "property-1", stay)

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestCheckAvailability_CacheHit(t *testing.T) {
	f := newFixture(t, &config.Config{})
	stay := rng(t, "2024-06-10", "2024-06-13")

	f.cache.EXPECT().Get(gomock.Any(), "availability:version:property-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			*value.(*string) = "v7"

			return nil
		})
	f.cache.EXPECT().Get(gomock.Any(), "availability:check:property-1:v7:2024-06-01:2024-06-10:2024-06-13", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			*value.(*dto.AvailabilityResponse) = dto.NewAvailabilityResponse(nil)

			return nil
		})

	res, err := f.svc.CheckAvailability(context.Background(), "property-1", stay)

	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestCheckAvailability_SeedsVersionAndCachesResult(t *testing.T) {
	f := newFixture(t, &config.Config{})
	stay := rng(t, "2024-06-10", "2024-06-13")

	var seeded string

	f.cache.EXPECT().Get(gomock.Any(), "availability:version:property-1", gomock.Any()).Return(redis.Nil)
	f.cache.EXPECT().Save(gomock.Any(), "availability:version:property-1", gomock.Any(), 0).
		DoAndReturn(func(_ context.Context, _ string, value any, _ int) error {
			seeded = value.(string)

			return nil
		})
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(redis.Nil)
	f.propertyRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(activeProperty(), nil)
	f.calendarRepo.EXPECT().ListOverlappingTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.bookingRepo.EXPECT().ListActiveOverlappingTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, _ any, _ int) error {
			assert.True(t, strings.HasPrefix(key, "availability:check:property-1:"+seeded+":"))

			return nil
		})

	res, err := f.svc.CheckAvailability(context.Background(), "property-1", stay)

	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.NotEmpty(t, seeded)
}

func TestListUnavailableDates_HostBlock(t *testing.T) {
	f := newFixture(t, &config.Config{})
	window := rng(t, "2024-07-01", "2024-08-01")

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheDown)
	f.propertyRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(activeProperty(), nil)
	f.calendarRepo.EXPECT().ListOverlappingTx(gomock.Any(), gomock.Any(), "property-1", window).Return([]calendarModel.Unavailability{
		{ID: "u-1", StartDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC), Reason: "maintenance"},
	}, nil)
	f.bookingRepo.EXPECT().ListActiveOverlappingTx(gomock.Any(), gomock.Any(), "property-1", window, "").Return(nil, nil)

	res, err := f.svc.ListUnavailableDates(context.Background(), "property-1", window)

	require.NoError(t, err)
	assert.Equal(t, []dto.UnavailableDateResponse{
		{Date: "2024-07-01", Reason: "maintenance"},
		{Date: "2024-07-02", Reason: "maintenance"},
		{Date: "2024-07-03", Reason: "maintenance"},
		{Date: "2024-07-04", Reason: "maintenance"},
	}, res)
}

func TestListUnavailableDates_WindowTooLarge(t *testing.T) {
	cfg := &config.Config{}
	cfg.Rental.MaxCalendarDays = 31

	f := newFixture(t, cfg)

	_, err := f.svc.ListUnavailableDates(context.Background(), "property-1", rng(t, "2024-07-01", "2024-09-01"))

	assert.True(t, failure.HasReason(err, failure.ReasonInvalidDateRange))
}

func TestListUnavailableDates_UnknownProperty(t *testing.T) {
	f := newFixture(t, &config.Config{})

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheDown)
	f.propertyRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(propertyModel.Property{}, nil)

	_, err := f.svc.ListUnavailableDates(context.Background(), "missing", rng(t, "2024-07-01", "2024-08-01"))

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestConflictsTx_ExcludesBooking(t *testing.T) {
	f := newFixture(t, &config.Config{})
	stay := rng(t, "2024-06-10", "2024-06-13")

	f.calendarRepo.EXPECT().ListOverlappingTx(gomock.Any(), gomock.Any(), "property-1", stay).Return(nil, nil)
	f.bookingRepo.EXPECT().ListActiveOverlappingTx(gomock.Any(), gomock.Any(), "property-1", stay, "booking-1").Return(nil, nil)

	conflicts, err := f.svc.ConflictsTx(context.Background(), nil, "property-1", stay, "booking-1")

	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestInvalidate(t *testing.T) {
	f := newFixture(t, &config.Config{})

	f.cache.EXPECT().Save(gomock.Any(), "availability:version:property-1", gomock.Any(), 0).Return(nil)

	f.svc.Invalidate(context.Background(), "property-1")
}
