package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	otelMocks "stayengine/infras/otel/mocks"
	"stayengine/internal/domains/booking/mocks"
	"stayengine/internal/domains/booking/model/dto"
	"stayengine/shared/constant"
	gDto "stayengine/shared/dto"
	"stayengine/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var guest = gDto.Actor{UserID: "guest-1", Role: constant.RoleGuest}

func newRouter(t *testing.T) (http.Handler, *mocks.MockBookingService) {
	t.Helper()

	svc := mocks.NewMockBookingService(gomock.NewController(t))
	handler := New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), constant.ContextKeyUserID, guest.UserID)
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, guest.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	handler.Router(router)

	return router, svc
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestCreateBooking(t *testing.T) {
	const body = `{"property_id":"8c1f5f58-2d7c-4c43-9a51-3f1f4e2a7b10","check_in_date":"2025-03-01","check_out_date":"2025-03-04","guests_count":2}`

	t.Run("created", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().
			Create(gomock.Any(), guest, dto.CreateBookingRequest{
				PropertyID:   "8c1f5f58-2d7c-4c43-9a51-3f1f4e2a7b10",
				CheckInDate:  "2025-03-01",
				CheckOutDate: "2025-03-04",
				GuestsCount:  2,
			}).
			Return(dto.BookingResponse{ID: "booking-1", Status: "pending"}, nil)

		rec := serve(router, http.MethodPost, "/bookings/", body)

		require.Equal(t, http.StatusCreated, rec.Code)

		var res struct {
			Data dto.BookingResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "booking-1", res.Data.ID)
	})

	t.Run("invalid body never reaches the service", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := serve(router, http.MethodPost, "/bookings/", `{"property_id":"nope","guests_count":0}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), failure.ReasonValidation)
	})

	t.Run("dates taken", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().Create(gomock.Any(), guest, gomock.Any()).
			Return(dto.BookingResponse{}, failure.DateRangeNoLongerAvailable([]string{"2025-03-02"}))

		rec := serve(router, http.MethodPost, "/bookings/", body)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), failure.ReasonDateRangeNoLongerAvailable)
	})
}

func TestUpdateBookingStatus(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		UpdateStatus(gomock.Any(), guest, "booking-1", dto.UpdateBookingStatusRequest{Status: "cancelled", Reason: "plans changed"}).
		Return(dto.BookingResponse{ID: "booking-1", Status: "cancelled"}, nil)

	rec := serve(router, http.MethodPatch, "/bookings/booking-1/status", `{"status":"cancelled","reason":"plans changed"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetMyBookings_ParsesPagination(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		ListForGuest(gomock.Any(), guest, gDto.QueryParams{Page: 2, Limit: 5, SortBy: "check_in_date", SortDir: "ASC"}, "confirmed").
		Return(dto.GetBookingsResponse{}, nil)

	rec := serve(router, http.MethodGet, "/bookings/mine?page=2&limit=5&sort_by=check_in_date&status=confirmed", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetBookingByID_NotFound(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Get(gomock.Any(), guest, "missing").Return(dto.BookingResponse{}, failure.NotFound("booking not found"))

	rec := serve(router, http.MethodGet, "/bookings/missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
