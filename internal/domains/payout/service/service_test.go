package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stayengine/config"
	"stayengine/infras/kafka"
	kafkaMocks "stayengine/infras/kafka/mocks"
	otelMocks "stayengine/infras/otel/mocks"
	pgMocks "stayengine/infras/postgres/mocks"
	s3Mocks "stayengine/infras/s3/mocks"
	bookingMocks "stayengine/internal/domains/booking/mocks"
	bookingModel "stayengine/internal/domains/booking/model"
	invoiceMocks "stayengine/internal/domains/invoice/mocks"
	invoiceModel "stayengine/internal/domains/invoice/model"
	payoutMocks "stayengine/internal/domains/payout/mocks"
	"stayengine/internal/domains/payout/model"
	"stayengine/internal/domains/payout/model/dto"
	"stayengine/internal/domains/payout/service"
	"stayengine/shared/constant"
	gDto "stayengine/shared/dto"
	"stayengine/shared/failure"
	"stayengine/shared/timezone"
)

var now = time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc         service.Ledger
	repo        *payoutMocks.MockPayout
	bookingRepo *bookingMocks.MockBooking
	invoiceRepo *invoiceMocks.MockInvoice
	kafka       *kafkaMocks.MockClient
	s3          *s3Mocks.MockS3
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:        payoutMocks.NewMockPayout(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		invoiceRepo: invoiceMocks.NewMockInvoice(ctrl),
		kafka:       kafkaMocks.NewMockClient(ctrl),
		s3:          s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Kafka.Topics.PayoutEvents = "payout.events"
	cfg.Rental.PayoutExportDirectory = "payouts"

	f.svc = service.New(pgMocks.NewTransactor(), f.repo, f.bookingRepo, f.invoiceRepo, f.kafka, f.s3, cfg,
		otelMocks.NewOtel(), timezone.FixedClock(now))

	return f
}

func paidBooking() bookingModel.Booking {
	return bookingModel.Booking{
		ID:         "booking-1",
		PropertyID: "property-1",
		GuestID:    "guest-1",
		HostID:     "host-1",
		Status:     bookingModel.StatusPaid,
		PriceSnapshot: bookingModel.PriceSnapshot{
			NightlyRate: decimal.NewFromInt(100),
			TotalNights: 3,
			Subtotal:    decimal.NewFromInt(300),
			CleaningFee: decimal.NewFromInt(20),
			ServiceFee:  decimal.NewFromInt(21),
			TotalAmount: decimal.NewFromInt(341),
			Currency:    "USDT",
		},
	}
}

func TestLedger_OnInvoicePaid(t *testing.T) {
	t.Run("records payout from snapshot", func(t *testing.T) {
		f := newFixture(t)

		f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(paidBooking(), nil)
		f.invoiceRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(invoiceModel.Invoice{ID: "invoice-1", Status: invoiceModel.StatusPaid}, nil)
		f.repo.EXPECT().
			InsertIfAbsentTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, payout model.Payout) (bool, error) {
				assert.True(t, decimal.NewFromInt(320).Equal(payout.GrossAmount))
				assert.True(t, decimal.NewFromInt(299).Equal(payout.NetAmount))
				assert.Equal(t, model.StatusPending, payout.Status)

				return true, nil
			})
		f.kafka.EXPECT().
			SendMessages(gomock.Any(), "payout.events", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				require.Len(t, messages, 1)
				assert.Equal(t, "host-1", messages[0].Key)
				assert.Equal(t, model.EventRecorded, messages[0].Value.(model.Event).Type)

				return nil
			})

		res, err := f.svc.OnInvoicePaid(context.Background(), "booking-1")

		require.NoError(t, err)
		assert.Equal(t, "320.00", res.GrossAmount)
		assert.Equal(t, "21.00", res.ServiceFee)
		assert.Equal(t, "299.00", res.NetAmount)
		assert.Equal(t, "host-1", res.HostID)
	})

	t.Run("redelivery returns existing payout without publishing", func(t *testing.T) {
		f := newFixture(t)

		existing := model.Payout{ID: "payout-1", BookingID: "booking-1", HostID: "host-1", NetAmount: decimal.NewFromInt(299), Status: model.StatusApproved}

		f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(paidBooking(), nil)
		f.invoiceRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(invoiceModel.Invoice{ID: "invoice-1", Status: invoiceModel.StatusPaid}, nil)
		f.repo.EXPECT().InsertIfAbsentTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(existing, nil)

		res, err := f.svc.OnInvoicePaid(context.Background(), "booking-1")

		require.NoError(t, err)
		assert.Equal(t, "payout-1", res.ID)
		assert.Equal(t, string(model.StatusApproved), res.Status)
	})

	t.Run("booking not paid", func(t *testing.T) {
		f := newFixture(t)

		booking := paidBooking()
		booking.Status = bookingModel.StatusConfirmed

		f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := f.svc.OnInvoicePaid(context.Background(), "booking-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("invoice not paid", func(t *testing.T) {
		f := newFixture(t)

		f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(paidBooking(), nil)
		f.invoiceRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(invoiceModel.Invoice{ID: "invoice-1", Status: invoiceModel.StatusCreated}, nil)

		_, err := f.svc.OnInvoicePaid(context.Background(), "booking-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)

		f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)

		_, err := f.svc.OnInvoicePaid(context.Background(), "booking-1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestLedger_UpdateStatus(t *testing.T) {
	system := gDto.SystemActor()

	tests := []struct {
		name       string
		actor      gDto.Actor
		current    model.Status
		req        dto.UpdatePayoutStatusRequest
		wantCode   int
		wantReason string
	}{
		{name: "approve pending", actor: system, current: model.StatusPending, req: dto.UpdatePayoutStatusRequest{Status: "approved"}},
		{name: "pay approved", actor: system, current: model.StatusApproved, req: dto.UpdatePayoutStatusRequest{Status: "paid"}},
		{name: "reject approved with reason", actor: system, current: model.StatusApproved, req: dto.UpdatePayoutStatusRequest{Status: "rejected", Reason: "bank account closed"}},
		{
			name:       "pay pending skips approval",
			actor:      system,
			current:    model.StatusPending,
			req:        dto.UpdatePayoutStatusRequest{Status: "paid"},
			wantCode:   http.StatusConflict,
			wantReason: failure.ReasonIllegalTransition,
		},
		{
			name:       "paid is final",
			actor:      system,
			current:    model.StatusPaid,
			req:        dto.UpdatePayoutStatusRequest{Status: "rejected", Reason: "late"},
			wantCode:   http.StatusConflict,
			wantReason: failure.ReasonIllegalTransition,
		},
		{
			name:     "reject without reason",
			actor:    system,
			current:  model.StatusPending,
			req:      dto.UpdatePayoutStatusRequest{Status: "rejected"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:       "host cannot settle own payout",
			actor:      gDto.Actor{UserID: "host-1", Role: constant.RoleHost},
			current:    model.StatusPending,
			req:        dto.UpdatePayoutStatusRequest{Status: "approved"},
			wantCode:   http.StatusForbidden,
			wantReason: failure.ReasonNotAuthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			payout := model.Payout{ID: "payout-1", BookingID: "booking-1", HostID: "host-1", Status: tt.current}

			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(payout, nil).MaxTimes(1)
			if tt.wantCode == 0 {
				f.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.Status(tt.req.Status), fields[model.FieldStatus])

						return nil
					})
				f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			}

			res, err := f.svc.UpdateStatus(context.Background(), tt.actor, "payout-1", tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Equal(t, tt.wantReason, failure.GetReason(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.req.Status, res.Status)
			assert.Equal(t, tt.req.Reason, res.StatusReason)
		})
	}
}

func TestLedger_UpdateStatus_PublishFailureIsLogged(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Payout{ID: "payout-1", Status: model.StatusPending}, nil)
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	_, err := f.svc.UpdateStatus(context.Background(), gDto.SystemActor(), "payout-1", dto.UpdatePayoutStatusRequest{Status: "approved"})

	assert.NoError(t, err)
}

func TestLedger_Get(t *testing.T) {
	payout := model.Payout{ID: "payout-1", HostID: "host-1", Status: model.StatusPending}

	tests := []struct {
		name     string
		actor    gDto.Actor
		wantCode int
	}{
		{name: "host reads own payout", actor: gDto.Actor{UserID: "host-1", Role: constant.RoleHost}},
		{name: "admin reads any payout", actor: gDto.Actor{UserID: "admin-1", Role: constant.RoleAdmin}},
		{name: "other host refused", actor: gDto.Actor{UserID: "host-2", Role: constant.RoleHost}, wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(payout, nil)

			_, err := f.svc.Get(context.Background(), tt.actor, "payout-1")
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestLedger_ListForHost(t *testing.T) {
	t.Run("scoped to host with status filter", func(t *testing.T) {
		f := newFixture(t)

		params := gDto.QueryParams{Page: 1, Limit: 10}

		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "rental_owner_payouts.host_id = :host_id")
				assert.Equal(t, "host-1", args["host_id"])
				assert.Equal(t, model.StatusPending, args["status"])

				return 1, nil
			})
		f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Payout{{ID: "payout-1", HostID: "host-1"}}, nil)

		res, err := f.svc.ListForHost(context.Background(), gDto.Actor{UserID: "host-1", Role: constant.RoleHost}, params, "pending")

		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Len(t, res.Payouts, 1)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ListForHost(context.Background(), gDto.Actor{UserID: "host-1"}, gDto.QueryParams{}, "settled")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestLedger_ExportApproved(t *testing.T) {
	t.Run("claims rows before uploading and stamps them", func(t *testing.T) {
		f := newFixture(t)

		approved := []model.Payout{
			{ID: "payout-1", BookingID: "booking-1", HostID: "host-1", NetAmount: decimal.RequireFromString("299.00"), Currency: "USDT", Status: model.StatusApproved},
			{ID: "payout-2", BookingID: "booking-2", HostID: "host-2", NetAmount: decimal.RequireFromString("100.50"), Currency: "USDT", Status: model.StatusApproved},
		}

		gomock.InOrder(
			f.repo.EXPECT().
				ClaimAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Payout, error) {
					where, args := filter.GetWhereClause()
					assert.Contains(t, where, "exported_at IS NULL")
					assert.Equal(t, model.StatusApproved, args["status"])
					assert.Equal(t, model.FieldCreatedAt, params.SortBy)

					return approved, nil
				}),
			f.s3.EXPECT().
				PutObject(gomock.Any(), "payouts", gomock.Any(), "application/json", gomock.Any()).
				DoAndReturn(func(_ context.Context, _, fileName, _ string, data []byte) (string, error) {
					var batch dto.ExportBatch
					require.NoError(t, json.Unmarshal(data, &batch))
					assert.Len(t, batch.Payouts, 2)
					assert.Equal(t, "399.50", batch.Totals["USDT"])
					assert.Equal(t, batch.BatchID+".json", fileName)

					return "https://cdn.example.com/payouts/" + fileName, nil
				}),
			f.repo.EXPECT().
				UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
					assert.Equal(t, now, fields[model.FieldExportedAt])

					_, args := filter.GetWhereClause()
					assert.Equal(t, "payout-1", args["payout_id_0"])
					assert.Equal(t, "payout-2", args["payout_id_1"])

					return nil
				}),
		)
		f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

		res, err := f.svc.ExportApproved(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, res.Count)
		assert.Equal(t, "399.50", res.Totals["USDT"])
		assert.NotEmpty(t, res.URL)
	})

	t.Run("nothing left to claim", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().ClaimAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.ExportApproved(context.Background())

		require.NoError(t, err)
		assert.Zero(t, res.Count)
		assert.NotNil(t, res.Totals)
	})

	t.Run("upload failure releases the claim without stamping", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().ClaimAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Payout{{ID: "payout-1", Status: model.StatusApproved}}, nil)
		f.s3.EXPECT().PutObject(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("s3 down"))

		res, err := f.svc.ExportApproved(context.Background())

		assert.Error(t, err)
		assert.Zero(t, res.Count)
	})
}
