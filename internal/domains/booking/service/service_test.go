package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"riverside/config"
	"riverside/infras/jwt"
	otelMocks "riverside/infras/otel/mocks"
	"riverside/internal/domains/booking/mocks"
	"riverside/internal/domains/booking/model"
	"riverside/internal/domains/booking/model/dto"
	"riverside/internal/domains/booking/repository"
	"riverside/internal/domains/booking/service"
	roomRepo "riverside/internal/domains/room/repository"
	"riverside/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc       service.Booking
	drafts    repository.Drafts
	receipts  *mocks.MockReceipts
	confirmer *mocks.MockConfirmer
	jwt       jwt.JWT
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.App.Name = "riverside-test"
	cfg.App.Currency = "IDR"
	cfg.Session.Secret = "test-secret"
	cfg.Booking.DraftTTLMinutes = 60

	catalog, err := roomRepo.New(cfg)
	require.NoError(t, err)

	f := fixture{
		drafts:    repository.NewDrafts(time.Hour, nil),
		receipts:  mocks.NewMockReceipts(ctrl),
		confirmer: mocks.NewMockConfirmer(ctrl),
		jwt:       jwt.New(cfg),
	}

	f.svc = service.New(f.drafts, f.receipts, catalog, f.confirmer, f.jwt, cfg, otelMocks.NewOtel())

	return f
}

func (f fixture) start(t *testing.T) string {
	t.Helper()

	res, err := f.svc.Start(context.Background())
	require.NoError(t, err)

	return res.Draft.ID
}

// ready walks a new draft to the confirmation step.
func (f fixture) ready(t *testing.T) string {
	t.Helper()

	ctx := context.Background()
	id := f.start(t)

	_, err := f.svc.SetDates(ctx, id, dto.SetDatesRequest{CheckIn: "2024-06-01", CheckOut: "2024-06-04"})
	require.NoError(t, err)
	_, err = f.svc.SetGuests(ctx, id, dto.SetGuestsRequest{Adults: 2})
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, id)
	require.NoError(t, err)
	_, err = f.svc.SelectRoom(ctx, id, dto.SelectRoomRequest{Room: "deluxe-river"})
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, id)
	require.NoError(t, err)
	_, err = f.svc.SetDetails(ctx, id, dto.SetDetailsRequest{FirstName: " Ayu ", LastName: "Lestari", Email: "ayu@example.com"})
	require.NoError(t, err)

	res, err := f.svc.Next(ctx, id)
	require.NoError(t, err)
	require.True(t, res.Applied)
	require.Equal(t, int(model.StepConfirmation), res.Step.Number)

	return id
}

func TestStart(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Start(context.Background())

	require.NoError(t, err)
	require.NotNil(t, res.Session)
	assert.Equal(t, "Bearer", res.Session.TokenType)
	assert.Equal(t, "draft", res.Draft.Status)
	assert.Equal(t, "Dates & Guests", res.Draft.Step.Title)
	assert.False(t, res.Draft.CanProceed)
	assert.Equal(t, 1, f.drafts.Len())

	claims, err := f.jwt.Validate(res.Session.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Draft.ID, claims.DraftID)
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Get(context.Background(), "missing")

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestSetDates(t *testing.T) {
	tests := []struct {
		name        string
		req         dto.SetDatesRequest
		wantCode    int
		wantApplied bool
	}{
		{
			name:        "valid stay",
			req:         dto.SetDatesRequest{CheckIn: "2024-06-01", CheckOut: "2024-06-04"},
			wantApplied: true,
		},
		{
			name:        "check-in only",
			req:         dto.SetDatesRequest{CheckIn: "2024-06-01"},
			wantApplied: true,
		},
		{
			name: "same day",
			req:  dto.SetDatesRequest{CheckIn: "2024-06-01", CheckOut: "2024-06-01"},
		},
		{
			name:     "not a date",
			req:      dto.SetDatesRequest{CheckIn: "2024-13-01"},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			id := f.start(t)

			res, err := f.svc.SetDates(context.Background(), id, tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantApplied, res.Applied)
		})
	}
}

func TestSelectRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.start(t)

	_, err := f.svc.SetDates(ctx, id, dto.SetDatesRequest{CheckIn: "2024-06-01", CheckOut: "2024-06-04"})
	require.NoError(t, err)

	res, err := f.svc.SelectRoom(ctx, id, dto.SelectRoomRequest{Room: "deluxe-river"})
	require.NoError(t, err)
	require.NotNil(t, res.Room)
	assert.Equal(t, "Deluxe River View", res.Room.Name)
	assert.Equal(t, int64(1050000), res.Pricing.RoomSubtotal)
	assert.Equal(t, int64(126000), res.Pricing.Taxes)
	assert.Equal(t, int64(52500), res.Pricing.ServiceFee)
	assert.Equal(t, int64(1228500), res.Pricing.Total)
	assert.Equal(t, "IDR 1,228,500", res.Pricing.Formatted.Total)

	_, err = f.svc.SelectRoom(ctx, id, dto.SelectRoomRequest{Room: "presidential"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	res, err = f.svc.ClearRoom(ctx, id)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Nil(t, res.Room)
	assert.False(t, res.Pricing.RoomSelected)
}

func TestExtras(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.start(t)

	res, err := f.svc.AddExtra(ctx, id, dto.AddExtraRequest{ExtraID: "breakfast"})
	require.NoError(t, err)
	assert.True(t, res.Applied)
	require.Len(t, res.Extras, 1)

	res, err = f.svc.AddExtra(ctx, id, dto.AddExtraRequest{ExtraID: "breakfast"})
	require.NoError(t, err)
	assert.False(t, res.Applied)

	_, err = f.svc.AddExtra(ctx, id, dto.AddExtraRequest{ExtraID: "helicopter"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	res, err = f.svc.RemoveExtra(ctx, id, "nonexistent-id")
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Len(t, res.Extras, 1)

	res, err = f.svc.RemoveExtra(ctx, id, "breakfast")
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Empty(t, res.Extras)
}

func TestNext_ReportsIssues(t *testing.T) {
	f := newFixture(t)
	id := f.start(t)

	res, err := f.svc.Next(context.Background(), id)

	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.False(t, res.CanProceed)
	assert.Equal(t, []string{"check-in date is required", "check-out date is required"}, res.Issues)
}

func TestConfirm(t *testing.T) {
	f := newFixture(t)
	id := f.ready(t)

	confirmedAt := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	f.confirmer.EXPECT().
		Confirm(gomock.Any(), gomock.Any()).
		Return(model.Confirmation{Number: "RS-20240520-0A1B2C3D", ConfirmedAt: confirmedAt}, nil)
	f.receipts.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r model.Receipt) error {
			assert.Equal(t, "RS-20240520-0A1B2C3D", r.Number)
			assert.Equal(t, id, r.DraftID)
			assert.Equal(t, "Ayu", r.Details.FirstName)
			assert.Equal(t, int64(1228500), r.Pricing.Total)

			return nil
		})

	res, err := f.svc.Confirm(context.Background(), id)

	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, "confirmed", res.Status)
	require.NotNil(t, res.Confirmation)
	assert.Equal(t, "RS-20240520-0A1B2C3D", res.Confirmation.Number)
}

func TestConfirm_ReceiptStoreDown(t *testing.T) {
	f := newFixture(t)
	id := f.ready(t)

	f.confirmer.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(model.Confirmation{Number: "RS-1"}, nil)
	f.receipts.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	res, err := f.svc.Confirm(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "confirmed", res.Status)
}

func TestConfirm_Failed(t *testing.T) {
	f := newFixture(t)
	id := f.ready(t)

	f.confirmer.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(model.Confirmation{}, errors.New("no rooms left"))

	res, err := f.svc.Confirm(context.Background(), id)

	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, "failed", res.Status)
	assert.Equal(t, "no rooms left", res.FailureReason)
	assert.Nil(t, res.Confirmation)
}

func TestConfirm_SurvivesCanceledRequest(t *testing.T) {
	f := newFixture(t)
	id := f.ready(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.confirmer.EXPECT().
		Confirm(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ model.Draft) (model.Confirmation, error) {
			assert.NoError(t, ctx.Err())

			return model.Confirmation{Number: "RS-2"}, nil
		})
	f.receipts.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.Confirm(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, "confirmed", res.Status)
}

func TestConfirm_NotReady(t *testing.T) {
	f := newFixture(t)
	id := f.start(t)

	res, err := f.svc.Confirm(context.Background(), id)

	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, "draft", res.Status)
}

func TestResetAndDiscard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.ready(t)

	res, err := f.svc.Reset(ctx, id)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, id, res.ID)
	assert.Equal(t, 1, res.Step.Number)
	assert.Nil(t, res.Room)

	require.NoError(t, f.svc.Discard(ctx, id))

	_, err = f.svc.Get(ctx, id)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	err = f.svc.Discard(ctx, id)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestDiscard_WhileConfirming(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.ready(t)

	started := make(chan struct{})
	release := make(chan struct{})

	f.confirmer.EXPECT().
		Confirm(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ model.Draft) (model.Confirmation, error) {
			close(started)
			<-release

			return model.Confirmation{}, errors.New("declined")
		})

	done := make(chan struct{})

	go func() {
		defer close(done)

		_, _ = f.svc.Confirm(ctx, id)
	}()

	<-started

	err := f.svc.Discard(ctx, id)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	close(release)
	<-done

	require.NoError(t, f.svc.Discard(ctx, id))
	assert.Equal(t, 0, f.drafts.Len())
}

func TestSelectableRooms(t *testing.T) {
	tests := []struct {
		name     string
		guests   dto.SetGuestsRequest
		expected []string
	}{
		{
			name:     "couple",
			guests:   dto.SetGuestsRequest{Adults: 2},
			expected: []string{"standard-twin", "standard-king", "deluxe-river", "deluxe-corner", "executive-suite", "family-suite"},
		},
		{
			name:     "three guests",
			guests:   dto.SetGuestsRequest{Adults: 2, Children: 1},
			expected: []string{"deluxe-corner", "executive-suite", "family-suite"},
		},
		{
			name:     "large family",
			guests:   dto.SetGuestsRequest{Adults: 2, Children: 3},
			expected: []string{"family-suite"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			id := f.start(t)

			_, err := f.svc.SetGuests(ctx, id, tt.guests)
			require.NoError(t, err)

			res, err := f.svc.SelectableRooms(ctx, id)
			require.NoError(t, err)

			ids := make([]string, len(res.Rooms))
			for i, r := range res.Rooms {
				ids[i] = r.ID
			}

			assert.Equal(t, tt.expected, ids)
			assert.Equal(t, len(tt.expected), res.TotalData)
			assert.Equal(t, tt.guests.Adults+tt.guests.Children, res.Guests)
		})
	}
}

func TestSteps(t *testing.T) {
	f := newFixture(t)

	steps := f.svc.Steps(context.Background())

	require.Len(t, steps, 4)
	assert.Equal(t, dto.StepResponse{Number: 1, Title: "Dates & Guests"}, steps[0])
	assert.Equal(t, dto.StepResponse{Number: 4, Title: "Confirmation"}, steps[3])
}

func TestGetReceipt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.receipts.EXPECT().Get(gomock.Any(), "RS-1").Return(model.Receipt{
		Number:   "RS-1",
		CheckIn:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		RoomName: "Deluxe River View",
		Details:  model.GuestDetails{FirstName: "Ayu", LastName: "Lestari", Email: "ayu@example.com"},
		Pricing:  model.Pricing{Total: 1228500},
	}, nil)
	f.receipts.EXPECT().Get(gomock.Any(), "RS-404").Return(model.Receipt{}, failure.NotFound("receipt not found"))

	res, err := f.svc.GetReceipt(ctx, "RS-1")
	require.NoError(t, err)
	assert.Equal(t, "Ayu Lestari", res.GuestName)
	assert.Equal(t, "2024-06-01", res.CheckIn)
	assert.Equal(t, "IDR 1,228,500", res.Pricing.Formatted.Total)

	_, err = f.svc.GetReceipt(ctx, "RS-404")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
