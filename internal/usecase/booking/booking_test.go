package booking

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/navalhaclub/agenda-api/internal/audit"
	domain "github.com/navalhaclub/agenda-api/internal/domain/booking"
	"github.com/navalhaclub/agenda-api/internal/domain/schedule"
	"github.com/navalhaclub/agenda-api/internal/httperr"
	"github.com/navalhaclub/agenda-api/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeRepo struct {
	unit    *models.Unit
	service *models.Service
	staff   *models.User

	busy         []schedule.Interval
	lastExcluded []domain.Status

	conflict      bool
	lastSlot      schedule.Interval
	lastExcludeID uint

	createErr error
	created   *models.Booking

	booking *models.Booking
	updated *models.Booking

	sale    *models.Sale
	saleErr error
}

func (f *fakeRepo) GetUnitByID(_ context.Context, id uint) (*models.Unit, error) {
	if f.unit == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.unit, nil
}

func (f *fakeRepo) GetActiveService(_ context.Context, unitID, serviceID uint) (*models.Service, error) {
	if f.service == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.service, nil
}

func (f *fakeRepo) GetStaffForUnit(_ context.Context, unitID, staffID uint) (*models.User, error) {
	if f.staff == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.staff, nil
}

func (f *fakeRepo) ListBusyIntervals(
	_ context.Context,
	staffID uint,
	date schedule.LocalDate,
	excluded []domain.Status,
) ([]schedule.Interval, error) {
	f.lastExcluded = excluded
	return f.busy, nil
}

func (f *fakeRepo) HasConflict(
	_ context.Context,
	staffID uint,
	date schedule.LocalDate,
	slot schedule.Interval,
	excludeBookingID uint,
) (bool, error) {
	f.lastSlot = slot
	f.lastExcludeID = excludeBookingID
	return f.conflict, nil
}

func (f *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	b.ID = 42
	f.created = b
	return nil
}

func (f *fakeRepo) GetBookingByID(_ context.Context, id uint) (*models.Booking, error) {
	if f.booking == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.booking, nil
}

func (f *fakeRepo) GetBookingForClient(_ context.Context, id, clientID uint) (*models.Booking, error) {
	return f.GetBookingByID(nil, id)
}

func (f *fakeRepo) GetBookingForUnit(_ context.Context, id, unitID uint) (*models.Booking, error) {
	return f.GetBookingByID(nil, id)
}

func (f *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	f.updated = b
	return nil
}

func (f *fakeRepo) DeleteBooking(_ context.Context, id uint) error { return nil }

func (f *fakeRepo) ListBookingsForClient(_ context.Context, clientID uint) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeRepo) ListBookingsForUnit(
	_ context.Context,
	unitID uint,
	from, to *schedule.LocalDate,
) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeRepo) CreateSale(_ context.Context, s *models.Sale) error {
	if f.saleErr != nil {
		return f.saleErr
	}
	f.sale = s
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// HELPERS
// ======================================================

type noopSink struct{}

func (noopSink) Log(uint, *uint, string, string, *uint, any) error { return nil }

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(noopSink{})
}

func defaultHours() schedule.BusinessHours {
	return schedule.BusinessHours{
		Open:  schedule.NewLocalTime(9, 0),
		Close: schedule.NewLocalTime(18, 0),
		Step:  30,
	}
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		unit: &models.Unit{
			ID:       1,
			Name:     "Unidade Centro",
			Timezone: "America/Sao_Paulo",
			Active:   true,
		},
		service: &models.Service{
			ID:          3,
			UnitID:      1,
			Name:        "Corte",
			DurationMin: 30,
			Price:       50,
			Active:      true,
		},
		staff: &models.User{
			ID:     2,
			Role:   models.RoleStaff,
			Active: true,
		},
	}
}

func mustDate(t *testing.T, s string) schedule.LocalDate {
	t.Helper()
	d, err := schedule.ParseLocalDate(s)
	require.NoError(t, err)
	return d
}

// ======================================================
// AVAILABILITY
// ======================================================

func TestGetAvailability_MarksBusySlots(t *testing.T) {
	repo := newFakeRepo()
	repo.busy = []schedule.Interval{
		{Start: schedule.NewLocalTime(10, 0), End: schedule.NewLocalTime(11, 0)},
	}

	uc := NewGetAvailability(repo, defaultHours())

	out, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		UnitID:    1,
		StaffID:   2,
		ServiceID: 3,
		Date:      mustDate(t, "2026-03-16"),
	})
	require.NoError(t, err)

	assert.Equal(t, 30, out.DurationMin)
	require.Len(t, out.Slots, 18)

	byTime := map[schedule.LocalTime]bool{}
	for _, s := range out.Slots {
		byTime[s.Time] = s.Available
	}

	assert.True(t, byTime[schedule.NewLocalTime(9, 30)])
	assert.False(t, byTime[schedule.NewLocalTime(10, 0)])
	assert.False(t, byTime[schedule.NewLocalTime(10, 30)])
	assert.True(t, byTime[schedule.NewLocalTime(11, 0)])

	// só cancelados saem da grade
	assert.Equal(t, domain.AvailabilityExclusions, repo.lastExcluded)
}

func TestGetAvailability_LongService(t *testing.T) {
	repo := newFakeRepo()
	repo.service.DurationMin = 60
	repo.busy = []schedule.Interval{
		{Start: schedule.NewLocalTime(10, 0), End: schedule.NewLocalTime(11, 0)},
	}

	uc := NewGetAvailability(repo, defaultHours())

	out, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		UnitID: 1, StaffID: 2, ServiceID: 3,
		Date: mustDate(t, "2026-03-16"),
	})
	require.NoError(t, err)

	// última largada possível para 60 min é 17:00
	require.Len(t, out.Slots, 17)

	byTime := map[schedule.LocalTime]bool{}
	for _, s := range out.Slots {
		byTime[s.Time] = s.Available
	}

	// 09:30+60 invade o intervalo ocupado; 11:00 encosta e pode
	assert.True(t, byTime[schedule.NewLocalTime(9, 0)])
	assert.False(t, byTime[schedule.NewLocalTime(9, 30)])
	assert.False(t, byTime[schedule.NewLocalTime(10, 0)])
	assert.False(t, byTime[schedule.NewLocalTime(10, 30)])
	assert.True(t, byTime[schedule.NewLocalTime(11, 0)])
}

func TestGetAvailability_UnitOverridesHours(t *testing.T) {
	repo := newFakeRepo()
	open := schedule.NewLocalTime(8, 0)
	closeAt := schedule.NewLocalTime(12, 0)
	repo.unit.OpeningTime = &open
	repo.unit.ClosingTime = &closeAt

	uc := NewGetAvailability(repo, defaultHours())

	out, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		UnitID: 1, StaffID: 2, ServiceID: 3,
		Date: mustDate(t, "2026-03-16"),
	})
	require.NoError(t, err)

	// 08:00 até 11:30
	require.Len(t, out.Slots, 8)
	assert.Equal(t, schedule.NewLocalTime(8, 0), out.Slots[0].Time)
	assert.Equal(t, schedule.NewLocalTime(11, 30), out.Slots[7].Time)
}

func TestGetAvailability_ServiceNotFound(t *testing.T) {
	repo := newFakeRepo()
	repo.service = nil

	uc := NewGetAvailability(repo, defaultHours())

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		UnitID: 1, StaffID: 2, ServiceID: 99,
		Date: mustDate(t, "2026-03-16"),
	})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

// ======================================================
// CREATE
// ======================================================

func TestCreateBooking_Success(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, testDispatcher(), defaultHours())

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		UnitID:    1,
		ClientID:  10,
		StaffID:   2,
		ServiceID: 3,
		Date:      mustDate(t, "2026-03-16"),
		Start:     schedule.NewLocalTime(10, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, schedule.NewLocalTime(10, 30), b.EndTime)
	assert.Equal(t, string(domain.StatusPending), b.Status)
	assert.Equal(t, 50.0, b.Price)
	assert.Equal(t, uint(0), repo.lastExcludeID)
}

func TestCreateBooking_ClientStartsConfirmed(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, testDispatcher(), defaultHours())

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		UnitID: 1, ClientID: 10, StaffID: 2, ServiceID: 3,
		Date:   mustDate(t, "2026-03-16"),
		Start:  schedule.NewLocalTime(10, 0),
		Status: domain.StatusConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
}

func TestCreateBooking_Conflict(t *testing.T) {
	repo := newFakeRepo()
	repo.conflict = true

	uc := NewCreateBooking(repo, testDispatcher(), defaultHours())

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UnitID: 1, ClientID: 10, StaffID: 2, ServiceID: 3,
		Date:  mustDate(t, "2026-03-16"),
		Start: schedule.NewLocalTime(10, 0),
	})
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
}

func TestCreateBooking_OutsideBusinessHours(t *testing.T) {
	repo := newFakeRepo()
	repo.service.DurationMin = 60

	uc := NewCreateBooking(repo, testDispatcher(), defaultHours())

	// 17:30 + 60min passa das 18:00
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UnitID: 1, ClientID: 10, StaffID: 2, ServiceID: 3,
		Date:  mustDate(t, "2026-03-16"),
		Start: schedule.NewLocalTime(17, 30),
	})
	assert.True(t, httperr.IsBusiness(err, "outside_business_hours"))

	// terminar exatamente no fechamento é permitido
	_, err = uc.Execute(context.Background(), CreateBookingInput{
		UnitID: 1, ClientID: 10, StaffID: 2, ServiceID: 3,
		Date:  mustDate(t, "2026-03-16"),
		Start: schedule.NewLocalTime(17, 0),
	})
	assert.NoError(t, err)
}

func TestCreateBooking_UniqueViolationBecomesConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = &pgconn.PgError{Code: "23505"}

	uc := NewCreateBooking(repo, testDispatcher(), defaultHours())

	// quem perde a corrida no índice único recebe o mesmo erro de
	// conflito da checagem normal
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UnitID: 1, ClientID: 10, StaffID: 2, ServiceID: 3,
		Date:  mustDate(t, "2026-03-16"),
		Start: schedule.NewLocalTime(10, 0),
	})
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
}

func TestCreateBooking_InactiveUnit(t *testing.T) {
	repo := newFakeRepo()
	repo.unit.Active = false

	uc := NewCreateBooking(repo, testDispatcher(), defaultHours())

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UnitID: 1, ClientID: 10, StaffID: 2, ServiceID: 3,
		Date:  mustDate(t, "2026-03-16"),
		Start: schedule.NewLocalTime(10, 0),
	})
	assert.True(t, httperr.IsBusiness(err, "unit_not_found"))
}

// ======================================================
// UPDATE
// ======================================================

func existingBooking() *models.Booking {
	return &models.Booking{
		ID:        7,
		UnitID:    1,
		ClientID:  10,
		StaffID:   2,
		ServiceID: 3,
		Date:      schedule.LocalDate{Year: 2026, Month: 3, Day: 16},
		StartTime: schedule.NewLocalTime(10, 0),
		EndTime:   schedule.NewLocalTime(10, 30),
		Status:    string(domain.StatusPending),
		Price:     50,
	}
}

func TestUpdateBooking_RescheduleExcludesSelf(t *testing.T) {
	repo := newFakeRepo()
	repo.booking = existingBooking()

	uc := NewUpdateBooking(repo, testDispatcher(), defaultHours())

	newStart := schedule.NewLocalTime(11, 0)
	b, err := uc.Execute(context.Background(), UpdateBookingInput{
		UnitID:    1,
		BookingID: 7,
		ActorID:   2,
		Start:     &newStart,
	})
	require.NoError(t, err)

	assert.Equal(t, schedule.NewLocalTime(11, 0), b.StartTime)
	assert.Equal(t, schedule.NewLocalTime(11, 30), b.EndTime)
	// o próprio agendamento não conta como conflito
	assert.Equal(t, uint(7), repo.lastExcludeID)
}

func TestUpdateBooking_ServiceChangeRecomputesEnd(t *testing.T) {
	repo := newFakeRepo()
	repo.booking = existingBooking()
	repo.service = &models.Service{
		ID: 5, UnitID: 1, Name: "Barba e corte",
		DurationMin: 60, Price: 90, Active: true,
	}

	uc := NewUpdateBooking(repo, testDispatcher(), defaultHours())

	newService := uint(5)
	b, err := uc.Execute(context.Background(), UpdateBookingInput{
		UnitID:    1,
		BookingID: 7,
		ActorID:   2,
		ServiceID: &newService,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(5), b.ServiceID)
	assert.Equal(t, schedule.NewLocalTime(11, 0), b.EndTime)
	assert.Equal(t, 90.0, b.Price)
}

func TestUpdateBooking_CompletedIsImmutable(t *testing.T) {
	repo := newFakeRepo()
	b := existingBooking()
	b.Status = string(domain.StatusCompleted)
	repo.booking = b

	uc := NewUpdateBooking(repo, testDispatcher(), defaultHours())

	newStart := schedule.NewLocalTime(11, 0)
	_, err := uc.Execute(context.Background(), UpdateBookingInput{
		UnitID: 1, BookingID: 7, ActorID: 2, Start: &newStart,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestUpdateBooking_ConflictOnNewSlot(t *testing.T) {
	repo := newFakeRepo()
	repo.booking = existingBooking()
	repo.conflict = true

	uc := NewUpdateBooking(repo, testDispatcher(), defaultHours())

	newStart := schedule.NewLocalTime(14, 0)
	_, err := uc.Execute(context.Background(), UpdateBookingInput{
		UnitID: 1, BookingID: 7, ActorID: 2, Start: &newStart,
	})
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
}

// ======================================================
// TRANSIÇÕES
// ======================================================

func TestConfirmBooking(t *testing.T) {
	repo := newFakeRepo()
	repo.booking = existingBooking()

	uc := NewConfirmBooking(repo, testDispatcher())

	b, err := uc.Execute(context.Background(), 1, 2, 7)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	require.NotNil(t, repo.updated)
}

func TestCancelBooking_ForClient(t *testing.T) {
	repo := newFakeRepo()
	repo.booking = existingBooking()

	uc := NewCancelBooking(repo, testDispatcher())

	b, err := uc.ExecuteForClient(context.Background(), 10, 7)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), b.Status)
	require.NotNil(t, b.CancelledAt)
}

func TestCompleteBooking_RecordsSale(t *testing.T) {
	repo := newFakeRepo()
	b := existingBooking()
	b.Status = string(domain.StatusConfirmed)
	b.PaymentMethod = "pix"
	b.Service = models.Service{ID: 3, Name: "Corte"}
	repo.booking = b

	uc := NewCompleteBooking(repo, testDispatcher())

	out, err := uc.Execute(context.Background(), 1, 2, 7)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), out.Status)

	require.NotNil(t, repo.sale)
	assert.Equal(t, "service", repo.sale.Type)
	assert.Equal(t, 50.0, repo.sale.Total)
	assert.Equal(t, "pix", repo.sale.PaymentMethod)
	require.Len(t, repo.sale.Services, 1)
	assert.Equal(t, uint(7), *repo.sale.Services[0].BookingID)
}

func TestCompleteBooking_SaleFailureDoesNotUndo(t *testing.T) {
	repo := newFakeRepo()
	b := existingBooking()
	b.Status = string(domain.StatusConfirmed)
	b.Service = models.Service{ID: 3, Name: "Corte"}
	repo.booking = b
	repo.saleErr = assert.AnError

	uc := NewCompleteBooking(repo, testDispatcher())

	out, err := uc.Execute(context.Background(), 1, 2, 7)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), out.Status)
}

func TestRateBooking(t *testing.T) {
	repo := newFakeRepo()
	b := existingBooking()
	b.Status = string(domain.StatusCompleted)
	repo.booking = b

	uc := NewRateBooking(repo)

	out, err := uc.Execute(context.Background(), 10, 7, 5, "excelente")
	require.NoError(t, err)
	require.NotNil(t, out.Rating)
	assert.Equal(t, 5, *out.Rating)
}
