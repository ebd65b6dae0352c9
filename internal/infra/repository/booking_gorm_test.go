package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/navalhaclub/agenda-api/internal/domain/booking"
	"github.com/navalhaclub/agenda-api/internal/domain/schedule"
)

func newMockRepo(t *testing.T) (*BookingGormRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewBookingGormRepository(db), mock
}

func testDate(t *testing.T) schedule.LocalDate {
	t.Helper()
	d, err := schedule.ParseLocalDate("2026-03-16")
	require.NoError(t, err)
	return d
}

func TestHasConflict_CanonicalPredicate(t *testing.T) {
	repo, mock := newMockRepo(t)

	slot := schedule.Interval{
		Start: schedule.NewLocalTime(10, 0),
		End:   schedule.NewLocalTime(10, 30),
	}

	// start_time < fim do candidato AND end_time > início do candidato
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE staff_id = \$1 AND date = \$2 AND status NOT IN \(\$3,\$4\) AND start_time < \$5 AND end_time > \$6`).
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(),
			"cancelled", "completed",
			"10:30:00", "10:00:00",
		).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	conflict, err := repo.HasConflict(context.Background(), 2, testDate(t), slot, 0)
	require.NoError(t, err)
	assert.True(t, conflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHasConflict_NoConflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	slot := schedule.Interval{
		Start: schedule.NewLocalTime(14, 0),
		End:   schedule.NewLocalTime(14, 30),
	}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	conflict, err := repo.HasConflict(context.Background(), 2, testDate(t), slot, 0)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestHasConflict_ExcludesOwnBooking(t *testing.T) {
	repo, mock := newMockRepo(t)

	slot := schedule.Interval{
		Start: schedule.NewLocalTime(10, 0),
		End:   schedule.NewLocalTime(10, 30),
	}

	// na remarcação, o próprio agendamento sai da checagem
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE .* AND id <> \$7`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	conflict, err := repo.HasConflict(context.Background(), 2, testDate(t), slot, 7)
	require.NoError(t, err)
	assert.False(t, conflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListBusyIntervals(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT "start_time","end_time" FROM "bookings" WHERE staff_id = \$1 AND date = \$2 AND status NOT IN \(\$3\)`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "cancelled").
		WillReturnRows(
			sqlmock.NewRows([]string{"start_time", "end_time"}).
				AddRow("10:00:00", "11:00:00").
				AddRow("14:30:00", "15:00:00"),
		)

	intervals, err := repo.ListBusyIntervals(
		context.Background(),
		2,
		testDate(t),
		domain.AvailabilityExclusions,
	)
	require.NoError(t, err)

	require.Len(t, intervals, 2)
	assert.Equal(t, schedule.NewLocalTime(10, 0), intervals[0].Start)
	assert.Equal(t, schedule.NewLocalTime(11, 0), intervals[0].End)
	assert.Equal(t, schedule.NewLocalTime(14, 30), intervals[1].Start)
	require.NoError(t, mock.ExpectationsWereMet())
}
