package booking

import (
	"context"

	"github.com/navalhaclub/agenda-api/internal/domain/schedule"
	"github.com/navalhaclub/agenda-api/internal/models"
)

type Repository interface {
	// -------- Unit --------
	GetUnitByID(
		ctx context.Context,
		id uint,
	) (*models.Unit, error)

	// -------- Service --------
	GetActiveService(
		ctx context.Context,
		unitID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Staff --------
	GetStaffForUnit(
		ctx context.Context,
		unitID uint,
		staffID uint,
	) (*models.User, error)

	// -------- Availability / conflict --------
	ListBusyIntervals(
		ctx context.Context,
		staffID uint,
		date schedule.LocalDate,
		excluded []Status,
	) ([]schedule.Interval, error)

	HasConflict(
		ctx context.Context,
		staffID uint,
		date schedule.LocalDate,
		slot schedule.Interval,
		excludeBookingID uint,
	) (bool, error)

	// -------- Booking --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBookingByID(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	GetBookingForClient(
		ctx context.Context,
		id uint,
		clientID uint,
	) (*models.Booking, error)

	GetBookingForUnit(
		ctx context.Context,
		id uint,
		unitID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	DeleteBooking(
		ctx context.Context,
		id uint,
	) error

	ListBookingsForClient(
		ctx context.Context,
		clientID uint,
	) ([]models.Booking, error)

	ListBookingsForUnit(
		ctx context.Context,
		unitID uint,
		from *schedule.LocalDate,
		to *schedule.LocalDate,
	) ([]models.Booking, error)

	// -------- Sales ledger --------
	CreateSale(
		ctx context.Context,
		s *models.Sale,
	) error
}
