package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/navalhaclub/agenda-api/internal/domain/booking"
	"github.com/navalhaclub/agenda-api/internal/domain/schedule"
	"github.com/navalhaclub/agenda-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Unit
// --------------------------------------------------

func (r *BookingGormRepository) GetUnitByID(
	ctx context.Context,
	id uint,
) (*models.Unit, error) {

	var unit models.Unit
	if err := r.db.WithContext(ctx).First(&unit, id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetActiveService(
	ctx context.Context,
	unitID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND unit_id = ? AND active = true", serviceID, unitID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *BookingGormRepository) GetStaffForUnit(
	ctx context.Context,
	unitID uint,
	staffID uint,
) (*models.User, error) {

	var staff models.User
	if err := r.db.WithContext(ctx).
		Where(
			"id = ? AND unit_id = ? AND role IN ?",
			staffID, unitID,
			[]string{models.RoleStaff, models.RoleManager},
		).
		First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

// --------------------------------------------------
// Availability / conflict
// --------------------------------------------------

func (r *BookingGormRepository) ListBusyIntervals(
	ctx context.Context,
	staffID uint,
	date schedule.LocalDate,
	excluded []domain.Status,
) ([]schedule.Interval, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"staff_id = ? AND date = ? AND status NOT IN ?",
			staffID, date, statusStrings(excluded),
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	intervals := make([]schedule.Interval, 0, len(rows))
	for _, b := range rows {
		intervals = append(intervals, schedule.Interval{
			Start: b.StartTime,
			End:   b.EndTime,
		})
	}

	return intervals, nil
}

func (r *BookingGormRepository) HasConflict(
	ctx context.Context,
	staffID uint,
	date schedule.LocalDate,
	slot schedule.Interval,
	excludeBookingID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"staff_id = ? AND date = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
			staffID, date,
			statusStrings(domain.ConflictExclusions),
			slot.End, slot.Start,
		)

	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingGormRepository) GetBookingByID(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Staff").
		Preload("Service").
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingForClient(
	ctx context.Context,
	id uint,
	clientID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Staff").
		Preload("Service").
		Where("id = ? AND client_id = ?", id, clientID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingForUnit(
	ctx context.Context,
	id uint,
	unitID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("id = ? AND unit_id = ?", id, unitID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, id).Error
}

func (r *BookingGormRepository) ListBookingsForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Staff").
		Preload("Service").
		Preload("Unit").
		Where("client_id = ?", clientID).
		Order("date DESC, start_time DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForUnit(
	ctx context.Context,
	unitID uint,
	from *schedule.LocalDate,
	to *schedule.LocalDate,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Staff").
		Preload("Service").
		Where("unit_id = ?", unitID)

	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}

	var bookings []models.Booking
	if err := q.
		Order("date ASC, start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Sales ledger
// --------------------------------------------------

func (r *BookingGormRepository) CreateSale(
	ctx context.Context,
	s *models.Sale,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func statusStrings(statuses []domain.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
