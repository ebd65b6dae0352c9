package booking

import (
	"context"

	"github.com/navalhaclub/agenda-api/internal/audit"
	domain "github.com/navalhaclub/agenda-api/internal/domain/booking"
	"github.com/navalhaclub/agenda-api/internal/domain/schedule"
	"github.com/navalhaclub/agenda-api/internal/httperr"
	"github.com/navalhaclub/agenda-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type UpdateBookingInput struct {
	UnitID    uint
	BookingID uint
	ActorID   uint

	// Campos de remarcação; nil = mantém o atual. Qualquer mudança de
	// funcionário/serviço/data/hora revalida conflito excluindo o
	// próprio agendamento.
	StaffID   *uint
	ServiceID *uint
	Date      *schedule.LocalDate
	Start     *schedule.LocalTime

	PaymentMethod *string
	Notes         *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	defaults schedule.BusinessHours
}

func NewUpdateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	defaults schedule.BusinessHours,
) *UpdateBooking {
	return &UpdateBooking{
		repo:     repo,
		audit:    audit,
		defaults: defaults,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateBooking) Execute(
	ctx context.Context,
	in UpdateBookingInput,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForUnit(ctx, in.BookingID, in.UnitID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	switch domain.Status(b.Status) {
	case domain.StatusPending, domain.StatusConfirmed:
		// remarcável
	default:
		return nil, httperr.ErrBusiness("invalid_state")
	}

	// A duração atual é derivável do próprio intervalo; só precisamos
	// voltar ao catálogo quando o serviço muda.
	duration := int(b.EndTime - b.StartTime)

	reschedule := false

	if in.StaffID != nil && *in.StaffID != b.StaffID {
		staff, err := uc.repo.GetStaffForUnit(ctx, in.UnitID, *in.StaffID)
		if err != nil || !staff.Active {
			return nil, httperr.ErrBusiness("staff_not_found")
		}
		b.StaffID = *in.StaffID
		reschedule = true
	}

	if in.ServiceID != nil && *in.ServiceID != b.ServiceID {
		svc, err := uc.repo.GetActiveService(ctx, in.UnitID, *in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		b.ServiceID = svc.ID
		b.Price = svc.Price
		duration = svc.DurationMin
		reschedule = true
	}

	if in.Date != nil && *in.Date != b.Date {
		b.Date = *in.Date
		reschedule = true
	}

	if in.Start != nil && *in.Start != b.StartTime {
		b.StartTime = *in.Start
		reschedule = true
	}

	if reschedule {
		b.EndTime = b.StartTime.Add(duration)

		unit, err := uc.repo.GetUnitByID(ctx, in.UnitID)
		if err != nil {
			return nil, err
		}

		hours := businessHours(uc.defaults, unit)
		if b.StartTime.Before(hours.Open) || b.EndTime.After(hours.Close) {
			return nil, httperr.ErrBusiness("outside_business_hours")
		}

		slot := schedule.Interval{Start: b.StartTime, End: b.EndTime}

		conflict, err := uc.repo.HasConflict(ctx, b.StaffID, b.Date, slot, b.ID)
		if err != nil {
			return nil, err
		}
		if conflict {
			return nil, httperr.ErrBusiness("time_conflict")
		}
	}

	if in.PaymentMethod != nil {
		b.PaymentMethod = *in.PaymentMethod
	}
	if in.Notes != nil {
		b.Notes = *in.Notes
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UnitID:   in.UnitID,
		UserID:   &in.ActorID,
		Action:   "booking_updated",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
