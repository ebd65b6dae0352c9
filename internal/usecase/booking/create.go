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

type CreateBookingInput struct {
	UnitID   uint
	ClientID uint
	StaffID  uint

	ServiceID uint

	Date  schedule.LocalDate
	Start schedule.LocalTime

	PaymentMethod string
	Notes         string

	// Status inicial: confirmed quando o próprio cliente agenda,
	// pending quando o balcão agenda por ele. Vazio → pending.
	Status domain.Status
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	defaults schedule.BusinessHours
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	defaults schedule.BusinessHours,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		audit:    audit,
		defaults: defaults,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	unit, err := uc.repo.GetUnitByID(ctx, in.UnitID)
	if err != nil || !unit.Active {
		return nil, httperr.ErrBusiness("unit_not_found")
	}

	svc, err := uc.repo.GetActiveService(ctx, in.UnitID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	staff, err := uc.repo.GetStaffForUnit(ctx, in.UnitID, in.StaffID)
	if err != nil || !staff.Active {
		return nil, httperr.ErrBusiness("staff_not_found")
	}

	// Fim derivado, nunca fornecido pelo chamador.
	end := in.Start.Add(svc.DurationMin)

	hours := businessHours(uc.defaults, unit)
	if in.Start.Before(hours.Open) || end.After(hours.Close) {
		return nil, httperr.ErrBusiness("outside_business_hours")
	}

	slot := schedule.Interval{Start: in.Start, End: end}

	conflict, err := uc.repo.HasConflict(ctx, in.StaffID, in.Date, slot, 0)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, httperr.ErrBusiness("time_conflict")
	}

	status := in.Status
	if status == "" {
		status = domain.InitialStatus()
	}

	b := &models.Booking{
		UnitID:        in.UnitID,
		ClientID:      in.ClientID,
		StaffID:       in.StaffID,
		ServiceID:     svc.ID,
		Date:          in.Date,
		StartTime:     in.Start,
		EndTime:       end,
		Status:        string(status),
		Price:         svc.Price,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		// Duas requisições podem passar pela checagem acima ao mesmo
		// tempo; o índice único parcial garante que no máximo uma insere.
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UnitID:   in.UnitID,
		UserID:   &in.ClientID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
