package booking

import (
	"context"

	"github.com/navalhaclub/agenda-api/internal/audit"
	domain "github.com/navalhaclub/agenda-api/internal/domain/booking"
	"github.com/navalhaclub/agenda-api/internal/httperr"
	"github.com/navalhaclub/agenda-api/internal/models"
	"github.com/navalhaclub/agenda-api/internal/timezone"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
	}
}

// Execute cancela pela visão da unidade (funcionário/gerente).
func (uc *CancelBooking) Execute(
	ctx context.Context,
	unitID uint,
	actorID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForUnit(ctx, bookingID, unitID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	return uc.cancel(ctx, b, &actorID)
}

// ExecuteForClient cancela pela visão do próprio cliente.
func (uc *CancelBooking) ExecuteForClient(
	ctx context.Context,
	clientID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForClient(ctx, bookingID, clientID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	return uc.cancel(ctx, b, &clientID)
}

func (uc *CancelBooking) cancel(
	ctx context.Context,
	b *models.Booking,
	actorID *uint,
) (*models.Booking, error) {

	unit, err := uc.repo.GetUnitByID(ctx, b.UnitID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(unit.Timezone)
	if err := domain.Cancel(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UnitID:   b.UnitID,
		UserID:   actorID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
