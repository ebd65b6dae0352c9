package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/navalhaclub/agenda-api/internal/audit"
	domain "github.com/navalhaclub/agenda-api/internal/domain/booking"
	"github.com/navalhaclub/agenda-api/internal/httperr"
	"github.com/navalhaclub/agenda-api/internal/models"
	"github.com/navalhaclub/agenda-api/internal/timezone"
)

type CompleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteBooking {
	return &CompleteBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CompleteBooking) Execute(
	ctx context.Context,
	unitID uint,
	actorID uint,
	bookingID uint,
) (*models.Booking, error) {

	unit, err := uc.repo.GetUnitByID(ctx, unitID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForUnit(ctx, bookingID, unitID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := timezone.NowIn(unit.Timezone)
	if err := domain.Complete(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	// O lançamento na venda acontece depois do status gravado. Se falhar,
	// o agendamento permanece concluído: registramos e seguimos.
	if err := uc.repo.CreateSale(ctx, saleFor(b, actorID)); err != nil {
		zap.L().Warn("failed to record sale for completed booking",
			zap.Uint("booking_id", b.ID),
			zap.Error(err),
		)
	}

	uc.audit.Dispatch(audit.Event{
		UnitID:   unitID,
		UserID:   &actorID,
		Action:   "booking_completed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

func saleFor(b *models.Booking, staffID uint) *models.Sale {
	pm := b.PaymentMethod
	if pm == "" {
		pm = "other"
	}

	return &models.Sale{
		UnitID:        b.UnitID,
		StaffID:       staffID,
		ClientID:      &b.ClientID,
		Type:          "service",
		Total:         b.Price,
		PaymentMethod: pm,
		Services: []models.SaleService{
			{
				BookingID:    &b.ID,
				ServiceID:    &b.ServiceID,
				ServiceName:  b.Service.Name,
				ServicePrice: b.Price,
				Quantity:     1,
				Subtotal:     b.Price,
			},
		},
	}
}
