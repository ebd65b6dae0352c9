package booking

import (
	"context"

	domain "github.com/navalhaclub/agenda-api/internal/domain/booking"
	"github.com/navalhaclub/agenda-api/internal/domain/schedule"
	"github.com/navalhaclub/agenda-api/internal/httperr"
)

type GetAvailability struct {
	repo     domain.Repository
	defaults schedule.BusinessHours
}

func NewGetAvailability(
	repo domain.Repository,
	defaults schedule.BusinessHours,
) *GetAvailability {
	return &GetAvailability{repo: repo, defaults: defaults}
}

// Execute é uma função total dos seus inputs: mesma entrada + mesmo
// snapshot de agendamentos → mesma saída. Só leitura, nenhum efeito.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.Availability, error) {

	svc, err := uc.repo.GetActiveService(ctx, in.UnitID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	unit, err := uc.repo.GetUnitByID(ctx, in.UnitID)
	if err != nil {
		return nil, httperr.ErrBusiness("unit_not_found")
	}

	// A grade considera ocupado tudo que não foi cancelado; concluídos
	// continuam bloqueando o horário do dia.
	busy, err := uc.repo.ListBusyIntervals(
		ctx,
		in.StaffID,
		in.Date,
		domain.AvailabilityExclusions,
	)
	if err != nil {
		return nil, err
	}

	hours := businessHours(uc.defaults, unit)

	return &domain.Availability{
		Slots:       hours.Slots(svc.DurationMin, busy),
		DurationMin: svc.DurationMin,
	}, nil
}
