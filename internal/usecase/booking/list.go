package booking

import (
	"context"

	domain "github.com/navalhaclub/agenda-api/internal/domain/booking"
	"github.com/navalhaclub/agenda-api/internal/domain/schedule"
	"github.com/navalhaclub/agenda-api/internal/models"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) ForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Booking, error) {
	return uc.repo.ListBookingsForClient(ctx, clientID)
}

func (uc *ListBookings) ForUnit(
	ctx context.Context,
	unitID uint,
	from *schedule.LocalDate,
	to *schedule.LocalDate,
) ([]models.Booking, error) {
	return uc.repo.ListBookingsForUnit(ctx, unitID, from, to)
}
