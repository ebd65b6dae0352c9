package booking

import (
	"context"

	domain "github.com/navalhaclub/agenda-api/internal/domain/booking"
	"github.com/navalhaclub/agenda-api/internal/httperr"
	"github.com/navalhaclub/agenda-api/internal/models"
)

type RateBooking struct {
	repo domain.Repository
}

func NewRateBooking(repo domain.Repository) *RateBooking {
	return &RateBooking{repo: repo}
}

func (uc *RateBooking) Execute(
	ctx context.Context,
	clientID uint,
	bookingID uint,
	rating int,
	comment string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForClient(ctx, bookingID, clientID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.Rate(b, rating, comment); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}
