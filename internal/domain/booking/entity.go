package booking

import (
	"time"

	"github.com/navalhaclub/agenda-api/internal/httperr"
	"github.com/navalhaclub/agenda-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(b *models.Booking) error {
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusConfirmed)
	return nil
}

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

// Rate registra a avaliação do cliente: nota 1–5, uma única vez,
// somente após concluído.
func Rate(b *models.Booking, rating int, comment string) error {
	if Status(b.Status) != StatusCompleted {
		return httperr.ErrBusiness("not_completed")
	}
	if b.Rating != nil {
		return httperr.ErrBusiness("already_rated")
	}
	if rating < 1 || rating > 5 {
		return httperr.ErrBusiness("invalid_rating")
	}

	b.Rating = &rating
	b.RatingComment = comment
	return nil
}
