package booking

import "github.com/navalhaclub/agenda-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Conjuntos de exclusão por ponto de chamada. A grade de disponibilidade
// ignora só cancelados; a checagem de conflito em criação/edição ignora
// cancelados e concluídos.
var (
	AvailabilityExclusions = []Status{StatusCancelled}
	ConflictExclusions     = []Status{StatusCancelled, StatusCompleted}
)

// ===============================
// Validations
// ===============================

// CanConfirm: só agendamentos pendentes podem ser confirmados
func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel: pendente ou confirmado
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete: só confirmados
func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
