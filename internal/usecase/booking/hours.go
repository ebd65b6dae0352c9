package booking

import (
	"github.com/navalhaclub/agenda-api/internal/domain/schedule"
	"github.com/navalhaclub/agenda-api/internal/models"
)

// businessHours aplica os horários próprios da unidade sobre os defaults
// da configuração.
func businessHours(defaults schedule.BusinessHours, unit *models.Unit) schedule.BusinessHours {
	hours := defaults

	if unit.OpeningTime != nil {
		hours.Open = *unit.OpeningTime
	}
	if unit.ClosingTime != nil {
		hours.Close = *unit.ClosingTime
	}

	return hours
}
