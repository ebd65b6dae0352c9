package handlers

import (
	"github.com/navalhaclub/agenda-api/internal/domain/schedule"
)

func parseDateParam(dateStr string) (schedule.LocalDate, bool) {
	d, err := schedule.ParseLocalDate(dateStr)
	if err != nil {
		return schedule.LocalDate{}, false
	}
	return d, true
}

func parseTimeParam(timeStr string) (schedule.LocalTime, bool) {
	t, err := schedule.ParseLocalTime(timeStr)
	if err != nil {
		return 0, false
	}
	return t, true
}

// intervalo opcional ?from=...&to=... de listagens
func parseDateRange(fromStr, toStr string) (*schedule.LocalDate, *schedule.LocalDate, bool) {
	var from, to *schedule.LocalDate

	if fromStr != "" {
		d, ok := parseDateParam(fromStr)
		if !ok {
			return nil, nil, false
		}
		from = &d
	}

	if toStr != "" {
		d, ok := parseDateParam(toStr)
		if !ok {
			return nil, nil, false
		}
		to = &d
	}

	return from, to, true
}
