package booking

import "github.com/navalhaclub/agenda-api/internal/domain/schedule"

type AvailabilityInput struct {
	UnitID    uint
	StaffID   uint
	ServiceID uint
	Date      schedule.LocalDate
}

type Availability struct {
	Slots       []schedule.Slot `json:"slots"`
	DurationMin int             `json:"duration_min"`
}
