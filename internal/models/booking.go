package models

import (
	"time"

	"github.com/navalhaclub/agenda-api/internal/domain/schedule"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UnitID uint `json:"unit_id"`
	Unit   Unit `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"unit"`

	ClientID uint `json:"client_id"`
	Client   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	StaffID uint `gorm:"index:idx_bookings_staff_day,priority:1" json:"staff_id"`
	Staff   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Date      schedule.LocalDate `gorm:"type:date;index:idx_bookings_staff_day,priority:2" json:"date"`
	StartTime schedule.LocalTime `gorm:"type:time" json:"start_time"`
	EndTime   schedule.LocalTime `gorm:"type:time" json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Price         float64 `json:"price"`
	PaymentMethod string  `gorm:"size:30" json:"payment_method"`
	Notes         string  `gorm:"size:255" json:"notes"`

	Rating        *int   `json:"rating"`
	RatingComment string `gorm:"size:255" json:"rating_comment"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
