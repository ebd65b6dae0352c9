package models

import (
	"time"

	"github.com/navalhaclub/agenda-api/internal/domain/schedule"
)

type Unit struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	City    string `gorm:"size:100" json:"city"`
	Phone   string `gorm:"size:20" json:"phone"`

	// Grade de atendimento da unidade; quando vazios, valem os defaults
	// da configuração (09:00–18:00).
	OpeningTime *schedule.LocalTime `gorm:"type:time" json:"opening_time"`
	ClosingTime *schedule.LocalTime `gorm:"type:time" json:"closing_time"`

	Timezone string `gorm:"size:50" json:"timezone"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
