package models

import "time"

// Papéis de usuário. Clientes não pertencem a unidade nenhuma; funcionários
// e gerentes sim.
const (
	RoleClient  = "client"
	RoleStaff   = "staff"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

type User struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UnitID *uint `json:"unit_id"`
	Unit   *Unit `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"unit,omitempty"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'client'" json:"role"`
	PhotoURL     string `gorm:"size:255" json:"photo_url"`

	Active      bool `gorm:"default:true" json:"active"`
	FirstAccess bool `gorm:"default:true" json:"first_access"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
