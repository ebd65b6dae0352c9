package models

import "time"

// Registro do livro de vendas. Criado manualmente pelo balcão ou
// automaticamente quando um agendamento é concluído.
type Sale struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UnitID   uint  `json:"unit_id"`
	StaffID  uint  `json:"staff_id"`
	ClientID *uint `json:"client_id"`

	Type  string  `gorm:"size:20;not null" json:"type"` // service | product | mixed
	Total float64 `gorm:"not null" json:"total"`

	PaymentMethod string `gorm:"size:30;not null" json:"payment_method"`
	PaymentStatus string `gorm:"size:20;default:'paid'" json:"payment_status"`

	InvoiceNumber string `gorm:"size:50" json:"invoice_number"`
	InvoiceStatus string `gorm:"size:30;default:'pending_adjustment'" json:"invoice_status"`

	Notes string `gorm:"size:255" json:"notes"`

	Services []SaleService `json:"services"`
	Products []SaleProduct `json:"products"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Itens de serviço guardam nome e preço congelados no momento da venda.
type SaleService struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	SaleID uint `json:"sale_id"`

	BookingID *uint `json:"booking_id"`
	ServiceID *uint `json:"service_id"`

	ServiceName  string  `gorm:"size:100;not null" json:"service_name"`
	ServicePrice float64 `json:"service_price"`
	Quantity     int     `gorm:"default:1" json:"quantity"`
	Subtotal     float64 `json:"subtotal"`
}

type SaleProduct struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	SaleID uint `json:"sale_id"`

	ProductID *uint `json:"product_id"`

	ProductName  string  `gorm:"size:100;not null" json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     int     `gorm:"default:1" json:"quantity"`
	Subtotal     float64 `json:"subtotal"`
}
