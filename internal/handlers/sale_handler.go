package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalhaclub/agenda-api/internal/audit"
	"github.com/navalhaclub/agenda-api/internal/httperr"
	"github.com/navalhaclub/agenda-api/internal/middleware"
	"github.com/navalhaclub/agenda-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type SaleHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewSaleHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *SaleHandler {
	return &SaleHandler{db: db, audit: dispatcher}
}

// ======================================================
// REQUESTS
// ======================================================

type SaleServiceItem struct {
	ServiceID uint `json:"service_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type SaleProductItem struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type CreateSaleRequest struct {
	ClientID      *uint  `json:"client_id"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	Notes         string `json:"notes"`

	Services []SaleServiceItem `json:"services"`
	Products []SaleProductItem `json:"products"`
}

type UpdateInvoiceRequest struct {
	InvoiceNumber *string `json:"invoice_number,omitempty"`
	InvoiceStatus *string `json:"invoice_status,omitempty"`
}

// ======================================================
// CREATE
// ======================================================

// Create registra uma venda de balcão. Preço vem sempre do cadastro,
// nunca do request; estoque de produto é abatido na mesma transação.
func (h *SaleHandler) Create(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if len(req.Services) == 0 && len(req.Products) == 0 {
		httperr.BadRequest(c, "empty_sale", "Venda sem itens.")
		return
	}

	var created models.Sale

	err := h.db.Transaction(func(tx *gorm.DB) error {
		sale := models.Sale{
			UnitID:        unitID,
			StaffID:       staffID,
			ClientID:      req.ClientID,
			PaymentMethod: req.PaymentMethod,
			PaymentStatus: "paid",
			Notes:         req.Notes,
		}

		for _, item := range req.Services {
			qty := item.Quantity
			if qty <= 0 {
				qty = 1
			}

			var svc models.Service
			if err := tx.
				Where("id = ? AND unit_id = ?", item.ServiceID, unitID).
				First(&svc).Error; err != nil {
				return httperr.ErrBusiness("service_not_found")
			}

			subtotal := svc.Price * float64(qty)
			sale.Total += subtotal
			sale.Services = append(sale.Services, models.SaleService{
				ServiceID:    &svc.ID,
				ServiceName:  svc.Name,
				ServicePrice: svc.Price,
				Quantity:     qty,
				Subtotal:     subtotal,
			})
		}

		for _, item := range req.Products {
			qty := item.Quantity
			if qty <= 0 {
				qty = 1
			}

			var product models.Product
			if err := tx.
				Where("id = ? AND unit_id = ?", item.ProductID, unitID).
				First(&product).Error; err != nil {
				return httperr.ErrBusiness("product_not_found")
			}

			if product.Stock < qty {
				return httperr.ErrBusiness("insufficient_stock")
			}

			product.Stock -= qty
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			subtotal := product.Price * float64(qty)
			sale.Total += subtotal
			sale.Products = append(sale.Products, models.SaleProduct{
				ProductID:    &product.ID,
				ProductName:  product.Name,
				ProductPrice: product.Price,
				Quantity:     qty,
				Subtotal:     subtotal,
			})
		}

		sale.Type = saleType(len(sale.Services) > 0, len(sale.Products) > 0)

		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		created = sale
		return nil
	})

	if err != nil {
		switch {
		case httperr.IsBusiness(err, "service_not_found"):
			httperr.BadRequest(c, "service_not_found", "Serviço não encontrado.")
		case httperr.IsBusiness(err, "product_not_found"):
			httperr.BadRequest(c, "product_not_found", "Produto não encontrado.")
		case httperr.IsBusiness(err, "insufficient_stock"):
			httperr.BadRequest(c, "insufficient_stock", "Estoque insuficiente.")
		default:
			httperr.Internal(c, "failed_to_create_sale", "Erro ao registrar venda.")
		}
		return
	}

	h.audit.Dispatch(audit.Event{
		UnitID:   unitID,
		UserID:   &staffID,
		Action:   "sale_created",
		Entity:   "sale",
		EntityID: &created.ID,
	})

	c.JSON(http.StatusCreated, created)
}

func saleType(hasServices, hasProducts bool) string {
	switch {
	case hasServices && hasProducts:
		return "mixed"
	case hasProducts:
		return "product"
	default:
		return "service"
	}
}

// ======================================================
// LIST / GET
// ======================================================

func (h *SaleHandler) List(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	q := h.db.
		Preload("Services").
		Preload("Products").
		Where("unit_id = ?", unitID)

	q, ok := applyCreatedAtRange(c, q)
	if !ok {
		return
	}

	var sales []models.Sale
	if err := q.Order("created_at DESC").Find(&sales).Error; err != nil {
		httperr.Internal(c, "failed_to_list_sales", "Erro ao listar vendas.")
		return
	}

	c.JSON(http.StatusOK, sales)
}

func (h *SaleHandler) Get(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var sale models.Sale
	if err := h.db.
		Preload("Services").
		Preload("Products").
		Where("id = ? AND unit_id = ?", id, unitID).
		First(&sale).Error; err != nil {

		httperr.NotFound(c, "sale_not_found", "Venda não encontrada.")
		return
	}

	c.JSON(http.StatusOK, sale)
}

// ======================================================
// STATS
// ======================================================

// Stats agrega o faturamento do período: total geral e quebra por
// forma de pagamento.
func (h *SaleHandler) Stats(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	base := h.db.
		Model(&models.Sale{}).
		Where("unit_id = ? AND payment_status = ?", unitID, "paid")

	base, ok := applyCreatedAtRange(c, base)
	if !ok {
		return
	}

	var summary struct {
		Count int64   `json:"count"`
		Total float64 `json:"total"`
	}
	if err := base.
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS total").
		Scan(&summary).Error; err != nil {

		httperr.Internal(c, "failed_to_load_stats", "Erro ao carregar estatísticas.")
		return
	}

	var byPayment []struct {
		PaymentMethod string  `json:"payment_method"`
		Count         int64   `json:"count"`
		Total         float64 `json:"total"`
	}
	if err := base.
		Select("payment_method, COUNT(*) AS count, COALESCE(SUM(total), 0) AS total").
		Group("payment_method").
		Scan(&byPayment).Error; err != nil {

		httperr.Internal(c, "failed_to_load_stats", "Erro ao carregar estatísticas.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":      summary.Count,
		"total":      summary.Total,
		"by_payment": byPayment,
	})
}

// ======================================================
// INVOICE
// ======================================================

func (h *SaleHandler) UpdateInvoice(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var sale models.Sale
	if err := h.db.
		Where("id = ? AND unit_id = ?", id, unitID).
		First(&sale).Error; err != nil {

		httperr.NotFound(c, "sale_not_found", "Venda não encontrada.")
		return
	}

	var req UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.InvoiceNumber != nil {
		sale.InvoiceNumber = *req.InvoiceNumber
	}
	if req.InvoiceStatus != nil {
		switch *req.InvoiceStatus {
		case "pending_adjustment", "issued", "cancelled":
			sale.InvoiceStatus = *req.InvoiceStatus
		default:
			httperr.BadRequest(c, "invalid_invoice_status", "Status de nota inválido.")
			return
		}
	}

	if err := h.db.Save(&sale).Error; err != nil {
		httperr.Internal(c, "failed_to_update_sale", "Erro ao atualizar venda.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UnitID:   unitID,
		UserID:   &actorID,
		Action:   "sale_invoice_updated",
		Entity:   "sale",
		EntityID: &sale.ID,
	})

	c.JSON(http.StatusOK, sale)
}

// ======================================================
// HELPERS
// ======================================================

func applyCreatedAtRange(c *gin.Context, q *gorm.DB) (*gorm.DB, bool) {
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return nil, false
		}
		q = q.Where("created_at >= ?", from)
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return nil, false
		}
		q = q.Where("created_at < ?", to.Add(24*time.Hour))
	}

	return q, true
}
