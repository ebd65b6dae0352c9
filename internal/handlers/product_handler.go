package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalhaclub/agenda-api/internal/audit"
	"github.com/navalhaclub/agenda-api/internal/middleware"
	"github.com/navalhaclub/agenda-api/internal/models"
)

type ProductHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewProductHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *ProductHandler {
	return &ProductHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateProductRequest struct {
	CategoryID  *uint   `json:"category_id"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	Stock       int     `json:"stock"`
}

type UpdateProductRequest struct {
	CategoryID  *uint    `json:"category_id,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// --------- Categorias ---------

func (h *ProductHandler) ListCategories(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	var categories []models.ProductCategory
	if err := h.db.
		Where("unit_id = ? AND active = true", unitID).
		Order("name ASC").
		Find(&categories).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *ProductHandler) CreateCategory(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	category := models.ProductCategory{
		UnitID: unitID,
		Name:   strings.TrimSpace(req.Name),
		Active: true,
	}

	if err := h.db.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// --------- Produtos ---------

func (h *ProductHandler) List(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	activeStr := strings.TrimSpace(c.Query("active"))
	categoryStr := strings.TrimSpace(c.Query("category_id"))

	q := h.db.Preload("Category").Where("unit_id = ?", unitID)

	if activeStr == "true" {
		q = q.Where("active = true")
	} else if activeStr == "false" {
		q = q.Where("active = false")
	}

	if categoryStr != "" {
		q = q.Where("category_id = ?", categoryStr)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var products []models.Product
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.CategoryID != nil {
		var count int64
		h.db.Model(&models.ProductCategory{}).
			Where("id = ? AND unit_id = ?", *req.CategoryID, unitID).
			Count(&count)
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category_not_found"})
			return
		}
	}

	product := models.Product{
		UnitID:      unitID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Active:      true,
	}

	if err := h.db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_product"})
		return
	}

	h.audit.Dispatch(audit.Event{
		UnitID:   unitID,
		UserID:   &actorID,
		Action:   "product_created",
		Entity:   "product",
		EntityID: &product.ID,
	})

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var product models.Product
	if err := h.db.
		Where("id = ? AND unit_id = ?", id, unitID).
		First(&product).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_product"})
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.CategoryID != nil {
		var count int64
		h.db.Model(&models.ProductCategory{}).
			Where("id = ? AND unit_id = ?", *req.CategoryID, unitID).
			Count(&count)
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category_not_found"})
			return
		}
		product.CategoryID = req.CategoryID
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := h.db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_product"})
		return
	}

	h.audit.Dispatch(audit.Event{
		UnitID:   unitID,
		UserID:   &actorID,
		Action:   "product_updated",
		Entity:   "product",
		EntityID: &product.ID,
	})

	c.JSON(http.StatusOK, product)
}
