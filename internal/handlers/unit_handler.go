package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalhaclub/agenda-api/internal/audit"
	"github.com/navalhaclub/agenda-api/internal/domain/schedule"
	"github.com/navalhaclub/agenda-api/internal/middleware"
	"github.com/navalhaclub/agenda-api/internal/models"
	"github.com/navalhaclub/agenda-api/internal/timezone"
)

type UnitHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewUnitHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *UnitHandler {
	return &UnitHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CreateUnitRequest struct {
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Phone    string `json:"phone"`
	Timezone string `json:"timezone"`

	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
}

type UpdateUnitRequest struct {
	Name     *string `json:"name,omitempty"`
	Address  *string `json:"address,omitempty"`
	City     *string `json:"city,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
	Active   *bool   `json:"active,omitempty"`

	OpeningTime *string `json:"opening_time,omitempty"`
	ClosingTime *string `json:"closing_time,omitempty"`
}

// --------- Handlers ---------

// PublicList expõe as unidades ativas para a tela de cadastro/agenda
// do cliente. Sem auth.
func (h *UnitHandler) PublicList(c *gin.Context) {
	var units []models.Unit
	if err := h.db.
		Where("active = true").
		Order("name ASC").
		Find(&units).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_units"})
		return
	}

	out := make([]gin.H, 0, len(units))
	for _, u := range units {
		out = append(out, gin.H{
			"id":           u.ID,
			"name":         u.Name,
			"address":      u.Address,
			"city":         u.City,
			"phone":        u.Phone,
			"opening_time": u.OpeningTime,
			"closing_time": u.ClosingTime,
		})
	}

	c.JSON(http.StatusOK, out)
}

func (h *UnitHandler) List(c *gin.Context) {
	var units []models.Unit
	if err := h.db.Order("id ASC").Find(&units).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_units"})
		return
	}

	c.JSON(http.StatusOK, units)
}

func (h *UnitHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var unit models.Unit
	if err := h.db.First(&unit, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unit_not_found"})
		return
	}

	c.JSON(http.StatusOK, unit)
}

func (h *UnitHandler) Create(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	tz := req.Timezone
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_timezone"})
		return
	}

	unit := models.Unit{
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		Phone:    req.Phone,
		Timezone: tz,
		Active:   true,
	}

	if req.OpeningTime != "" {
		t, ok := parseTimeParam(req.OpeningTime)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_opening_time"})
			return
		}
		unit.OpeningTime = &t
	}

	if req.ClosingTime != "" {
		t, ok := parseTimeParam(req.ClosingTime)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_closing_time"})
			return
		}
		unit.ClosingTime = &t
	}

	if unit.OpeningTime != nil && unit.ClosingTime != nil &&
		!(*unit.OpeningTime).Before(*unit.ClosingTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_business_hours"})
		return
	}

	if err := h.db.Create(&unit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_unit"})
		return
	}

	h.audit.Dispatch(audit.Event{
		UnitID:   unit.ID,
		UserID:   &actorID,
		Action:   "unit_created",
		Entity:   "unit",
		EntityID: &unit.ID,
	})

	c.JSON(http.StatusCreated, unit)
}

func (h *UnitHandler) Update(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var unit models.Unit
	if err := h.db.First(&unit, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unit_not_found"})
		return
	}

	var req UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		unit.Name = *req.Name
	}
	if req.Address != nil {
		unit.Address = *req.Address
	}
	if req.City != nil {
		unit.City = *req.City
	}
	if req.Phone != nil {
		unit.Phone = *req.Phone
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_timezone"})
			return
		}
		unit.Timezone = *req.Timezone
	}
	if req.Active != nil {
		unit.Active = *req.Active
	}

	if req.OpeningTime != nil {
		opening, ok := applyTimeOverride(*req.OpeningTime)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_opening_time"})
			return
		}
		unit.OpeningTime = opening
	}

	if req.ClosingTime != nil {
		closing, ok := applyTimeOverride(*req.ClosingTime)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_closing_time"})
			return
		}
		unit.ClosingTime = closing
	}

	if unit.OpeningTime != nil && unit.ClosingTime != nil &&
		!(*unit.OpeningTime).Before(*unit.ClosingTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_business_hours"})
		return
	}

	if err := h.db.Save(&unit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_unit"})
		return
	}

	h.audit.Dispatch(audit.Event{
		UnitID:   unit.ID,
		UserID:   &actorID,
		Action:   "unit_updated",
		Entity:   "unit",
		EntityID: &unit.ID,
	})

	c.JSON(http.StatusOK, unit)
}

// "" limpa o override e a unidade volta à grade default.
func applyTimeOverride(value string) (*schedule.LocalTime, bool) {
	if value == "" {
		return nil, true
	}

	t, ok := parseTimeParam(value)
	if !ok {
		return nil, false
	}
	return &t, true
}
