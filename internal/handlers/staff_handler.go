package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/navalhaclub/agenda-api/internal/audit"
	"github.com/navalhaclub/agenda-api/internal/middleware"
	"github.com/navalhaclub/agenda-api/internal/models"
	"github.com/navalhaclub/agenda-api/internal/validators"
)

type StaffHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewStaffHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *StaffHandler {
	return &StaffHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type UpdateStaffRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	PhotoURL *string `json:"photo_url,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// --------- Handlers ---------

func (h *StaffHandler) List(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	q := h.db.Where(
		"unit_id = ? AND role IN ?",
		unitID,
		[]string{models.RoleStaff, models.RoleManager},
	)

	if active := strings.TrimSpace(c.Query("active")); active == "true" {
		q = q.Where("active = true")
	} else if active == "false" {
		q = q.Where("active = false")
	}

	var staff []models.User
	if err := q.Order("name ASC").Find(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_staff"})
		return
	}

	c.JSON(http.StatusOK, staff)
}

// PublicList expõe os profissionais ativos de uma unidade para o
// cliente escolher na hora de agendar. Sem auth.
func (h *StaffHandler) PublicList(c *gin.Context) {
	unitID := c.Param("unitId")

	var staff []models.User
	if err := h.db.
		Where(
			"unit_id = ? AND active = true AND role IN ?",
			unitID,
			[]string{models.RoleStaff, models.RoleManager},
		).
		Order("name ASC").
		Find(&staff).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_staff"})
		return
	}

	out := make([]gin.H, 0, len(staff))
	for _, s := range staff {
		out = append(out, gin.H{
			"id":        s.ID,
			"name":      s.Name,
			"photo_url": s.PhotoURL,
		})
	}

	c.JSON(http.StatusOK, out)
}

func (h *StaffHandler) Create(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleStaff
	}
	if role != models.RoleStaff && role != models.RoleManager {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_role"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "O domínio do e-mail informado não parece ser válido.",
		})
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email_already_exists"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	staff := models.User{
		UnitID:       &unitID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         role,
		Active:       true,
		FirstAccess:  true, // troca a senha provisória no primeiro login
	}

	if err := h.db.Create(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_staff"})
		return
	}

	h.audit.Dispatch(audit.Event{
		UnitID:   unitID,
		UserID:   &actorID,
		Action:   "staff_created",
		Entity:   "user",
		EntityID: &staff.ID,
	})

	c.JSON(http.StatusCreated, staff)
}

func (h *StaffHandler) Update(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	staff, ok := h.findStaff(c, unitID, id)
	if !ok {
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Phone != nil {
		staff.Phone = *req.Phone
	}
	if req.PhotoURL != nil {
		staff.PhotoURL = *req.PhotoURL
	}
	if req.Active != nil {
		staff.Active = *req.Active
	}

	if err := h.db.Save(staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_staff"})
		return
	}

	h.audit.Dispatch(audit.Event{
		UnitID:   unitID,
		UserID:   &actorID,
		Action:   "staff_updated",
		Entity:   "user",
		EntityID: &staff.ID,
	})

	c.JSON(http.StatusOK, staff)
}

// ResetPassword define uma senha provisória e força troca no próximo
// login.
func (h *StaffHandler) ResetPassword(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	staff, ok := h.findStaff(c, unitID, id)
	if !ok {
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	staff.PasswordHash = string(hashed)
	staff.FirstAccess = true

	if err := h.db.Save(staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_reset_password"})
		return
	}

	h.audit.Dispatch(audit.Event{
		UnitID:   unitID,
		UserID:   &actorID,
		Action:   "staff_password_reset",
		Entity:   "user",
		EntityID: &staff.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "password_reset"})
}

func (h *StaffHandler) findStaff(c *gin.Context, unitID uint, id string) (*models.User, bool) {
	var staff models.User
	if err := h.db.
		Where(
			"id = ? AND unit_id = ? AND role IN ?",
			id, unitID,
			[]string{models.RoleStaff, models.RoleManager},
		).
		First(&staff).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "staff_not_found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_staff"})
		return nil, false
	}

	return &staff, true
}
