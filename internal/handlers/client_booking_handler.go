package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/navalhaclub/agenda-api/internal/audit"
	domain "github.com/navalhaclub/agenda-api/internal/domain/booking"
	"github.com/navalhaclub/agenda-api/internal/domain/schedule"
	"github.com/navalhaclub/agenda-api/internal/httperr"
	"github.com/navalhaclub/agenda-api/internal/middleware"
	usecase "github.com/navalhaclub/agenda-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// ClientBookingHandler é a visão do cliente: consulta a grade de
// horários, agenda para si, acompanha, cancela e avalia.
type ClientBookingHandler struct {
	availability *usecase.GetAvailability
	create       *usecase.CreateBooking
	cancel       *usecase.CancelBooking
	rate         *usecase.RateBooking
	list         *usecase.ListBookings
}

func NewClientBookingHandler(
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	defaults schedule.BusinessHours,
) *ClientBookingHandler {
	return &ClientBookingHandler{
		availability: usecase.NewGetAvailability(repo, defaults),
		create:       usecase.NewCreateBooking(repo, dispatcher, defaults),
		cancel:       usecase.NewCancelBooking(repo, dispatcher),
		rate:         usecase.NewRateBooking(repo),
		list:         usecase.NewListBookings(repo),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ClientCreateBookingRequest struct {
	UnitID    uint `json:"unit_id" binding:"required"`
	StaffID   uint `json:"staff_id" binding:"required"`
	ServiceID uint `json:"service_id" binding:"required"`

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`

	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

type RateBookingRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// ======================================================
// AVAILABILITY
// ======================================================

// Availability devolve a grade do dia para um profissional e serviço:
// todos os horários possíveis, cada um marcado como livre ou não.
func (h *ClientBookingHandler) Availability(c *gin.Context) {
	unitID, ok := parseUintQuery(c, "unit_id")
	if !ok {
		return
	}

	staffID, ok := parseUintQuery(c, "staff_id")
	if !ok {
		return
	}

	serviceID, ok := parseUintQuery(c, "service_id")
	if !ok {
		return
	}

	date, ok := parseDateParam(c.Query("date"))
	if !ok {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		UnitID:    unitID,
		StaffID:   staffID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         date,
		"duration_min": out.DurationMin,
		"slots":        out.Slots,
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *ClientBookingHandler) Create(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	var req ClientCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	date, ok := parseDateParam(req.Date)
	if !ok {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	start, ok := parseTimeParam(req.Time)
	if !ok {
		httperr.BadRequest(c, "invalid_time", "Hora inválida.")
		return
	}

	created, err := h.create.Execute(c.Request.Context(), usecase.CreateBookingInput{
		UnitID:        req.UnitID,
		ClientID:      clientID,
		StaffID:       req.StaffID,
		ServiceID:     req.ServiceID,
		Date:          date,
		Start:         start,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		// agendado pelo próprio cliente já entra confirmado
		Status: domain.StatusConfirmed,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ======================================================
// LIST / CANCEL / RATE
// ======================================================

func (h *ClientBookingHandler) ListOwn(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	bookings, err := h.list.ForClient(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *ClientBookingHandler) Cancel(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	b, err := h.cancel.ExecuteForClient(c.Request.Context(), clientID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *ClientBookingHandler) Rate(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req RateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.rate.Execute(c.Request.Context(), clientID, id, req.Rating, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// HELPERS
// ======================================================

func parseUintQuery(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Parâmetro "+name+" inválido.")
		return 0, false
	}
	return uint(v), true
}
