package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/navalhaclub/agenda-api/internal/audit"
	domain "github.com/navalhaclub/agenda-api/internal/domain/booking"
	"github.com/navalhaclub/agenda-api/internal/domain/schedule"
	"github.com/navalhaclub/agenda-api/internal/httperr"
	"github.com/navalhaclub/agenda-api/internal/middleware"
	"github.com/navalhaclub/agenda-api/internal/models"
	usecase "github.com/navalhaclub/agenda-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// BookingHandler é a visão do balcão: funcionário ou gerente operando
// a agenda da própria unidade.
type BookingHandler struct {
	repo  domain.Repository
	audit *audit.Dispatcher

	create   *usecase.CreateBooking
	update   *usecase.UpdateBooking
	confirm  *usecase.ConfirmBooking
	cancel   *usecase.CancelBooking
	complete *usecase.CompleteBooking
	list     *usecase.ListBookings
}

func NewBookingHandler(
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	defaults schedule.BusinessHours,
) *BookingHandler {
	return &BookingHandler{
		repo:  repo,
		audit: dispatcher,

		create:   usecase.NewCreateBooking(repo, dispatcher, defaults),
		update:   usecase.NewUpdateBooking(repo, dispatcher, defaults),
		confirm:  usecase.NewConfirmBooking(repo, dispatcher),
		cancel:   usecase.NewCancelBooking(repo, dispatcher),
		complete: usecase.NewCompleteBooking(repo, dispatcher),
		list:     usecase.NewListBookings(repo),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ClientID  uint `json:"client_id" binding:"required"`
	StaffID   uint `json:"staff_id" binding:"required"`
	ServiceID uint `json:"service_id" binding:"required"`

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`

	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

type UpdateBookingRequest struct {
	StaffID   *uint `json:"staff_id,omitempty"`
	ServiceID *uint `json:"service_id,omitempty"`

	Date *string `json:"date,omitempty"`
	Time *string `json:"time,omitempty"`

	PaymentMethod *string `json:"payment_method,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	var req CreateBookingRequest
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
		UnitID:        unitID,
		ClientID:      req.ClientID,
		StaffID:       req.StaffID,
		ServiceID:     req.ServiceID,
		Date:          date,
		Start:         start,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		// balcão agenda como pendente; o cliente confirma depois
		Status: domain.StatusPending,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	from, to, ok := parseDateRange(c.Query("from"), c.Query("to"))
	if !ok {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	bookings, err := h.list.ForUnit(c.Request.Context(), unitID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) Get(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	b, err := h.repo.GetBookingForUnit(c.Request.Context(), id, unitID)
	if err != nil {
		httperr.NotFound(c, "booking_not_found", "Agendamento não encontrado.")
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// UPDATE
// ======================================================

func (h *BookingHandler) Update(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	in := usecase.UpdateBookingInput{
		UnitID:        unitID,
		BookingID:     id,
		ActorID:       actorID,
		StaffID:       req.StaffID,
		ServiceID:     req.ServiceID,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}

	if req.Date != nil {
		date, ok := parseDateParam(*req.Date)
		if !ok {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		in.Date = &date
	}

	if req.Time != nil {
		start, ok := parseTimeParam(*req.Time)
		if !ok {
			httperr.BadRequest(c, "invalid_time", "Hora inválida.")
			return
		}
		in.Start = &start
	}

	updated, err := h.update.Execute(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ======================================================
// TRANSIÇÕES DE ESTADO
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, h.confirm.Execute)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cancel.Execute)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, h.complete.Execute)
}

// Confirm/Cancel/Complete compartilham a mesma forma: resolve ids,
// executa a transição, devolve o agendamento atualizado.
func (h *BookingHandler) transition(
	c *gin.Context,
	exec func(ctx context.Context, unitID, actorID, bookingID uint) (*models.Booking, error),
) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	b, err := exec(c.Request.Context(), unitID, actorID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// DELETE
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	b, err := h.repo.GetBookingForUnit(c.Request.Context(), id, unitID)
	if err != nil {
		httperr.NotFound(c, "booking_not_found", "Agendamento não encontrado.")
		return
	}

	if err := h.repo.DeleteBooking(c.Request.Context(), b.ID); err != nil {
		httperr.Internal(c, "failed_to_delete_booking", "Erro ao remover agendamento.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UnitID:   unitID,
		UserID:   &actorID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "booking_deleted"})
}

// ======================================================
// HELPERS
// ======================================================

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}
