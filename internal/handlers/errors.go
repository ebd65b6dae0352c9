package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/navalhaclub/agenda-api/internal/httperr"
)

// Tabela código → (status HTTP, mensagem). Tudo que não está aqui vira
// 500 genérico; detalhes ficam só no log.
var businessErrors = map[string]struct {
	Status  int
	Message string
}{
	"unit_not_found":         {http.StatusNotFound, "Unidade não encontrada."},
	"service_not_found":      {http.StatusNotFound, "Serviço não encontrado."},
	"staff_not_found":        {http.StatusNotFound, "Profissional não encontrado."},
	"booking_not_found":      {http.StatusNotFound, "Agendamento não encontrado."},
	"outside_business_hours": {http.StatusBadRequest, "Fora do horário de atendimento."},
	"time_conflict":          {http.StatusConflict, "Conflito de horário."},
	"invalid_state":          {http.StatusBadRequest, "Agendamento não permite essa transição."},
	"not_completed":          {http.StatusBadRequest, "Agendamento ainda não foi concluído."},
	"already_rated":          {http.StatusBadRequest, "Agendamento já foi avaliado."},
	"invalid_rating":         {http.StatusBadRequest, "Nota deve ser de 1 a 5."},
}

func respondError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		if entry, found := businessErrors[be.Code]; found {
			httperr.Write(c, entry.Status, be.Code, entry.Message)
			return
		}
	}

	zap.L().Error("unhandled error", zap.Error(err))
	httperr.Internal(c, "internal_error", "Erro interno.")
}
