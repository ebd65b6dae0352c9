package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalhaclub/agenda-api/internal/middleware"
	"github.com/navalhaclub/agenda-api/internal/models"
)

// ClientHandler é a busca de clientes do balcão: encontrar o cliente
// antes de criar o agendamento para ele.
type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

func (h *ClientHandler) List(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("unit_id = ? AND role = ?", unitID, models.RoleClient)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?",
			like, like, like,
		)
	}

	var clients []models.User
	if err := q.
		Order("name ASC").
		Limit(100).
		Find(&clients).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_clients"})
		return
	}

	out := make([]gin.H, 0, len(clients))
	for _, cl := range clients {
		out = append(out, gin.H{
			"id":    cl.ID,
			"name":  cl.Name,
			"email": cl.Email,
			"phone": cl.Phone,
		})
	}

	c.JSON(http.StatusOK, out)
}

func (h *ClientHandler) Get(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)
	id := c.Param("id")

	var client models.User
	if err := h.db.
		Where("id = ? AND unit_id = ? AND role = ?", id, unitID, models.RoleClient).
		First(&client).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "client_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    client.ID,
		"name":  client.Name,
		"email": client.Email,
		"phone": client.Phone,
	})
}
