package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mouzitoto/restohub-2-sub000/internal/repository"
)

type StatusHandler struct {
	repo *repository.StatusRepo
}

func NewStatusHandler(repo *repository.StatusRepo) *StatusHandler {
	return &StatusHandler{repo: repo}
}

// GET /v1/statuses
func (h *StatusHandler) List(c *gin.Context) {
	items, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// DELETE /v1/statuses/:code — soft delete; 409 status_in_use while any
// booking or ledger row references the code.
func (h *StatusHandler) Delete(c *gin.Context) {
	if err := h.repo.SoftDelete(c.Request.Context(), c.Param("code")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
