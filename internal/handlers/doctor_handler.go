package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/smile-care-api/internal/models"
)

func (h *Handler) CreateDoctor(c *gin.Context) {
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		h.badRequest(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := h.doctors.Create(ctx, &doctor)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledge": true, "insertedId": id.Hex()})
}

func (h *Handler) ListDoctors(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	doctors, err := h.doctors.List(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.doctors.Delete(ctx, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledge": true, "deletedCount": 1})
}
