package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AppointmentOptions lists every treatment with the slots still free on ?date=.
func (h *Handler) AppointmentOptions(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	options, err := h.availability.Available(ctx, c.Query("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

func (h *Handler) Specialties(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	specialties, err := h.availability.Specialties(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, specialties)
}
