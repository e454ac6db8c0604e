package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/smile-care-api/internal/apperrors"
	"github.com/harentsoaR/smile-care-api/internal/middleware"
	"github.com/harentsoaR/smile-care-api/internal/models"
)

func (h *Handler) CreateBooking(c *gin.Context) {
	var booking models.Booking
	if err := c.ShouldBindJSON(&booking); err != nil {
		h.badRequest(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := h.bookings.Create(ctx, &booking)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeConflict) {
			c.JSON(http.StatusConflict, gin.H{
				"acknowledge": false,
				"message":     apperrors.As(err).Message,
			})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"acknowledge": true,
		"insertedId":  id.Hex(),
		"booking":     booking,
	})
}

// ListBookings returns the bookings of ?email=, which must be the caller's own.
func (h *Handler) ListBookings(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	bookings, err := h.bookings.ListForCaller(ctx, c.GetString(middleware.EmailKey), c.Query("email"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *Handler) GetBooking(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	booking, err := h.bookings.Get(ctx, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
