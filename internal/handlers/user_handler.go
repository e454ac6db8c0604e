package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/smile-care-api/internal/models"
)

// SaveUser records the profile of a user who signed in with the identity provider.
func (h *Handler) SaveUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		h.badRequest(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.users.Save(ctx, &user)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListUsers(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	users, err := h.users.List(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) CheckAdmin(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	isAdmin, err := h.users.IsAdmin(ctx, c.Param("email"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAdmin": isAdmin})
}

func (h *Handler) PromoteAdmin(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.users.PromoteAdmin(ctx, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
