package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/smile-care-api/internal/apperrors"
)

// IssueToken hands out an access token for ?email= if that user exists.
func (h *Handler) IssueToken(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	token, err := h.auth.IssueToken(ctx, c.Query("email"))
	if err != nil {
		if apperrors.Is(err, apperrors.CodeUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"accessToken": "unauthorized"})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}
