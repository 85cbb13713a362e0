package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/ErlanBelekov/authapi/internal/domain"
	"github.com/gin-gonic/gin"
)

// userResponse is the public projection of a user; it has no password field.
type userResponse struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// GET /user/:id (behind middleware.Auth)
func (h *AuthHandler) GetUser(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	user, err := h.authUsecase.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
			return
		}
		h.logger.ErrorContext(ctx, "get user", "user_id", id, "error", err)
		writeInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// GET /
func Index(c *gin.Context) {
	c.String(http.StatusOK, "Hello World")
}
