package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/authapi/internal/domain"
	"github.com/ErlanBelekov/authapi/internal/usecase"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, in usecase.LoginInput) (string, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	ctx := c.Request.Context()
	user, err := h.authUsecase.Register(ctx, usecase.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		if writeValidation(c, err) {
			return
		}
		if errors.Is(err, domain.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errUserExists})
			return
		}
		h.logger.ErrorContext(ctx, "register", "error", err)
		writeInternal(c, err)
		return
	}

	h.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}

// POST /auth/login
// Unknown email and wrong password share one response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	ctx := c.Request.Context()
	signed, err := h.authUsecase.Login(ctx, usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if writeValidation(c, err) {
			return
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidCreds})
			return
		}
		h.logger.ErrorContext(ctx, "login", "error", err)
		writeInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Message: "User logged in successfully",
		Token:   signed,
	})
}
