package handler

import (
	"errors"
	"net/http"

	"github.com/ErlanBelekov/authapi/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	errInternalServer = "Internal server error"
	errInvalidBody    = "Invalid request body"
	errUserExists     = "User already exists"
	errUserNotFound   = "User not found"
	errInvalidCreds   = "Invalid email or password"
)

// writeValidation answers 400 with the field-specific message when err is a
// validation failure and reports whether it did.
func writeValidation(c *gin.Context, err error) bool {
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
	return true
}

// writeInternal answers 500. The underlying message is passed through in
// "detail" so clients see what failed.
func writeInternal(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer, "detail": err.Error()})
}
