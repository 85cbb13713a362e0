package httptransport

import (
	"log/slog"

	"github.com/ErlanBelekov/authapi/internal/transport/http/handler"
	"github.com/ErlanBelekov/authapi/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, verifier middleware.TokenVerifier) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	r.GET("/", handler.Index)

	auth := r.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	r.GET("/user/:id", middleware.Auth(verifier), authHandler.GetUser)

	return r
}
