// Package api exposes the dev backend over HTTP with gin.
package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires middlewares and routes. All routes live under /api.
func NewRouter(logger *zap.Logger, h *Handler, allowedOrigin string) *gin.Engine {
	r := gin.New()

	r.Use(requestIDMiddleware(), zapLoggerMiddleware(logger), gin.Recovery(), corsMiddleware(allowedOrigin))

	api := r.Group("/api")

	users := api.Group("/users")
	users.POST("/register", h.Register)
	users.POST("/login", h.Login)
	users.POST("/logout", h.Logout)

	authed := api.Group("", sessionMiddleware(h.users))
	authed.GET("/users/profile", h.GetProfile)
	authed.PUT("/users/profile", h.UpdateProfile)
	authed.GET("/dashboard/stats", h.DashboardStats)
	authed.POST("/ai/get-hint", h.GetHint)

	return r
}
