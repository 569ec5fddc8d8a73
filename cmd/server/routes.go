package main

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"folio.backend/internal/interfaces/http/handlers"
	"folio.backend/internal/interfaces/http/middleware"
	"folio.backend/internal/usecases"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	sessionUsecase *usecases.SessionUsecase
	cookieName     string
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/signup", d.authHandler.Signup)
		auth.POST("/login", d.authHandler.Login)
		auth.POST("/logout", d.authHandler.Logout)
		auth.GET("/verify", d.authHandler.VerifyEmail)
		auth.GET("/session", d.authHandler.Session)
	}

	// API routes: unauthenticated requests get a JSON 401
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RequireSession(d.sessionUsecase, d.cookieName))
	{
		v1.GET("/me", d.authHandler.Me)
	}

	// Browser routes: unauthenticated requests land on the login page
	pages := r.Group("/dashboard")
	pages.Use(middleware.RequirePageSession(d.sessionUsecase, d.cookieName, "/auth/login"))
	{
		pages.GET("", func(c *gin.Context) {
			userID, _ := middleware.GetUserID(c)
			c.JSON(http.StatusOK, gin.H{"user_id": userID.String()})
		})
	}
}

func registerHealthRoute(r *gin.Engine, sqlDB *sql.DB) {
	r.GET("/health", func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if sqlDB != nil {
			if err := sqlDB.PingContext(c.Request.Context()); err != nil {
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{"status": status})
	})
}

func applyCORSMiddleware(r *gin.Engine) {
	allowedOrigins := map[string]bool{
		"http://localhost:3000": true,
		"http://localhost:8080": true,
	}

	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowedOrigins[origin] || strings.HasSuffix(origin, ".localhost:3000")) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}
