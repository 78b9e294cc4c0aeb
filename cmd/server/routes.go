package main

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"quickbite.backend/internal/interfaces/http/handlers"
	"quickbite.backend/internal/interfaces/http/middleware"
	"quickbite.backend/pkg/jwt"
)

type routeDeps struct {
	authHandler      *handlers.AuthHandler
	merchantHandler  *handlers.MerchantHandler
	riderHandler     *handlers.RiderHandler
	userHandler      *handlers.UserHandler
	settingsHandler  *handlers.SettingsHandler
	statsHandler     *handlers.StatsHandler
	portalHandler    *handlers.PortalHandler
	promotionHandler *handlers.PromotionHandler
	jwtService       *jwt.JWTService
	uploadDir        string
}

func newRouter(d routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)

	// stored upload paths are relative to the upload root
	r.Static("/uploads", filepath.Join(d.uploadDir, "uploads"))

	registerAPIRoutes(r, d)
	return r
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		// OTP login (public)
		auth := api.Group("/auth")
		{
			auth.POST("/send-otp", d.authHandler.SendOTP)
			auth.POST("/verify-otp", d.authHandler.VerifyOTP)
		}

		// Admin console
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(d.jwtService), middleware.RequireAdmin())
		{
			admin.POST("/merchants", d.merchantHandler.Create)
			admin.GET("/merchants", d.merchantHandler.List)
			admin.GET("/merchants/:id", d.merchantHandler.Get)
			admin.PUT("/merchants/:id", d.merchantHandler.Update)
			admin.PATCH("/merchants/:id/status", d.merchantHandler.SetStatus)
			admin.PATCH("/merchants/:id/approval", d.merchantHandler.SetApproval)

			admin.POST("/riders", d.riderHandler.Create)
			admin.GET("/riders", d.riderHandler.List)
			admin.GET("/riders/:id", d.riderHandler.Get)
			admin.PATCH("/riders/:id/profile", d.riderHandler.UpdateProfile)
			admin.PATCH("/riders/:id/bank", d.riderHandler.UpdateBank)
			admin.PATCH("/riders/:id/online", d.riderHandler.SetOnline)
			admin.PATCH("/riders/:id/kyc", d.riderHandler.SetKYC)
			admin.PATCH("/riders/:id/approval", d.riderHandler.SetApproval)
			admin.PATCH("/riders/:id/status", d.riderHandler.SetStatus)
			admin.DELETE("/riders/:id", d.riderHandler.Delete)

			admin.GET("/users", d.userHandler.List)
			admin.GET("/users/:id", d.userHandler.Get)
			admin.PATCH("/users/:id/status", d.userHandler.SetStatus)
			admin.PATCH("/users/:id/kyc", d.userHandler.SetKYC)

			admin.POST("/promotions", d.promotionHandler.Create)
			admin.GET("/promotions", d.promotionHandler.List)
			admin.GET("/promotions/:id", d.promotionHandler.Get)
			admin.PATCH("/promotions/:id", d.promotionHandler.Update)
			admin.DELETE("/promotions/:id", d.promotionHandler.Delete)

			admin.GET("/settings", d.settingsHandler.Get)
			admin.PATCH("/settings", d.settingsHandler.Patch)
			admin.GET("/stats/dashboard", d.statsHandler.Dashboard)
		}

		// Merchant portal
		portal := api.Group("/merchant")
		portal.Use(middleware.AuthMiddleware(d.jwtService), middleware.RequireMerchant())
		{
			portal.GET("/profile", d.portalHandler.Profile)
			portal.PATCH("/open", d.portalHandler.SetOpen)
			portal.POST("/profile-image", d.portalHandler.UploadProfileImage)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "quickbite-backend",
			"version": "0.1.0",
		})
	})
}
