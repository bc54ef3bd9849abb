// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fanrewards/fanmarket-backend/internal/config"
	"github.com/fanrewards/fanmarket-backend/internal/handlers"
	"github.com/fanrewards/fanmarket-backend/internal/middleware"
	"github.com/fanrewards/fanmarket-backend/internal/services"
	"github.com/fanrewards/fanmarket-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	paymentService := services.NewPaymentService(db, cfg)

	authService := services.NewAuthService(db, cfg)
	tokenService := services.NewTokenService(db)
	marketService := services.NewMarketService(db, paymentService)
	pointsService := services.NewPointsService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	tokenHandler := handlers.NewTokenHandler(tokenService, storageService)
	marketHandler := handlers.NewMarketHandler(marketService)
	pointsHandler := handlers.NewPointsHandler(pointsService)
	adminHandler := handlers.NewAdminHandler(marketService, paymentService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Token routes. Reads are public; writes carry the caller's identity.
		tokens := v1.Group("/tokens")
		{
			tokens.GET("/:token_id", tokenHandler.GetInfo)

			protected := tokens.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", tokenHandler.Mint)
				protected.POST("/metadata", middleware.UploadRateLimit(), tokenHandler.UploadMetadata)
				protected.POST("/:token_id/transfer", tokenHandler.Transfer)
				protected.POST("/:token_id/buy", marketHandler.Buy)
			}
		}

		// Market routes
		market := v1.Group("/market")
		{
			market.GET("/payment-token", marketHandler.GetDefaultPaymentToken)
		}

		// Fan points routes
		fans := v1.Group("/fans")
		{
			fans.GET("/:fan_id/points", pointsHandler.GetFanPoints)
		}
		v1.POST("/points/award", middleware.AuthRequired(), pointsHandler.AwardFanPoints)

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired())
		admin.Use(middleware.AdminRequired())
		{
			admin.PUT("/market/payment-token", adminHandler.SetDefaultPaymentToken)
			admin.POST("/payment-tokens", adminHandler.RegisterPaymentToken)
			admin.GET("/sales", adminHandler.ListSales)
			admin.POST("/wallets/deposit", adminHandler.Deposit)
		}
	}

	return r
}
