package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trailhaven/trails-backend-go/internal/config"
	"github.com/trailhaven/trails-backend-go/internal/database"
	"github.com/trailhaven/trails-backend-go/internal/handler"
	"github.com/trailhaven/trails-backend-go/internal/middleware"
	"github.com/trailhaven/trails-backend-go/internal/repository"
	"github.com/trailhaven/trails-backend-go/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(120, time.Minute))

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 组装依赖
	db := database.GetDB()
	trailRepo := repository.NewTrailRepository(db)
	userRepo := repository.NewUserRepository(db)
	listRepo := repository.NewListRepository(db)

	trailService := service.NewTrailService(trailRepo)
	userService := service.NewUserService(userRepo, cfg.JWTSecret)
	listService := service.NewListService(listRepo, trailRepo)

	trailHandler := handler.NewTrailHandler(trailService)
	userHandler := handler.NewUserHandler(userService)
	listHandler := handler.NewListHandler(listService)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Trails Backend API is running",
		})
	})

	// API 路由组
	api := r.Group("/api/v1")
	{
		// 步道接口
		trails := api.Group("/trails")
		{
			trails.POST("/search", middleware.OptionalAuth(cfg.JWTSecret), trailHandler.Search)
			trails.GET("/:id", middleware.OptionalAuth(cfg.JWTSecret), trailHandler.GetTrailByID)
			trails.POST("", middleware.RequireAuth(cfg.JWTSecret), trailHandler.CreateTrail)
		}

		// 用户接口
		users := api.Group("/users")
		{
			users.POST("", userHandler.Register)
			users.POST("/login", userHandler.Login)

			me := users.Group("/me", middleware.RequireAuth(cfg.JWTSecret))
			{
				me.GET("", userHandler.Me)
				me.GET("/wishlist", listHandler.GetWishlist)
				me.PUT("/wishlist/:trailId", listHandler.AddWishlist)
				me.DELETE("/wishlist/:trailId", listHandler.RemoveWishlist)
				me.GET("/completed", listHandler.GetCompleted)
				me.PUT("/completed/:trailId", listHandler.AddCompleted)
				me.DELETE("/completed/:trailId", listHandler.RemoveCompleted)
			}
		}
	}

	return r
}
