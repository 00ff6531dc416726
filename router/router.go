package router

import (
	"net/http"
	"time"

	"factcheck/api"
	"factcheck/config"
	_ "factcheck/docs"
	"factcheck/middleware"
	"factcheck/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps 路由依赖。DB 为 nil 时（内存模式）不注册账号相关接口
type Deps struct {
	DB      *gorm.DB
	Service *service.AnalysisService
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiGroup := r.Group("/api")

	// 认证相关路由
	if deps.DB != nil {
		authHandler := api.NewAuthHandler(deps.DB, cfg)
		window := time.Duration(cfg.RateLimit.LoginWindowSeconds) * time.Second
		auth := apiGroup.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(cfg.RateLimit.LoginAttempts, window), authHandler.Login)
			auth.GET("/profile", middleware.JWTAuth(), authHandler.GetProfile)
		}
	}

	analysisHandler := api.NewAnalysisHandler(deps.Service, cfg.UserScoped())

	// 热门声明对所有人公开
	apiGroup.GET("/analysis/trending", analysisHandler.Trending)

	// user 模式必须登录；global 模式可匿名，携带 token 时记录归属
	scoped := apiGroup.Group("")
	if cfg.UserScoped() {
		scoped.Use(middleware.JWTAuth())
	} else {
		scoped.Use(middleware.OptionalJWTAuth())
	}
	{
		submit := middleware.ClaimRateLimit(cfg.RateLimit.ClaimsPerMinute, cfg.RateLimit.ClaimsBurst)
		scoped.POST("/analysis", submit, analysisHandler.Create)
		scoped.POST("/check-claim", submit, analysisHandler.Create)
		scoped.GET("/analysis/history", analysisHandler.History)
		scoped.GET("/analysis/export/excel", analysisHandler.ExportExcel)
		scoped.GET("/analysis/:id", analysisHandler.Get)
		scoped.DELETE("/history/:id", analysisHandler.Delete)
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	return r
}
