package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	groceryHandler "grocery-engine/internal/api/handlers/grocery"
	"grocery-engine/internal/api/handlers/health"
	"grocery-engine/internal/api/middleware"
	"grocery-engine/internal/core/cache"
	grocery "grocery-engine/internal/core/grocery"
	"grocery-engine/internal/core/mealplan"
	"grocery-engine/internal/infrastructure/config"
	"grocery-engine/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (1MB)，儲藏室與已購清單都是小請求
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, cacheManager *cache.Manager, redisCache *cache.Service) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流與去重
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("meal_source", cfg.MealSource.BaseURL),
		zap.String("default_budget_tier", cfg.Grocery.DefaultBudgetTier),
	)

	// 載入參考資料表，任何格式錯誤直接中止啟動
	tables, err := grocery.LoadTables(&cfg.Grocery)
	if err != nil {
		common.LogError("Failed to load reference tables", zap.Error(err))
		return nil, fmt.Errorf("failed to load reference tables: %w", err)
	}

	// 初始化膳食資料來源
	source := mealplan.NewHTTPSource(&cfg.MealSource)
	if source == nil {
		common.LogError("Failed to initialize meal source")
		return nil, fmt.Errorf("failed to initialize meal source")
	}

	// 初始化採購清單引擎
	defaultTier, err := grocery.ParseBudgetTier(cfg.Grocery.DefaultBudgetTier, grocery.TierMedium)
	if err != nil {
		return nil, fmt.Errorf("invalid default budget tier: %w", err)
	}
	groceryService := grocery.NewService(source, tables, cacheManager, redisCache, defaultTier)

	common.LogInfo("Grocery services initialized successfully",
		zap.Int("stores", len(tables.Stores)),
		zap.Int("substitution_rules", len(tables.Substitutions)),
		zap.String("environment", cfg.App.Env),
	)

	// 全局中間件：設置超時和服務
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		// 健康檢查會從上下文讀取配置與快取狀態
		c.Set("config", cfg)
		c.Set("cache_manager", cacheManager)

		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		// 計畫層級的採購操作
		planGroup := api.Group("/meal-plans/:id")
		{
			planGroup.GET("/grocery-list", groceryHandler.HandleGroceryList(groceryService))
			planGroup.GET("/grocery-summary", groceryHandler.HandleGrocerySummary(groceryService))
			planGroup.GET("/grocery-overview", groceryHandler.HandleGroceryOverview(groceryService))
			planGroup.GET("/cost-estimate", groceryHandler.HandleCostEstimate(groceryService))
			planGroup.POST("/missing-items", groceryHandler.HandleMissingItems(groceryService))
			planGroup.POST("/mark-purchased", groceryHandler.HandleMarkPurchased(groceryService))
			planGroup.GET("/store-suggestions", groceryHandler.HandleStoreSuggestions(groceryService))
			planGroup.GET("/budget-alternatives", groceryHandler.HandleBudgetAlternatives(groceryService))
		}

		api.GET("/stores", groceryHandler.HandleStores(groceryService))
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("cache_manager_initialized", cacheManager != nil),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
