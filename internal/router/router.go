package router

import (
	"fmt"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	adminhandlers "github.com/storefront-next/internal/http/handlers/admin"
	publichandlers "github.com/storefront-next/internal/http/handlers/public"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisClient := cache.Client()
	placeOrderRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:place_order", cache.Prefix()),
		WindowSeconds: cfg.Security.OrderRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.OrderRateLimit.MaxRequests,
		Message:       "too many order attempts",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 商品目录（公开只读）
		catalogGroup := apiV1.Group("/catalog")
		{
			catalogGroup.GET("/products", publicHandler.ListProducts)
			catalogGroup.GET("/products/:product_id", publicHandler.GetProduct)
		}

		// 购物车（会话作用域）
		cart := apiV1.Group("/cart")
		{
			cart.GET("", publicHandler.GetCart)
			cart.POST("/items", publicHandler.AddCartItem)
			cart.PUT("/items/:product_id", publicHandler.UpdateCartItem)
			cart.DELETE("/items/:product_id", publicHandler.DeleteCartItem)
			cart.DELETE("", publicHandler.ClearCart)
		}

		// 收藏夹（会话作用域）
		wishlist := apiV1.Group("/wishlist")
		{
			wishlist.GET("", publicHandler.GetWishlist)
			wishlist.POST("/items", publicHandler.AddWishlistItem)
			wishlist.DELETE("/items/:product_id", publicHandler.DeleteWishlistItem)
			wishlist.POST("/items/:product_id/move-to-cart", publicHandler.MoveWishlistItemToCart)
		}

		// 结算流程
		checkout := apiV1.Group("/checkout")
		{
			checkout.GET("", publicHandler.GetCheckoutState)
			checkout.POST("/shipping", publicHandler.SubmitShipping)
			checkout.POST("/payment", publicHandler.SelectPaymentMethod)
			checkout.POST("/place-order",
				RateLimitMiddleware(redisClient, placeOrderRule, KeyBySessionHeader(constants.HeaderSessionID)),
				publicHandler.PlaceOrder)
			checkout.POST("/reset", publicHandler.ResetCheckout)
		}

		// 客户订单
		orders := apiV1.Group("/orders")
		{
			orders.GET("", publicHandler.ListMyOrders)
			orders.GET("/:order_id", publicHandler.GetMyOrder)
		}

		// 管理端接口
		admin := apiV1.Group("/admin")
		{
			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/:order_id", adminHandler.GetOrder)
			admin.PUT("/orders/:order_id/status", adminHandler.UpdateOrderStatus)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
