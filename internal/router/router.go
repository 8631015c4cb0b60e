package router

import (
	"net/http"

	"github.com/vraj1599/jasubhaichappal/internal/dto"
	"github.com/vraj1599/jasubhaichappal/internal/handlers"
	"github.com/vraj1599/jasubhaichappal/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Deps struct {
	Auth     handlers.AuthService
	Catalog  handlers.CatalogService
	Cart     handlers.CartService
	Wishlist handlers.WishlistService
	Reviews  handlers.ReviewService
	Orders   handlers.OrderService
	Coupons  handlers.CouponService

	Tokens      middleware.TokenVerifier
	CORSOrigins []string
	// Health проверяет доступность хранилища для /health.
	Health func(c *gin.Context) error
}

func Router(d Deps, log *zap.Logger) *gin.Engine {
	dto.UseJSONFieldNames()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.AccessLog(log))

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", "X-Bootstrap-Token"},
		ExposeHeaders: []string{"Content-Length"},
	}
	if len(origins) == 1 && origins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		if d.Health != nil {
			if err := d.Health(c); err != nil {
				log.Error("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authH := handlers.NewAuthHandler(d.Auth, log)
	catalogH := handlers.NewCatalogHandler(d.Catalog, log)
	cartH := handlers.NewCartHandler(d.Cart, d.Wishlist, log)
	reviewH := handlers.NewReviewHandler(d.Reviews, log)
	orderH := handlers.NewOrderHandler(d.Orders, log)
	couponH := handlers.NewCouponHandler(d.Coupons, log)

	authRequired := middleware.AuthRequired(d.Tokens, log)
	admin := []gin.HandlerFunc{authRequired, middleware.AdminRequired()}

	api := r.Group("/api")
	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.MessageResponse{Message: "Jasubhai Chappal API"})
	})

	{
		g := api.Group("/auth")
		g.POST("/register", authH.Register)
		g.POST("/login", authH.Login)
		g.GET("/me", authH.Me)
		g.POST("/create-admin", middleware.OptionalAuth(d.Tokens), authH.CreateAdmin)
	}
	api.POST("/admin/login", authH.AdminLogin)
	api.POST("/phone-login/request-otp", authH.RequestOTP)
	api.POST("/phone-login", authH.PhoneLogin)

	api.GET("/categories", catalogH.ListCategories)
	api.GET("/categories/slug/:slug", catalogH.GetCategoryBySlug)
	api.POST("/categories", append(admin, catalogH.CreateCategory)...)

	{
		g := api.Group("/products")
		g.GET("", catalogH.ListProducts)
		g.GET("/slug/:slug", catalogH.GetProductBySlug)
		g.GET("/:id", catalogH.GetProduct)
		g.POST("", append(admin, catalogH.CreateProduct)...)
		g.PUT("/:id", append(admin, catalogH.UpdateProduct)...)
		g.DELETE("/:id", append(admin, catalogH.DeleteProduct)...)
	}

	{
		g := api.Group("/cart/:userId")
		g.GET("", cartH.GetCart)
		g.POST("", cartH.ReplaceCart)
		g.POST("/add", cartH.AddToCart)
		g.DELETE("/item/:productId", cartH.RemoveFromCart)
		g.DELETE("", cartH.ClearCart)
	}
	{
		g := api.Group("/wishlist/:userId")
		g.GET("", cartH.GetWishlist)
		g.POST("/add", cartH.AddToWishlist)
		g.DELETE("/item/:productId", cartH.RemoveFromWishlist)
	}

	api.GET("/reviews/product/:productId", reviewH.ListReviews)
	api.POST("/reviews", middleware.OptionalAuth(d.Tokens), reviewH.CreateReview)

	{
		g := api.Group("/orders")
		g.POST("/create", orderH.CreateOrder)
		g.POST("/verify-payment", orderH.VerifyPayment)
		g.GET("/user/:userId", orderH.ListUserOrders)
		g.GET("/:id", orderH.GetOrder)
		g.GET("", append(admin, orderH.ListOrders)...)
		g.PUT("/:id/status", append(admin, orderH.UpdateStatus)...)
	}
	api.POST("/payment/create-order", orderH.CreatePayment)
	api.POST("/payment/verify", orderH.VerifyPayment)
	api.GET("/config/razorpay", orderH.RazorpayConfig)

	api.POST("/coupons/validate", couponH.Validate)
	api.POST("/coupons", append(admin, couponH.Create)...)

	return r
}
