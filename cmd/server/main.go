package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"storefront-service/internal/cache"
	"storefront-service/internal/config"
	"storefront-service/internal/controller"
	"storefront-service/internal/middleware"
	"storefront-service/internal/rabbit"
	"storefront-service/internal/repository"
	"storefront-service/internal/service"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := repository.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatal(err)
	}

	// Redis is optional; the catalog falls back to Mongo-only reads
	var catalogCache cache.CatalogCache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable, catalog cache disabled: %v", err)
	} else {
		catalogCache = cache.NewRedisCatalogCache(redisClient)
	}

	// Repositories
	productRepo := repository.NewProductRepo(db)
	pricingRepo := repository.NewPricingRepo(db)
	cartRepo := repository.NewCartRepo(db)
	couponRepo := repository.NewCouponRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	userRepo := repository.NewUserRepo(db)
	reviewRepo := repository.NewReviewRepo(db)

	// RabbitMQ is optional as well; orders still place without a broker
	var ch *amqp091.Channel
	conn, err := amqp091.Dial(cfg.RabbitURL)
	if err != nil {
		log.Printf("rabbitmq unavailable, order events disabled: %v", err)
	} else {
		ch, err = conn.Channel()
		if err != nil {
			log.Printf("rabbitmq channel failed, order events disabled: %v", err)
			ch = nil
		}
	}

	// Services
	productService := service.NewProductService(productRepo, pricingRepo, catalogCache)
	cartService := service.NewCartService(cartRepo, productService)
	couponService := service.NewCouponService(couponRepo)
	orderService := service.NewOrderService(orderRepo, cartService, couponService, rabbit.NewPublisher(ch), cfg.DeliveryFee)
	authService := service.NewAuthService(userRepo, time.Duration(cfg.SessionTTLh)*time.Hour)
	reviewService := service.NewReviewService(reviewRepo, productService)

	// Handlers
	productCtl := controller.NewProductController(productService)
	cartCtl := controller.NewCartController(cartService)
	couponCtl := controller.NewCouponController(couponService, cartService, cfg.DeliveryFee)
	orderCtl := controller.NewOrderController(orderService)
	userCtl := controller.NewUserController(authService)
	reviewCtl := controller.NewReviewController(reviewService)

	// Router
	r := gin.Default()
	api := r.Group("/api")

	// Public routes
	api.GET("/product/list", productCtl.List)
	api.GET("/product/:productId", productCtl.Get)
	api.GET("/review/list/:productId", reviewCtl.List)
	api.POST("/user/register", userCtl.Register)
	api.POST("/user/login", userCtl.Login)
	api.POST("/user/forgot-password", userCtl.ForgotPassword)
	api.POST("/user/reset-password", userCtl.ResetPassword)

	// Authenticated routes
	auth := api.Group("/")
	auth.Use(middleware.AuthMiddleware(authService))

	auth.POST("/cart/add", cartCtl.Add)
	auth.POST("/cart/update", cartCtl.Update)
	auth.POST("/cart/remove", cartCtl.Remove)
	auth.POST("/cart/get", cartCtl.Get)
	auth.POST("/coupon/validate", couponCtl.Validate)
	auth.POST("/order/place", orderCtl.Place)
	auth.POST("/order/userorders", orderCtl.UserOrders)
	auth.GET("/order/track/:orderId", orderCtl.Track)
	auth.POST("/user/logout", userCtl.Logout)
	auth.GET("/user/profile", userCtl.Profile)
	auth.POST("/user/profile", userCtl.UpdateProfile)
	auth.POST("/user/wishlist", userCtl.Wishlist)
	auth.POST("/user/compare", userCtl.Compare)
	auth.POST("/review/add", reviewCtl.Add)

	// Admin routes
	admin := auth.Group("/")
	admin.Use(middleware.AdminOnly())
	admin.POST("/product/add", productCtl.Add)
	admin.POST("/product/remove", productCtl.Remove)
	admin.POST("/product/stock", productCtl.UpdateStock)
	admin.POST("/pricing/set", productCtl.SetPricing)
	admin.POST("/coupon/create", couponCtl.Create)
	admin.GET("/coupon/list", couponCtl.List)
	admin.POST("/coupon/toggle", couponCtl.Toggle)
	admin.GET("/order/list", orderCtl.List)
	admin.POST("/order/status", orderCtl.UpdateStatus)
	admin.POST("/order/note", orderCtl.AddNote)
	admin.POST("/order/paid", orderCtl.MarkPaid)

	if ch != nil {
		rabbit.SetupConsumers(ch, orderService)
	}

	log.Printf("storefront service listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
