// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brika-go/internal/config"
	"brika-go/internal/handler"
	"brika-go/internal/middleware"
	"brika-go/internal/model"
	"brika-go/internal/pipeline"
	"brika-go/internal/repository"
	"brika-go/internal/service"
	"brika-go/pkg/database"
	"brika-go/pkg/kafka"
	"brika-go/pkg/log"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库和 Redis
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.AutoMigrate(
		&model.User{},
		&model.Place{},
		&model.Meal{},
		&model.MealImage{},
		&model.MealReview{},
		&model.MealReviewImage{},
		&model.Swipe{},
		&model.MealBookmark{},
		&model.PlaceBookmark{},
		&model.MealFeatures{},
		&model.UserPreferences{},
	)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	kafka.InitProducer(cfg.Kafka)

	// 4. 初始化 Repository
	userRepo := repository.NewUserRepository(database.DB)
	placeRepo := repository.NewPlaceRepository(database.DB)
	mealRepo := repository.NewMealRepository(database.DB)
	reviewRepo := repository.NewReviewRepository(database.DB)
	swipeRepo := repository.NewSwipeRepository(database.DB)
	bookmarkRepo := repository.NewBookmarkRepository(database.DB)
	featureRepo := repository.NewFeatureRepository(
		database.DB,
		database.RDB,
		time.Duration(cfg.Recommend.FeatureCacheTTLSeconds)*time.Second,
	)

	// 5. 初始化 Service (依赖注入)
	userService := service.NewUserService(userRepo)
	placeService := service.NewPlaceService(placeRepo)
	mealService := service.NewMealService(mealRepo, placeRepo, featureRepo)
	reviewService := service.NewReviewService(reviewRepo, mealRepo)
	swipeService := service.NewSwipeService(swipeRepo, mealRepo)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, mealRepo, placeRepo)
	featureService := service.NewFeatureService(mealRepo, reviewRepo, placeRepo, featureRepo)
	preferenceService := service.NewPreferenceService(featureRepo, featureService)
	recommendService := service.NewRecommendService(
		mealRepo,
		featureRepo,
		cfg.Recommend,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)

	// 6. 初始化推荐任务处理管道 (Processor)
	processor := pipeline.NewProcessor(featureService, preferenceService)

	// 7. 启动后台 Kafka 消费者
	go kafka.StartConsumer(cfg.Kafka, processor)

	// 8. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	// 添加我们自定义的日志中间件和 Gin 的 Recovery 中间件
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 9. 注册路由
	userHandler := handler.NewUserHandler(userService, recommendService)
	placeHandler := handler.NewPlaceHandler(placeService)
	mealHandler := handler.NewMealHandler(mealService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	swipeHandler := handler.NewSwipeHandler(swipeService)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkService)

	apiV1 := r.Group("/api/v1")
	{
		users := apiV1.Group("/users")
		{
			// 无需认证的路由 (公开访问)
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)

			// 需要识别用户身份的路由
			me := users.Group("/me")
			me.Use(middleware.Identity(userService))
			{
				me.GET("", userHandler.GetProfile)
				me.GET("/feed", userHandler.GetFeed)

				// 收藏路由
				me.POST("/bookmarks/meals/:id", bookmarkHandler.CreateMealBookmark)
				me.GET("/bookmarks/meals", bookmarkHandler.ListMealBookmarks)
				me.DELETE("/bookmarks/meals/:id", bookmarkHandler.DeleteMealBookmark)
				me.POST("/bookmarks/places/:id", bookmarkHandler.CreatePlaceBookmark)
				me.GET("/bookmarks/places", bookmarkHandler.ListPlaceBookmarks)
				me.DELETE("/bookmarks/places/:id", bookmarkHandler.DeletePlaceBookmark)
			}
		}

		// Place 路由组
		places := apiV1.Group("/places")
		{
			places.GET("/:id", placeHandler.GetPlace)

			authed := places.Group("")
			authed.Use(middleware.Identity(userService))
			{
				authed.POST("", placeHandler.CreatePlace)
				authed.PUT("/:id", placeHandler.UpdatePlace)
			}
		}

		// Meal 路由组
		meals := apiV1.Group("/meals")
		{
			meals.GET("/:id", mealHandler.GetMeal)

			authed := meals.Group("")
			authed.Use(middleware.Identity(userService))
			{
				authed.POST("", mealHandler.CreateMeal)
				authed.PUT("/:id", mealHandler.UpdateMeal)
				authed.DELETE("/:id", mealHandler.DeleteMeal)
				authed.POST("/:id/reviews", reviewHandler.CreateReview)
			}
		}

		// Review 路由组，需要识别用户身份
		reviews := apiV1.Group("/reviews")
		reviews.Use(middleware.Identity(userService))
		{
			reviews.PUT("/:id", reviewHandler.UpdateReview)
			reviews.DELETE("/:id", reviewHandler.DeleteReview)
		}

		// Swipe 路由组，需要识别用户身份
		swipes := apiV1.Group("/swipes")
		swipes.Use(middleware.Identity(userService))
		{
			swipes.POST("", swipeHandler.CreateSwipe)
		}
	}

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 关闭 HTTP 服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
