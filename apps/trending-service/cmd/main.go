package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"gofilm-social/apps/trending-service/handler"
	"gofilm-social/apps/trending-service/model"
	"gofilm-social/apps/trending-service/service"
	"gofilm-social/pkg/database"
	"gofilm-social/pkg/kafka"
	"gofilm-social/pkg/logger"
	"gofilm-social/pkg/redis"
)

func main() {
	// 初始化配置
	cfg, err := initConfig()
	if err != nil {
		stdlog.Fatalf("Failed to initialize config: %v", err)
	}

	// 初始化日志
	log := initLogger(cfg)
	log.Info(context.Background(), "Starting trending service")

	// 初始化Redis连接
	redisClient := redis.NewRedisClient(cfg.GetString("trending.redis.addr"))

	// 初始化MongoDB连接
	mongoDB, err := database.NewMongoDB(
		cfg.GetString("trending.mongodb.uri"),
		cfg.GetString("trending.mongodb.database"),
	)
	if err != nil {
		log.Fatal(context.Background(), "Failed to initialize MongoDB", logger.F("error", err.Error()))
	}

	// 初始化服务层
	svc := service.NewService(redisClient, mongoDB, log)

	// 初始化Kafka消费者
	consumer, err := kafka.InitConsumer(kafka.KafkaConfig{
		Brokers: cfg.GetStringSlice("trending.kafka.brokers"),
		GroupID: model.ConsumerGroupID,
		Topics:  []string{model.TopicSocialEvents},
	}, svc)
	if err != nil {
		log.Fatal(context.Background(), "Failed to initialize Kafka consumer", logger.F("error", err.Error()))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 启动事件消费
	go func() {
		if err := consumer.StartConsuming(ctx); err != nil {
			log.Error(context.Background(), "Kafka consumer stopped", logger.F("error", err.Error()))
		}
	}()

	// 启动周期性榜单归档
	go svc.StartSnapshotLoop(ctx, cfg.GetDuration("trending.snapshot.interval"))

	// 初始化HTTP处理器与路由
	httpHandler := handler.NewHTTPHandler(svc, log)

	gin.SetMode(cfg.GetString("trending.server.mode"))
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	httpHandler.RegisterRoutes(router)

	// 启动HTTP服务器
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.GetInt("trending.server.port")),
		Handler: router,
	}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(context.Background(), "Failed to start HTTP server", logger.F("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "Trending service started",
		logger.F("http_port", cfg.GetInt("trending.server.port")))

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(context.Background(), "Shutting down trending service...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(context.Background(), "HTTP server forced to shutdown", logger.F("error", err.Error()))
	}
	if err := consumer.Close(); err != nil {
		log.Error(context.Background(), "Failed to close Kafka consumer", logger.F("error", err.Error()))
	}
	if err := mongoDB.Close(); err != nil {
		log.Error(context.Background(), "Failed to close MongoDB", logger.F("error", err.Error()))
	}
	if err := redisClient.Close(); err != nil {
		log.Error(context.Background(), "Failed to close Redis", logger.F("error", err.Error()))
	}

	log.Info(context.Background(), "Trending service stopped")
}

// initConfig 初始化配置
func initConfig() (*viper.Viper, error) {
	cfg := viper.New()

	cfg.SetConfigName("config")
	cfg.SetConfigType("yaml")
	cfg.AddConfigPath(".")
	cfg.AddConfigPath("..")
	cfg.AddConfigPath("../..")
	cfg.AddConfigPath("../../..")

	cfg.AutomaticEnv()

	// 默认值
	cfg.SetDefault("trending.server.port", 21002)
	cfg.SetDefault("trending.server.mode", "release")
	cfg.SetDefault("trending.redis.addr", "localhost:6379")
	cfg.SetDefault("trending.mongodb.uri", "mongodb://localhost:27017")
	cfg.SetDefault("trending.mongodb.database", "gofilm_trending")
	cfg.SetDefault("trending.kafka.brokers", []string{"localhost:9092"})
	cfg.SetDefault("trending.snapshot.interval", "10m")
	cfg.SetDefault("logger.level", "info")

	if err := cfg.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			stdlog.Println("Config file not found, using default values")
		} else {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}
	}

	return cfg, nil
}

// initLogger 初始化日志
func initLogger(cfg *viper.Viper) logger.Logger {
	logLevel := cfg.GetString("logger.level")
	if logLevel == "" {
		logLevel = "info"
	}

	log, err := logger.NewLogger(logLevel)
	if err != nil {
		return logger.GetLogger()
	}
	return log
}
