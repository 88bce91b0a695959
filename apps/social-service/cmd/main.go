package main

import (
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"gofilm-social/apps/social-service/dao"
	"gofilm-social/apps/social-service/handler"
	"gofilm-social/apps/social-service/model"
	"gofilm-social/apps/social-service/service"
	"gofilm-social/pkg/server"
	"gofilm-social/pkg/snowflake"
)

func main() {
	// 创建应用程序
	app := server.NewApplication("social-service")

	// 启用HTTP和gRPC服务器
	app.EnableHTTP()
	app.EnableGRPC()

	// 初始化事件ID生成器
	if err := snowflake.InitGlobalSnowflake(1); err != nil {
		panic("Failed to init snowflake: " + err.Error())
	}

	// 初始化PostgreSQL连接
	postgreSQL := app.GetPostgreSQL()

	// 自动迁移数据库表结构
	if err := postgreSQL.AutoMigrate(
		&model.User{},
		&model.MpaRating{},
		&model.Genre{},
		&model.Director{},
		&model.Film{},
		&model.FilmGenre{},
		&model.FilmDirector{},
		&model.Friendship{},
		&model.FilmLike{},
		&model.FilmLikeStats{},
		&model.Review{},
		&model.ReviewVote{},
		&model.FeedEvent{},
	); err != nil {
		panic("Failed to migrate database: " + err.Error())
	}

	// 启用ElasticSearch检索
	es := app.EnableElasticSearch()

	// 初始化DAO层
	catalogDAO := dao.NewCatalogDAO(postgreSQL)
	friendDAO := dao.NewFriendDAO(postgreSQL)
	likeDAO := dao.NewLikeDAO(postgreSQL)
	feedDAO := dao.NewFeedDAO(postgreSQL)
	reviewDAO := dao.NewReviewDAO(postgreSQL)
	searchDAO := dao.NewSearchDAO(es)

	// 初始化Service层
	svc := service.NewService(
		catalogDAO,
		friendDAO,
		likeDAO,
		feedDAO,
		reviewDAO,
		searchDAO,
		app.GetRedisClient(),
		app.GetKafkaProducer(),
		app.GetLogger(),
	)

	// 初始化Handler
	httpHandler := handler.NewHTTPHandler(svc, app.GetRedisClient(), app.GetLogger())

	// 注册HTTP路由
	app.RegisterHTTPRoutes(func(engine *gin.Engine) {
		httpHandler.RegisterRoutes(engine)
	})

	// 注册gRPC健康检查服务
	app.RegisterGRPCService(func(grpcSrv *grpc.Server) {
		healthpb.RegisterHealthServer(grpcSrv, health.NewServer())
	})

	// 运行应用程序
	if err := app.Run(); err != nil {
		panic(err)
	}
}
