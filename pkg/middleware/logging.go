package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	kratoslog "github.com/go-kratos/kratos/v2/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// LoggingMiddleware 日志中间件
type LoggingMiddleware struct {
	logger kratoslog.Logger
}

// NewLoggingMiddleware 创建日志中间件
func NewLoggingMiddleware(logger kratoslog.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger,
	}
}

// GinLogging Gin日志中间件
func (lm *LoggingMiddleware) GinLogging() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		// 使用Kratos日志器记录请求
		lm.logger.Log(kratoslog.LevelInfo,
			"msg", "HTTP request",
			"method", param.Method,
			"path", param.Path,
			"status", param.StatusCode,
			"latency", param.Latency.String(),
			"client_ip", param.ClientIP,
			"error", param.ErrorMessage,
		)
		return ""
	})
}

// GRPCLogging gRPC日志拦截器
func (lm *LoggingMiddleware) GRPCLogging() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()

		lm.logger.Log(kratoslog.LevelDebug,
			"msg", "gRPC request started",
			"method", info.FullMethod,
		)

		resp, err := handler(ctx, req)

		duration := time.Since(start)
		st := status.Convert(err)

		if err != nil {
			lm.logger.Log(kratoslog.LevelError,
				"msg", "gRPC request completed with error",
				"method", info.FullMethod,
				"duration", duration.String(),
				"code", st.Code().String(),
				"error", err.Error(),
			)
		} else {
			lm.logger.Log(kratoslog.LevelInfo,
				"msg", "gRPC request completed",
				"method", info.FullMethod,
				"duration", duration.String(),
				"code", st.Code().String(),
			)
		}

		return resp, err
	}
}

// GinRecovery Gin恢复中间件
func (lm *LoggingMiddleware) GinRecovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		lm.logger.Log(kratoslog.LevelError,
			"msg", "HTTP request panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"panic", recovered,
		)
		c.AbortWithStatus(500)
	})
}

// GRPCRecovery gRPC恢复拦截器
func (lm *LoggingMiddleware) GRPCRecovery() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				lm.logger.Log(kratoslog.LevelError,
					"msg", "gRPC request panic recovered",
					"method", info.FullMethod,
					"panic", r,
				)
				err = status.Errorf(status.Code(err), "Internal server error")
			}
		}()

		return handler(ctx, req)
	}
}
