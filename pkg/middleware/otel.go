package middleware

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	tracecontext "gofilm-social/pkg/context"
	"gofilm-social/pkg/logger"
)

// OTelMiddleware OpenTelemetry中间件配置
type OTelMiddleware struct {
	serviceName string
	logger      logger.Logger
}

// NewOTelMiddleware 创建OpenTelemetry中间件
func NewOTelMiddleware(serviceName string, logger logger.Logger) *OTelMiddleware {
	return &OTelMiddleware{
		serviceName: serviceName,
		logger:      logger,
	}
}

// GinMiddleware 返回Gin的OpenTelemetry中间件
func (m *OTelMiddleware) GinMiddleware() gin.HandlerFunc {
	// 使用官方的otelgin中间件作为基础
	baseMiddleware := otelgin.Middleware(m.serviceName)

	return gin.HandlerFunc(func(c *gin.Context) {
		// 先执行基础的OpenTelemetry中间件
		baseMiddleware(c)

		// 增强context，添加业务信息
		ctx := m.enhanceContext(c.Request.Context(), c)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	})
}

// enhanceContext 增强context，添加业务追踪信息
func (m *OTelMiddleware) enhanceContext(ctx context.Context, c *gin.Context) context.Context {
	// 生成或提取TraceID
	traceID := c.GetHeader("X-Trace-ID")
	if traceID == "" {
		if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
			traceID = span.SpanContext().TraceID().String()
		}
	}
	ctx = tracecontext.WithTraceID(ctx, traceID)

	// 提取RequestID
	requestID := c.GetHeader("X-Request-ID")
	ctx = tracecontext.WithRequestID(ctx, requestID)

	// 提取UserID（从认证中间件设置的值）
	if userIDVal, exists := c.Get("userID"); exists {
		if userID, ok := userIDVal.(int64); ok {
			ctx = tracecontext.WithUserID(ctx, userID)
		}
	}

	// 设置服务信息
	ctx = tracecontext.WithServiceInfo(ctx, m.serviceName)

	// 设置客户端信息
	ctx = tracecontext.WithClientInfo(ctx, c.ClientIP(), c.GetHeader("User-Agent"))

	// 将业务信息添加到OpenTelemetry span
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.url", c.Request.URL.String()),
			attribute.String("http.route", c.FullPath()),
			attribute.String("http.client_ip", c.ClientIP()),
		)

		if userID := tracecontext.GetUserID(ctx); userID > 0 {
			span.SetAttributes(attribute.Int64("user.id", userID))
		}
	}

	return ctx
}

// GRPCUnaryServerInterceptor 返回gRPC一元服务器拦截器
func (m *OTelMiddleware) GRPCUnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		ctx = m.enhanceGRPCContext(ctx, info)
		return handler(ctx, req)
	}
}

// enhanceGRPCContext 增强gRPC context
func (m *OTelMiddleware) enhanceGRPCContext(ctx context.Context, info *grpc.UnaryServerInfo) context.Context {
	// 从metadata中提取信息
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if traceIDs := md.Get("x-trace-id"); len(traceIDs) > 0 {
			ctx = tracecontext.WithTraceID(ctx, traceIDs[0])
		}

		if requestIDs := md.Get("x-request-id"); len(requestIDs) > 0 {
			ctx = tracecontext.WithRequestID(ctx, requestIDs[0])
		}

		if userIDs := md.Get("x-user-id"); len(userIDs) > 0 {
			if userID, err := strconv.ParseInt(userIDs[0], 10, 64); err == nil {
				ctx = tracecontext.WithUserID(ctx, userID)
			}
		}

		if filmIDs := md.Get("x-film-id"); len(filmIDs) > 0 {
			if filmID, err := strconv.ParseInt(filmIDs[0], 10, 64); err == nil {
				ctx = tracecontext.WithFilmID(ctx, filmID)
			}
		}
	}

	// 设置服务信息
	ctx = tracecontext.WithServiceInfo(ctx, m.serviceName)

	// 将业务信息添加到OpenTelemetry span
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.String("rpc.method", info.FullMethod),
			attribute.String("rpc.service", m.serviceName),
		)

		if userID := tracecontext.GetUserID(ctx); userID > 0 {
			span.SetAttributes(attribute.Int64("user.id", userID))
		}
		if filmID := tracecontext.GetFilmID(ctx); filmID > 0 {
			span.SetAttributes(attribute.Int64("film.id", filmID))
		}
	}

	return ctx
}

// GRPCUnaryClientInterceptor 返回gRPC一元客户端拦截器
func (m *OTelMiddleware) GRPCUnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = m.injectBusinessMetadata(ctx)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// injectBusinessMetadata 将业务信息注入到gRPC metadata中
func (m *OTelMiddleware) injectBusinessMetadata(ctx context.Context) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	if md == nil {
		md = metadata.New(nil)
	} else {
		md = md.Copy()
	}

	if traceID := tracecontext.GetTraceID(ctx); traceID != "" {
		md.Set("x-trace-id", traceID)
	}
	if requestID := tracecontext.GetRequestID(ctx); requestID != "" {
		md.Set("x-request-id", requestID)
	}
	if userID := tracecontext.GetUserID(ctx); userID > 0 {
		md.Set("x-user-id", strconv.FormatInt(userID, 10))
	}
	if filmID := tracecontext.GetFilmID(ctx); filmID > 0 {
		md.Set("x-film-id", strconv.FormatInt(filmID, 10))
	}

	return metadata.NewOutgoingContext(ctx, md)
}
