package context

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// 上下文键类型
type contextKey string

const (
	// 业务相关的上下文键
	TraceIDKey   contextKey = "trace_id"
	UserIDKey    contextKey = "user_id"
	FilmIDKey    contextKey = "film_id"
	RequestIDKey contextKey = "request_id"

	// 服务相关的上下文键
	ServiceNameKey contextKey = "service_name"
	ClientIPKey    contextKey = "client_ip"
	UserAgentKey   contextKey = "user_agent"
)

// TraceContext 业务追踪上下文
type TraceContext struct {
	TraceID   string
	UserID    int64
	FilmID    int64
	RequestID string
}

// WithTraceID 在context中设置TraceID
func WithTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		traceID = GenerateTraceID()
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.String("trace.id", traceID))
	}

	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID 从context中获取TraceID
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	// 优先从OpenTelemetry span中获取
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}

	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}

	return ""
}

// WithUserID 在context中设置UserID
func WithUserID(ctx context.Context, userID int64) context.Context {
	if userID <= 0 {
		return ctx
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.Int64("user.id", userID))
	}

	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID 从context中获取UserID
func GetUserID(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if userID, ok := ctx.Value(UserIDKey).(int64); ok {
		return userID
	}
	return 0
}

// WithFilmID 在context中设置FilmID
func WithFilmID(ctx context.Context, filmID int64) context.Context {
	if filmID <= 0 {
		return ctx
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.Int64("film.id", filmID))
	}

	return context.WithValue(ctx, FilmIDKey, filmID)
}

// GetFilmID 从context中获取FilmID
func GetFilmID(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if filmID, ok := ctx.Value(FilmIDKey).(int64); ok {
		return filmID
	}
	return 0
}

// WithRequestID 在context中设置RequestID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateRequestID()
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.String("request.id", requestID))
	}

	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID 从context中获取RequestID
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithServiceInfo 在context中设置服务信息
func WithServiceInfo(ctx context.Context, serviceName string) context.Context {
	ctx = context.WithValue(ctx, ServiceNameKey, serviceName)

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.String("service.name", serviceName))
	}

	return ctx
}

// GetServiceName 从context中获取服务名
func GetServiceName(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if serviceName, ok := ctx.Value(ServiceNameKey).(string); ok {
		return serviceName
	}
	return ""
}

// WithClientInfo 在context中设置客户端信息
func WithClientInfo(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, ClientIPKey, clientIP)
	ctx = context.WithValue(ctx, UserAgentKey, userAgent)

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.String("client.ip", clientIP),
			attribute.String("client.user_agent", userAgent),
		)
	}

	return ctx
}

// GetClientIP 从context中获取客户端IP
func GetClientIP(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if clientIP, ok := ctx.Value(ClientIPKey).(string); ok {
		return clientIP
	}
	return ""
}

// GenerateTraceID 生成TraceID
func GenerateTraceID() string {
	return uuid.New().String()
}

// GenerateRequestID 生成RequestID
func GenerateRequestID() string {
	return uuid.New().String()
}

// ExtractTraceContext 从context中提取业务追踪信息
func ExtractTraceContext(ctx context.Context) *TraceContext {
	return &TraceContext{
		TraceID:   GetTraceID(ctx),
		UserID:    GetUserID(ctx),
		FilmID:    GetFilmID(ctx),
		RequestID: GetRequestID(ctx),
	}
}

// ToMap 将TraceContext转换为map，用于日志输出
func (tc *TraceContext) ToMap() map[string]interface{} {
	result := make(map[string]interface{})

	if tc.TraceID != "" {
		result["trace_id"] = tc.TraceID
	}
	if tc.UserID > 0 {
		result["user_id"] = tc.UserID
	}
	if tc.FilmID > 0 {
		result["film_id"] = tc.FilmID
	}
	if tc.RequestID != "" {
		result["request_id"] = tc.RequestID
	}

	return result
}
