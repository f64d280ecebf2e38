package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// RequestIDHeader 请求 ID 的 HTTP 头
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey 请求 ID 在 gin.Context 中的键
	RequestIDKey = "request_id"
)

// RequestID 为每个请求分配请求 ID（优先沿用客户端传入的 X-Request-ID），
// 写回响应头，并在请求结束时记录方法、路径、状态码与耗时
func RequestID(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		entry := logger.WithFields(logrus.Fields{
			RequestIDKey:  requestID,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
		})
		if c.Writer.Status() >= 500 {
			entry.Warn("request completed")
			return
		}
		entry.Info("request completed")
	}
}

// Entry 返回带请求 ID 的日志条目
func Entry(c *gin.Context, logger *logrus.Logger) *logrus.Entry {
	if id := c.GetString(RequestIDKey); id != "" {
		return logger.WithField(RequestIDKey, id)
	}
	return logrus.NewEntry(logger)
}
