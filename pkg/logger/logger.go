package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Create handler based on environment
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Use JSON handler for production (structured)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	// Create logger
	logger := slog.New(handler)

	return &Logger{
		Logger: logger,
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithSessionID adds the storefront session ID to logger context
func (l *Logger) WithSessionID(sessionID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("session_id", sessionID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Business logic logging methods

// LogCartItemAdded logs when tickets are put into a session cart
func (l *Logger) LogCartItemAdded(ctx context.Context, sessionID, eventID, ticketType string, quantity int) {
	l.Logger.InfoContext(ctx,
		"Cart Item Added",
		slog.String("session_id", sessionID),
		slog.String("event_id", eventID),
		slog.String("ticket_type", ticketType),
		slog.Int("quantity", quantity),
	)
}

// LogCheckoutStarted logs when a payment submission begins
func (l *Logger) LogCheckoutStarted(ctx context.Context, sessionID string, total int) {
	l.Logger.InfoContext(ctx,
		"Checkout Started",
		slog.String("session_id", sessionID),
		slog.Int("total", total),
	)
}

// LogCheckoutCompleted logs a successful payment
func (l *Logger) LogCheckoutCompleted(ctx context.Context, sessionID, orderNumber string, total int) {
	l.Logger.InfoContext(ctx,
		"Checkout Completed",
		slog.String("session_id", sessionID),
		slog.String("order_number", orderNumber),
		slog.Int("total", total),
	)
}

// LogCheckoutFailed logs a failed or cancelled payment
func (l *Logger) LogCheckoutFailed(ctx context.Context, sessionID string, err error) {
	l.Logger.WarnContext(ctx,
		"Checkout Failed",
		slog.String("session_id", sessionID),
		slog.String("error", err.Error()),
	)
}

// LogOrderCreated logs when an order is recorded
func (l *Logger) LogOrderCreated(ctx context.Context, orderNumber, sessionID string, items int) {
	l.Logger.InfoContext(ctx,
		"Order Created",
		slog.String("order_number", orderNumber),
		slog.String("session_id", sessionID),
		slog.Int("items", items),
	)
}

// LogPreferencesChanged logs a stored preference update
func (l *Logger) LogPreferencesChanged(ctx context.Context, clientID, key string) {
	l.Logger.InfoContext(ctx,
		"Preferences Changed",
		slog.String("client_id", clientID),
		slog.String("key", key),
	)
}

// LogSessionsEvicted logs idle cart sessions dropped by the sweeper
func (l *Logger) LogSessionsEvicted(ctx context.Context, count int) {
	l.Logger.InfoContext(ctx,
		"Idle Sessions Evicted",
		slog.Int("count", count),
	)
}

// Security logging methods

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// Helper methods for common patterns

// InfoWithContext logs an info message with context
func (l *Logger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.InfoContext(ctx, msg, args...)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// DebugWithContext logs a debug message with context
func (l *Logger) DebugWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.DebugContext(ctx, msg, args...)
}

// Global logger instance
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}
