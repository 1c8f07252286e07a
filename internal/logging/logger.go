package logging

import (
	"fmt"
	"net/url"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "WEATHER_LOG_LEVEL"

// LogFileEnvVar names a file to write logs to instead of stderr.
const LogFileEnvVar = "WEATHER_LOG_FILE"

// redactedParams are query parameters that must never reach the logs.
var redactedParams = []string{"appid", "api_key", "apikey"}

// Initialize creates a new logger with the specified level.
// If level is empty, it checks WEATHER_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	zapLevel, err := ParseLevel(level)
	if err != nil {
		// Unknown level - use info as default when explicitly set to something
		zapLevel = zapcore.InfoLevel
	}

	output := "stderr"
	if path := os.Getenv(LogFileEnvVar); path != "" {
		output = path
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from the WEATHER_LOG_LEVEL
// environment variable.
func InitializeFromEnv() error {
	return Initialize("")
}

// ParseLevel maps a level name to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// SetLogger replaces the global logger. Tests use this with zaptest/observer.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogHTTPRequest logs an outbound provider request with credentials redacted
func LogHTTPRequest(method string, rawURL string) {
	Debug("Weather API request",
		zap.String("method", method),
		zap.String("url", RedactURL(rawURL)),
	)
}

// LogHTTPResponse logs a provider response status
func LogHTTPResponse(rawURL string, statusCode int, length int) {
	Debug("Weather API response",
		zap.String("url", RedactURL(rawURL)),
		zap.Int("status_code", statusCode),
		zap.Int("length", length),
	)
}

// LogServerRequest logs a request handled by the widget server
func LogServerRequest(remoteAddr, requestID, method, path string, statusCode int) {
	Info("HTTP request handled",
		zap.String("remote_addr", remoteAddr),
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", statusCode),
	)
}

// LogConnection logs a widget server connection event
func LogConnection(remoteAddr string, sessionID string, event string) {
	Info("Connection event",
		zap.String("remote_addr", remoteAddr),
		zap.String("session_id", sessionID),
		zap.String("event", event),
	)
}

// LogStateTransition logs a presentation state change
func LogStateTransition(from, to string, requestID string) {
	Debug("UI state transition",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("request_id", requestID),
	)
}

// RedactURL replaces credential query parameters with a placeholder.
// Unparseable input is returned as a fixed marker rather than verbatim.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<unparseable url>"
	}

	q := u.Query()
	changed := false
	for _, param := range redactedParams {
		if q.Has(param) {
			q.Set(param, "API_KEY_HIDDEN")
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
