// Package utils contains general helper functions shared across the projmd CLI.
package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerInitializationFailedMessageFormat reports a logger construction failure.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes fatal run failures.
const ApplicationExecutionFailedMessage = "projmd execution failed"

// NewApplicationLogger constructs a zap logger configured for human-readable console output.
func NewApplicationLogger() (*zap.Logger, error) {
	configuration := zap.NewProductionConfig()
	configuration.Encoding = "console"
	configuration.DisableCaller = true
	configuration.DisableStacktrace = true
	configuration.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	configuration.EncoderConfig.TimeKey = ""
	configuration.EncoderConfig.LevelKey = ""
	configuration.EncoderConfig.NameKey = ""
	configuration.EncoderConfig.CallerKey = ""
	configuration.EncoderConfig.MessageKey = "message"
	configuration.EncoderConfig.StacktraceKey = ""
	return configuration.Build()
}
