package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func jsonCore(buf *bytes.Buffer) zapcore.Core {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}
	return zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(buf), zapcore.DebugLevel)
}

func TestProperty_LogsAreStructured(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every entry is a JSON object with level, timestamp and message", prop.ForAll(
		func(message string, level int) bool {
			var buf bytes.Buffer
			logger := zap.New(jsonCore(&buf))

			switch level {
			case 0:
				logger.Debug(message)
			case 1:
				logger.Info(message)
			case 2:
				logger.Warn(message)
			default:
				logger.Error(message)
			}

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				return false
			}
			_, hasLevel := entry["level"]
			_, hasTimestamp := entry["timestamp"]
			return hasLevel && hasTimestamp && entry["message"] == message
		},
		gen.AnyString(),
		gen.IntRange(0, 3),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ErrorLogsKeepContext(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("fields passed with an error entry are preserved", prop.ForAll(
		func(productID string, cause string) bool {
			var buf bytes.Buffer
			logger := zap.New(jsonCore(&buf), zap.AddStacktrace(zapcore.ErrorLevel))

			logger.Error("Failed to update product",
				zap.String("product_id", productID),
				zap.String("error", cause),
			)

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				return false
			}
			_, hasStack := entry["stacktrace"]
			return entry["product_id"] == productID && entry["error"] == cause && hasStack
		},
		gen.Identifier(),
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestNewDefaultLevels(t *testing.T) {
	dev, err := New("development", "")
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))

	prod, err := New("production", "")
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, prod.Core().Enabled(zapcore.InfoLevel))
}

func TestNewLevelOverride(t *testing.T) {
	logger, err := New("development", "warn")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	_, err = New("production", "loud")
	assert.Error(t, err)
}
