package logger

import (
	"context"
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AccessLogger is the trace-correlated structured logger used for HTTP
// access logs. otelzap stamps trace_id/span_id from the request context.
type AccessLogger struct {
	Logger      *otelzap.Logger
	serviceName string
}

func New(serviceName string) (*AccessLogger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	zapLogger, err := config.Build()

	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	return &AccessLogger{
		Logger:      otelzap.New(zapLogger),
		serviceName: serviceName,
	}, nil
}

// NewNop returns a logger that discards everything, for tests.
func NewNop(serviceName string) *AccessLogger {
	return &AccessLogger{
		Logger:      otelzap.New(zap.NewNop()),
		serviceName: serviceName,
	}
}

func (l *AccessLogger) Sync() error {
	return l.Logger.Sync()
}

func (l *AccessLogger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	fields = append(fields, zap.String("service", l.serviceName))
	l.Logger.Ctx(ctx).Info(msg, fields...)
}

func (l *AccessLogger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	fields = append(fields, zap.String("service", l.serviceName))
	l.Logger.Ctx(ctx).Error(msg, fields...)
}
