package logger

import (
	"context"
	"fmt"
	"lms_backend/internal/config"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log 在 InitLogger 之前为空操作 logger，便于测试直接使用各业务包
var Log = zap.NewNop()

type requestIDKey struct{}

// ContextWithRequestID 由请求 ID 中间件写入，Ctx 读取
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Ctx 返回带请求 ID 字段的 logger
func Ctx(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return Log
	}
	if id := RequestID(ctx); id != "" {
		return Log.With(zap.String("requestID", id))
	}
	return Log
}

func level(cfg *config.Config) (zapcore.Level, error) {
	if cfg.Log.Level != "" {
		lvl, err := zapcore.ParseLevel(cfg.Log.Level)
		if err != nil {
			return lvl, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
		}
		return lvl, nil
	}
	if cfg.Server.Mode == "debug" {
		return zap.DebugLevel, nil
	}
	return zap.InfoLevel, nil
}

// InitLogger 文件输出 JSON（按大小滚动），控制台输出可读格式
func InitLogger(cfg *config.Config) error {
	lvl, err := level(cfg)
	if err != nil {
		return err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeDuration = zapcore.SecondsDurationEncoder

	logFile := cfg.Log.File
	if logFile == "" {
		logFile = "logs/app.log"
	}
	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotator), lvl),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stdout), lvl),
	)

	Log = zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
		zap.Fields(zap.String("service", cfg.Tracing.ServiceName)),
	)
	return nil
}
