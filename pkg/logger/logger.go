package logger

import (
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const projectName = "socialfeed"

// New builds the process logger. JSON to stdout, debug level outside production.
func New(env string) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeCaller = func(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		if index := strings.Index(caller.File, projectName); index != -1 {
			enc.AppendString(caller.File[index:] + ":" + strconv.Itoa(caller.Line))
			return
		}
		enc.AppendString(caller.TrimmedPath())
	}
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zap.InfoLevel
	if env != "production" {
		level = zap.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		level,
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)).
		With(zap.String("service", projectName), zap.String("env", env))
}
