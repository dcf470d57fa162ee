package wisdom3d

import (
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logMu   sync.RWMutex
	logger  = zap.NewNop()
	once    sync.Once
	Session = uuid.NewString()
)

// InitLogger tees a rotating JSON file and the console into one zap logger.
// An empty path logs to the console only.
func InitLogger(path string, debug bool) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.LevelKey = "level"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	consoleLevel := zap.InfoLevel
	if debug {
		consoleLevel = zap.DebugLevel
	}
	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(os.Stdout),
			consoleLevel,
		),
	}
	if path != "" {
		rotator := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // Megabytes
			MaxBackups: 3,
			MaxAge:     7, // Days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(rotator),
			zap.InfoLevel,
		))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller()).With(zap.String("session", Session))
	SetLogger(l)
	return l
}

// SetLogger replaces the package logger, nil restores the no-op one.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logMu.Lock()
	logger = l
	logMu.Unlock()
}

// Log returns the package logger scoped to a module name.
func Log(module string) *zap.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return logger.With(zap.String("module", module))
}

func DebugLog(format string, args ...interface{}) {
	if !Debug {
		return
	}
	Log("debug").Debug(fmt.Sprintf(format, args...))
}

func DebugLogOnce(format string, args ...interface{}) {
	if !Debug {
		return
	}
	once.Do(func() {
		Log("debug").Debug(fmt.Sprintf(format, args...))
	})
}
