package lib

import (
	"io"
	"os"
	"path/filepath"

	"github.com/estate-chain/marketplace-router/internal/interfaces"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "2006-01-02T15:04:05"

type LoggerConfig struct {
	Level      string
	Color      bool
	IsProd     bool
	JSON       bool
	FolderPath string // empty disables file output
}

type Logger struct {
	*zap.SugaredLogger
}

// NewLogger creates a logger writing to stdout and, if FolderPath is set, to <FolderPath>/<name>.log
func NewLogger(name string, cfg LoggerConfig) (*Logger, error) {
	var logFile string
	if cfg.FolderPath != "" {
		logFile = filepath.Join(cfg.FolderPath, name+".log")
	}
	log, err := newLogger(cfg.Level, cfg.Color, cfg.IsProd, cfg.JSON, logFile, nil)
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: log.Sugar().Named(name)}, nil
}

// NewLoggerMemory additionally copies every entry to wr, used to inspect log output in tests
func NewLoggerMemory(level string, wr io.Writer) (*Logger, error) {
	log, err := newLogger(level, false, false, false, "", wr)
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: log.Sugar()}, nil
}

func newLogger(levelStr string, color bool, isProd bool, isJSON bool, logFile string, extraWriter io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}

	cores := []zapcore.Core{newConsoleCore(level, color, isProd, isJSON)}

	if logFile != "" {
		fileCore, err := newFileCore(zapcore.DebugLevel, isProd, isJSON, logFile)
		if err != nil {
			return nil, err
		}
		cores = append(cores, fileCore)
	}
	if extraWriter != nil {
		encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(extraWriter), level))
	}

	opts := []zap.Option{zap.AddStacktrace(zap.ErrorLevel)}
	if !isProd {
		opts = append(opts, zap.Development())
	}

	return zap.New(zapcore.NewTee(cores...), opts...), nil
}

func newConsoleCore(level zapcore.Level, color bool, isProd bool, isJSON bool) zapcore.Core {
	encoderCfg := newEncoderCfg(isProd, color, isJSON)
	return zapcore.NewCore(newEncoder(encoderCfg, isJSON), zapcore.AddSync(os.Stdout), level)
}

func newFileCore(level zapcore.Level, isProd bool, isJSON bool, path string) (zapcore.Core, error) {
	encoderCfg := newEncoderCfg(isProd, false, isJSON)
	if !isJSON {
		encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
	if err != nil {
		return nil, err
	}

	return zapcore.NewCore(newEncoder(encoderCfg, isJSON), zapcore.AddSync(file), level), nil
}

func newEncoder(cfg zapcore.EncoderConfig, isJSON bool) zapcore.Encoder {
	if isJSON {
		return zapcore.NewJSONEncoder(cfg)
	}
	return zapcore.NewConsoleEncoder(cfg)
}

func newEncoderCfg(isProd bool, color bool, isJSON bool) zapcore.EncoderConfig {
	var encoderCfg zapcore.EncoderConfig
	if isProd {
		encoderCfg = zap.NewProductionEncoderConfig()
	} else {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	}

	if color && !isJSON {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return encoderCfg
}

func (l *Logger) Named(name string) interfaces.ILogger {
	return &Logger{l.SugaredLogger.Named(name)}
}

func (l *Logger) With(args ...interface{}) interfaces.ILogger {
	return &Logger{l.SugaredLogger.With(args...)}
}
