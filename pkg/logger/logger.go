package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

type Logger interface {
	Info(msg string, values ...any)
	Warn(msg string, values ...any)
	Error(msg string, values ...any)
	Debug(msg string, values ...any)
	Panic(message string, values ...any)
	Fatal(error error, values ...any)
	Printf(format string, args ...interface{})
}

type Options struct {
	Level string
	// File receives a copy of every entry in addition to stdout.
	File       string
	Production bool
}

func init() {
	_, err := NewLogger(baseConfig(os.Getenv("LOG_ENV") == "production"))
	if err != nil {
		panic(err)
	}
}

func baseConfig(production bool) zap.Config {
	var config zap.Config
	if production {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}
	config.OutputPaths = []string{"stdout"}
	return config
}

// Setup replaces the global logger once configuration is known.
func Setup(opts Options) error {
	config := baseConfig(opts.Production)
	if opts.Level != "" {
		level, err := zap.ParseAtomicLevel(opts.Level)
		if err != nil {
			return fmt.Errorf("parse log level: %w", err)
		}
		config.Level = level
	}
	if opts.File != "" {
		config.OutputPaths = append(config.OutputPaths, opts.File)
	}
	_, err := NewLogger(config)
	return err
}

func Info(msg string, values ...any) {
	GetLogger().Info(msg, values...)
}

func Warn(msg string, values ...any) {
	GetLogger().Warn(msg, values...)
}

func Error(msg string, values ...any) {
	GetLogger().Error(msg, values...)
}

func Debug(msg string, values ...any) {
	GetLogger().Debug(msg, values...)
}

func Panic(msg string, values ...any) {
	GetLogger().Panic(msg, values...)
}

func Fatal(error error, values ...any) {
	GetLogger().Fatal(error, values...)
}

func Sync() {
	_ = GetLogger().Sync()
}
