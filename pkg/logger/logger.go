package logger

import (
	"fmt"
	"os"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.SugaredLogger

type Props struct {
	LogLevel    string
	LogFormat   string
	OutputPaths []string
}

// stdout carries the filtered records in cmd/account-filter, so logs default to stderr.
var DefaultConfig Props = Props{
	LogLevel:    "info",
	LogFormat:   "json",
	OutputPaths: []string{"stderr"},
}

func Init(cfg Props) error {
	if err := mergo.Merge(&cfg, DefaultConfig); err != nil {
		return errors.Wrap(err, "could not merge logger config")
	}
	l := zap.NewAtomicLevel()
	if err := l.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return err
	}
	zCfg := zap.Config{
		Encoding:         cfg.LogFormat,
		Level:            l,
		OutputPaths:      cfg.OutputPaths,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:   "msg",
			LevelKey:     "level",
			EncodeLevel:  zapcore.CapitalLevelEncoder,
			TimeKey:      "time",
			EncodeTime:   zapcore.ISO8601TimeEncoder,
			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}
	z, err := zCfg.Build()
	if err != nil {
		return err
	}
	logger = z.Sugar()
	return nil
}

func Get() *zap.SugaredLogger {
	if logger == nil {
		if err := Init(Props{}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			logger = zap.NewNop().Sugar()
		}
	}
	return logger
}
