package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logDirPerm = 0o750

// levelRouter sends each event to the writer of its level group.
type levelRouter struct {
	trace io.Writer
	info  io.Writer
	warn  io.Writer
	error io.Writer
}

// Write is used for events without a level.
func (r levelRouter) Write(p []byte) (int, error) {
	return r.info.Write(p) //nolint:wrapcheck
}

// WriteLevel implements zerolog.LevelWriter.
func (r levelRouter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	switch {
	case l == zerolog.Disabled:
		return 0, nil
	case l == zerolog.TraceLevel:
		return r.trace.Write(p) //nolint:wrapcheck
	case l == zerolog.WarnLevel:
		return r.warn.Write(p) //nolint:wrapcheck
	case l > zerolog.WarnLevel:
		return r.error.Write(p) //nolint:wrapcheck
	default:
		return r.info.Write(p) //nolint:wrapcheck
	}
}

// Init configures the global zerolog logger from cfg.
// With neither console nor file output enabled all events are dropped.
func Init(cfg Log) error {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "loglevel %s is not supported", cfg.LogLevel)
	}

	if cfg.ServiceName == "" {
		return ErrServiceNameIsEmpty
	}

	if cfg.AppName == "" {
		return ErrAppNameIsEmpty
	}

	zerolog.SetGlobalLevel(level)
	zerolog.ErrorHandler = ErrorHandler //nolint:reassign

	writers := make([]io.Writer, 0, 2) //nolint:mnd
	if cfg.Console.Enabled {
		writers = append(writers, NewConsoleWriter(cfg))
	}

	if cfg.File.Enabled {
		fw, err := newFileWriter(cfg.File)
		if err != nil {
			return err
		}

		writers = append(writers, fw)
	}

	zc := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Hook(NewPrometheusHook(cfg.ServiceName)).
		With().Timestamp().
		Str("app", cfg.AppName).
		Str("service", cfg.ServiceName)

	if cfg.LogEnv != "" {
		zc = zc.Str("env", cfg.LogEnv)
	}

	if cfg.ReportCaller {
		zc = zc.Caller()

		// stack traces of pkg/errors only at trace level
		if level == zerolog.TraceLevel {
			zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
			zc = zc.Stack()
		}
	}

	log.Logger = zc.Logger()

	return nil
}

// Writer returns the lumberjack logger of f below dir, named <group>.log if f has no name.
func (f RollingFile) Writer(dir, group string) *lumberjack.Logger {
	name := f.Name
	if name == "" {
		name = group + ".log"
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    f.MaxSize,
		MaxAge:     f.MaxAge,
		MaxBackups: f.MaxBackups,
		Compress:   f.Compress,
	}
}

// MkdirLogPath creates the log directory of f.
func MkdirLogPath(f LogFile) error {
	if f.Path == "" {
		return nil
	}

	return errors.Wrapf(os.MkdirAll(f.Path, logDirPerm), "can't create log directory %s", f.Path)
}

func newFileWriter(f LogFile) (io.Writer, error) {
	if err := MkdirLogPath(f); err != nil {
		return nil, err
	}

	return levelRouter{
		trace: f.Trace.Writer(f.Path, "trace"),
		info:  f.Info.Writer(f.Path, "info"),
		warn:  f.Warn.Writer(f.Path, "warn"),
		error: f.Error.Writer(f.Path, "error"),
	}, nil
}

// NewConsoleWriter writes info and debug to stdout and the other levels to stderr.
func NewConsoleWriter(cfg Log) io.Writer {
	var stdout, stderr io.Writer = os.Stdout, os.Stderr

	if cfg.Console.UseConsoleWriter {
		stdout = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: zerolog.TimeFieldFormat}
		stderr = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: zerolog.TimeFieldFormat}
	}

	return levelRouter{
		trace: stderr,
		info:  stdout,
		warn:  stderr,
		error: stderr,
	}
}
