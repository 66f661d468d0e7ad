package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// WithComponent returns a child logger tagging every record with component.
	WithComponent(component string) Logger
}

type Opts struct {
	Env       string
	SentryDSN string
	// Output receives zerolog records. Defaults to stderr.
	Output io.Writer
}

type Impl struct {
	log *slog.Logger
}

var _ Logger = (*Impl)(nil)

func New(opts Opts) *Impl {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := slog.LevelInfo
	var zl zerolog.Logger
	if opts.Env == "" || opts.Env == "development" {
		level = slog.LevelDebug
		zl = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: true}).With().Timestamp().Logger()
	} else {
		zl = zerolog.New(out).With().Timestamp().Logger()
	}

	handlers := []slog.Handler{
		slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler(),
	}

	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: opts.Env,
		})
		if err == nil {
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
		}
	}

	return &Impl{log: slog.New(slogmulti.Fanout(handlers...))}
}

// Discard returns a logger that drops every record.
func Discard() *Impl {
	return New(Opts{Env: "test", Output: io.Discard})
}

func (l *Impl) Debug(msg string, args ...any) {
	l.log.Debug(msg, args...)
}

func (l *Impl) Info(msg string, args ...any) {
	l.log.Info(msg, args...)
}

func (l *Impl) Warn(msg string, args ...any) {
	l.log.Warn(msg, args...)
}

func (l *Impl) Error(msg string, args ...any) {
	l.log.Error(msg, args...)
}

func (l *Impl) WithComponent(component string) Logger {
	return &Impl{log: l.log.With("component", component)}
}

// Flush waits for buffered Sentry events.
func (l *Impl) Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
