package logger

import (
	"context"
	"os"
	"time"

	"github.com/orgball2608/insta-feed/pkg/config"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var FxOption = fx.Annotate(
	func(lc fx.Lifecycle, cfg *config.Config) (*Impl, error) {
		file, err := os.OpenFile(cfg.App.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}

		log := New(
			Opts{
				Env:       cfg.App.Env,
				SentryDSN: cfg.App.SentryUrl,
				Output:    file,
			},
		)

		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				log.Flush(2 * time.Second)
				return file.Close()
			},
		})

		return log, nil
	},
	fx.As(new(Logger)),
)

// FxEvents routes fx container events into the application logger so nothing
// is written to the terminal the UI owns.
var FxEvents = fx.WithLogger(func(log Logger) fxevent.Logger {
	return fxEventLogger{log: log.WithComponent("fx")}
})

type fxEventLogger struct {
	log Logger
}

func (l fxEventLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuted:
		if e.Err != nil {
			l.log.Error("OnStart hook failed", "callee", e.FunctionName, "error", e.Err)
			return
		}
		l.log.Debug("OnStart hook executed", "callee", e.FunctionName, "runtime", e.Runtime.String())
	case *fxevent.OnStopExecuted:
		if e.Err != nil {
			l.log.Error("OnStop hook failed", "callee", e.FunctionName, "error", e.Err)
			return
		}
		l.log.Debug("OnStop hook executed", "callee", e.FunctionName, "runtime", e.Runtime.String())
	case *fxevent.Provided:
		if e.Err != nil {
			l.log.Error("Provide failed", "constructor", e.ConstructorName, "error", e.Err)
		}
	case *fxevent.Invoked:
		if e.Err != nil {
			l.log.Error("Invoke failed", "function", e.FunctionName, "error", e.Err)
		}
	case *fxevent.Started:
		if e.Err != nil {
			l.log.Error("Start failed", "error", e.Err)
			return
		}
		l.log.Info("Application started")
	case *fxevent.Stopped:
		if e.Err != nil {
			l.log.Error("Stop failed", "error", e.Err)
			return
		}
		l.log.Info("Application stopped")
	}
}
