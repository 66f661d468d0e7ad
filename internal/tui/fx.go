package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/orgball2608/insta-feed/internal/feed"
	"github.com/orgball2608/insta-feed/internal/imaging"
	"github.com/orgball2608/insta-feed/internal/session"
	"github.com/orgball2608/insta-feed/pkg/config"
	"github.com/orgball2608/insta-feed/pkg/delay"
	"github.com/orgball2608/insta-feed/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	LC         fx.Lifecycle
	Shutdowner fx.Shutdowner
	Feed       feed.Controller
	Store      *session.Store
	Delays     *delay.Scheduler
	Images     imaging.Loader
	Config     *config.Config
	Logger     logger.Logger
}

var Module = fx.Module("tui",
	fx.Provide(NewProgram),
	fx.Invoke(func(*Program) {}),
)

// Program runs the feed screen for the lifetime of the fx app. Quitting the
// screen shuts the app down.
type Program struct {
	model   *Model
	program *tea.Program
	done    chan struct{}
	log     logger.Logger
}

func NewProgram(opts Opts) *Program {
	p := &Program{
		done: make(chan struct{}),
		log:  opts.Logger.WithComponent("Program"),
	}

	// The model reads the session on mount, so it is built only once storage
	// is migrated and the session is hydrated.
	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			p.model = NewModel(Deps{
				Feed:   opts.Feed,
				Store:  opts.Store,
				Delays: opts.Delays,
				Images: opts.Images,
				Config: opts.Config,
				Logger: opts.Logger,
			})
			p.program = tea.NewProgram(p.model, tea.WithAltScreen(), tea.WithMouseCellMotion())
			go p.run(opts.Shutdowner)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if p.program == nil {
				return nil
			}
			p.program.Quit()
			select {
			case <-p.done:
			case <-ctx.Done():
				p.program.Kill()
			}
			p.model.Close()
			return nil
		},
	})

	return p
}

func (p *Program) run(shutdowner fx.Shutdowner) {
	defer close(p.done)

	if _, err := p.program.Run(); err != nil {
		p.log.Error("Program exited with error", "error", err)
		_ = shutdowner.Shutdown(fx.ExitCode(1))
		return
	}
	p.log.Info("Program exited")
	_ = shutdowner.Shutdown()
}
