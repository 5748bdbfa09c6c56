// ABOUTME: CLI entry point for termroot with terminal crash recovery
// ABOUTME: Loads config, selects a backend, and runs the demo until quit or signal

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/termroot/internal/config"
	"github.com/mauromedda/termroot/internal/log"
	"github.com/mauromedda/termroot/pkg/tui"
	"github.com/mauromedda/termroot/pkg/tui/backend"
	_ "github.com/mauromedda/termroot/pkg/tui/backends"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("termroot %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadSettings reads the settings source chosen on the command line and
// applies flag overrides.
func loadSettings(args cliArgs) (*config.Settings, error) {
	var (
		s   *config.Settings
		err error
	)
	if args.config != "" {
		s, err = config.LoadFile(args.config)
	} else {
		cwd, werr := os.Getwd()
		if werr != nil {
			return nil, fmt.Errorf("getting working directory: %w", werr)
		}
		s, err = config.Load(cwd)
	}
	if err != nil {
		return nil, err
	}

	if args.backend != "" {
		s.Backend = args.backend
	}
	if args.logFile != "" {
		s.LogFile = args.logFile
	}
	if args.poll > 0 {
		s.PollTimeout = config.Duration(args.poll)
	}
	if args.verbose {
		s.LogLevel = "debug"
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// watchedFiles returns the files whose changes trigger a reload.
func watchedFiles(args cliArgs) []string {
	if args.config != "" {
		return []string{args.config}
	}
	cwd, _ := os.Getwd()
	return config.ConfigFiles(cwd)
}

func applyLogLevel(s *config.Settings) {
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		log.Warn("config: %v", err)
		return
	}
	log.SetLevel(level)
}

// openApp creates the App for the configured backend.
func openApp(s *config.Settings, e tui.Engine) (*tui.App, error) {
	selOpts, err := s.SelectorOptions()
	if err != nil {
		return nil, err
	}
	opts := []tui.Option{tui.WithSelector(backend.NewSelector(selOpts...))}
	if s.PollTimeout > 0 {
		opts = append(opts, tui.WithPollTimeout(time.Duration(s.PollTimeout)))
	}

	kind, named, err := s.BackendKind()
	if err != nil {
		return nil, err
	}
	if !named {
		return tui.NewDefault(e, opts...), nil
	}
	return tui.NewNamed(kind, e, opts...)
}

func run(args cliArgs) error {
	s, err := loadSettings(args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyLogLevel(s)

	if args.list {
		opts, err := s.SelectorOptions()
		if err != nil {
			return err
		}
		return writeReport(os.Stdout, backend.NewSelector(opts...).Report())
	}

	// Anything written to stderr while a backend owns the terminal lands on
	// the screen.
	if s.LogFile != "" {
		f, err := log.OpenFile(s.LogFile)
		if err != nil {
			return err
		}
		defer f.Close()
		defer log.SetOutput(os.Stderr)
	} else {
		prev := log.SetOutput(io.Discard)
		defer log.SetOutput(prev)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	d := newDemo()
	app, err := openApp(s, d.root)
	if err != nil {
		return err
	}
	defer tui.RestoreOnPanic(app)

	log.Info("termroot %s: backend %s", version, app.Backend().Kind())
	d.attach(app)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	watcher := config.NewWatcher(watchedFiles(args), config.DefaultWatchInterval)

	var g errgroup.Group
	g.Go(func() error {
		return d.runClock(runCtx, app, time.Second)
	})
	g.Go(func() error {
		return watcher.Run(runCtx, func() {
			reloaded, err := loadSettings(args)
			if err != nil {
				log.Warn("config reload: %v", err)
				app.QueueUpdate(func(*tui.App) { d.setStatus("config reload failed") })
				return
			}
			applyLogLevel(reloaded)
			log.Info("config reloaded, log level %s", log.GetLevel())
			app.QueueUpdate(func(*tui.App) { d.setStatus("config reloaded") })
		})
	})

	runErr := app.Run(runCtx)
	cancel()
	if err := g.Wait(); err != nil {
		log.Warn("background task: %v", err)
	}
	return runErr
}
