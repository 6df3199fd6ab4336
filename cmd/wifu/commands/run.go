package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kerdl/wifu-go/internal/cfg"
	"github.com/kerdl/wifu-go/internal/osbinding/mock"
	"github.com/kerdl/wifu-go/internal/paths"
	"github.com/kerdl/wifu-go/internal/supervisor"
)

// NewRunCommand builds "wifu run": load config, acquire the single-instance
// lock, build the supervisor and park until interrupted (§4.13).
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the supervisor in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSupervisor(cmd.Context())
		},
	}
}

func runSupervisor(ctx context.Context) error {
	manager := cfg.NewManager()
	if err := manager.Load(); err != nil {
		if errors.Is(err, cfg.ErrFirstRun) {
			fmt.Printf("wrote default configuration to %s, edit it and run again\n", paths.ConfigPath())
			return nil
		}
		return err
	}

	lock := flock.New(paths.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire instance lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another wifu instance already holds %s", paths.LockPath())
	}
	defer lock.Unlock()

	watcher, err := cfg.NewWatcher(manager, log.Logger)
	if err != nil {
		return fmt.Errorf("start config watcher: %w", err)
	}
	defer watcher.Close()

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if werr := watcher.Start(runCtx); werr != nil && !errors.Is(werr, context.Canceled) {
			log.Warn().Err(werr).Msg("x config watcher stopped")
		}
	}()

	// The real OS WLAN binding (Windows ACM/WLAN API) is out of scope
	// (osbinding package doc comment); wifu run drives the supervisor
	// against the same scriptable binding the test suite uses until a
	// platform backend is wired in behind the same interface.
	binding := mock.New()
	defer binding.Close()

	sup := supervisor.New(runCtx, manager, binding, log.Logger)

	log.Info().Msg("! supervisor starting")
	sup.Run(runCtx)
	log.Info().Msg("- supervisor stopped")
	return nil
}
