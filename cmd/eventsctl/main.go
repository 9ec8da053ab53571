package main

import (
	"context"
	"fmt"
	"os"

	"cloud-events-sync/internal/config"
	"cloud-events-sync/internal/domain/events"
	"cloud-events-sync/internal/platform/logger"
	"cloud-events-sync/internal/router"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	// openRecordStore se reemplaza en tests para compartir un repo entre comandos.
	openRecordStore = router.NewRecordStore
)

var rootCmd = &cobra.Command{
	Use:   "eventsctl",
	Short: "Manage events in the configured record store",
	Long: `eventsctl talks to the same record store as the API (memory, postgres or cloud)
through the event sync controller. Every command first loads the remote events
into the local cache, then runs its operation.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "path to YAML config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print state transitions")

	rootCmd.AddCommand(listCmd, createCmd, updateCmd, deleteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// session es un controller listo para usar más su cleanup.
type session struct {
	ctrl  *events.Controller
	close func()
}

func openSession(ctx context.Context, cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.Nop()
	if verbose {
		opts := cfg.LoggerOptions("eventsctl")
		opts.Level = logger.Debug
		opts.Output = cmd.ErrOrStderr()
		log = logger.New(opts)
	}

	rs, closeStore, err := openRecordStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	ctrl := events.NewController(events.NewStore(cfg.StoreConfig(), rs), log)
	unsubscribe := func() {}
	if verbose {
		out := cmd.ErrOrStderr()
		unsubscribe = ctrl.Subscribe(func(s events.State) {
			fmt.Fprintf(out, "state: %s\n", s)
		})
	}

	if err := ctrl.FetchAll(ctx); err != nil {
		unsubscribe()
		closeStore()
		return nil, fmt.Errorf("load events: %w", err)
	}

	return &session{
		ctrl: ctrl,
		close: func() {
			unsubscribe()
			closeStore()
		},
	}, nil
}
