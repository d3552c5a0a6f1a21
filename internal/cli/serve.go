package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petclinic/internal/adapters/storage/postgres"
	"petclinic/internal/config"
	"petclinic/internal/platform/logger"
	"petclinic/internal/router"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCfg config.Config
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API. Every flag can also be set through the environment,
upper-cased with "_" instead of "-" (e.g. DB_DSN, LOG_LEVEL). .env and .env.local are loaded when present.`,
		PreRunE: processConfig,
		RunE:    runServe,
	}
)

func init() {
	cobra.OnInitialize(config.LoadEnvFiles)
	config.RegisterFlags(serveCmd.Flags())
}

func processConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.New(), cmd.Flags())
	if err != nil {
		return err
	}
	serveCfg = cfg
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := serveCfg
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{Logger: log}
	if cfg.DBDSN != "" {
		db, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"error": err.Error()})
			return err
		}
		defer db.Close()

		if err := postgres.Migrate(ctx, db); err != nil {
			log.Error("postgres migrate failed", map[string]any{"error": err.Error()})
			return err
		}
		opts.DB = db
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			log.Error("server error", map[string]any{"error": err.Error()})
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
