package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/bootstrap"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/config"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/db"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		inj := bootstrap.BuildContainer()
		defer bootstrap.Close(inj)

		cfg, err := do.Invoke[*config.Config](inj)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log := do.MustInvoke[*zap.Logger](inj)

		tp, err := telemetry.SetupTracing(cfg)
		if err != nil {
			log.Sugar().Warnw("failed to setup tracing, continuing without tracing", "err", err)
		} else if tp != nil {
			log.Sugar().Infow("OpenTelemetry tracing enabled", "endpoint", cfg.Telemetry.OtlpEndpoint)
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := telemetry.Shutdown(ctx); err != nil {
					log.Sugar().Errorw("failed to shutdown tracer", "err", err)
				}
			}()
		}

		gin.SetMode(cfg.App.Env)

		if cfg.Database.PrimaryEnabled() && cfg.Database.AutoMigrate {
			migrateOnStart(cmd.Context(), do.MustInvoke[*db.Provider](inj), log)
		}

		engine := do.MustInvoke[*gin.Engine](inj)
		addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
		srv := &http.Server{Addr: addr, Handler: engine, ReadHeaderTimeout: 10 * time.Second}

		go func() {
			log.Sugar().Infow("starting http server", "addr", addr, "primary_enabled", cfg.Database.PrimaryEnabled())
			log.Sugar().Infow("swagger url", "url", addr+"/swagger/index.html")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Sugar().Fatalw("listen error", "err", err)
			}
		}()

		// graceful shutdown
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Sugar().Errorw("server shutdown", "err", err)
		}
		log.Sugar().Info("server exited")
		return nil
	},
}

// migrateOnStart only warns: the API keeps serving sample data when the
// database is down.
func migrateOnStart(ctx context.Context, p *db.Provider, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	d, err := p.DB(ctx)
	if err != nil {
		log.Sugar().Warnw("auto migrate skipped, database unreachable", "err", err)
		return
	}
	if err := db.Migrate(d); err != nil {
		log.Sugar().Warnw("auto migrate failed", "err", err)
	}
}
