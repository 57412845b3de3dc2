package bootstrap

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/config"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/blob"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/db"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/logger"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/queue"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/handler"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/mockstore"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/repo"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/service"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/utils"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/router"
)

// BuildContainer wires the application from config.Load.
func BuildContainer() *do.Injector {
	inj := do.New()
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})
	register(inj)
	return inj
}

// BuildContainerWith wires the application around an already loaded config.
func BuildContainerWith(cfg *config.Config) *do.Injector {
	inj := do.New()
	do.ProvideValue(inj, cfg)
	register(inj)
	return inj
}

func register(inj *do.Injector) {
	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log, err := logger.New(cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		if cfg.Auth.JwtSecret == "" {
			secret, err := utils.GenerateKey("pp_", 48)
			if err != nil {
				return nil, err
			}
			cfg.Auth.JwtSecret = secret
			log.Sugar().Warnw("auth.jwtSecret is empty, using a per-process secret; sessions will not survive a restart")
		}
		return log, nil
	})

	// primary store, opened lazily on first use
	do.Provide(inj, func(i *do.Injector) (*db.Provider, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return db.NewProvider(cfg, do.MustInvoke[*zap.Logger](i)), nil
	})

	// mock store
	do.Provide(inj, func(i *do.Injector) (*mockstore.Store, error) {
		return mockstore.NewSeeded()
	})

	// activity event publisher; nil when the broker is unavailable
	do.Provide(inj, func(i *do.Injector) (queue.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		if cfg.RabbitMQ.URL == "" {
			log.Sugar().Infow("activity events disabled", "reason", "rabbitmq.url is empty")
			return nil, nil
		}
		pub, err := queue.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Sugar().Warnw("activity events disabled", "err", err)
			return nil, nil
		}
		return pub, nil
	})

	// S3 avatars; nil interface when storage is not configured
	do.Provide(inj, func(i *do.Injector) (service.AvatarStore, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		s3, err := blob.NewS3(context.Background(), cfg)
		if errors.Is(err, blob.ErrNotConfigured) {
			return nil, nil
		}
		if err != nil {
			log.Sugar().Warnw("avatar storage disabled", "err", err)
			return nil, nil
		}
		return s3, nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*db.Provider](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TaskRepo, error) {
		return repo.NewTaskRepo(do.MustInvoke[*db.Provider](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.CommentRepo, error) {
		return repo.NewCommentRepo(do.MustInvoke[*db.Provider](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*db.Provider](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.NotificationRepo, error) {
		return repo.NewNotificationRepo(do.MustInvoke[*db.Provider](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TimeEntryRepo, error) {
		return repo.NewTimeEntryRepo(do.MustInvoke[*db.Provider](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (*service.Resolver, error) {
		return service.NewResolver(do.MustInvoke[*db.Provider](i), do.MustInvoke[*zap.Logger](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ActivityService, error) {
		return service.NewActivityService(
			do.MustInvoke[*mockstore.Store](i),
			do.MustInvoke[queue.Publisher](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.NotificationService, error) {
		return service.NewNotificationService(
			do.MustInvoke[repo.NotificationRepo](i),
			do.MustInvoke[*mockstore.Store](i),
			do.MustInvoke[*service.Resolver](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[*mockstore.Store](i),
			do.MustInvoke[*service.Resolver](i),
			do.MustInvoke[service.ActivityService](i),
			do.MustInvoke[service.NotificationService](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TaskService, error) {
		return service.NewTaskService(
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[repo.CommentRepo](i),
			do.MustInvoke[*mockstore.Store](i),
			do.MustInvoke[*service.Resolver](i),
			do.MustInvoke[service.ActivityService](i),
			do.MustInvoke[service.NotificationService](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.UserService, error) {
		return service.NewUserService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[*mockstore.Store](i),
			do.MustInvoke[*service.Resolver](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TimeEntryService, error) {
		return service.NewTimeEntryService(
			do.MustInvoke[repo.TimeEntryRepo](i),
			do.MustInvoke[*mockstore.Store](i),
			do.MustInvoke[*service.Resolver](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.AvatarService, error) {
		return service.NewAvatarService(
			do.MustInvoke[service.UserService](i),
			do.MustInvoke[service.AvatarStore](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.AnalyticsService, error) {
		return service.NewAnalyticsService(
			do.MustInvoke[service.ProjectService](i),
			do.MustInvoke[service.TaskService](i),
			do.MustInvoke[service.UserService](i),
			do.MustInvoke[service.TimeEntryService](i),
			do.MustInvoke[service.ActivityService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.StatusService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewStatusService(do.MustInvoke[*db.Provider](i), cfg.App.Env), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(do.MustInvoke[service.ProjectService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TaskHandler, error) {
		return handler.NewTaskHandler(do.MustInvoke[service.TaskService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.UserHandler, error) {
		return handler.NewUserHandler(
			do.MustInvoke[service.UserService](i),
			do.MustInvoke[service.AvatarService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.NotificationHandler, error) {
		return handler.NewNotificationHandler(do.MustInvoke[service.NotificationService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TimeEntryHandler, error) {
		return handler.NewTimeEntryHandler(do.MustInvoke[service.TimeEntryService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.SystemHandler, error) {
		return handler.NewSystemHandler(
			do.MustInvoke[service.AnalyticsService](i),
			do.MustInvoke[service.ActivityService](i),
			do.MustInvoke[service.StatusService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.AuthHandler, error) {
		return handler.NewAuthHandler(do.MustInvoke[service.UserService](i), do.MustInvoke[*config.Config](i)), nil
	})

	// Router
	do.Provide(inj, func(i *do.Injector) (*gin.Engine, error) {
		return router.NewRouter(router.RouterDeps{
			Config:              do.MustInvoke[*config.Config](i),
			Log:                 do.MustInvoke[*zap.Logger](i),
			ProjectHandler:      do.MustInvoke[*handler.ProjectHandler](i),
			TaskHandler:         do.MustInvoke[*handler.TaskHandler](i),
			UserHandler:         do.MustInvoke[*handler.UserHandler](i),
			NotificationHandler: do.MustInvoke[*handler.NotificationHandler](i),
			TimeEntryHandler:    do.MustInvoke[*handler.TimeEntryHandler](i),
			SystemHandler:       do.MustInvoke[*handler.SystemHandler](i),
			AuthHandler:         do.MustInvoke[*handler.AuthHandler](i),
		}), nil
	})
}

// Close shuts down every service built through inj that holds a connection.
func Close(inj *do.Injector) {
	log := do.MustInvoke[*zap.Logger](inj)
	if err := inj.Shutdown(); err != nil {
		log.Sugar().Warnw("shutdown", "err", err)
	}
	_ = log.Sync()
}
