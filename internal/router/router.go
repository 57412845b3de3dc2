package router

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/Maxxjx/ProjectPulse-sub001/docs"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/config"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/middleware"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/handler"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/serializer"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/telemetry"
)

type RouterDeps struct {
	Config              *config.Config
	Log                 *zap.Logger
	ProjectHandler      *handler.ProjectHandler
	TaskHandler         *handler.TaskHandler
	UserHandler         *handler.UserHandler
	NotificationHandler *handler.NotificationHandler
	TimeEntryHandler    *handler.TimeEntryHandler
	SystemHandler       *handler.SystemHandler
	AuthHandler         *handler.AuthHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	serializer.SetLogger(d.Log)

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, rec any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.InternalErr(fmt.Errorf("panic: %v", rec)))
	}))
	r.Use(corsMiddleware(d.Config.Cors))
	r.Use(middleware.RequestID())

	if telemetry.Enabled(d.Config) {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.Metrics())
	r.Use(middleware.ZapLogger(d.Log))

	// ops
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.Use(middleware.Session(d.Config))

		v1.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "pong"}) })

		v1.POST("/auth/login", d.AuthHandler.Login)

		projects := v1.Group("/projects")
		{
			projects.GET("", d.ProjectHandler.ListProjects)
			projects.POST("", d.ProjectHandler.CreateProject)
			projects.GET("/:id", d.ProjectHandler.GetProject)
			projects.PATCH("/:id", d.ProjectHandler.UpdateProject)
			projects.DELETE("/:id", d.ProjectHandler.DeleteProject)
		}

		tasks := v1.Group("/tasks")
		{
			tasks.GET("", d.TaskHandler.ListTasks)
			tasks.POST("", d.TaskHandler.CreateTask)
			tasks.GET("/:id", d.TaskHandler.GetTask)
			tasks.PATCH("/:id", d.TaskHandler.UpdateTask)
			tasks.DELETE("/:id", d.TaskHandler.DeleteTask)

			tasks.GET("/:id/comments", d.TaskHandler.ListComments)
			tasks.POST("/:id/comments", d.TaskHandler.AddComment)
		}

		users := v1.Group("/users")
		{
			users.GET("", d.UserHandler.ListUsers)
			users.POST("", d.UserHandler.CreateUser)
			users.GET("/:id", d.UserHandler.GetUser)
			users.PATCH("/:id", d.UserHandler.UpdateUser)
			users.DELETE("/:id", d.UserHandler.DeleteUser)

			users.PUT("/:id/avatar", d.UserHandler.UploadAvatar)
			users.GET("/:id/avatar", d.UserHandler.GetAvatar)
		}

		v1.GET("/notifications", d.NotificationHandler.ListNotifications)
		v1.PATCH("/notifications", d.NotificationHandler.UpdateNotifications)

		entries := v1.Group("/time-entries", middleware.RequireSession())
		{
			entries.GET("", d.TimeEntryHandler.ListTimeEntries)
			entries.POST("", d.TimeEntryHandler.CreateTimeEntry)
		}

		v1.GET("/analytics", d.SystemHandler.GetAnalytics)
		v1.GET("/activity", d.SystemHandler.ListActivity)
		v1.GET("/system/status", d.SystemHandler.GetStatus)
	}
	return r
}

func corsMiddleware(cfg config.CorsCfg) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{handler.SourceHeader, middleware.RequestIDHeader, "X-Trace-Id"},
	}
	if len(cfg.AllowOrigins) == 0 || slices.Contains(cfg.AllowOrigins, "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.AllowOrigins
		cc.AllowCredentials = true
	}
	return cors.New(cc)
}
