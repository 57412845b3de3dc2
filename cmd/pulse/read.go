package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/client"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/config"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/logger"
)

var (
	apiURL        string
	projectStatus string
	taskProject   uint
	taskAssignee  uint
	taskStatus    string
)

func newClient() (*client.Client, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New("warn")
	if err != nil {
		return nil, nil, err
	}
	base := cfg.Client.BaseURL
	if apiURL != "" {
		base = apiURL
	}

	opts := []client.Option{client.WithLogger(log), client.WithToken(cfg.Client.Token)}
	cleanup := func() { _ = log.Sync() }
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		opts = append(opts, client.WithCache(client.NewRedisCache(rdb, "", 5*time.Minute)))
		cleanup = func() {
			_ = rdb.Close()
			_ = log.Sync()
		}
	}
	return client.New(base, opts...), cleanup, nil
}

func await[T any](ctx context.Context, h *client.Hook[T], params url.Values) (client.State[T], error) {
	defer h.Close()
	h.SetParams(params)
	st, err := h.Wait(ctx)
	if err != nil {
		return st, err
	}
	if st.Status == client.StatusError {
		return st, st.Err
	}
	if st.Fallback {
		fmt.Fprintln(os.Stderr, "warning: API unreachable, showing sample data")
	}
	return st, nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the API answers from the database or the sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		st, err := c.Status(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
		fmt.Fprintf(w, "environment\t%s\n", st.Environment)
		fmt.Fprintf(w, "database connected\t%t\n", st.DatabaseConnected)
		fmt.Fprintf(w, "using mock data\t%t\n", st.UsingMockData)
		fmt.Fprintf(w, "checked at\t%s\n", st.Timestamp.Format(time.RFC3339))
		return w.Flush()
	},
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		params := url.Values{}
		if projectStatus != "" {
			params.Set("status", projectStatus)
		}
		st, err := await(cmd.Context(), c.Projects(), params)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSTATUS\tPROGRESS\tBUDGET\tSPENT")
		for _, p := range st.Data {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d%%\t%.2f\t%.2f\n", p.ID, p.Name, p.Status, p.Progress, p.Budget, p.Spent)
		}
		fmt.Fprintf(w, "\nsource: %s\n", st.Source)
		return w.Flush()
	},
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		params := url.Values{}
		if taskProject != 0 {
			params.Set("projectId", strconv.FormatUint(uint64(taskProject), 10))
		}
		if taskAssignee != 0 {
			params.Set("assigneeId", strconv.FormatUint(uint64(taskAssignee), 10))
		}
		if taskStatus != "" {
			params.Set("status", taskStatus)
		}
		st, err := await(cmd.Context(), c.Tasks(), params)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPROJECT\tTITLE\tSTATUS\tPRIORITY\tDEADLINE")
		for _, t := range st.Data {
			deadline := "-"
			if t.Deadline != nil {
				deadline = t.Deadline.Format(time.DateOnly)
			}
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n", t.ID, t.ProjectID, t.Title, t.Status, t.Priority, deadline)
		}
		fmt.Fprintf(w, "\nsource: %s\n", st.Source)
		return w.Flush()
	},
}

func init() {
	for _, cmd := range []*cobra.Command{statusCmd, projectsCmd, tasksCmd} {
		cmd.Flags().StringVar(&apiURL, "api", "", "API base URL (defaults to client.baseURL)")
	}
	projectsCmd.Flags().StringVar(&projectStatus, "status", "", "filter by project status")
	tasksCmd.Flags().UintVar(&taskProject, "project", 0, "filter by project id")
	tasksCmd.Flags().UintVar(&taskAssignee, "assignee", 0, "filter by assignee id")
	tasksCmd.Flags().StringVar(&taskStatus, "status", "", "filter by task status")
}
