package main

import (
	"alcyxob/trainer-dashboard/internal/app"
	"alcyxob/trainer-dashboard/internal/calendar"
	"alcyxob/trainer-dashboard/internal/config"
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/filter"
	"alcyxob/trainer-dashboard/internal/logging"
	"alcyxob/trainer-dashboard/internal/render"
	"alcyxob/trainer-dashboard/internal/repository/memory"
	mongorepo "alcyxob/trainer-dashboard/internal/repository/mongo"
	"alcyxob/trainer-dashboard/internal/service"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configDir string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "trainerctl",
		Short:         "Personal trainer dashboard in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configDir, "config", ".", "directory holding config.yaml")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "log level: debug|info|warn|error")

	root.AddCommand(newCalendarCmd(opts))
	root.AddCommand(newClientsCmd(opts))
	root.AddCommand(newWorkoutsCmd(opts))
	root.AddCommand(newDashboardCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newExercisesCmd(opts))
	root.AddCommand(newTemplateCmd(opts))
	root.AddCommand(newActionCmd(opts))
	root.AddCommand(newSeedCmd(opts))
	return root
}

func loadApp(ctx context.Context, opts *rootOptions) (*app.App, error) {
	_ = godotenv.Load()
	cfg, err := config.LoadConfig(opts.configDir)
	if err != nil {
		return nil, err
	}
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.File == "",
		LogLevel:      opts.logLevel,
		LogFormatJSON: cfg.Log.JSON,
	})
	cfg.Metrics.Enabled = false
	return app.New(ctx, cfg, app.Options{})
}

func newCalendarCmd(opts *rootOptions) *cobra.Command {
	var view, anchor string
	var step int

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Draw the month, week or day calendar",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			vc := a.Controller
			if anchor != "" {
				d, err := domain.ParseDate(anchor, a.Location)
				if err != nil {
					return err
				}
				if _, err := vc.SelectDate(ctx, d); err != nil {
					return err
				}
			}
			if _, err := vc.SetView(ctx, domain.Granularity(strings.ToLower(view))); err != nil {
				return err
			}
			for ; step > 0; step-- {
				if _, err := vc.Next(ctx); err != nil {
					return err
				}
			}
			for ; step < 0; step++ {
				if _, err := vc.Prev(ctx); err != nil {
					return err
				}
			}

			vc.AddRenderer(render.NewTextRenderer(cmd.OutOrStdout()))
			_, err = vc.Refresh(ctx)
			return err
		},
	}
	cmd.Flags().StringVar(&view, "view", string(domain.GranularityMonth), "view: month|week|day")
	cmd.Flags().StringVar(&anchor, "anchor", "", "anchor date YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&step, "step", 0, "periods to move forward (negative: back)")
	return cmd
}

func newClientsCmd(opts *rootOptions) *cobra.Command {
	var search, status string

	cmd := &cobra.Command{
		Use:   "clients",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			st, err := filter.ParseStatusFilter(status)
			if err != nil {
				return err
			}
			a, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			clients, err := a.Clients.List(ctx, filter.ClientFilter{SearchTerm: search, Status: st})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.Clients(clients))
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "match name, email or phone")
	cmd.Flags().StringVar(&status, "status", "all", "all|active|inactive")
	return cmd
}

func newWorkoutsCmd(opts *rootOptions) *cobra.Command {
	var from, to string
	var clientID int64
	var types, statuses []string

	cmd := &cobra.Command{
		Use:   "workouts",
		Short: "List workouts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			f := filter.WorkoutFilter{ClientID: clientID}
			if from != "" {
				if f.From, err = domain.ParseDate(from, a.Location); err != nil {
					return err
				}
			}
			if to != "" {
				if f.To, err = domain.ParseDate(to, a.Location); err != nil {
					return err
				}
			}
			for _, t := range types {
				f.Types = append(f.Types, domain.WorkoutType(strings.ToLower(t)))
			}
			for _, s := range statuses {
				f.Statuses = append(f.Statuses, domain.WorkoutStatus(strings.ToLower(s)))
			}

			workouts, err := a.Workouts.List(ctx, f)
			if err != nil {
				return err
			}
			dir, err := a.Clients.Directory(ctx)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(workouts))
			for _, w := range workouts {
				name, ok := dir.ClientName(w.ClientID)
				if !ok {
					name = calendar.DefaultUnknownClientLabel
				}
				rows = append(rows, []string{strconv.FormatInt(w.ID, 10), w.Date, w.Time, name, string(w.Type), string(w.Status)})
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.Table("Workouts", []string{"ID", "Date", "Time", "Client", "Type", "Status"}, rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first date YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last date YYYY-MM-DD (inclusive)")
	cmd.Flags().Int64Var(&clientID, "client", 0, "client id")
	cmd.Flags().StringSliceVar(&types, "type", nil, "workout types")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "workout statuses")
	return cmd
}

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show today's schedule and upcoming workouts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if limit <= 0 {
				limit = a.Config.Calendar.UpcomingLimit
			}
			d, err := a.Stats.Dashboard(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s  clients: %d (%d active)  workouts: %d  today: %d\n",
				d.Date, d.TotalClients, d.ActiveClients, d.TotalWorkouts, d.TodayWorkouts)

			headers := []string{"Date", "Time", "Client", "Type", "Status"}
			_, _ = fmt.Fprintln(out, render.Table("Today", headers, scheduleRows(d.TodaySchedule)))
			_, _ = fmt.Fprintln(out, render.Table("Upcoming", headers, scheduleRows(d.Upcoming)))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "upcoming workouts to show (default from config)")
	return cmd
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show workout statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := a.Stats.Statistics(ctx)
			if err != nil {
				return err
			}
			var rows [][]string
			for _, st := range domain.WorkoutStatuses {
				rows = append(rows, []string{"status", string(st), strconv.Itoa(s.ByStatus[st])})
			}
			for _, t := range domain.WorkoutTypes {
				rows = append(rows, []string{"type", string(t), strconv.Itoa(s.ByType[t])})
			}
			for _, e := range s.TopExercises {
				rows = append(rows, []string{"exercise", e.Name, strconv.Itoa(e.Count)})
			}
			title := fmt.Sprintf("Statistics (%d workouts)", s.Total)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.Table(title, []string{"Group", "Key", "Count"}, rows))
			return nil
		},
	}
}

func newExercisesCmd(opts *rootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "exercises",
		Short: "Browse the exercise library",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			exercises, err := a.Planner.Exercises(domain.ExerciseCategory(strings.ToLower(category)))
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(exercises))
			for _, ex := range exercises {
				rows = append(rows, []string{strconv.Itoa(ex.ID), ex.Name, string(ex.Category), ex.Equipment, ex.Difficulty})
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.Table("Exercises", []string{"ID", "Name", "Category", "Equipment", "Level"}, rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "chest|back|legs|arms|cardio|stretching")
	return cmd
}

func newTemplateCmd(opts *rootOptions) *cobra.Command {
	tmpl := &cobra.Command{Use: "template", Short: "Workout templates"}

	var workoutType, level string
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate a starter plan for a workout type and level",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			plan, err := a.Planner.GenerateTemplate(domain.WorkoutType(strings.ToLower(workoutType)), domain.TemplateLevel(strings.ToLower(level)))
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(plan.Exercises))
			for _, ex := range plan.Exercises {
				rows = append(rows, []string{strconv.Itoa(ex.Order), ex.Name, strconv.Itoa(ex.Sets), ex.Reps, strconv.Itoa(ex.RestSeconds) + "s"})
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.Table(plan.Name, []string{"#", "Exercise", "Sets", "Reps", "Rest"}, rows))
			return nil
		},
	}
	generate.Flags().StringVar(&workoutType, "type", string(domain.WorkoutStrength), "workout type")
	generate.Flags().StringVar(&level, "level", string(domain.LevelBeginner), "beginner|intermediate")

	tmpl.AddCommand(generate)
	return tmpl
}

func newActionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "action <id> [key=value...]",
		Short: "Run a quick action",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			params := make(map[string]string, len(args)-1)
			for _, kv := range args[1:] {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("argument %q must be key=value", kv)
				}
				params[k] = v
			}
			res, err := a.Commands.Run(ctx, args[0], params)
			if err != nil {
				return fmt.Errorf("%w (available: %s)", err, strings.Join(a.Commands.Actions(), ", "))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", res.Notice.Level, res.Notice.Text)
			return nil
		},
	}
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Copy the demo clients and workouts into MongoDB",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			db, err := a.Database()
			if err != nil {
				return err
			}
			source := mongorepo.NewEntitySource(db)
			source.EnsureIndexes(ctx)
			clients, workouts, err := source.Seed(ctx, memory.DemoSource{})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d clients and %d workouts into %s\n", clients, workouts, a.Config.Database.Name)
			return nil
		},
	}
}

func scheduleRows(items []service.ScheduleItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{it.Date, it.Time, it.ClientName, string(it.Type), string(it.Status)})
	}
	return rows
}
