package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/uam-aleman/wochenkontext/internal/curriculum"
	"github.com/uam-aleman/wochenkontext/internal/platform/cache"
	"github.com/uam-aleman/wochenkontext/internal/platform/config"
	"github.com/uam-aleman/wochenkontext/internal/platform/database"
	"github.com/uam-aleman/wochenkontext/internal/review"
	"github.com/uam-aleman/wochenkontext/internal/submission"
)

func newSubmissionsCmd() *cobra.Command {
	var f submission.Filter

	cmd := &cobra.Command{
		Use:   "submissions",
		Short: "List stored submissions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Database.URL == "" {
				return fmt.Errorf("ALEMAN_DATABASE_URL is not set")
			}

			ctx := cmd.Context()
			db, err := database.New(ctx, cfg.Database.URL,
				database.WithPoolSize(2, 1),
				database.WithApplicationName("wochectl"),
			)
			if err != nil {
				return err
			}
			defer db.Close()

			store, err := submission.NewPostgresStore(db.Pool)
			if err != nil {
				return err
			}
			reg, err := curriculum.Default()
			if err != nil {
				return err
			}
			recs, err := submission.NewService(reg, review.PendingGenerator{}, store).List(ctx, f)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CREATED\tSESSION\tSTUDENT\tMODEL\tID")
			for _, r := range recs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					r.CreatedAt.Local().Format(time.DateTime), r.SessionID, r.StudentName, r.Model, r.ID)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&f.Level, "level", "", "course alias, e.g. aleman1 or A2")
	cmd.Flags().StringVar(&f.WeekID, "week", "", "week, e.g. w01")
	cmd.Flags().IntVar(&f.Limit, "limit", submission.DefaultListLimit, "maximum rows")
	return cmd
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the feedback cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "flush",
		Short: "Delete all cached feedback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Cache.URL == "" {
				return fmt.Errorf("ALEMAN_CACHE_URL is not set")
			}

			c, err := cache.New(cmd.Context(), cfg.Cache.URL)
			if err != nil {
				return err
			}
			defer c.Close()

			n, err := c.DeletePrefix(cmd.Context(), review.FeedbackKeyPrefix)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d cached feedback entries\n", n)
			return nil
		},
	})
	return cmd
}
