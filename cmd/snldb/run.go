package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hhllcks/snldb/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full scrape and build all tables",
	Long: `Run performs a complete build of the dataset:
1. Crawls seasons, episodes and titles from the archive
2. Cleans the entity stream (dedupe, defaults, validation)
3. Optionally crawls cast histories and IMDb ratings
4. Derives season boundaries, eligibility, tenure and gender columns

The crawl can be narrowed with --sid/--epid/--tid; ancestor pages of a
targeted id are visited but only targeted records are emitted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bindTargetFlags(cmd)

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := application.Run(ctx); err != nil {
			return fmt.Errorf("run failed: %w", err)
		}

		return nil
	},
}

func bindTargetFlags(cmd *cobra.Command) {
	if tids, _ := cmd.Flags().GetStringSlice("tid"); len(tids) > 0 {
		viper.Set("target_tids", tids)
	}
	if epids, _ := cmd.Flags().GetStringSlice("epid"); len(epids) > 0 {
		viper.Set("target_epids", epids)
	}
	if sids, _ := cmd.Flags().GetIntSlice("sid"); len(sids) > 0 {
		viper.Set("target_sids", sids)
	}
	if ratings, _ := cmd.Flags().GetBool("ratings"); ratings {
		viper.Set("scrape_ratings", true)
	}
	if cast, _ := cmd.Flags().GetBool("cast"); cast {
		viper.Set("scrape_cast", true)
	}
	if airtime, _ := cmd.Flags().GetBool("airtime"); airtime {
		viper.Set("airtime", true)
	}
}

func init() {
	runCmd.Flags().StringSlice("tid", nil, "restrict the crawl to these title ids")
	runCmd.Flags().StringSlice("epid", nil, "restrict the crawl to these episode ids")
	runCmd.Flags().IntSlice("sid", nil, "restrict the crawl to these season ids")
	runCmd.Flags().Bool("ratings", false, "also scrape IMDb episode ratings")
	runCmd.Flags().Bool("cast", false, "also scrape cast season histories")
	runCmd.Flags().Bool("airtime", false, "compute airtime share columns on titles")
	rootCmd.AddCommand(runCmd)
}
