package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hhllcks/snldb/internal/app"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Re-run enrichment over already-scraped tables",
	Long: `Enrich loads the table files from the output directory and re-derives
all computed columns and tables (join columns, season boundaries, cast
eligibility, tenure, gender, optional airtime shares) without re-crawling.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if airtime, _ := cmd.Flags().GetBool("airtime"); airtime {
			viper.Set("airtime", true)
		}

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		if err := application.Enrich(context.Background()); err != nil {
			return fmt.Errorf("enrich failed: %w", err)
		}

		return nil
	},
}

func init() {
	enrichCmd.Flags().Bool("airtime", false, "compute airtime share columns on titles")
	rootCmd.AddCommand(enrichCmd)
}
