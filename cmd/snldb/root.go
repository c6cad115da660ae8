package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "snldb",
	Short: "Build a relational dataset of the SNL archives",
	Long: `snldb crawls www.snlarchives.net and builds normalized tables of
seasons, episodes, titles, performers and their appearances, plus derived
tables like per-cast-member tenure. Optionally joins in IMDb episode
ratings.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.snldb.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().String("output-dir", "./output", "directory the table files and database are written to")
	rootCmd.PersistentFlags().String("cache-dir", "./snl_cache", "directory for caching fetched pages")
	rootCmd.PersistentFlags().Int("delay-ms", 500, "minimum delay between requests in milliseconds")

	// Bind flags to viper
	viper.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("output-dir"))
	viper.BindPFlag("cache_dir", rootCmd.PersistentFlags().Lookup("cache-dir"))
	viper.BindPFlag("delay_ms", rootCmd.PersistentFlags().Lookup("delay-ms"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in home directory and current directory
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".snldb")
		viper.SetConfigName("config")
	}

	// Environment variables
	viper.SetEnvPrefix("SNLDB")
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
