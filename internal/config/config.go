package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/hhllcks/snldb/internal/domain"
)

// Load builds the config from viper's merged view of the config file (if
// any), SNLDB_* environment variables, and bound flags.
func Load() (*domain.Config, error) {
	viper.SetDefault("output_dir", "./output")
	viper.SetDefault("cache_dir", "./snl_cache")
	viper.SetDefault("delay_ms", 500)
	viper.SetDefault("confident", true)

	cfg := &domain.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *domain.Config) error {
	if cfg.OutputDir == "" {
		return fmt.Errorf("output_dir is required (set via config file or SNLDB_OUTPUT_DIR)")
	}
	if cfg.DelayMS < 0 {
		return fmt.Errorf("delay_ms must not be negative")
	}
	for _, sid := range cfg.TargetSids {
		if sid < 1 {
			return fmt.Errorf("target sid %d out of range", sid)
		}
	}
	for _, path := range []string{cfg.MaleNamesFile, cfg.FemaleNamesFile} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("name list %s is not readable: %w", path, err)
		}
	}
	return nil
}
