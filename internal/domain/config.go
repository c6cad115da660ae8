package domain

// Config is the full configuration surface, loaded by internal/config from
// viper (config file + SNLDB_* env vars + flags).
type Config struct {
	// Restrict the crawl to specific ids. Ancestor ids implied by a tid
	// (its epid and sid) are added automatically. All empty = crawl
	// everything.
	TargetTids  []string `mapstructure:"target_tids"`
	TargetEpids []string `mapstructure:"target_epids"`
	TargetSids  []int    `mapstructure:"target_sids"`

	// ScrapeRatings toggles the IMDb ratings crawl.
	ScrapeRatings bool `mapstructure:"scrape_ratings"`
	// ScrapeCast toggles the cast-history crawl (one request per cast member).
	ScrapeCast bool `mapstructure:"scrape_cast"`
	// Airtime toggles the optional airtime share columns on titles.
	Airtime bool `mapstructure:"airtime"`
	// Confident collapses "mostly male"/"mostly female" gender guesses to
	// the unqualified label.
	Confident bool `mapstructure:"confident"`

	OutputDir string `mapstructure:"output_dir"`
	CacheDir  string `mapstructure:"cache_dir"`

	// DelayMS is the minimum delay between requests to the same origin.
	// Values below the politeness floor are raised to it; requests never
	// run more than one at a time regardless of configuration.
	DelayMS int `mapstructure:"delay_ms"`

	// Extra full-name gender override lists (yaml, one list of names each).
	MaleNamesFile   string `mapstructure:"male_names_file"`
	FemaleNamesFile string `mapstructure:"female_names_file"`
}
