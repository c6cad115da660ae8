package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hhllcks/snldb/internal/config"
	"github.com/hhllcks/snldb/internal/database"
	"github.com/hhllcks/snldb/internal/domain"
	"github.com/hhllcks/snldb/internal/enrich"
	"github.com/hhllcks/snldb/internal/gender"
	"github.com/hhllcks/snldb/internal/logger"
	"github.com/hhllcks/snldb/internal/pipeline"
	"github.com/hhllcks/snldb/internal/ratings"
	"github.com/hhllcks/snldb/internal/repository"
	"github.com/hhllcks/snldb/internal/scraper"
)

// App holds the wired application: the scrape stream flows through the
// cleaning pipeline into the file tables, the sqlite tables, and the
// in-memory tables that enrichment derives from.
type App struct {
	log    zerolog.Logger
	config *domain.Config

	tables   *domain.Tables
	fileRepo *repository.FileRepository
	detector *gender.Detector
	enricher enrich.Service
}

func NewApp() (*App, error) {
	log := logger.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	detector, err := gender.NewDetector(log, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gender detector: %w", err)
	}

	return &App{
		log:      log,
		config:   cfg,
		tables:   domain.NewTables(),
		fileRepo: repository.NewFileRepository(log, cfg.OutputDir),
		detector: detector,
		enricher: enrich.NewService(log, cfg),
	}, nil
}

// Run executes the full scrape: crawl, clean, persist, then enrich the
// materialized tables and persist them again.
func (a *App) Run(ctx context.Context) error {
	db, err := database.NewDB(a.config.OutputDir, a.log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	entityRepo := database.NewEntityRepo(a.log, db)

	sink := domain.MultiSink{
		domain.TablesSink{Tables: a.tables},
		a.fileRepo,
		entityRepo,
	}
	pipe := pipeline.New(a.log, sink)

	scrapeService, err := scraper.NewService(a.log, a.config, pipe)
	if err != nil {
		return fmt.Errorf("failed to initialize scraper: %w", err)
	}

	if err := scrapeService.Scrape(ctx); err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	if a.config.ScrapeCast {
		if err := scrapeService.ScrapeCast(ctx); err != nil {
			return fmt.Errorf("cast scrape failed: %w", err)
		}
	}

	if a.config.ScrapeRatings {
		ratingService := ratings.NewService(a.log, a.config, pipe)
		if err := ratingService.Scrape(ctx, a.scrapedSids()); err != nil {
			return fmt.Errorf("ratings scrape failed: %w", err)
		}
	}

	if err := a.fileRepo.Close(); err != nil {
		return fmt.Errorf("failed to close output tables: %w", err)
	}

	if err := a.enrichTables(ctx, a.tables, entityRepo); err != nil {
		return err
	}

	a.logStatistics(a.tables)
	return nil
}

// Enrich re-runs enrichment and gender annotation over tables persisted by
// an earlier run, without touching the network.
func (a *App) Enrich(ctx context.Context) error {
	tables, err := a.fileRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tables: %w", err)
	}

	db, err := database.NewDB(a.config.OutputDir, a.log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := a.enrichTables(ctx, tables, database.NewEntityRepo(a.log, db)); err != nil {
		return err
	}

	a.logStatistics(tables)
	return nil
}

func (a *App) enrichTables(ctx context.Context, tables *domain.Tables, entityRepo domain.EntityRepository) error {
	if err := a.enricher.Enrich(tables); err != nil {
		return fmt.Errorf("enrichment failed: %w", err)
	}
	a.detector.Annotate(tables)

	if err := a.fileRepo.Save(ctx, tables); err != nil {
		return fmt.Errorf("failed to save enriched tables: %w", err)
	}
	if err := entityRepo.Save(ctx, tables); err != nil {
		return fmt.Errorf("failed to persist enriched tables: %w", err)
	}
	return nil
}

func (a *App) scrapedSids() []int {
	seen := make(map[int]struct{})
	var sids []int
	for _, s := range a.tables.Seasons {
		if _, ok := seen[s.SID]; ok {
			continue
		}
		seen[s.SID] = struct{}{}
		sids = append(sids, s.SID)
	}
	return sids
}

func (a *App) logStatistics(tables *domain.Tables) {
	a.log.Info().
		Int("seasons", len(tables.Seasons)).
		Int("episodes", len(tables.Episodes)).
		Int("titles", len(tables.Titles)).
		Int("actors", len(tables.Actors)).
		Int("appearances", len(tables.Appearances)).
		Int("casts", len(tables.Casts)).
		Int("characters", len(tables.Characters)).
		Int("impressions", len(tables.Impressions)).
		Int("sketches", len(tables.Sketches)).
		Int("ratings", len(tables.Ratings)).
		Int("tenures", len(tables.Tenures)).
		Msg("=== FINAL STATISTICS ===")
}
