// Package scraper walks snlarchives.net and emits typed entities. The
// traversal is a four-level tree (season index → season → episode → title)
// with one collector and one handler per page kind; parent context travels
// down in the request context, never through shared crawler state.
package scraper

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
	"github.com/gocolly/colly/extensions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/hhllcks/snldb/internal/domain"
	"github.com/hhllcks/snldb/internal/ids"
)

const (
	baseURL      = "http://www.snlarchives.net"
	archivesGlob = "*snlarchives*"

	// Politeness floor. One request in flight at a time, at least this much
	// delay between requests to the origin. This is an external-courtesy
	// constraint, not a tuning knob.
	minDelay = 500 * time.Millisecond
)

const (
	ctxSeason    = "season"
	ctxEpisode   = "episode"
	ctxTitle     = "title"
	ctxExtraCast = "extracast"
)

type Service interface {
	Scrape(ctx context.Context) error
	ScrapeCast(ctx context.Context) error
}

type service struct {
	log     zerolog.Logger
	cfg     *domain.Config
	sink    domain.EntitySink
	targets *Targets
	base    string

	ctx context.Context
}

func NewService(log zerolog.Logger, cfg *domain.Config, sink domain.EntitySink) (Service, error) {
	targets, err := NewTargets(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "invalid crawl targets")
	}
	return &service{
		log:     log.With().Str("module", "scraper").Logger(),
		cfg:     cfg,
		sink:    sink,
		targets: targets,
		base:    baseURL,
	}, nil
}

func (s *service) newCollector() *colly.Collector {
	opts := []func(*colly.Collector){
		colly.AllowedDomains("www.snlarchives.net", "snlarchives.net"),
	}
	if s.cfg.CacheDir != "" {
		opts = append(opts, colly.CacheDir(s.cfg.CacheDir))
	}
	c := colly.NewCollector(opts...)
	extensions.RandomUserAgent(c)

	c.Limit(&colly.LimitRule{
		DomainGlob:  archivesGlob,
		Parallelism: 1,
		Delay:       s.delay(),
	})
	c.OnRequest(func(r *colly.Request) {
		s.log.Debug().Str("url", r.URL.String()).Msg("visiting")
	})
	c.OnError(func(r *colly.Response, err error) {
		s.log.Error().Err(err).Str("url", r.Request.URL.String()).Msg("fetch failed")
	})
	return c
}

func (s *service) delay() time.Duration {
	d := time.Duration(s.cfg.DelayMS) * time.Millisecond
	if d < minDelay {
		d = minDelay
	}
	return d
}

func (s *service) emit(e domain.Entity) {
	if err := s.sink.Store(s.ctx, e); err != nil {
		s.log.Error().Err(err).Str("kind", string(e.Kind())).Msg("failed to store entity")
	}
}

// Scrape runs the full season-index traversal.
func (s *service) Scrape(ctx context.Context) error {
	s.ctx = ctx

	index := s.newCollector()
	seasonC := s.newCollector()
	episodeC := s.newCollector()
	titleC := s.newCollector()

	index.OnHTML("div.thumbRectInner", func(e *colly.HTMLElement) {
		s.visitSeasonThumb(e, seasonC)
	})
	seasonC.OnHTML("a[href]", func(e *colly.HTMLElement) {
		s.visitEpisodeLink(e, episodeC)
	})
	episodeC.OnHTML("html", func(e *colly.HTMLElement) {
		s.visitEpisode(e, titleC)
	})
	titleC.OnHTML("html", func(e *colly.HTMLElement) {
		title := e.Request.Ctx.GetAny(ctxTitle).(*domain.Title)
		extra := e.Request.Ctx.GetAny(ctxExtraCast).(map[string]domain.Actor)
		s.visitTitle(e.DOM, title, extra)
	})

	if err := index.Visit(s.base + "/Seasons/"); err != nil {
		return errors.Wrap(err, "failed to visit season index")
	}
	return nil
}

// visitSeasonThumb handles one season thumbnail on the index page.
func (s *service) visitSeasonThumb(e *colly.HTMLElement, seasonC *colly.Collector) {
	sid, err := strconv.Atoi(strings.TrimSpace(e.Text))
	if err != nil {
		s.log.Error().Err(err).Str("text", e.Text).Msg("malformed season thumbnail")
		return
	}
	season := &domain.Season{SID: sid, Year: ids.YearFromSid(sid)}
	if !s.targets.Season(sid) {
		return
	}
	s.emit(season)

	cctx := colly.NewContext()
	cctx.Put(ctxSeason, season)
	url := e.Request.AbsoluteURL("?" + strconv.Itoa(season.Year))
	if err := seasonC.Request("GET", url, nil, cctx, nil); err != nil {
		s.log.Error().Err(err).Str("url", url).Msg("failed to schedule season visit")
	}
}

// visitEpisodeLink filters a season page's links down to episode permalinks.
func (s *service) visitEpisodeLink(e *colly.HTMLElement, episodeC *colly.Collector) {
	href := e.Attr("href")
	if !strings.HasPrefix(href, "/Episodes/?") || len(href) != 19 {
		return
	}
	epid := idFromURL(href)
	if !s.targets.Episode(epid) {
		s.log.Debug().Str("epid", epid).Msg("pruning uninteresting episode")
		return
	}
	cctx := colly.NewContext()
	cctx.Put(ctxSeason, e.Request.Ctx.GetAny(ctxSeason))
	if err := episodeC.Request("GET", e.Request.AbsoluteURL(href), nil, cctx, nil); err != nil {
		s.log.Error().Err(err).Str("epid", epid).Msg("failed to schedule episode visit")
	}
}

// visitEpisode parses the metadata table, emits the episode and its hosts,
// and schedules a title visit per segment block in document order.
func (s *service) visitEpisode(e *colly.HTMLElement, titleC *colly.Collector) {
	season := e.Request.Ctx.GetAny(ctxSeason).(*domain.Season)
	epid := idFromURL(e.Request.URL.String())

	meta, err := s.parseEpisodeMeta(e.DOM, epid)
	if err != nil {
		if errors.Is(err, errEpnoUnparseable) {
			s.log.Warn().Err(err).Str("epid", epid).Msg("skipping special episode")
			return
		}
		s.log.Error().Err(err).Str("epid", epid).Msg("aborting episode page")
		return
	}
	if len(meta.hosts) == 0 {
		s.log.Error().Err(ErrNoHost).Str("epid", epid).Msg("aborting episode page")
		return
	}

	episode := &domain.Episode{Epid: epid, Epno: meta.epno, SID: season.SID, Aired: meta.aired}
	s.emit(episode)
	for _, h := range meta.hosts {
		s.emit(&domain.Host{Epid: epid, AID: h.AID})
	}

	e.DOM.Find("div.sketchWrapper").Each(func(order int, sel *goquery.Selection) {
		s.visitSegmentBlock(e, titleC, sel, episode, meta, order)
	})
}

// visitSegmentBlock handles one segment block on an episode page.
func (s *service) visitSegmentBlock(e *colly.HTMLElement, titleC *colly.Collector, sel *goquery.Selection, episode *domain.Episode, meta *episodeMeta, order int) {
	href, _ := sel.Find("a").First().Attr("href")
	tid := idFromURL(href)
	if tid == "" {
		s.log.Error().Str("epid", episode.Epid).Int("order", order).Msg("segment block has no permalink")
		return
	}
	if !s.targets.Title(tid) {
		return
	}

	title := &domain.Title{Tid: tid, Epid: episode.Epid, Order: order}
	name := strings.TrimSpace(sel.Find(".title").First().Text())
	if name != "" {
		title.Name = domain.String(name)
	}
	title.Category = domain.Category(strings.TrimSpace(sel.Find(".type").First().Text()))

	if titleURL, ok := sel.Find(".title a").First().Attr("href"); ok {
		switch {
		case strings.HasPrefix(titleURL, "/Sketches/"):
			skid := idFromURL(titleURL)
			title.Skid = domain.String(skid)
			s.emit(&domain.Sketch{Skid: skid, Name: name})
		case strings.HasPrefix(titleURL, "/Commercials/"):
			// Some ads link to their own pages; nothing worth keeping there.
		default:
			s.log.Warn().Str("tid", tid).Str("url", titleURL).Msg("unrecognized title link")
		}
	}

	cctx := colly.NewContext()
	cctx.Put(ctxSeason, e.Request.Ctx.GetAny(ctxSeason))
	cctx.Put(ctxEpisode, episode)
	cctx.Put(ctxTitle, title)
	cctx.Put(ctxExtraCast, meta.extra)
	if err := titleC.Request("GET", e.Request.AbsoluteURL(href), nil, cctx, nil); err != nil {
		s.log.Error().Err(err).Str("tid", tid).Msg("failed to schedule title visit")
	}
}
