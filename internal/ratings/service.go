package ratings

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
	"github.com/gocolly/colly/extensions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/hhllcks/snldb/internal/domain"
)

const (
	// IMDb's show page for the archive; per-season episode lists hang off it.
	seasonURLFormat = "http://www.imdb.com/title/tt0072562/episodes?season=%d"
	imdbBase        = "http://www.imdb.com"
	imdbGlob        = "*imdb*"

	// Same politeness floor as the archive scraper: one request in flight,
	// at least this much delay between requests.
	minDelay = 500 * time.Millisecond
)

const ctxRating = "rating"

// Service scrapes per-episode vote histograms and demographic breakdowns.
// This is a second, structurally unrelated source; its records join the main
// tables only by (sid, epno).
type Service interface {
	Scrape(ctx context.Context, sids []int) error
}

type service struct {
	log  zerolog.Logger
	cfg  *domain.Config
	sink domain.EntitySink
	ctx  context.Context
}

func NewService(log zerolog.Logger, cfg *domain.Config, sink domain.EntitySink) Service {
	return &service{
		log:  log.With().Str("module", "ratings").Logger(),
		cfg:  cfg,
		sink: sink,
	}
}

func (s *service) newCollector() *colly.Collector {
	c := colly.NewCollector(
		colly.AllowedDomains("www.imdb.com", "imdb.com"),
	)
	if s.cfg.CacheDir != "" {
		c.CacheDir = s.cfg.CacheDir
	}
	extensions.RandomUserAgent(c)

	c.Limit(&colly.LimitRule{
		DomainGlob:  imdbGlob,
		Parallelism: 1,
		Delay:       s.delay(),
	})
	c.OnRequest(func(r *colly.Request) {
		s.log.Debug().Str("url", r.URL.String()).Msg("fetching")
	})
	c.OnError(func(r *colly.Response, err error) {
		s.log.Error().Err(err).Str("url", r.Request.URL.String()).Msg("ratings fetch failed")
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

// Scrape visits one episode-list page per season and one ratings page per
// episode. Episode ordinals come from list position.
func (s *service) Scrape(ctx context.Context, sids []int) error {
	s.ctx = ctx

	seasonC := s.newCollector()
	episodeC := s.newCollector()

	seasonC.OnHTML("html", func(e *colly.HTMLElement) {
		sid, err := strconv.Atoi(e.Request.Ctx.Get("sid"))
		if err != nil {
			s.log.Error().Str("url", e.Request.URL.String()).Msg("season page missing sid context")
			return
		}
		s.visitSeasonList(e, episodeC, sid)
	})
	episodeC.OnHTML("html", func(e *colly.HTMLElement) {
		rating, ok := e.Request.Ctx.GetAny(ctxRating).(*domain.EpisodeRating)
		if !ok {
			s.log.Error().Str("url", e.Request.URL.String()).Msg("ratings page missing episode context")
			return
		}
		if err := parseRatingsPage(e.DOM, rating); err != nil {
			s.log.Warn().Err(err).Int("sid", rating.SID).Int("epno", rating.Epno).
				Msg("skipping unparseable ratings page")
			return
		}
		if err := s.sink.Store(s.ctx, rating); err != nil {
			s.log.Error().Err(err).Msg("failed to store rating")
		}
	})

	for _, sid := range sids {
		rctx := colly.NewContext()
		rctx.Put("sid", strconv.Itoa(sid))
		url := fmt.Sprintf(seasonURLFormat, sid)
		if err := seasonC.Request("GET", url, nil, rctx, nil); err != nil {
			return errors.Wrapf(err, "failed to visit ratings season %d", sid)
		}
	}
	seasonC.Wait()
	episodeC.Wait()
	return nil
}

func (s *service) visitSeasonList(e *colly.HTMLElement, episodeC *colly.Collector, sid int) {
	e.DOM.Find(".eplist > .list_item > .image > a").Each(func(i int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		// Strip the query string and land on the ratings subpage.
		path := strings.SplitN(href, "?", 2)[0]
		if !strings.HasSuffix(path, "/") {
			path += "/"
		}

		rctx := colly.NewContext()
		rctx.Put(ctxRating, &domain.EpisodeRating{
			SID:  sid,
			Epno: i,
		})
		if err := episodeC.Request("GET", imdbBase+path+"ratings", nil, rctx, nil); err != nil {
			s.log.Error().Err(err).Int("sid", sid).Int("epno", i).
				Msg("failed to schedule ratings page")
		}
	})
}

// parseRatingsPage reads the two cellpadding='0' tables: the first is the
// vote histogram (rows run from score 10 down to 1), the second the
// demographic average/count breakdown.
func parseRatingsPage(doc *goquery.Selection, rating *domain.EpisodeRating) error {
	tables := doc.Find("table[cellpadding='0']")
	if tables.Length() < 2 {
		return errors.Errorf("expected 2 ratings tables, found %d", tables.Length())
	}

	rating.ScoreCounts = make(map[int]int)
	var parseErr error
	tables.Eq(0).Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 || parseErr != nil {
			return
		}
		score := 11 - i
		if score < 1 || score > 10 {
			return
		}
		count, err := cellInt(tr.Find("td").Eq(0))
		if err != nil {
			parseErr = errors.Wrapf(err, "histogram row %d", i)
			return
		}
		rating.ScoreCounts[score] = count
	})
	if parseErr != nil {
		return parseErr
	}
	if len(rating.ScoreCounts) != 10 {
		return errors.Errorf("histogram has %d score rows", len(rating.ScoreCounts))
	}

	rating.DemographicCounts = make(map[string]int)
	rating.DemographicAverages = make(map[string]float64)
	tables.Eq(1).Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 || parseErr != nil {
			return
		}
		cells := tr.Find("td")
		if cells.Length() < 3 {
			return
		}
		label := strings.TrimSpace(cells.Eq(0).Text())
		count, err := cellInt(cells.Eq(1))
		if err != nil {
			parseErr = errors.Wrapf(err, "demographic row %q", label)
			return
		}
		avg, err := cellFloat(cells.Eq(2))
		if err != nil {
			parseErr = errors.Wrapf(err, "demographic row %q", label)
			return
		}
		rating.DemographicCounts[label] = count
		rating.DemographicAverages[label] = avg
	})
	return parseErr
}

func cellInt(td *goquery.Selection) (int, error) {
	return strconv.Atoi(cleanCell(td))
}

func cellFloat(td *goquery.Selection) (float64, error) {
	return strconv.ParseFloat(cleanCell(td), 64)
}

// cleanCell strips whitespace, thousands separators and stray non-ASCII from
// a numeric cell.
func cleanCell(td *goquery.Selection) string {
	var b strings.Builder
	for _, r := range td.Text() {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
