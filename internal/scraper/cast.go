package scraper

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
	"github.com/pkg/errors"

	"github.com/hhllcks/snldb/internal/domain"
	"github.com/hhllcks/snldb/internal/ids"
)

// ScrapeCast walks the full cast list and emits one Cast record per
// (member, season) from the popup blocks on each member's page. Roughly one
// request per cast member, so around 500 for a full run.
func (s *service) ScrapeCast(ctx context.Context) error {
	s.ctx = ctx

	list := s.newCollector()
	member := s.newCollector()

	list.OnHTML("div.contentFullList a[href]", func(e *colly.HTMLElement) {
		url := e.Request.AbsoluteURL(e.Attr("href"))
		if err := member.Request("GET", url, nil, nil, nil); err != nil {
			s.log.Error().Err(err).Str("url", url).Msg("failed to schedule cast member visit")
		}
	})
	member.OnHTML("html", func(e *colly.HTMLElement) {
		s.visitCastMember(e)
	})

	if err := list.Visit(s.base + "/Cast/?FullList"); err != nil {
		return errors.Wrap(err, "failed to visit cast list")
	}
	return nil
}

func (s *service) visitCastMember(e *colly.HTMLElement) {
	pageTitle := e.DOM.Find("head title").Text()
	parts := strings.Split(pageTitle, "|")
	aid := Asciify(parts[len(parts)-1])
	if aid == "" {
		s.log.Error().Str("url", e.Request.URL.String()).Msg("cast page has no name in title")
		return
	}

	// The first run of popup_N blocks are seasons; blocks for characters and
	// impressions follow immediately after, so stop at the first non-season.
	for i := 1; ; i++ {
		popup := e.DOM.Find(fmt.Sprintf("#popup_%d", i))
		if popup.Length() == 0 {
			break
		}
		cast, ok := s.parseCastPopup(popup, aid)
		if !ok {
			break
		}
		if s.targets.Season(cast.SID) {
			s.emit(cast)
		}
	}
}

// parseCastPopup reads one season block. Returns ok=false once the block is
// not a season block (the caller has fallen off the end of the run).
func (s *service) parseCastPopup(popup *goquery.Selection, aid string) (*domain.Cast, bool) {
	cast := &domain.Cast{AID: aid}
	seasonSeen := false

	popup.Find("p").Each(func(i int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())

		if i == 0 {
			href, _ := p.Find("a").First().Attr("href")
			if !strings.HasPrefix(href, "/Seasons") {
				return
			}
			year, err := strconv.Atoi(idFromURL(href))
			if err != nil {
				s.log.Warn().Str("aid", aid).Str("href", href).Msg("bad season link on cast page")
				return
			}
			cast.SID = ids.SidFromYear(year)
			seasonSeen = true
			return
		}

		switch {
		case strings.HasPrefix(text, "Featured Player"):
			cast.Featured = domain.Bool(true)
		case strings.Contains(text, "episode"):
			href, _ := p.Find("a").First().Attr("href")
			epid := idFromURL(href)
			switch {
			case strings.HasPrefix(text, "First episode"):
				cast.FirstEpid = domain.String(epid)
			case strings.HasPrefix(text, "Last episode"):
				cast.LastEpid = domain.String(epid)
			default:
				s.log.Warn().Str("aid", aid).Str("text", text).Msg("unrecognized cast episode text")
			}
		case text == "Update":
			cast.UpdateAnchor = domain.Bool(true)
		default:
			s.log.Debug().Str("aid", aid).Str("text", text).Msg("ignoring cast popup text")
		}
	})

	if !seasonSeen {
		return nil, false
	}
	return cast, true
}
