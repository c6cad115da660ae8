package scraper

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/hhllcks/snldb/internal/domain"
)

// specialCaseActors covers real performers with no page on snlarchives.
// Jack Handey is credited in dozens of Deep Thoughts segments without ever
// being linkified or listed in episode credits.
var specialCaseActors = map[string]domain.Actor{
	"Jack Handey": {AID: "Jack Handey", Type: domain.ActorCrew},
}

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Asciify canonicalizes a performer name for use as an aid: combining marks
// are stripped, remaining non-ASCII runes dropped.
func Asciify(name string) string {
	out, _, err := transform.String(deaccent, name)
	if err != nil {
		out = name
	}
	var b strings.Builder
	for _, r := range out {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// actorFromLink resolves a linkified name. The link's path prefix is
// authoritative for the actor type. Returns the raw (un-normalized) display
// name as well, which is the key episode credits are looked up by.
func actorFromLink(anchor *goquery.Selection) (*domain.Actor, string, error) {
	href, _ := anchor.Attr("href")
	var atype domain.ActorType
	switch {
	case strings.HasPrefix(href, "/Guests/"):
		atype = domain.ActorGuest
	case strings.HasPrefix(href, "/Cast/"):
		atype = domain.ActorCast
	case strings.HasPrefix(href, "/Crew/"):
		atype = domain.ActorCrew
	default:
		return nil, "", errors.Wrapf(ErrBadActorLink, "href %q", href)
	}

	rawName := strings.TrimSpace(anchor.Text())
	if rawName == "" {
		return nil, "", errors.Errorf("actor link %q has no name text", href)
	}

	return &domain.Actor{
		AID:  Asciify(rawName),
		URL:  domain.String(href),
		Type: atype,
	}, rawName, nil
}

// resolveUnlinked resolves an un-linkified name on a role table: special
// cases first, then the per-episode extra-cast lookup. A miss synthesizes an
// unknown-typed actor keyed by the literal name instead of aborting the page.
func (s *service) resolveUnlinked(name string, extra map[string]domain.Actor, tid string) *domain.Actor {
	if a, ok := specialCaseActors[name]; ok {
		return &a
	}
	if a, ok := extra[name]; ok {
		return &a
	}
	s.log.Warn().Str("tid", tid).Str("name", name).
		Msg("actor not in episode credits, synthesizing unknown actor")
	return &domain.Actor{AID: Asciify(name), Type: domain.ActorUnknown}
}

// idFromURL extracts the query-string id the site embeds in its URLs,
// e.g. "/Episodes/?20020518" yields "20020518".
func idFromURL(url string) string {
	idx := strings.LastIndex(url, "?")
	if idx < 0 {
		return ""
	}
	return url[idx+1:]
}
