package scraper

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"

	"github.com/hhllcks/snldb/internal/domain"
)

// episodeMeta is what the epGuests metadata table yields: air date, episode
// ordinal, the hosts, and the extra-cast lookup (name → actor) for everyone
// credited at episode level. Those names are not independently linkified on
// the segment pages, so this lookup travels down into the title visits.
type episodeMeta struct {
	aired string
	epno  int
	hosts []*domain.Actor
	extra map[string]domain.Actor
}

var hostLabels = map[string]struct{}{
	"Host:": {}, "Hosts:": {},
}

var extraCastLabels = map[string]struct{}{
	"Host:": {}, "Hosts:": {},
	"Cameo:": {}, "Cameos:": {},
	"Special Guest:": {}, "Special Guests:": {},
	"Musical Guest:": {}, "Musical Guests:": {},
	"Filmed Cameo:": {}, "Filmed Cameos:": {},
}

// parseEpisodeMeta walks the two-column metadata table keyed by row labels.
// Unrecognized labels are logged and ignored. errEpnoUnparseable means the
// episode is a special and should be skipped without emitting anything.
func (s *service) parseEpisodeMeta(doc *goquery.Selection, epid string) (*episodeMeta, error) {
	meta := &episodeMeta{extra: make(map[string]domain.Actor)}
	var sawAired bool
	var parseErr error

	doc.Find("table.epGuests tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		cells := tr.Find("td")
		if cells.Length() < 2 {
			return true
		}
		label := strings.TrimSpace(cells.Eq(0).Text())

		switch {
		case label == "Aired:":
			if err := parseAiredCell(cells.Eq(1), meta); err != nil {
				parseErr = err
				return false
			}
			sawAired = true

		case isExtraCastLabel(label):
			_, isHost := hostLabels[label]
			cells.Eq(1).Find("a").Each(func(_ int, a *goquery.Selection) {
				actor, rawName, err := actorFromLink(a)
				if err != nil {
					s.log.Warn().Err(err).Str("epid", epid).Msg("skipping bad credit link")
					return
				}
				if isHost {
					meta.hosts = append(meta.hosts, actor)
				}
				meta.extra[rawName] = *actor
			})

		default:
			s.log.Debug().Str("epid", epid).Str("label", label).Msg("ignoring metadata row")
		}
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}
	if !sawAired {
		return nil, errors.Errorf("episode %s has no Aired row", epid)
	}
	return meta, nil
}

// parseAiredCell splits the air-date cell's text nodes, which come as
// e.g. ["October 4, 2014 (", "S40", "E2 / #768)"].
func parseAiredCell(td *goquery.Selection, meta *episodeMeta) error {
	values := textNodes(td)
	if len(values) < 3 {
		return errors.Wrapf(errEpnoUnparseable, "aired cell has %d text nodes", len(values))
	}

	datestr := values[0]
	if len(datestr) < 2 {
		return errors.Wrapf(errEpnoUnparseable, "aired date %q too short", datestr)
	}
	meta.aired = strings.TrimSpace(datestr[:len(datestr)-2])

	// "E2 / #768)" → ordinal 2, stored zero-based.
	fields := strings.Fields(values[2])
	if len(fields) == 0 || len(fields[0]) < 2 {
		return errors.Wrapf(errEpnoUnparseable, "ordinal text %q", values[2])
	}
	n, err := strconv.Atoi(fields[0][1:])
	if err != nil {
		return errors.Wrapf(errEpnoUnparseable, "ordinal text %q", values[2])
	}
	meta.epno = n - 1
	return nil
}

func isExtraCastLabel(label string) bool {
	_, ok := extraCastLabels[label]
	return ok
}

// textNodes collects the non-blank text nodes under a cell's p element,
// preserving document order. Falls back to the cell itself when the site
// omits the p wrapper.
func textNodes(sel *goquery.Selection) []string {
	scope := sel.Find("p")
	if scope.Length() == 0 {
		scope = sel
	}
	var out []string
	scope.Contents().Each(func(_ int, n *goquery.Selection) {
		if t := n.Text(); strings.TrimSpace(t) != "" {
			out = append(out, t)
		}
	})
	return out
}
