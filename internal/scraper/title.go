package scraper

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"

	"github.com/hhllcks/snldb/internal/domain"
)

const voiceSuffix = " (voice)"

// parseCastRow resolves one role-table row into its actor and appearance.
// Linkified names carry their own identity; unlinked names fall back to the
// cell's class hint for capacity and the extra-cast lookup for identity.
func (s *service) parseCastRow(row *goquery.Selection, extra map[string]domain.Actor, tid string) (*domain.Actor, *domain.Appearance, error) {
	cells := row.Find("td")
	if cells.Length() == 0 {
		return nil, nil, errors.New("cast row has no cells")
	}

	actorCell := cells.Eq(0)
	link := actorCell.Find("a").First()

	capacity := domain.CapacityCast
	var actor *domain.Actor
	if link.Length() > 0 {
		a, _, err := actorFromLink(link)
		if err != nil {
			return nil, nil, err
		}
		actor = a
	} else {
		name := strings.TrimSpace(actorCell.Text())
		if name == "" {
			return nil, nil, errors.New("cast row has empty actor cell")
		}
		if class, ok := actorCell.Attr("class"); ok && class != "" {
			capacity = domain.Capacity(class)
		} else {
			s.log.Warn().Str("tid", tid).Str("name", name).Msg("actor cell has no capacity hint")
			capacity = domain.CapacityUnknown
		}
		actor = s.resolveUnlinked(name, extra, tid)
	}

	app := &domain.Appearance{AID: actor.AID, Tid: tid, Capacity: capacity}
	if cells.Length() >= 3 {
		// Middle cell is the " ... " separator.
		if err := parseRoleCell(cells.Eq(cells.Length()-1), app); err != nil {
			return nil, nil, err
		}
	}
	return actor, app, nil
}

// parseRoleCell fills role, voice flag, and any impression/character id
// linked from the role text.
func parseRoleCell(td *goquery.Selection, app *domain.Appearance) error {
	role := strings.TrimSpace(td.Text())
	if strings.HasSuffix(role, voiceSuffix) {
		role = strings.TrimSpace(strings.TrimSuffix(role, voiceSuffix))
		app.Voice = domain.Bool(true)
	}
	if role != "" {
		app.Role = domain.String(role)
	}

	link := td.Find("a").First()
	if link.Length() == 0 {
		return nil
	}
	href, _ := link.Attr("href")
	id, err := strconv.Atoi(idFromURL(href))
	if err != nil {
		return errors.Wrapf(ErrBadRoleLink, "href %q has no numeric id", href)
	}
	switch {
	case strings.HasPrefix(href, "/Impressions/"):
		app.Impid = domain.Int(id)
	case strings.HasPrefix(href, "/Characters/"):
		app.Charid = domain.Int(id)
	default:
		return errors.Wrapf(ErrBadRoleLink, "href %q", href)
	}
	return nil
}

// visitTitle processes one segment page: the title entity itself, plus an
// appearance per role-table row. Row order matters: the first role seen for
// an actor wins, and a second appearance is only kept when both roles are
// non-empty and textually distinct (a legitimate dual role).
func (s *service) visitTitle(doc *goquery.Selection, title *domain.Title, extra map[string]domain.Actor) {
	if _, perf := domain.PerformanceCategories[title.Category]; perf {
		// No role rows on these pages.
		s.emit(title)
		return
	}

	firstRole := make(map[string]*domain.Appearance)
	doc.Find(".roleTable tr").Each(func(_ int, row *goquery.Selection) {
		actor, app, err := s.parseCastRow(row, extra, title.Tid)
		if err != nil {
			s.log.Warn().Err(err).Str("tid", title.Tid).Msg("skipping unparseable cast row")
			return
		}

		s.emit(actor)
		if app.Impid != nil {
			s.emit(&domain.Impression{Impid: *app.Impid, Name: app.RoleName(), AID: actor.AID})
		}
		if app.Charid != nil {
			s.emit(&domain.Character{Charid: *app.Charid, Name: app.RoleName(), AID: actor.AID})
		}

		prev, dup := firstRole[actor.AID]
		if !dup {
			firstRole[actor.AID] = app
			s.emit(app)
			return
		}
		if a, b := app.RoleName(), prev.RoleName(); a != "" && b != "" && a != b {
			s.emit(app)
			return
		}
		s.log.Warn().Str("tid", title.Tid).Str("aid", actor.AID).
			Msg("suppressing repeat appearance in title")
	})

	s.emit(title)
}
