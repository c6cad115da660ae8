package enrich

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/hhllcks/snldb/internal/domain"
	"github.com/hhllcks/snldb/internal/ids"
)

// castCorrections patches season-membership records the site itself gets
// wrong. Both are season-1 departures snlarchive lists without a last
// episode.
var castCorrections = map[string]struct {
	sid      int
	lastEpid string
}{
	"George Coe":         {1, "19751011"},
	"Michael O'Donoghue": {1, "19751108"},
}

type Service interface {
	// Enrich mutates the materialized tables in place: join columns first,
	// then season boundaries, cast eligibility, tenure, and (when enabled)
	// airtime shares. Needs the whole entity set, so it only runs after a
	// scrape or load has completed.
	Enrich(tables *domain.Tables) error
}

type service struct {
	log     zerolog.Logger
	airtime bool
}

func NewService(log zerolog.Logger, cfg *domain.Config) Service {
	return &service{
		log:     log.With().Str("module", "enrich").Logger(),
		airtime: cfg.Airtime,
	}
}

func (s *service) Enrich(tables *domain.Tables) error {
	if err := s.join(tables); err != nil {
		return err
	}
	s.correctCasts(tables)
	s.seasonBoundaries(tables)
	s.castEligibility(tables)
	s.tenure(tables)
	if s.airtime {
		s.airtimeShares(tables)
	}
	return nil
}

// join fills the denormalized epid/sid columns: titles get their episode's
// sid, appearances get their title's epid and sid. The tid→epid derivation
// is positional, so a title missing from the table is still joinable.
func (s *service) join(tables *domain.Tables) error {
	episodes := tables.EpisodeByID()

	for _, t := range tables.Titles {
		ep, ok := episodes[t.Epid]
		if !ok {
			return errors.Errorf("title %s references unknown episode %s", t.Tid, t.Epid)
		}
		t.SID = ep.SID
	}

	titles := tables.TitleByID()
	for _, a := range tables.Appearances {
		t, ok := titles[a.Tid]
		if !ok {
			epid, err := ids.EpidFromTid(a.Tid)
			if err != nil {
				return errors.Wrapf(err, "appearance for %s", a.AID)
			}
			sid, err := ids.SidFromEpid(epid)
			if err != nil {
				return errors.Wrapf(err, "appearance for %s", a.AID)
			}
			s.log.Warn().Str("aid", a.AID).Str("tid", a.Tid).
				Msg("appearance references unknown title, joining by derivation")
			a.Epid, a.SID = epid, sid
			continue
		}
		a.Epid, a.SID = t.Epid, t.SID
	}
	return nil
}

func (s *service) correctCasts(tables *domain.Tables) {
	for _, c := range tables.Casts {
		fix, ok := castCorrections[c.AID]
		if !ok || c.SID != fix.sid || c.LastEpid != nil {
			continue
		}
		s.log.Info().Str("aid", c.AID).Int("sid", c.SID).Str("last_epid", fix.lastEpid).
			Msg("applying season-membership correction")
		c.LastEpid = domain.String(fix.lastEpid)
	}
}

// seasonBoundaries records each season's first/last episode and episode
// count. Epids are zero-padded date strings, so lexicographic min/max is
// chronological min/max.
func (s *service) seasonBoundaries(tables *domain.Tables) {
	bySeason := tables.EpisodesBySeason()

	for _, season := range tables.Seasons {
		eps := bySeason[season.SID]
		if len(eps) == 0 {
			s.log.Warn().Int("sid", season.SID).Msg("season has no episodes")
			continue
		}
		first, last := eps[0].Epid, eps[0].Epid
		for _, ep := range eps[1:] {
			if ep.Epid < first {
				first = ep.Epid
			}
			if ep.Epid > last {
				last = ep.Epid
			}
		}
		season.FirstEpid = first
		season.LastEpid = last
		season.NEpisodes = len(eps)
	}
}

// castEligibility counts, per season-membership record, the episodes the
// member was eligible to appear in. Memberships without explicit first/last
// episodes inherit the season boundary.
func (s *service) castEligibility(tables *domain.Tables) {
	seasons := tables.SeasonByID()
	bySeason := tables.EpisodesBySeason()

	for _, c := range tables.Casts {
		season, ok := seasons[c.SID]
		if !ok {
			s.log.Warn().Str("aid", c.AID).Int("sid", c.SID).
				Msg("membership references unknown season")
			continue
		}

		first, last := membershipWindow(c, season)
		n := 0
		for _, ep := range bySeason[c.SID] {
			if first <= ep.Epid && ep.Epid <= last {
				n++
			}
		}
		c.NEpisodes = n
		if season.NEpisodes > 0 {
			c.SeasonFraction = float64(n) / float64(season.NEpisodes)
		}
	}
}

func membershipWindow(c *domain.Cast, season *domain.Season) (first, last string) {
	first, last = season.FirstEpid, season.LastEpid
	if c.FirstEpid != nil {
		first = *c.FirstEpid
	}
	if c.LastEpid != nil {
		last = *c.LastEpid
	}
	return first, last
}

// tenure builds the per-actor career aggregate: one row per cast-typed
// actor. Episodes present are de-duplicated within each membership window,
// then summed across windows, which handles leave-and-return careers.
func (s *service) tenure(tables *domain.Tables) {
	seasons := tables.SeasonByID()
	memberships := tables.CastsByActor()
	appearances := tables.AppearancesByActor()

	for _, actor := range tables.Actors {
		if actor.Type != domain.ActorCast {
			continue
		}
		casts := memberships[actor.AID]
		if len(casts) == 0 {
			s.log.Warn().Str("aid", actor.AID).
				Msg("cast actor has no season-membership records, skipping tenure")
			continue
		}
		sort.Slice(casts, func(i, j int) bool { return casts[i].SID < casts[j].SID })

		tenure := &domain.Tenure{AID: actor.AID, NSeasons: len(casts)}
		for _, c := range casts {
			tenure.NEpisodes += c.NEpisodes

			season, ok := seasons[c.SID]
			if !ok {
				continue
			}
			first, last := membershipWindow(c, season)
			present := make(map[string]struct{})
			for _, a := range appearances[actor.AID] {
				if a.SID == c.SID && first <= a.Epid && a.Epid <= last {
					present[a.Epid] = struct{}{}
				}
			}
			tenure.EpsPresent += len(present)
		}
		tables.Add(tenure)
	}
}

// airtimeShares spreads each episode evenly across its performer-bearing
// titles, then each title's share evenly across its performers.
func (s *service) airtimeShares(tables *domain.Tables) {
	byEpisode := tables.TitlesByEpisode()
	byTitle := tables.AppearancesByTitle()

	for _, ep := range tables.Episodes {
		var qualifying []*domain.Title
		for _, t := range byEpisode[ep.Epid] {
			if _, ok := domain.PerformerCategories[t.Category]; ok {
				qualifying = append(qualifying, t)
			}
		}
		if len(qualifying) == 0 {
			s.log.Warn().Str("epid", ep.Epid).Msg("episode has no performer-bearing titles")
			continue
		}

		share := 1.0 / float64(len(qualifying))
		for _, t := range qualifying {
			performers := make(map[string]struct{})
			for _, a := range byTitle[t.Tid] {
				performers[a.AID] = struct{}{}
			}
			t.EpisodeShare = share
			t.NPerformers = len(performers)
			if len(performers) > 0 {
				t.CastEpisodeShare = share / float64(len(performers))
			}
		}
	}
}
