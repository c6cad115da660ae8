package database

import (
	"context"
	"database/sql"
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/hhllcks/snldb/internal/domain"
)

// EntityRepo persists the normalized entity tables in sqlite. Replace-style
// upserts make re-scrapes and the actor-type precedence re-emits idempotent.
type EntityRepo struct {
	log zerolog.Logger
	db  *DB
}

func NewEntityRepo(log zerolog.Logger, db *DB) domain.EntityRepository {
	return &EntityRepo{
		log: log.With().Str("repo", "entity").Logger(),
		db:  db,
	}
}

func (r *EntityRepo) Store(ctx context.Context, e domain.Entity) error {
	var q sq.InsertBuilder

	switch v := e.(type) {
	case *domain.Season:
		q = r.db.squirrel.Replace("seasons").
			Columns("sid", "year", "first_epid", "last_epid", "n_episodes").
			Values(v.SID, v.Year, v.FirstEpid, v.LastEpid, v.NEpisodes)
	case *domain.Actor:
		q = r.db.squirrel.Replace("actors").
			Columns("aid", "url", "type", "gender").
			Values(v.AID, v.URL, string(v.Type), v.Gender)
	case *domain.Cast:
		q = r.db.squirrel.Replace("casts").
			Columns("aid", "sid", "featured", "update_anchor", "first_epid", "last_epid", "n_episodes", "season_fraction").
			Values(v.AID, v.SID, boolValue(v.Featured), boolValue(v.UpdateAnchor), v.FirstEpid, v.LastEpid, v.NEpisodes, v.SeasonFraction)
	case *domain.Episode:
		q = r.db.squirrel.Replace("episodes").
			Columns("epid", "epno", "sid", "aired").
			Values(v.Epid, v.Epno, v.SID, v.Aired)
	case *domain.Host:
		q = r.db.squirrel.Replace("hosts").
			Columns("epid", "aid").
			Values(v.Epid, v.AID)
	case *domain.Title:
		q = r.db.squirrel.Replace("titles").
			Columns("tid", "epid", "category", "name", "skid", "title_order", "sid", "episode_share", "n_performers", "cast_episode_share").
			Values(v.Tid, v.Epid, string(v.Category), v.Name, v.Skid, v.Order, v.SID, v.EpisodeShare, v.NPerformers, v.CastEpisodeShare)
	case *domain.Sketch:
		q = r.db.squirrel.Replace("sketches").
			Columns("skid", "name").
			Values(v.Skid, v.Name)
	case *domain.Appearance:
		q = r.db.squirrel.Replace("appearances").
			Columns("aid", "tid", "capacity", "role", "impid", "charid", "voice", "epid", "sid").
			Values(v.AID, v.Tid, string(v.Capacity), v.RoleName(), v.Impid, v.Charid, boolValue(v.Voice), v.Epid, v.SID)
	case *domain.Character:
		q = r.db.squirrel.Replace("characters").
			Columns("charid", "name", "aid").
			Values(v.Charid, v.Name, v.AID)
	case *domain.Impression:
		q = r.db.squirrel.Replace("impressions").
			Columns("impid", "name", "aid").
			Values(v.Impid, v.Name, v.AID)
	case *domain.EpisodeRating:
		scores, err := json.Marshal(v.ScoreCounts)
		if err != nil {
			return errors.Wrap(err, "error encoding score counts")
		}
		avgs, err := json.Marshal(v.DemographicAverages)
		if err != nil {
			return errors.Wrap(err, "error encoding demographic averages")
		}
		counts, err := json.Marshal(v.DemographicCounts)
		if err != nil {
			return errors.Wrap(err, "error encoding demographic counts")
		}
		q = r.db.squirrel.Replace("episoderatings").
			Columns("sid", "epno", "score_counts", "demographic_averages", "demographic_counts").
			Values(v.SID, v.Epno, string(scores), string(avgs), string(counts))
	case *domain.Tenure:
		q = r.db.squirrel.Replace("tenures").
			Columns("aid", "n_episodes", "eps_present", "n_seasons").
			Values(v.AID, v.NEpisodes, v.EpsPresent, v.NSeasons)
	default:
		return errors.Errorf("unknown entity kind %s", e.Kind())
	}

	query, args, err := q.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("Store")

	if _, err := r.db.handler.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "error storing %s", e.Kind())
	}
	return nil
}

// keyColumns maps single-field-key kinds to (table, column).
var keyColumns = map[domain.Kind][2]string{
	domain.KindSeason:     {"seasons", "sid"},
	domain.KindActor:      {"actors", "aid"},
	domain.KindEpisode:    {"episodes", "epid"},
	domain.KindTitle:      {"titles", "tid"},
	domain.KindSketch:     {"sketches", "skid"},
	domain.KindCharacter:  {"characters", "charid"},
	domain.KindImpression: {"impressions", "impid"},
	domain.KindTenure:     {"tenures", "aid"},
}

func (r *EntityRepo) HasKey(ctx context.Context, kind domain.Kind, key string) (bool, error) {
	tc, ok := keyColumns[kind]
	if !ok {
		return false, errors.Errorf("kind %s has no single-field key", kind)
	}

	query, args, err := r.db.squirrel.
		Select("1").From(tc[0]).Where(sq.Eq{tc[1]: key}).Limit(1).ToSql()
	if err != nil {
		return false, errors.Wrap(err, "error building query")
	}

	var one int
	err = r.db.handler.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "error executing query")
	}
	return true, nil
}

// Save writes every table. Enrichment mutates rows in place, so a full
// rewrite via upserts is the simplest way to persist it.
func (r *EntityRepo) Save(ctx context.Context, t *domain.Tables) error {
	for _, e := range t.All() {
		if err := r.Store(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// Load materializes all tables back into memory for post-hoc enrichment.
func (r *EntityRepo) Load(ctx context.Context) (*domain.Tables, error) {
	tables := domain.NewTables()

	loaders := []func(context.Context, *domain.Tables) error{
		r.loadSeasons, r.loadActors, r.loadCasts, r.loadEpisodes, r.loadHosts,
		r.loadTitles, r.loadSketches, r.loadAppearances, r.loadCharacters,
		r.loadImpressions, r.loadRatings, r.loadTenures,
	}
	for _, load := range loaders {
		if err := load(ctx, tables); err != nil {
			return nil, err
		}
	}
	return tables, nil
}

func (r *EntityRepo) query(ctx context.Context, b sq.SelectBuilder) (*sql.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}
	r.log.Trace().Str("query", query).Msg("Load")
	rows, err := r.db.handler.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing query")
	}
	return rows, nil
}

func (r *EntityRepo) loadSeasons(ctx context.Context, t *domain.Tables) error {
	rows, err := r.query(ctx, r.db.squirrel.
		Select("sid", "year", "first_epid", "last_epid", "n_episodes").From("seasons"))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.Season
		var first, last sql.NullString
		if err := rows.Scan(&v.SID, &v.Year, &first, &last, &v.NEpisodes); err != nil {
			return errors.Wrap(err, "error scanning season")
		}
		v.FirstEpid, v.LastEpid = first.String, last.String
		t.Add(&v)
	}
	return rows.Err()
}

func (r *EntityRepo) loadActors(ctx context.Context, t *domain.Tables) error {
	rows, err := r.query(ctx, r.db.squirrel.
		Select("aid", "url", "type", "gender").From("actors"))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.Actor
		var url, gender sql.NullString
		var atype string
		if err := rows.Scan(&v.AID, &url, &atype, &gender); err != nil {
			return errors.Wrap(err, "error scanning actor")
		}
		if url.Valid {
			v.URL = domain.String(url.String)
		}
		v.Type = domain.ActorType(atype)
		v.Gender = gender.String
		t.Add(&v)
	}
	return rows.Err()
}

func (r *EntityRepo) loadCasts(ctx context.Context, t *domain.Tables) error {
	rows, err := r.query(ctx, r.db.squirrel.
		Select("aid", "sid", "featured", "update_anchor", "first_epid", "last_epid", "n_episodes", "season_fraction").
		From("casts"))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.Cast
		var featured, anchor bool
		var first, last sql.NullString
		if err := rows.Scan(&v.AID, &v.SID, &featured, &anchor, &first, &last, &v.NEpisodes, &v.SeasonFraction); err != nil {
			return errors.Wrap(err, "error scanning cast")
		}
		v.Featured = domain.Bool(featured)
		v.UpdateAnchor = domain.Bool(anchor)
		if first.Valid {
			v.FirstEpid = domain.String(first.String)
		}
		if last.Valid {
			v.LastEpid = domain.String(last.String)
		}
		t.Add(&v)
	}
	return rows.Err()
}

func (r *EntityRepo) loadEpisodes(ctx context.Context, t *domain.Tables) error {
	rows, err := r.query(ctx, r.db.squirrel.
		Select("epid", "epno", "sid", "aired").From("episodes"))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.Episode
		var aired sql.NullString
		if err := rows.Scan(&v.Epid, &v.Epno, &v.SID, &aired); err != nil {
			return errors.Wrap(err, "error scanning episode")
		}
		v.Aired = aired.String
		t.Add(&v)
	}
	return rows.Err()
}

func (r *EntityRepo) loadHosts(ctx context.Context, t *domain.Tables) error {
	rows, err := r.query(ctx, r.db.squirrel.Select("epid", "aid").From("hosts"))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.Host
		if err := rows.Scan(&v.Epid, &v.AID); err != nil {
			return errors.Wrap(err, "error scanning host")
		}
		t.Add(&v)
	}
	return rows.Err()
}

func (r *EntityRepo) loadTitles(ctx context.Context, t *domain.Tables) error {
	rows, err := r.query(ctx, r.db.squirrel.
		Select("tid", "epid", "category", "name", "skid", "title_order", "sid", "episode_share", "n_performers", "cast_episode_share").
		From("titles"))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.Title
		var category string
		var name, skid sql.NullString
		var sid sql.NullInt64
		if err := rows.Scan(&v.Tid, &v.Epid, &category, &name, &skid, &v.Order, &sid, &v.EpisodeShare, &v.NPerformers, &v.CastEpisodeShare); err != nil {
			return errors.Wrap(err, "error scanning title")
		}
		v.Category = domain.Category(category)
		if name.Valid {
			v.Name = domain.String(name.String)
		}
		if skid.Valid {
			v.Skid = domain.String(skid.String)
		}
		v.SID = int(sid.Int64)
		t.Add(&v)
	}
	return rows.Err()
}

func (r *EntityRepo) loadSketches(ctx context.Context, t *domain.Tables) error {
	rows, err := r.query(ctx, r.db.squirrel.Select("skid", "name").From("sketches"))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.Sketch
		if err := rows.Scan(&v.Skid, &v.Name); err != nil {
			return errors.Wrap(err, "error scanning sketch")
		}
		t.Add(&v)
	}
	return rows.Err()
}

func (r *EntityRepo) loadAppearances(ctx context.Context, t *domain.Tables) error {
	rows, err := r.query(ctx, r.db.squirrel.
		Select("aid", "tid", "capacity", "role", "impid", "charid", "voice", "epid", "sid").
		From("appearances"))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.Appearance
		var capacity, role string
		var epid sql.NullString
		var impid, charid, sid sql.NullInt64
		var voice bool
		if err := rows.Scan(&v.AID, &v.Tid, &capacity, &role, &impid, &charid, &voice, &epid, &sid); err != nil {
			return errors.Wrap(err, "error scanning appearance")
		}
		v.Capacity = domain.Capacity(capacity)
		if role != "" {
			v.Role = domain.String(role)
		}
		if impid.Valid {
			v.Impid = domain.Int(int(impid.Int64))
		}
		if charid.Valid {
			v.Charid = domain.Int(int(charid.Int64))
		}
		v.Voice = domain.Bool(voice)
		v.Epid = epid.String
		v.SID = int(sid.Int64)
		t.Add(&v)
	}
	return rows.Err()
}

func (r *EntityRepo) loadCharacters(ctx context.Context, t *domain.Tables) error {
	rows, err := r.query(ctx, r.db.squirrel.Select("charid", "name", "aid").From("characters"))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.Character
		if err := rows.Scan(&v.Charid, &v.Name, &v.AID); err != nil {
			return errors.Wrap(err, "error scanning character")
		}
		t.Add(&v)
	}
	return rows.Err()
}

func (r *EntityRepo) loadImpressions(ctx context.Context, t *domain.Tables) error {
	rows, err := r.query(ctx, r.db.squirrel.Select("impid", "name", "aid").From("impressions"))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.Impression
		if err := rows.Scan(&v.Impid, &v.Name, &v.AID); err != nil {
			return errors.Wrap(err, "error scanning impression")
		}
		t.Add(&v)
	}
	return rows.Err()
}

func (r *EntityRepo) loadRatings(ctx context.Context, t *domain.Tables) error {
	rows, err := r.query(ctx, r.db.squirrel.
		Select("sid", "epno", "score_counts", "demographic_averages", "demographic_counts").
		From("episoderatings"))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.EpisodeRating
		var scores string
		var avgs, counts sql.NullString
		if err := rows.Scan(&v.SID, &v.Epno, &scores, &avgs, &counts); err != nil {
			return errors.Wrap(err, "error scanning rating")
		}
		if err := json.Unmarshal([]byte(scores), &v.ScoreCounts); err != nil {
			return errors.Wrap(err, "error decoding score counts")
		}
		if avgs.Valid && avgs.String != "" {
			if err := json.Unmarshal([]byte(avgs.String), &v.DemographicAverages); err != nil {
				return errors.Wrap(err, "error decoding demographic averages")
			}
		}
		if counts.Valid && counts.String != "" {
			if err := json.Unmarshal([]byte(counts.String), &v.DemographicCounts); err != nil {
				return errors.Wrap(err, "error decoding demographic counts")
			}
		}
		t.Add(&v)
	}
	return rows.Err()
}

func (r *EntityRepo) loadTenures(ctx context.Context, t *domain.Tables) error {
	rows, err := r.query(ctx, r.db.squirrel.
		Select("aid", "n_episodes", "eps_present", "n_seasons").From("tenures"))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.Tenure
		if err := rows.Scan(&v.AID, &v.NEpisodes, &v.EpsPresent, &v.NSeasons); err != nil {
			return errors.Wrap(err, "error scanning tenure")
		}
		t.Add(&v)
	}
	return rows.Err()
}

func boolValue(b *bool) bool {
	return b != nil && *b
}
