package domain

import "strconv"

// Kind identifies an entity type. It doubles as the table-name stem used by
// the persistence layers.
type Kind string

const (
	KindSeason        Kind = "season"
	KindActor         Kind = "actor"
	KindCast          Kind = "cast"
	KindEpisode       Kind = "episode"
	KindHost          Kind = "host"
	KindTitle         Kind = "title"
	KindSketch        Kind = "sketch"
	KindAppearance    Kind = "appearance"
	KindCharacter     Kind = "character"
	KindImpression    Kind = "impression"
	KindEpisodeRating Kind = "episoderating"
	KindTenure        Kind = "tenure"
)

// Entity is implemented by every scraped or derived record. PrimaryKey
// returns false for kinds that have no single-field key (Cast, Host,
// Appearance, EpisodeRating, Tenure); those pass through dedupe unfiltered.
type Entity interface {
	Kind() Kind
	PrimaryKey() (string, bool)
}

// ActorType is snlarchive's one-per-person classification. Precedence when
// the same person shows up under several: cast > crew > guest > unknown.
type ActorType string

const (
	ActorCast    ActorType = "cast"
	ActorGuest   ActorType = "guest"
	ActorCrew    ActorType = "crew"
	ActorUnknown ActorType = "unknown"
)

var actorTypeRank = map[ActorType]int{
	ActorCast:    3,
	ActorCrew:    2,
	ActorGuest:   1,
	ActorUnknown: 0,
}

// Outranks reports whether t takes precedence over other when the same aid
// is extracted with conflicting types.
func (t ActorType) Outranks(other ActorType) bool {
	return actorTypeRank[t] > actorTypeRank[other]
}

// Capacity is the context of one appearance in a title. More useful than
// ActorType, since the same person appears in many capacities over time.
type Capacity string

const (
	CapacityCast    Capacity = "cast"
	CapacityHost    Capacity = "host"
	CapacityCameo   Capacity = "cameo"
	CapacityMusic   Capacity = "music"
	CapacityFilmed  Capacity = "filmed"
	CapacityGuest   Capacity = "guest"
	CapacityUnknown Capacity = "unknown"
	CapacityOther   Capacity = "other"
)

// Category is the segment type snlarchive assigns to every title.
type Category string

const (
	CategoryColdOpening    Category = "Cold Opening"
	CategoryMonologue      Category = "Monologue"
	CategoryGoodnights     Category = "Goodnights"
	CategoryUpdate         Category = "Weekend Update"
	CategorySNN            Category = "Saturday Night News"
	CategoryNewsbreak      Category = "SNL Newsbreak"
	CategorySketch         Category = "Sketch"
	CategoryMusicalSketch  Category = "Musical Sketch"
	CategoryShow           Category = "Show"
	CategoryGameShow       Category = "Game Show"
	CategoryAwardShow      Category = "Award Show"
	CategoryFilm           Category = "Film"
	CategoryCommercial     Category = "Commercial"
	CategoryCartoon        Category = "Cartoon"
	CategoryMusicalPerf    Category = "Musical Performance"
	CategoryGuestPerf      Category = "Guest Performance"
	CategoryMiscellaneous  Category = "Miscellaneous"
	CategoryInMemoriam     Category = "In Memoriam"
	CategoryTalentEntrance Category = "Talent Entrance"
	CategoryIntro          Category = "Intro"
	CategoryEncore         Category = "Encore Presentation"
)

// PerformanceCategories have no per-performer role rows on their title pages.
var PerformanceCategories = map[Category]struct{}{
	CategoryMusicalPerf: {},
	CategoryGuestPerf:   {},
}

// PerformerCategories are the title categories that count toward airtime
// statistics. Main omissions are Goodnights and Musical Performance, plus
// rarities like Guest Performance, In Memoriam and Talent Entrance.
var PerformerCategories = map[Category]struct{}{
	CategoryColdOpening:   {},
	CategoryMonologue:     {},
	CategoryMiscellaneous: {},
	CategoryUpdate:        {},
	CategorySNN:           {},
	CategoryNewsbreak:     {},
	CategorySketch:        {},
	CategoryMusicalSketch: {},
	CategoryShow:          {},
	CategoryGameShow:      {},
	CategoryAwardShow:     {},
	CategoryFilm:          {},
	CategoryCommercial:    {},
}

// Season is one show-season. FirstEpid/LastEpid and the episode count are
// filled in by enrichment after the full scrape.
type Season struct {
	SID  int `json:"sid"`
	Year int `json:"year"`

	FirstEpid string `json:"first_epid,omitempty"`
	LastEpid  string `json:"last_epid,omitempty"`
	NEpisodes int    `json:"n_episodes,omitempty"`
}

func (s *Season) Kind() Kind { return KindSeason }

func (s *Season) PrimaryKey() (string, bool) { return strconv.Itoa(s.SID), true }

// Actor is keyed by canonicalized (ASCII-normalized) full name. snlarchive
// page ids turned out to be unstable; names are not.
type Actor struct {
	AID  string    `json:"aid"`
	URL  *string   `json:"url,omitempty"`
	Type ActorType `json:"type"`

	Gender string `json:"gender,omitempty"`
}

func (a *Actor) Kind() Kind { return KindActor }

func (a *Actor) PrimaryKey() (string, bool) { return a.AID, true }

// Cast is one (actor, season) membership record. FirstEpid/LastEpid are only
// present when the membership did not span the whole season.
type Cast struct {
	AID          string  `json:"aid"`
	SID          int     `json:"sid"`
	Featured     *bool   `json:"featured,omitempty"`
	UpdateAnchor *bool   `json:"update_anchor,omitempty"`
	FirstEpid    *string `json:"first_epid,omitempty"`
	LastEpid     *string `json:"last_epid,omitempty"`

	NEpisodes      int     `json:"n_episodes,omitempty"`
	SeasonFraction float64 `json:"season_fraction,omitempty"`
}

func (c *Cast) Kind() Kind { return KindCast }

func (c *Cast) PrimaryKey() (string, bool) { return "", false }

// Episode ids look like dates because they are, e.g. "20020518". Specials
// carry no ordinal on the site and are deliberately excluded from the scrape.
type Episode struct {
	Epid  string `json:"epid"`
	Epno  int    `json:"epno"`
	SID   int    `json:"sid"`
	Aired string `json:"aired"`
}

func (e *Episode) Kind() Kind { return KindEpisode }

func (e *Episode) PrimaryKey() (string, bool) { return e.Epid, true }

// Host links an episode to one of its hosts. Episodes can have several.
type Host struct {
	Epid string `json:"epid"`
	AID  string `json:"aid"`
}

func (h *Host) Kind() Kind { return KindHost }

func (h *Host) PrimaryKey() (string, bool) { return "", false }

// Title is a single segment of an episode. Name is empty for categories like
// Monologue and Goodnights. Skid is set for recurring sketches.
type Title struct {
	Tid      string   `json:"tid"`
	Epid     string   `json:"epid"`
	Category Category `json:"category"`
	Name     *string  `json:"name,omitempty"`
	Skid     *string  `json:"skid,omitempty"`
	Order    int      `json:"order"`

	SID              int     `json:"sid,omitempty"`
	EpisodeShare     float64 `json:"episode_share,omitempty"`
	NPerformers      int     `json:"n_performers,omitempty"`
	CastEpisodeShare float64 `json:"cast_episode_share,omitempty"`
}

func (t *Title) Kind() Kind { return KindTitle }

func (t *Title) PrimaryKey() (string, bool) { return t.Tid, true }

// Sketch is a recurring segment format (has a /Sketches/ page).
type Sketch struct {
	Skid string `json:"skid"`
	Name string `json:"name"`
}

func (s *Sketch) Kind() Kind { return KindSketch }

func (s *Sketch) PrimaryKey() (string, bool) { return s.Skid, true }

// Appearance links an actor to a title. Role may be empty, which mostly
// happens in the monologue and Update and means they played themselves.
type Appearance struct {
	AID      string   `json:"aid"`
	Tid      string   `json:"tid"`
	Capacity Capacity `json:"capacity"`
	Role     *string  `json:"role,omitempty"`
	Impid    *int     `json:"impid,omitempty"`
	Charid   *int     `json:"charid,omitempty"`
	Voice    *bool    `json:"voice,omitempty"`

	Epid string `json:"epid,omitempty"`
	SID  int    `json:"sid,omitempty"`
}

func (a *Appearance) Kind() Kind { return KindAppearance }

func (a *Appearance) PrimaryKey() (string, bool) { return "", false }

// RoleName returns the credited role, or "" when unset.
func (a *Appearance) RoleName() string {
	if a.Role == nil {
		return ""
	}
	return *a.Role
}

// Character is a named fictional role originated by one actor.
type Character struct {
	Charid int    `json:"charid"`
	Name   string `json:"name"`
	AID    string `json:"aid"`
}

func (c *Character) Kind() Kind { return KindCharacter }

func (c *Character) PrimaryKey() (string, bool) { return strconv.Itoa(c.Charid), true }

// Impression is a celebrity impersonation credited to one actor.
type Impression struct {
	Impid int    `json:"impid"`
	Name  string `json:"name"`
	AID   string `json:"aid"`
}

func (i *Impression) Kind() Kind { return KindImpression }

func (i *Impression) PrimaryKey() (string, bool) { return strconv.Itoa(i.Impid), true }

// EpisodeRating holds IMDb user votes for one episode, joined to the scrape
// only by (sid, epno). ScoreCounts must carry all ten score keys.
type EpisodeRating struct {
	Epno                int                `json:"epno"`
	SID                 int                `json:"sid"`
	ScoreCounts         map[int]int        `json:"score_counts"`
	DemographicAverages map[string]float64 `json:"demographic_averages,omitempty"`
	DemographicCounts   map[string]int     `json:"demographic_counts,omitempty"`
}

func (r *EpisodeRating) Kind() Kind { return KindEpisodeRating }

func (r *EpisodeRating) PrimaryKey() (string, bool) { return "", false }

// Tenure is fully derived: one row per cast actor aggregating every
// season-membership window they had, contiguous or not.
type Tenure struct {
	AID        string `json:"aid"`
	NEpisodes  int    `json:"n_episodes"`
	EpsPresent int    `json:"eps_present"`
	NSeasons   int    `json:"n_seasons"`
}

func (t *Tenure) Kind() Kind { return KindTenure }

func (t *Tenure) PrimaryKey() (string, bool) { return "", false }

// Bool, String and Int are pointer helpers for optional fields.
func Bool(b bool) *bool { return &b }

func String(s string) *string { return &s }

func Int(i int) *int { return &i }
