package domain

import "sync"

// Tables is the materialized, random-access view of a finished scrape. The
// enrichment engine needs the whole entity set at once, so Tables collects
// the cleaned stream before any derivation runs.
type Tables struct {
	mu sync.Mutex
	at map[Kind]map[string]int

	Seasons     []*Season
	Actors      []*Actor
	Casts       []*Cast
	Episodes    []*Episode
	Hosts       []*Host
	Titles      []*Title
	Sketches    []*Sketch
	Appearances []*Appearance
	Characters  []*Character
	Impressions []*Impression
	Ratings     []*EpisodeRating
	Tenures     []*Tenure
}

func NewTables() *Tables {
	return &Tables{}
}

// Add inserts an entity into its table. Keyed entities replace an earlier row
// with the same primary key: the pipeline re-emits an actor whose credited
// type is upgraded by a later sighting, and the stale row must not survive.
// Implements EntitySink so Tables can sit at the end of the pipeline next to
// the persistent sinks.
func (t *Tables) Add(e Entity) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch v := e.(type) {
	case *Season:
		t.Seasons = upsert(t, t.Seasons, v)
	case *Actor:
		t.Actors = upsert(t, t.Actors, v)
	case *Cast:
		t.Casts = append(t.Casts, v)
	case *Episode:
		t.Episodes = upsert(t, t.Episodes, v)
	case *Host:
		t.Hosts = append(t.Hosts, v)
	case *Title:
		t.Titles = upsert(t, t.Titles, v)
	case *Sketch:
		t.Sketches = upsert(t, t.Sketches, v)
	case *Appearance:
		t.Appearances = append(t.Appearances, v)
	case *Character:
		t.Characters = upsert(t, t.Characters, v)
	case *Impression:
		t.Impressions = upsert(t, t.Impressions, v)
	case *EpisodeRating:
		t.Ratings = append(t.Ratings, v)
	case *Tenure:
		t.Tenures = append(t.Tenures, v)
	}
}

func upsert[E Entity](t *Tables, table []E, v E) []E {
	key, ok := v.PrimaryKey()
	if !ok {
		return append(table, v)
	}
	if t.at == nil {
		t.at = make(map[Kind]map[string]int)
	}
	idx := t.at[v.Kind()]
	if idx == nil {
		idx = make(map[string]int)
		t.at[v.Kind()] = idx
	}
	if i, seen := idx[key]; seen {
		table[i] = v
		return table
	}
	idx[key] = len(table)
	return append(table, v)
}

// SeasonByID builds an sid lookup.
func (t *Tables) SeasonByID() map[int]*Season {
	m := make(map[int]*Season, len(t.Seasons))
	for _, s := range t.Seasons {
		m[s.SID] = s
	}
	return m
}

// EpisodeByID builds an epid lookup.
func (t *Tables) EpisodeByID() map[string]*Episode {
	m := make(map[string]*Episode, len(t.Episodes))
	for _, e := range t.Episodes {
		m[e.Epid] = e
	}
	return m
}

// TitleByID builds a tid lookup.
func (t *Tables) TitleByID() map[string]*Title {
	m := make(map[string]*Title, len(t.Titles))
	for _, ti := range t.Titles {
		m[ti.Tid] = ti
	}
	return m
}

// EpisodesBySeason groups episodes by sid.
func (t *Tables) EpisodesBySeason() map[int][]*Episode {
	m := make(map[int][]*Episode)
	for _, e := range t.Episodes {
		m[e.SID] = append(m[e.SID], e)
	}
	return m
}

// CastsByActor groups season-membership records by aid.
func (t *Tables) CastsByActor() map[string][]*Cast {
	m := make(map[string][]*Cast)
	for _, c := range t.Casts {
		m[c.AID] = append(m[c.AID], c)
	}
	return m
}

// AppearancesByActor groups appearances by aid.
func (t *Tables) AppearancesByActor() map[string][]*Appearance {
	m := make(map[string][]*Appearance)
	for _, a := range t.Appearances {
		m[a.AID] = append(m[a.AID], a)
	}
	return m
}

// AppearancesByTitle groups appearances by tid.
func (t *Tables) AppearancesByTitle() map[string][]*Appearance {
	m := make(map[string][]*Appearance)
	for _, a := range t.Appearances {
		m[a.Tid] = append(m[a.Tid], a)
	}
	return m
}

// TitlesByEpisode groups titles by epid.
func (t *Tables) TitlesByEpisode() map[string][]*Title {
	m := make(map[string][]*Title)
	for _, ti := range t.Titles {
		m[ti.Epid] = append(m[ti.Epid], ti)
	}
	return m
}

// All returns every entity in table order, for re-exporting after
// enrichment.
func (t *Tables) All() []Entity {
	var out []Entity
	for _, v := range t.Seasons {
		out = append(out, v)
	}
	for _, v := range t.Actors {
		out = append(out, v)
	}
	for _, v := range t.Casts {
		out = append(out, v)
	}
	for _, v := range t.Episodes {
		out = append(out, v)
	}
	for _, v := range t.Hosts {
		out = append(out, v)
	}
	for _, v := range t.Titles {
		out = append(out, v)
	}
	for _, v := range t.Sketches {
		out = append(out, v)
	}
	for _, v := range t.Appearances {
		out = append(out, v)
	}
	for _, v := range t.Characters {
		out = append(out, v)
	}
	for _, v := range t.Impressions {
		out = append(out, v)
	}
	for _, v := range t.Ratings {
		out = append(out, v)
	}
	for _, v := range t.Tenures {
		out = append(out, v)
	}
	return out
}
