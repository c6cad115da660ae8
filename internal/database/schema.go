package database

const schema = `
CREATE TABLE seasons (
	sid INTEGER PRIMARY KEY,
	year INTEGER NOT NULL,
	first_epid TEXT,
	last_epid TEXT,
	n_episodes INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE actors (
	aid TEXT PRIMARY KEY,
	url TEXT,
	type TEXT NOT NULL,
	gender TEXT
);

CREATE TABLE casts (
	aid TEXT NOT NULL,
	sid INTEGER NOT NULL,
	featured BOOLEAN NOT NULL DEFAULT 0,
	update_anchor BOOLEAN NOT NULL DEFAULT 0,
	first_epid TEXT,
	last_epid TEXT,
	n_episodes INTEGER NOT NULL DEFAULT 0,
	season_fraction REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (aid, sid)
);

CREATE INDEX idx_casts_sid ON casts(sid);

CREATE TABLE episodes (
	epid TEXT PRIMARY KEY,
	epno INTEGER NOT NULL,
	sid INTEGER NOT NULL,
	aired TEXT
);

CREATE INDEX idx_episodes_sid ON episodes(sid);

CREATE TABLE hosts (
	epid TEXT NOT NULL,
	aid TEXT NOT NULL,
	PRIMARY KEY (epid, aid)
);

CREATE TABLE titles (
	tid TEXT PRIMARY KEY,
	epid TEXT NOT NULL,
	category TEXT NOT NULL,
	name TEXT,
	skid TEXT,
	title_order INTEGER NOT NULL DEFAULT 0,
	sid INTEGER,
	episode_share REAL NOT NULL DEFAULT 0,
	n_performers INTEGER NOT NULL DEFAULT 0,
	cast_episode_share REAL NOT NULL DEFAULT 0
);

CREATE INDEX idx_titles_epid ON titles(epid);
CREATE INDEX idx_titles_category ON titles(category);

CREATE TABLE sketches (
	skid TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE appearances (
	aid TEXT NOT NULL,
	tid TEXT NOT NULL,
	capacity TEXT NOT NULL,
	-- '' means no credited role. NULL would break the composite key:
	-- sqlite treats NULL PK components as distinct, so role-less rows
	-- would never be replaced on re-store.
	role TEXT NOT NULL DEFAULT '',
	impid INTEGER,
	charid INTEGER,
	voice BOOLEAN NOT NULL DEFAULT 0,
	epid TEXT,
	sid INTEGER,
	PRIMARY KEY (aid, tid, role)
);

CREATE INDEX idx_appearances_tid ON appearances(tid);
CREATE INDEX idx_appearances_aid ON appearances(aid);

CREATE TABLE characters (
	charid INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	aid TEXT NOT NULL
);

CREATE TABLE impressions (
	impid INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	aid TEXT NOT NULL
);

CREATE TABLE episoderatings (
	sid INTEGER NOT NULL,
	epno INTEGER NOT NULL,
	score_counts TEXT NOT NULL,
	demographic_averages TEXT,
	demographic_counts TEXT,
	PRIMARY KEY (sid, epno)
);

CREATE TABLE tenures (
	aid TEXT PRIMARY KEY,
	n_episodes INTEGER NOT NULL DEFAULT 0,
	eps_present INTEGER NOT NULL DEFAULT 0,
	n_seasons INTEGER NOT NULL DEFAULT 0
);
`

// migrations contains incremental schema changes applied in order based on
// the current user_version. migrations[0] is empty because version 0 uses
// the base schema.
var migrations = []string{
	"",
}
