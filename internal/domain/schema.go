package domain

// FieldSpec declares the validation contract for one entity field. The
// zero value means "required, no further constraints".
type FieldSpec struct {
	// Name is the Go struct field name the validator reflects on.
	Name string
	// JSON is the wire name used in log output.
	JSON string
	// Optional fields may be left unset. Unset is a nil pointer, or the
	// empty string for required string fields.
	Optional bool
	// Default, when non-nil, is substituted for an unset optional field.
	Default any
	// Min, when non-nil, is the inclusive lower bound for int fields.
	Min *int
	// Enum, when non-empty, is the closed set of allowed string values.
	Enum []string
	// MapKeys, when non-empty, is the exact key set a map[int]int field
	// must carry.
	MapKeys []int
}

func intp(i int) *int { return &i }

func actorTypeEnum() []string {
	return []string{
		string(ActorCast), string(ActorGuest), string(ActorCrew), string(ActorUnknown),
	}
}

func capacityEnum() []string {
	return []string{
		string(CapacityCast), string(CapacityHost), string(CapacityCameo),
		string(CapacityMusic), string(CapacityFilmed), string(CapacityGuest),
		string(CapacityUnknown), string(CapacityOther),
	}
}

func categoryEnum() []string {
	cats := []Category{
		CategoryColdOpening, CategoryMonologue, CategoryGoodnights,
		CategoryUpdate, CategorySNN, CategoryNewsbreak,
		CategorySketch, CategoryMusicalSketch, CategoryShow,
		CategoryGameShow, CategoryAwardShow,
		CategoryFilm, CategoryCommercial, CategoryCartoon,
		CategoryMusicalPerf, CategoryGuestPerf,
		CategoryMiscellaneous, CategoryInMemoriam, CategoryTalentEntrance,
		CategoryIntro, CategoryEncore,
	}
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = string(c)
	}
	return out
}

func scoreKeys() []int {
	keys := make([]int, 10)
	for i := range keys {
		keys[i] = i + 1
	}
	return keys
}

// Schemas maps every entity kind to its field constraints. A single generic
// validator walks this table; entities themselves stay plain structs.
var Schemas = map[Kind][]FieldSpec{
	KindSeason: {
		{Name: "SID", JSON: "sid", Min: intp(1)},
		{Name: "Year", JSON: "year", Min: intp(1975)},
	},
	KindActor: {
		{Name: "AID", JSON: "aid"},
		{Name: "URL", JSON: "url", Optional: true},
		{Name: "Type", JSON: "type", Enum: actorTypeEnum()},
	},
	KindCast: {
		{Name: "AID", JSON: "aid"},
		{Name: "SID", JSON: "sid", Min: intp(1)},
		{Name: "Featured", JSON: "featured", Optional: true, Default: false},
		{Name: "UpdateAnchor", JSON: "update_anchor", Optional: true, Default: false},
		{Name: "FirstEpid", JSON: "first_epid", Optional: true},
		{Name: "LastEpid", JSON: "last_epid", Optional: true},
	},
	KindEpisode: {
		{Name: "Epid", JSON: "epid"},
		{Name: "Epno", JSON: "epno", Min: intp(0)},
		{Name: "SID", JSON: "sid", Min: intp(1)},
		{Name: "Aired", JSON: "aired"},
	},
	KindHost: {
		{Name: "Epid", JSON: "epid"},
		{Name: "AID", JSON: "aid"},
	},
	KindTitle: {
		{Name: "Tid", JSON: "tid"},
		{Name: "Epid", JSON: "epid"},
		{Name: "Category", JSON: "category", Enum: categoryEnum()},
		{Name: "Name", JSON: "name", Optional: true},
		{Name: "Skid", JSON: "skid", Optional: true},
		{Name: "Order", JSON: "order", Min: intp(0)},
	},
	KindSketch: {
		{Name: "Skid", JSON: "skid"},
		{Name: "Name", JSON: "name"},
	},
	KindAppearance: {
		{Name: "AID", JSON: "aid"},
		{Name: "Tid", JSON: "tid"},
		{Name: "Capacity", JSON: "capacity", Enum: capacityEnum()},
		{Name: "Role", JSON: "role", Optional: true},
		{Name: "Impid", JSON: "impid", Optional: true},
		{Name: "Charid", JSON: "charid", Optional: true},
		{Name: "Voice", JSON: "voice", Optional: true, Default: false},
	},
	KindCharacter: {
		{Name: "Charid", JSON: "charid", Min: intp(1)},
		{Name: "Name", JSON: "name"},
		{Name: "AID", JSON: "aid"},
	},
	KindImpression: {
		{Name: "Impid", JSON: "impid", Min: intp(1)},
		{Name: "Name", JSON: "name"},
		{Name: "AID", JSON: "aid"},
	},
	KindEpisodeRating: {
		{Name: "Epno", JSON: "epno", Min: intp(0)},
		{Name: "SID", JSON: "sid", Min: intp(1)},
		{Name: "ScoreCounts", JSON: "score_counts", MapKeys: scoreKeys()},
		{Name: "DemographicAverages", JSON: "demographic_averages", Optional: true},
		{Name: "DemographicCounts", JSON: "demographic_counts", Optional: true},
	},
	KindTenure: {
		{Name: "AID", JSON: "aid"},
		{Name: "NEpisodes", JSON: "n_episodes", Min: intp(0)},
		{Name: "EpsPresent", JSON: "eps_present", Min: intp(0)},
		{Name: "NSeasons", JSON: "n_seasons", Min: intp(1)},
	},
}
