package enrich

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hhllcks/snldb/internal/domain"
)

func newTestService(airtime bool) *service {
	return &service{log: zerolog.Nop(), airtime: airtime}
}

// Season 27 with three episodes, one cast member without explicit
// membership bounds, one with.
func buildTables() *domain.Tables {
	tb := domain.NewTables()
	tb.Add(&domain.Season{SID: 27, Year: 2001})
	tb.Add(&domain.Episode{Epid: "20011006", Epno: 0, SID: 27})
	tb.Add(&domain.Episode{Epid: "20011013", Epno: 1, SID: 27})
	tb.Add(&domain.Episode{Epid: "20020518", Epno: 19, SID: 27})

	tb.Add(&domain.Actor{AID: "Rachel Dratch", Type: domain.ActorCast})
	tb.Add(&domain.Actor{AID: "Jeff Richards", Type: domain.ActorCast})
	tb.Add(&domain.Cast{AID: "Rachel Dratch", SID: 27})
	tb.Add(&domain.Cast{
		AID:       "Jeff Richards",
		SID:       27,
		FirstEpid: domain.String("20011013"),
	})

	tb.Add(&domain.Title{Tid: "2001100601", Epid: "20011006", Category: domain.CategorySketch, Order: 0})
	tb.Add(&domain.Title{Tid: "2001100602", Epid: "20011006", Category: domain.CategoryGoodnights, Order: 1})
	tb.Add(&domain.Title{Tid: "2002051810", Epid: "20020518", Category: domain.CategorySketch, Order: 0})

	tb.Add(&domain.Appearance{AID: "Rachel Dratch", Tid: "2001100601", Capacity: domain.CapacityCast})
	tb.Add(&domain.Appearance{AID: "Rachel Dratch", Tid: "2002051810", Capacity: domain.CapacityCast})
	tb.Add(&domain.Appearance{AID: "Jeff Richards", Tid: "2001100601", Capacity: domain.CapacityCast})
	return tb
}

func TestJoinFillsDenormalizedColumns(t *testing.T) {
	tb := buildTables()
	require.NoError(t, newTestService(false).Enrich(tb))

	for _, title := range tb.Titles {
		assert.Equal(t, 27, title.SID, title.Tid)
	}
	for _, a := range tb.Appearances {
		assert.Equal(t, 27, a.SID)
		assert.NotEmpty(t, a.Epid)
	}
	assert.Equal(t, "20011006", tb.Appearances[0].Epid)
	assert.Equal(t, "20020518", tb.Appearances[1].Epid)
}

func TestSeasonBoundaries(t *testing.T) {
	tb := buildTables()
	require.NoError(t, newTestService(false).Enrich(tb))

	season := tb.Seasons[0]
	assert.Equal(t, "20011006", season.FirstEpid)
	assert.Equal(t, "20020518", season.LastEpid)
	assert.Equal(t, 3, season.NEpisodes)
}

func TestCastEligibilityInheritsSeasonBoundary(t *testing.T) {
	tb := buildTables()
	require.NoError(t, newTestService(false).Enrich(tb))

	// No explicit bounds: the full season counts.
	dratch := tb.Casts[0]
	assert.Equal(t, 3, dratch.NEpisodes)
	assert.InDelta(t, 1.0, dratch.SeasonFraction, 1e-9)

	// Joined one episode in: only two eligible.
	richards := tb.Casts[1]
	assert.Equal(t, 2, richards.NEpisodes)
	assert.InDelta(t, 2.0/3.0, richards.SeasonFraction, 1e-9)
}

func TestTenure(t *testing.T) {
	tb := buildTables()
	require.NoError(t, newTestService(false).Enrich(tb))

	byAID := make(map[string]*domain.Tenure)
	for _, tn := range tb.Tenures {
		byAID[tn.AID] = tn
	}
	require.Len(t, byAID, 2)

	dratch := byAID["Rachel Dratch"]
	assert.Equal(t, 3, dratch.NEpisodes)
	assert.Equal(t, 2, dratch.EpsPresent)
	assert.Equal(t, 1, dratch.NSeasons)

	// Appeared only in an episode before joining the cast; that appearance
	// falls outside the membership window and does not count.
	richards := byAID["Jeff Richards"]
	assert.Equal(t, 2, richards.NEpisodes)
	assert.Equal(t, 0, richards.EpsPresent)

	for _, tn := range tb.Tenures {
		assert.LessOrEqual(t, tn.EpsPresent, tn.NEpisodes, tn.AID)
	}
}

func TestTenureNonContiguousStints(t *testing.T) {
	tb := domain.NewTables()
	tb.Add(&domain.Season{SID: 11, Year: 1985})
	tb.Add(&domain.Season{SID: 20, Year: 1994})
	tb.Add(&domain.Episode{Epid: "19851109", Epno: 0, SID: 11})
	tb.Add(&domain.Episode{Epid: "19851116", Epno: 1, SID: 11})
	tb.Add(&domain.Episode{Epid: "19940924", Epno: 0, SID: 20})

	tb.Add(&domain.Actor{AID: "Comeback Kid", Type: domain.ActorCast})
	tb.Add(&domain.Cast{AID: "Comeback Kid", SID: 20})
	tb.Add(&domain.Cast{AID: "Comeback Kid", SID: 11})

	tb.Add(&domain.Title{Tid: "1985110901", Epid: "19851109", Category: domain.CategorySketch})
	tb.Add(&domain.Title{Tid: "1994092401", Epid: "19940924", Category: domain.CategorySketch})
	tb.Add(&domain.Appearance{AID: "Comeback Kid", Tid: "1985110901", Capacity: domain.CapacityCast})
	tb.Add(&domain.Appearance{AID: "Comeback Kid", Tid: "1994092401", Capacity: domain.CapacityCast})

	require.NoError(t, newTestService(false).Enrich(tb))

	require.Len(t, tb.Tenures, 1)
	tn := tb.Tenures[0]
	assert.Equal(t, 2, tn.NSeasons)
	assert.Equal(t, 3, tn.NEpisodes)
	assert.Equal(t, 2, tn.EpsPresent)
}

func TestTenureSkipsCastActorWithoutMemberships(t *testing.T) {
	tb := buildTables()
	tb.Add(&domain.Actor{AID: "Phantom Player", Type: domain.ActorCast})

	require.NoError(t, newTestService(false).Enrich(tb))

	for _, tn := range tb.Tenures {
		assert.NotEqual(t, "Phantom Player", tn.AID)
	}
}

func TestAirtimeShares(t *testing.T) {
	tb := buildTables()
	tb.Add(&domain.Title{Tid: "2001100603", Epid: "20011006", Category: domain.CategorySketch, Order: 2})
	tb.Add(&domain.Appearance{AID: "Rachel Dratch", Tid: "2001100603", Capacity: domain.CapacityCast})
	tb.Add(&domain.Appearance{AID: "Jeff Richards", Tid: "2001100603", Capacity: domain.CapacityCast})

	require.NoError(t, newTestService(true).Enrich(tb))

	byTid := make(map[string]*domain.Title)
	for _, title := range tb.Titles {
		byTid[title.Tid] = title
	}

	// Two qualifying titles in the episode; Goodnights does not count.
	first := byTid["2001100601"]
	assert.InDelta(t, 0.5, first.EpisodeShare, 1e-9)
	assert.Equal(t, 2, first.NPerformers)
	assert.InDelta(t, 0.25, first.CastEpisodeShare, 1e-9)

	goodnights := byTid["2001100602"]
	assert.Zero(t, goodnights.EpisodeShare)

	third := byTid["2001100603"]
	assert.InDelta(t, 0.25, third.CastEpisodeShare, 1e-9)
}

func TestAirtimeOffByDefault(t *testing.T) {
	tb := buildTables()
	require.NoError(t, newTestService(false).Enrich(tb))
	for _, title := range tb.Titles {
		assert.Zero(t, title.EpisodeShare)
	}
}

func TestCastCorrections(t *testing.T) {
	tb := domain.NewTables()
	tb.Add(&domain.Season{SID: 1, Year: 1975})
	tb.Add(&domain.Episode{Epid: "19751011", Epno: 0, SID: 1})
	tb.Add(&domain.Episode{Epid: "19751108", Epno: 3, SID: 1})
	tb.Add(&domain.Episode{Epid: "19760731", Epno: 23, SID: 1})
	tb.Add(&domain.Actor{AID: "George Coe", Type: domain.ActorCast})
	tb.Add(&domain.Cast{AID: "George Coe", SID: 1})

	require.NoError(t, newTestService(false).Enrich(tb))

	coe := tb.Casts[0]
	require.NotNil(t, coe.LastEpid)
	assert.Equal(t, "19751011", *coe.LastEpid)
	assert.Equal(t, 1, coe.NEpisodes)
}
