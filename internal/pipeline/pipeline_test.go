package pipeline

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hhllcks/snldb/internal/domain"
)

type captureSink struct {
	entities []domain.Entity
}

func (c *captureSink) Store(_ context.Context, e domain.Entity) error {
	c.entities = append(c.entities, e)
	return nil
}

func testLog() zerolog.Logger {
	return zerolog.Nop()
}

func TestDedupeIdempotent(t *testing.T) {
	sink := &captureSink{}
	p := New(testLog(), sink)
	ctx := context.Background()

	sketch := &domain.Sketch{Skid: "123", Name: "Jeopardy!"}
	require.NoError(t, p.Store(ctx, sketch))
	require.NoError(t, p.Store(ctx, &domain.Sketch{Skid: "123", Name: "Jeopardy!"}))

	assert.Len(t, sink.entities, 1)
}

func TestDedupeUnkeyedPassThrough(t *testing.T) {
	sink := &captureSink{}
	p := New(testLog(), sink)
	ctx := context.Background()

	// Appearances have no single-field key; two with the same fields pass.
	a1 := &domain.Appearance{AID: "Ana Gasteyer", Tid: "200205186", Capacity: domain.CapacityCast}
	a2 := &domain.Appearance{AID: "Ana Gasteyer", Tid: "200205186", Capacity: domain.CapacityCast}
	require.NoError(t, p.Store(ctx, a1))
	require.NoError(t, p.Store(ctx, a2))

	assert.Len(t, sink.entities, 2)
}

func TestDedupeActorTypePrecedence(t *testing.T) {
	d := NewDedupe(testLog())

	_, keep := d.Process(&domain.Actor{AID: "Kristen Wiig", Type: domain.ActorGuest})
	assert.True(t, keep)

	// Repeated with the same or weaker type: dropped.
	_, keep = d.Process(&domain.Actor{AID: "Kristen Wiig", Type: domain.ActorGuest})
	assert.False(t, keep)
	_, keep = d.Process(&domain.Actor{AID: "Kristen Wiig", Type: domain.ActorUnknown})
	assert.False(t, keep)

	// cast outranks guest: re-emitted so sinks upsert.
	_, keep = d.Process(&domain.Actor{AID: "Kristen Wiig", Type: domain.ActorCast})
	assert.True(t, keep)

	// And guest no longer gets back in.
	_, keep = d.Process(&domain.Actor{AID: "Kristen Wiig", Type: domain.ActorGuest})
	assert.False(t, keep)
}

func TestDefaultFill(t *testing.T) {
	df := NewDefaultFill(testLog())

	c := &domain.Cast{AID: "Al Franken", SID: 21}
	e, keep := df.Process(c)
	require.True(t, keep)

	got := e.(*domain.Cast)
	require.NotNil(t, got.Featured)
	assert.False(t, *got.Featured)
	require.NotNil(t, got.UpdateAnchor)
	assert.False(t, *got.UpdateAnchor)
	// No default declared: stays unset.
	assert.Nil(t, got.FirstEpid)
}

func TestDefaultFillIdempotent(t *testing.T) {
	df := NewDefaultFill(testLog())

	c := &domain.Cast{AID: "Al Franken", SID: 21, Featured: domain.Bool(true)}
	df.Process(c)
	first := *c.Featured
	df.Process(c)

	assert.Equal(t, first, *c.Featured)
	assert.True(t, *c.Featured, "declared value must survive filling")
}

func TestValidatorKeepsInvalidEntities(t *testing.T) {
	v := NewValidator(testLog())

	// Bad category, but the entity must still come through with its valid
	// fields untouched.
	title := &domain.Title{
		Tid:      "2002051810",
		Epid:     "20020518",
		Category: "Interpretive Dance",
		Order:    9,
	}
	e, keep := v.Process(title)
	require.True(t, keep)
	got := e.(*domain.Title)
	assert.Equal(t, "2002051810", got.Tid)
	assert.Equal(t, domain.Category("Interpretive Dance"), got.Category)
	assert.Equal(t, 9, got.Order)
}

func TestValidatorScoreKeys(t *testing.T) {
	v := NewValidator(testLog())

	full := make(map[int]int)
	for i := 1; i <= 10; i++ {
		full[i] = i * 10
	}
	r := &domain.EpisodeRating{Epno: 1, SID: 1, ScoreCounts: full}
	_, keep := v.Process(r)
	assert.True(t, keep)

	// Partial key set is a validation warning, never a drop.
	partial := &domain.EpisodeRating{Epno: 1, SID: 1, ScoreCounts: map[int]int{1: 5}}
	_, keep = v.Process(partial)
	assert.True(t, keep)
}

func TestPipelineOrderPreserved(t *testing.T) {
	sink := &captureSink{}
	p := New(testLog(), sink)
	ctx := context.Background()

	require.NoError(t, p.Store(ctx, &domain.Season{SID: 1, Year: 1975}))
	require.NoError(t, p.Store(ctx, &domain.Episode{Epid: "19751011", Epno: 0, SID: 1, Aired: "October 11, 1975"}))
	require.NoError(t, p.Store(ctx, &domain.Host{Epid: "19751011", AID: "George Carlin"}))

	require.Len(t, sink.entities, 3)
	assert.Equal(t, domain.KindSeason, sink.entities[0].Kind())
	assert.Equal(t, domain.KindEpisode, sink.entities[1].Kind())
	assert.Equal(t, domain.KindHost, sink.entities[2].Kind())
}
