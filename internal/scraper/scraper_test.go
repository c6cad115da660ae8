package scraper

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
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

func (c *captureSink) appearances() []*domain.Appearance {
	var out []*domain.Appearance
	for _, e := range c.entities {
		if a, ok := e.(*domain.Appearance); ok {
			out = append(out, a)
		}
	}
	return out
}

func newTestService(t *testing.T) (*service, *captureSink) {
	t.Helper()
	sink := &captureSink{}
	targets, err := NewTargets(&domain.Config{})
	require.NoError(t, err)
	return &service{
		log:     zerolog.Nop(),
		cfg:     &domain.Config{},
		sink:    sink,
		targets: targets,
		base:    baseURL,
		ctx:     context.Background(),
	}, sink
}

func doc(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d.Selection
}

func TestAsciify(t *testing.T) {
	assert.Equal(t, "Fred Armisen", Asciify("Fred Armisen"))
	assert.Equal(t, "Celine Dion", Asciify("Céline Dion"))
	assert.Equal(t, "Ana Gasteyer", Asciify("  Ana Gasteyer "))
}

func TestActorFromLink(t *testing.T) {
	tests := []struct {
		html  string
		atype domain.ActorType
		aid   string
	}{
		{`<a href="/Cast/?RaDr">Rachel Dratch</a>`, domain.ActorCast, "Rachel Dratch"},
		{`<a href="/Guests/?3230">Alec Baldwin</a>`, domain.ActorGuest, "Alec Baldwin"},
		{`<a href="/Crew/?JaDo">Jim Downey</a>`, domain.ActorCrew, "Jim Downey"},
	}
	for _, tt := range tests {
		sel := doc(t, tt.html).Find("a")
		actor, raw, err := actorFromLink(sel)
		require.NoError(t, err)
		assert.Equal(t, tt.aid, actor.AID)
		assert.Equal(t, tt.aid, raw)
		assert.Equal(t, tt.atype, actor.Type)
		require.NotNil(t, actor.URL)
	}
}

func TestActorFromLinkBadPrefix(t *testing.T) {
	sel := doc(t, `<a href="/Writers/?X">Nobody</a>`).Find("a")
	_, _, err := actorFromLink(sel)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadActorLink)
}

func TestParseRoleCellVoice(t *testing.T) {
	td := doc(t, `<table><tr><td>announcer (voice)</td></tr></table>`).Find("td")
	app := &domain.Appearance{}
	require.NoError(t, parseRoleCell(td, app))
	assert.Equal(t, "announcer", app.RoleName())
	require.NotNil(t, app.Voice)
	assert.True(t, *app.Voice)
}

func TestParseRoleCellImpression(t *testing.T) {
	td := doc(t, `<table><tr><td><a href="/Impressions/?1234">Kathleen Sebelius</a></td></tr></table>`).Find("td")
	app := &domain.Appearance{}
	require.NoError(t, parseRoleCell(td, app))
	require.NotNil(t, app.Impid)
	assert.Equal(t, 1234, *app.Impid)
	assert.Nil(t, app.Charid)
	assert.Equal(t, "Kathleen Sebelius", app.RoleName())
}

func TestParseRoleCellCharacter(t *testing.T) {
	td := doc(t, `<table><tr><td><a href="/Characters/?559">Virginia Klarvin</a></td></tr></table>`).Find("td")
	app := &domain.Appearance{}
	require.NoError(t, parseRoleCell(td, app))
	require.NotNil(t, app.Charid)
	assert.Equal(t, 559, *app.Charid)
}

func TestParseRoleCellBadLink(t *testing.T) {
	td := doc(t, `<table><tr><td><a href="/Sketches/?12">thing</a></td></tr></table>`).Find("td")
	err := parseRoleCell(td, &domain.Appearance{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRoleLink)
}

func TestParseCastRowLinked(t *testing.T) {
	s, _ := newTestService(t)
	row := doc(t, `<table class="roleTable"><tr>
		<td><a href="/Cast/?RaDr">Rachel Dratch</a></td>
		<td> ... </td>
		<td><a href="/Characters/?559">Virginia Klarvin</a></td>
	</tr></table>`).Find("tr")

	actor, app, err := s.parseCastRow(row, nil, "2002051810")
	require.NoError(t, err)
	assert.Equal(t, "Rachel Dratch", actor.AID)
	assert.Equal(t, domain.ActorCast, actor.Type)
	assert.Equal(t, domain.CapacityCast, app.Capacity)
	require.NotNil(t, app.Charid)
	assert.Equal(t, 559, *app.Charid)
}

func TestParseCastRowUnlinkedUsesHintAndLookup(t *testing.T) {
	s, _ := newTestService(t)
	extra := map[string]domain.Actor{
		"Winona Ryder": {AID: "Winona Ryder", Type: domain.ActorGuest},
	}
	row := doc(t, `<table class="roleTable"><tr>
		<td class="host">Winona Ryder</td>
		<td> ... </td>
		<td>Clarissa</td>
	</tr></table>`).Find("tr")

	actor, app, err := s.parseCastRow(row, extra, "2002051810")
	require.NoError(t, err)
	assert.Equal(t, "Winona Ryder", actor.AID)
	assert.Equal(t, domain.ActorGuest, actor.Type)
	assert.Equal(t, domain.CapacityHost, app.Capacity)
	assert.Equal(t, "Clarissa", app.RoleName())
}

func TestParseCastRowSynthesizesUnknownActor(t *testing.T) {
	s, _ := newTestService(t)
	row := doc(t, `<table class="roleTable"><tr>
		<td class="cameo">Mystery Person</td>
	</tr></table>`).Find("tr")

	actor, app, err := s.parseCastRow(row, map[string]domain.Actor{}, "2002051810")
	require.NoError(t, err)
	assert.Equal(t, "Mystery Person", actor.AID)
	assert.Equal(t, domain.ActorUnknown, actor.Type)
	assert.Equal(t, domain.CapacityCameo, app.Capacity)
}

func TestParseCastRowSpecialCase(t *testing.T) {
	s, _ := newTestService(t)
	row := doc(t, `<table class="roleTable"><tr>
		<td class="other">Jack Handey</td>
	</tr></table>`).Find("tr")

	actor, _, err := s.parseCastRow(row, map[string]domain.Actor{}, "199103165")
	require.NoError(t, err)
	assert.Equal(t, "Jack Handey", actor.AID)
	assert.Equal(t, domain.ActorCrew, actor.Type)
}

const dualRoleTitleHTML = `<html><body><table class="roleTable">
	<tr><td><a href="/Cast/?ChPa">Chris Parnell</a></td><td> ... </td><td>Mr. Singer</td></tr>
	<tr><td><a href="/Cast/?ChPa">Chris Parnell</a></td><td> ... </td><td>(voice) narrator</td></tr>
	<tr><td><a href="/Cast/?RaDr">Rachel Dratch</a></td><td> ... </td><td>a customer</td></tr>
</table></body></html>`

func TestVisitTitleDualRole(t *testing.T) {
	s, sink := newTestService(t)
	title := &domain.Title{Tid: "2005111211", Epid: "20051112", Category: domain.CategorySketch}

	s.visitTitle(doc(t, dualRoleTitleHTML), title, nil)

	var parnell []*domain.Appearance
	for _, a := range sink.appearances() {
		if a.AID == "Chris Parnell" {
			parnell = append(parnell, a)
		}
	}
	// Two distinct non-empty roles: the dual-role exception applies.
	require.Len(t, parnell, 2)
	assert.Equal(t, "Mr. Singer", parnell[0].RoleName())
	assert.Equal(t, "(voice) narrator", parnell[1].RoleName())
}

const repeatRoleTitleHTML = `<html><body><table class="roleTable">
	<tr><td><a href="/Cast/?AnGa">Ana Gasteyer</a></td><td> ... </td><td>Announcer</td></tr>
	<tr><td><a href="/Cast/?AnGa">Ana Gasteyer</a></td><td> ... </td><td>Announcer</td></tr>
</table></body></html>`

func TestVisitTitleSuppressesCleanDuplicate(t *testing.T) {
	s, sink := newTestService(t)
	title := &domain.Title{Tid: "200205186", Epid: "20020518", Category: domain.CategoryCommercial}

	s.visitTitle(doc(t, repeatRoleTitleHTML), title, nil)

	assert.Len(t, sink.appearances(), 1)
}

func TestVisitTitlePerformanceCategorySkipsRoles(t *testing.T) {
	s, sink := newTestService(t)
	title := &domain.Title{Tid: "200010217", Epid: "20001021", Category: domain.CategoryMusicalPerf}

	s.visitTitle(doc(t, dualRoleTitleHTML), title, nil)

	assert.Empty(t, sink.appearances())
	require.Len(t, sink.entities, 1)
	assert.Equal(t, domain.KindTitle, sink.entities[0].Kind())
}

const episodeMetaHTML = `<html><body><table class="epGuests">
	<tr><td><p>Aired:</p></td><td><p>October 4, 2014 (<a href="/Seasons/?2014">S40</a>E2 / #768)</p></td></tr>
	<tr><td><p>Host:</p></td><td><p><a href="/Guests/?1100">Sarah Silverman</a></p></td></tr>
	<tr><td><p>Cameos:</p></td><td><p><a href="/Guests/?1101">Al Sharpton</a>, <a href="/Cast/?MaMc">Maya Rudolph</a></p></td></tr>
	<tr><td><p>Musical Guest:</p></td><td><p><a href="/Guests/?1102">Maroon 5</a></p></td></tr>
	<tr><td><p>Director:</p></td><td><p>Don Roy King</p></td></tr>
</table></body></html>`

func TestParseEpisodeMeta(t *testing.T) {
	s, _ := newTestService(t)
	meta, err := s.parseEpisodeMeta(doc(t, episodeMetaHTML), "20141004")
	require.NoError(t, err)

	assert.Equal(t, "October 4, 2014", meta.aired)
	assert.Equal(t, 1, meta.epno) // E2, zero-based

	require.Len(t, meta.hosts, 1)
	assert.Equal(t, "Sarah Silverman", meta.hosts[0].AID)

	// Hosts, cameos and musical guests all land in the extra-cast lookup.
	assert.Len(t, meta.extra, 4)
	assert.Contains(t, meta.extra, "Maya Rudolph")
	assert.Contains(t, meta.extra, "Maroon 5")
	assert.Equal(t, domain.ActorCast, meta.extra["Maya Rudolph"].Type)
}

const specialEpisodeHTML = `<html><body><table class="epGuests">
	<tr><td><p>Aired:</p></td><td><p>February 20, 2015 (<a href="/Seasons/?2014">S40</a>Special)</p></td></tr>
	<tr><td><p>Host:</p></td><td><p><a href="/Guests/?1100">Steve Martin</a></p></td></tr>
</table></body></html>`

func TestParseEpisodeMetaSpecialSkipped(t *testing.T) {
	s, _ := newTestService(t)
	_, err := s.parseEpisodeMeta(doc(t, specialEpisodeHTML), "20150220")
	require.Error(t, err)
	assert.ErrorIs(t, err, errEpnoUnparseable)
}

const castMemberHTML = `<html><head><title>SNL Archives | Cast | Al Franken</title></head><body>
	<div id="popup_1">
		<p><a href="/Seasons/?1995">1995-96</a></p>
		<p>Update</p>
	</div>
	<div id="popup_2">
		<p><a href="/Seasons/?1977">1977-78</a></p>
		<p>Featured Player</p>
		<p>First episode <a href="/Episodes/?19771112">November 12, 1977</a></p>
	</div>
	<div id="popup_3">
		<p><a href="/Characters/?12">Stuart Smalley</a></p>
	</div>
</body></html>`

func TestParseCastPopups(t *testing.T) {
	s, sink := newTestService(t)
	d, err := goquery.NewDocumentFromReader(strings.NewReader(castMemberHTML))
	require.NoError(t, err)

	for i := 1; ; i++ {
		popup := d.Find("#popup_" + string(rune('0'+i)))
		if popup.Length() == 0 {
			break
		}
		cast, ok := s.parseCastPopup(popup, "Al Franken")
		if !ok {
			break
		}
		s.emit(cast)
	}

	require.Len(t, sink.entities, 2)

	first := sink.entities[0].(*domain.Cast)
	assert.Equal(t, 21, first.SID) // 1995-96 season
	require.NotNil(t, first.UpdateAnchor)
	assert.True(t, *first.UpdateAnchor)

	second := sink.entities[1].(*domain.Cast)
	assert.Equal(t, 3, second.SID)
	require.NotNil(t, second.Featured)
	assert.True(t, *second.Featured)
	require.NotNil(t, second.FirstEpid)
	assert.Equal(t, "19771112", *second.FirstEpid)
	assert.Nil(t, second.LastEpid)
}

func TestTargetsClosure(t *testing.T) {
	targets, err := NewTargets(&domain.Config{TargetTids: []string{"2002051810"}})
	require.NoError(t, err)

	assert.True(t, targets.Title("2002051810"))
	assert.True(t, targets.Episode("20020518"))
	assert.True(t, targets.Season(27))

	assert.False(t, targets.Title("2002051811"))
	assert.False(t, targets.Episode("20021005"))
	assert.False(t, targets.Season(28))
}

func TestTargetsSeasonCoversDescendants(t *testing.T) {
	targets, err := NewTargets(&domain.Config{TargetSids: []int{27}})
	require.NoError(t, err)

	assert.True(t, targets.Season(27))
	assert.True(t, targets.Episode("20020518"))
	assert.True(t, targets.Title("2002051810"))
	assert.False(t, targets.Episode("20021005"))
}

func TestTargetsEmptyMeansEverything(t *testing.T) {
	targets, err := NewTargets(&domain.Config{})
	require.NoError(t, err)

	assert.True(t, targets.Season(1))
	assert.True(t, targets.Episode("19751011"))
	assert.True(t, targets.Title("1975101112"))
}

func TestTargetsRejectsMalformedTid(t *testing.T) {
	_, err := NewTargets(&domain.Config{TargetTids: []string{"bogus"}})
	assert.Error(t, err)
}
