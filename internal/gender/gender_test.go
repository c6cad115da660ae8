package gender

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hhllcks/snldb/internal/domain"
)

func newDetector(t *testing.T, cfg *domain.Config) *Detector {
	t.Helper()
	d, err := NewDetector(zerolog.Nop(), cfg)
	require.NoError(t, err)
	return d
}

func TestClassifyLayering(t *testing.T) {
	d := newDetector(t, &domain.Config{Confident: true})

	// Full-name override beats the androgynous first-name entry.
	assert.Equal(t, Male, d.Classify("Dana Carvey"))
	assert.Equal(t, Andy, d.Classify("Dana Plato"))

	// First-name override sets.
	assert.Equal(t, Male, d.Classify("Chevy Chase"))
	assert.Equal(t, Female, d.Classify("Aidy Bryant"))

	// Statistical table.
	assert.Equal(t, Female, d.Classify("Rachel Dratch"))
	assert.Equal(t, Male, d.Classify("Bill Murray"))

	assert.Equal(t, Unknown, d.Classify("Xlqz Nobody"))
	assert.Equal(t, Unknown, d.Classify(""))
}

func TestClassifyConfidenceCollapsing(t *testing.T) {
	confident := newDetector(t, &domain.Config{Confident: true})
	assert.Equal(t, Male, confident.Classify("Chris Parnell"))
	assert.Equal(t, Female, confident.Classify("Robin Williams Jr."))

	raw := newDetector(t, &domain.Config{Confident: false})
	assert.Equal(t, MostlyMale, raw.Classify("Chris Parnell"))
	assert.Equal(t, MostlyFemale, raw.Classify("Robin Williams Jr."))
}

func TestClassifyIsTotal(t *testing.T) {
	d := newDetector(t, &domain.Config{Confident: true})
	for _, name := range []string{"", "   ", "模様 Nobody", "A", "The Entire Cast"} {
		assert.NotEmpty(t, d.Classify(name), name)
	}
}

func TestLoadableNameList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "female.yaml")
	require.NoError(t, os.WriteFile(path, []byte("names:\n  - Strange Name\n  - \n"), 0o644))

	d := newDetector(t, &domain.Config{Confident: true, FemaleNamesFile: path})
	assert.Equal(t, Female, d.Classify("Strange Name"))

	// Base detector without the list does not know the name.
	base := newDetector(t, &domain.Config{Confident: true})
	assert.Equal(t, Unknown, base.Classify("Strange Name"))
}

func TestLoadableNameListMissingFile(t *testing.T) {
	_, err := NewDetector(zerolog.Nop(), &domain.Config{MaleNamesFile: "/does/not/exist.yaml"})
	assert.Error(t, err)
}

func TestAnnotate(t *testing.T) {
	d := newDetector(t, &domain.Config{Confident: true})
	tb := domain.NewTables()
	tb.Add(&domain.Actor{AID: "Rachel Dratch", Type: domain.ActorCast})
	tb.Add(&domain.Actor{AID: "Will Ferrell", Type: domain.ActorCast})
	tb.Add(&domain.Actor{AID: "Xlqz Nobody", Type: domain.ActorGuest})

	d.Annotate(tb)

	assert.Equal(t, Female, tb.Actors[0].Gender)
	assert.Equal(t, Male, tb.Actors[1].Gender)
	assert.Equal(t, Unknown, tb.Actors[2].Gender)
}
