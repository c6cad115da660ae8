package gender

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/hhllcks/snldb/internal/domain"
)

// Labels follow the usual gender-guesser vocabulary. Mostly-qualified labels
// survive only when confidence collapsing is disabled.
const (
	Male         = "male"
	Female       = "female"
	MostlyMale   = "mostly_male"
	MostlyFemale = "mostly_female"
	Andy         = "andy"
	Unknown      = "unknown"
)

// Detector classifies performer names. Classification is layered: full-name
// overrides first, then first-name overrides, then the statistical name
// table. It always returns a label.
type Detector struct {
	log       zerolog.Logger
	confident bool

	maleFullnames   map[string]struct{}
	femaleFullnames map[string]struct{}
}

// overrideFile is the yaml shape of a loadable name list: a flat list of
// full names.
type overrideFile struct {
	Names []string `yaml:"names"`
}

func NewDetector(log zerolog.Logger, cfg *domain.Config) (*Detector, error) {
	d := &Detector{
		log:             log.With().Str("module", "gender").Logger(),
		confident:       cfg.Confident,
		maleFullnames:   make(map[string]struct{}),
		femaleFullnames: make(map[string]struct{}),
	}
	for name := range maleFullnames {
		d.maleFullnames[name] = struct{}{}
	}
	for name := range femaleFullnames {
		d.femaleFullnames[name] = struct{}{}
	}

	if cfg.MaleNamesFile != "" {
		if err := loadNames(cfg.MaleNamesFile, d.maleFullnames); err != nil {
			return nil, errors.Wrap(err, "male names file")
		}
	}
	if cfg.FemaleNamesFile != "" {
		if err := loadNames(cfg.FemaleNamesFile, d.femaleFullnames); err != nil {
			return nil, errors.Wrap(err, "female names file")
		}
	}
	return d, nil
}

func loadNames(path string, into map[string]struct{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read name list")
	}
	var f overrideFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return errors.Wrap(err, "failed to parse name list")
	}
	for _, name := range f.Names {
		if name = strings.TrimSpace(name); name != "" {
			into[name] = struct{}{}
		}
	}
	return nil
}

// Classify returns the gender label for a full performer name.
func (d *Detector) Classify(name string) string {
	if _, ok := d.femaleFullnames[name]; ok {
		return Female
	}
	if _, ok := d.maleFullnames[name]; ok {
		return Male
	}

	first := strings.Fields(name)
	if len(first) == 0 {
		return Unknown
	}
	if _, ok := extraMaleNames[first[0]]; ok {
		return Male
	}
	if _, ok := extraFemaleNames[first[0]]; ok {
		return Female
	}

	guess, ok := firstNames[first[0]]
	if !ok {
		return Unknown
	}
	if d.confident {
		switch guess {
		case MostlyMale:
			return Male
		case MostlyFemale:
			return Female
		}
	}
	return guess
}

// Annotate fills the Gender column on every actor.
func (d *Detector) Annotate(tables *domain.Tables) {
	counts := make(map[string]int)
	for _, a := range tables.Actors {
		a.Gender = d.Classify(a.AID)
		counts[a.Gender]++
		if a.Gender == Unknown || a.Gender == Andy {
			d.log.Debug().Str("aid", a.AID).Str("gender", a.Gender).
				Msg("name not confidently classified")
		}
	}
	d.log.Info().Interface("counts", counts).Msg("gender annotation finished")
}
