// Package pipeline cleans the entity stream between the scrapers and the
// sinks: primary-key dedupe, default filling, and schema validation. Each
// stage is independent and composable; validation never drops entities.
package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hhllcks/snldb/internal/domain"
)

// Stage transforms one entity. Returning false drops it from the stream.
type Stage interface {
	Process(e domain.Entity) (domain.Entity, bool)
}

// Pipeline chains stages in front of a sink. It implements
// domain.EntitySink, so scrapers write to it directly.
type Pipeline struct {
	log    zerolog.Logger
	stages []Stage
	sink   domain.EntitySink
}

// New builds the canonical three-stage pipeline. The dedupe stage is scoped
// to this pipeline instance, i.e. to one crawl run.
func New(log zerolog.Logger, sink domain.EntitySink) *Pipeline {
	return NewWithStages(log, sink,
		NewDedupe(log),
		NewDefaultFill(log),
		NewValidator(log),
	)
}

func NewWithStages(log zerolog.Logger, sink domain.EntitySink, stages ...Stage) *Pipeline {
	return &Pipeline{
		log:    log.With().Str("module", "pipeline").Logger(),
		stages: stages,
		sink:   sink,
	}
}

func (p *Pipeline) Store(ctx context.Context, e domain.Entity) error {
	for _, s := range p.stages {
		var keep bool
		e, keep = s.Process(e)
		if !keep {
			return nil
		}
	}
	return p.sink.Store(ctx, e)
}
