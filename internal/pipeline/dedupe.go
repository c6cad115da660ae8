package pipeline

import (
	"github.com/rs/zerolog"

	"github.com/hhllcks/snldb/internal/domain"
)

// Dedupe drops entities whose primary key was already seen this crawl.
// Duplicates are expected and frequent (a recurring Sketch is referenced
// from every episode it ran in), so drops are logged at trace level only.
//
// Actors get one extra rule: a repeat aid whose type outranks the stored one
// (cast > crew > guest > unknown) is passed through so downstream upserts
// replace the weaker record.
type Dedupe struct {
	log        zerolog.Logger
	seen       map[domain.Kind]map[string]struct{}
	actorTypes map[string]domain.ActorType
}

func NewDedupe(log zerolog.Logger) *Dedupe {
	return &Dedupe{
		log:        log.With().Str("stage", "dedupe").Logger(),
		seen:       make(map[domain.Kind]map[string]struct{}),
		actorTypes: make(map[string]domain.ActorType),
	}
}

func (d *Dedupe) Process(e domain.Entity) (domain.Entity, bool) {
	key, ok := e.PrimaryKey()
	if !ok {
		return e, true
	}

	cache, ok := d.seen[e.Kind()]
	if !ok {
		cache = make(map[string]struct{})
		d.seen[e.Kind()] = cache
	}

	if _, dup := cache[key]; dup {
		if actor, isActor := e.(*domain.Actor); isActor {
			if actor.Type.Outranks(d.actorTypes[actor.AID]) {
				d.actorTypes[actor.AID] = actor.Type
				d.log.Debug().Str("aid", actor.AID).Str("type", string(actor.Type)).
					Msg("re-emitting actor with higher-precedence type")
				return e, true
			}
		}
		d.log.Trace().Str("kind", string(e.Kind())).Str("key", key).Msg("dropping duplicate")
		return nil, false
	}

	cache[key] = struct{}{}
	if actor, isActor := e.(*domain.Actor); isActor {
		d.actorTypes[actor.AID] = actor.Type
	}
	return e, true
}
