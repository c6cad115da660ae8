package scraper

import (
	"github.com/pkg/errors"

	"github.com/hhllcks/snldb/internal/domain"
	"github.com/hhllcks/snldb/internal/ids"
)

// Targets restricts the crawl to configured title/episode/season ids.
// Ancestor ids are derived up front so pruning happens before any child
// request is issued; explicitly-given coarse ids (epids, sids) also cover
// their descendants. An empty target set means "crawl everything".
type Targets struct {
	empty bool

	tids  map[string]struct{}
	epids map[string]struct{}
	sids  map[int]struct{}

	// epids ∪ epid(tids); sids ∪ sid(epids) ∪ sid(tids)
	epidClosure map[string]struct{}
	sidClosure  map[int]struct{}
}

// NewTargets derives the ancestor closure of the configured id sets.
// Malformed ids are hard errors.
func NewTargets(cfg *domain.Config) (*Targets, error) {
	t := &Targets{
		tids:        make(map[string]struct{}),
		epids:       make(map[string]struct{}),
		sids:        make(map[int]struct{}),
		epidClosure: make(map[string]struct{}),
		sidClosure:  make(map[int]struct{}),
	}

	for _, tid := range cfg.TargetTids {
		epid, err := ids.EpidFromTid(tid)
		if err != nil {
			return nil, errors.Wrap(err, "target tid")
		}
		sid, err := ids.SidFromEpid(epid)
		if err != nil {
			return nil, errors.Wrap(err, "target tid")
		}
		t.tids[tid] = struct{}{}
		t.epidClosure[epid] = struct{}{}
		t.sidClosure[sid] = struct{}{}
	}

	for _, epid := range cfg.TargetEpids {
		sid, err := ids.SidFromEpid(epid)
		if err != nil {
			return nil, errors.Wrap(err, "target epid")
		}
		t.epids[epid] = struct{}{}
		t.epidClosure[epid] = struct{}{}
		t.sidClosure[sid] = struct{}{}
	}

	for _, sid := range cfg.TargetSids {
		if sid < 1 {
			return nil, errors.Errorf("target sid %d out of range", sid)
		}
		t.sids[sid] = struct{}{}
		t.sidClosure[sid] = struct{}{}
	}

	t.empty = len(t.tids) == 0 && len(t.epids) == 0 && len(t.sids) == 0
	return t, nil
}

// Season reports whether the crawl should descend into season sid.
func (t *Targets) Season(sid int) bool {
	if t.empty {
		return true
	}
	_, ok := t.sidClosure[sid]
	return ok
}

// Episode reports whether the crawl should descend into episode epid.
func (t *Targets) Episode(epid string) bool {
	if t.empty {
		return true
	}
	if _, ok := t.epidClosure[epid]; ok {
		return true
	}
	sid, err := ids.SidFromEpid(epid)
	if err != nil {
		return false
	}
	_, ok := t.sids[sid]
	return ok
}

// Title reports whether the crawl should descend into title tid.
func (t *Targets) Title(tid string) bool {
	if t.empty {
		return true
	}
	if _, ok := t.tids[tid]; ok {
		return true
	}
	epid, err := ids.EpidFromTid(tid)
	if err != nil {
		return false
	}
	if _, ok := t.epids[epid]; ok {
		return true
	}
	sid, err := ids.SidFromEpid(epid)
	if err != nil {
		return false
	}
	_, ok := t.sids[sid]
	return ok
}
