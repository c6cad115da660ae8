package repository

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/hhllcks/snldb/internal/domain"
)

// FileRepository writes one JSON-lines file per entity kind into the output
// directory (seasons.json, actors.json, ...). Lines are appended in stream
// order; re-emitted records (actor-type upgrades) keep the last line as
// authoritative on reload.
type FileRepository struct {
	log zerolog.Logger
	dir string

	mu    sync.Mutex
	files map[domain.Kind]*os.File
}

var _ domain.EntityRepository = (*FileRepository)(nil)

func NewFileRepository(log zerolog.Logger, dir string) *FileRepository {
	return &FileRepository{
		log:   log.With().Str("module", "repository").Logger(),
		dir:   dir,
		files: make(map[domain.Kind]*os.File),
	}
}

func (r *FileRepository) path(kind domain.Kind) string {
	return filepath.Join(r.dir, string(kind)+"s.json")
}

func (r *FileRepository) Store(_ context.Context, e domain.Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.files[e.Kind()]
	if !ok {
		if err := os.MkdirAll(r.dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create output directory %s", r.dir)
		}
		var err error
		f, err = os.OpenFile(r.path(e.Kind()), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return errors.Wrapf(err, "failed to open %s", r.path(e.Kind()))
		}
		r.files[e.Kind()] = f
	}

	line, err := json.Marshal(e)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", e.Kind())
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		return errors.Wrapf(err, "failed to write %s", e.Kind())
	}
	return nil
}

// Close flushes and closes every open table file.
func (r *FileRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for kind, f := range r.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "failed to close %s table", kind)
		}
		delete(r.files, kind)
	}
	return firstErr
}

// HasKey scans the in-memory state written so far. The file repository is a
// write-mostly sink; key lookups are delegated to the pipeline's dedupe
// cache, so this only exists to satisfy the repository interface.
func (r *FileRepository) HasKey(ctx context.Context, kind domain.Kind, key string) (bool, error) {
	tables, err := r.Load(ctx)
	if err != nil {
		return false, err
	}
	for _, e := range tables.All() {
		if e.Kind() != kind {
			continue
		}
		if k, ok := e.PrimaryKey(); ok && k == key {
			return true, nil
		}
	}
	return false, nil
}

// Save rewrites every table file from the materialized tables.
func (r *FileRepository) Save(ctx context.Context, t *domain.Tables) error {
	if err := r.Close(); err != nil {
		return err
	}
	for _, e := range t.All() {
		if err := r.Store(ctx, e); err != nil {
			return err
		}
	}
	return r.Close()
}

// prototypes gives Load a concrete type to decode each kind's lines into.
var prototypes = map[domain.Kind]func() domain.Entity{
	domain.KindSeason:        func() domain.Entity { return &domain.Season{} },
	domain.KindActor:         func() domain.Entity { return &domain.Actor{} },
	domain.KindCast:          func() domain.Entity { return &domain.Cast{} },
	domain.KindEpisode:       func() domain.Entity { return &domain.Episode{} },
	domain.KindHost:          func() domain.Entity { return &domain.Host{} },
	domain.KindTitle:         func() domain.Entity { return &domain.Title{} },
	domain.KindSketch:        func() domain.Entity { return &domain.Sketch{} },
	domain.KindAppearance:    func() domain.Entity { return &domain.Appearance{} },
	domain.KindCharacter:     func() domain.Entity { return &domain.Character{} },
	domain.KindImpression:    func() domain.Entity { return &domain.Impression{} },
	domain.KindEpisodeRating: func() domain.Entity { return &domain.EpisodeRating{} },
	domain.KindTenure:        func() domain.Entity { return &domain.Tenure{} },
}

// Load reads every table file present in the output directory. Keyed kinds
// collapse duplicate lines, last line wins.
func (r *FileRepository) Load(_ context.Context) (*domain.Tables, error) {
	tables := domain.NewTables()

	for kind, proto := range prototypes {
		path := r.path(kind)
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open %s", path)
		}

		at := make(map[string]int)
		var order []domain.Entity

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			e := proto()
			if err := json.Unmarshal(line, e); err != nil {
				f.Close()
				return nil, errors.Wrapf(err, "bad line in %s", path)
			}
			if key, ok := e.PrimaryKey(); ok {
				if i, dup := at[key]; dup {
					order[i] = e
					continue
				}
				at[key] = len(order)
			}
			order = append(order, e)
		}
		if err := scanner.Err(); err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}
		f.Close()

		for _, e := range order {
			tables.Add(e)
		}
		r.log.Debug().Str("kind", string(kind)).Int("count", len(order)).Msg("loaded table")
	}
	return tables, nil
}
