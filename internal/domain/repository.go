package domain

import "context"

// EntitySink consumes the ordered entity stream produced by the scrapers
// (after the pipeline has cleaned it).
type EntitySink interface {
	Store(ctx context.Context, e Entity) error
}

// EntityRepository is a sink that also supports primary-key existence checks
// and bulk load/save, for persistence layers that back the enrich command.
type EntityRepository interface {
	EntitySink
	HasKey(ctx context.Context, kind Kind, key string) (bool, error)
	Load(ctx context.Context) (*Tables, error)
	Save(ctx context.Context, t *Tables) error
}

// MultiSink fans one stream out to several sinks in order.
type MultiSink []EntitySink

func (m MultiSink) Store(ctx context.Context, e Entity) error {
	for _, s := range m {
		if err := s.Store(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// TablesSink adapts Tables to the EntitySink interface.
type TablesSink struct {
	Tables *Tables
}

func (s TablesSink) Store(_ context.Context, e Entity) error {
	s.Tables.Add(e)
	return nil
}
