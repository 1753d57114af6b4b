package persist

import (
	"context"
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ajitpratap0/tabular/pkg/compression"
	"github.com/ajitpratap0/tabular/pkg/config"
	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/frame"
)

// Sink is a configured backend stack. Close must be called once all
// tables are written.
type Sink struct {
	frame.Persister
	async   *Async
	closers []io.Closer
}

// New builds the backend described by cfg. stdout receives output for
// the stdout kind.
func New(ctx context.Context, cfg config.PersistConfig, stdout io.Writer, log *zap.Logger) (*Sink, error) {
	alg, err := compression.Parse(cfg.Compression)
	if err != nil {
		return nil, err
	}

	s := &Sink{}
	var base frame.Persister
	switch cfg.Kind {
	case config.PersistFile, "":
		dir := cfg.Dir
		if dir == "" {
			dir = "."
		}
		base = NewFile(dir)
	case config.PersistStdout:
		base = NewWriter(stdout)
	case config.PersistS3:
		b, err := NewS3(ctx, cfg.Bucket, cfg.Prefix, cfg.Region)
		if err != nil {
			return nil, err
		}
		base = b
	case config.PersistGCS:
		b, err := NewGCS(ctx, cfg.Bucket, cfg.Prefix, cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		base = b
		s.closers = append(s.closers, b)
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig, "unknown persist kind %q", cfg.Kind)
	}

	kind := cfg.Kind
	if kind == "" {
		kind = config.PersistFile
	}
	var p frame.Persister = NewInstrumented(base, kind, log)
	if alg != compression.None {
		p = NewCompressed(p, alg)
	}
	if cfg.Async {
		s.async = NewAsync(p, log)
		p = s.async
	}
	s.Persister = p

	log.Debug("persist backend ready",
		zap.String("kind", kind),
		zap.String("compression", string(alg)),
		zap.Bool("async", cfg.Async))
	return s, nil
}

// Close waits for background writes and releases clients.
func (s *Sink) Close() error {
	var err error
	if s.async != nil {
		err = multierr.Append(err, s.async.Wait())
	}
	for _, c := range s.closers {
		err = multierr.Append(err, c.Close())
	}
	return err
}
