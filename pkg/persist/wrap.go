package persist

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ajitpratap0/tabular/pkg/compression"
	"github.com/ajitpratap0/tabular/pkg/frame"
	"github.com/ajitpratap0/tabular/pkg/metrics"
	"github.com/ajitpratap0/tabular/pkg/observability"
)

// Compressed compresses content before handing it to the wrapped persister and appends
// the algorithm's extension to the name.
type Compressed struct {
	inner     frame.Persister
	algorithm compression.Algorithm
}

// NewCompressed wraps inner.
func NewCompressed(inner frame.Persister, algorithm compression.Algorithm) *Compressed {
	return &Compressed{inner: inner, algorithm: algorithm}
}

// Persist implements frame.Persister.
func (c *Compressed) Persist(ctx context.Context, name string, content []byte) error {
	compressed, err := compression.Compress(c.algorithm, content)
	if err != nil {
		return err
	}
	return c.inner.Persist(ctx, name+c.algorithm.Extension(), compressed)
}

// Instrumented records a span, prometheus counters and a log line for
// every call to Inner.
type Instrumented struct {
	inner   frame.Persister
	backend string
	log     *zap.Logger
}

// NewInstrumented wraps inner. backend labels the metrics.
func NewInstrumented(inner frame.Persister, backend string, log *zap.Logger) *Instrumented {
	return &Instrumented{inner: inner, backend: backend, log: log}
}

// Persist implements frame.Persister.
func (i *Instrumented) Persist(ctx context.Context, name string, content []byte) error {
	ctx, span := observability.StartSpan(ctx, "persist",
		attribute.String("persist.backend", i.backend),
		attribute.String("persist.name", name),
		attribute.Int("persist.bytes", len(content)),
	)
	timer := metrics.NewTimer()

	err := i.inner.Persist(ctx, name, content)

	elapsed := timer.Stop()
	metrics.PersistLatency.WithLabelValues(i.backend).Observe(elapsed.Seconds())
	observability.EndSpan(span, err)

	if err != nil {
		metrics.PersistErrors.WithLabelValues(i.backend).Inc()
		i.log.Warn("persist failed",
			zap.String("backend", i.backend),
			zap.String("name", name),
			zap.Error(err))
		return err
	}

	metrics.PersistBytes.WithLabelValues(i.backend).Add(float64(len(content)))
	i.log.Debug("persisted",
		zap.String("backend", i.backend),
		zap.String("name", name),
		zap.Int("bytes", len(content)),
		zap.Duration("duration", elapsed))
	return nil
}

// Async hands each artifact to the wrapped persister on its own goroutine and returns
// immediately. Failures are logged and collected for Wait.
type Async struct {
	inner frame.Persister
	log   *zap.Logger

	wg   sync.WaitGroup
	mu   sync.Mutex
	errs error
}

// NewAsync wraps inner.
func NewAsync(inner frame.Persister, log *zap.Logger) *Async {
	return &Async{inner: inner, log: log}
}

// Persist implements frame.Persister. It never fails; the content is
// copied so the caller may reuse it. Cancelling ctx does not abort the
// write.
func (a *Async) Persist(ctx context.Context, name string, content []byte) error {
	job := uuid.NewString()
	data := append([]byte(nil), content...)
	ctx = context.WithoutCancel(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.inner.Persist(ctx, name, data); err != nil {
			a.log.Error("background persist failed",
				zap.String("job", job),
				zap.String("name", name),
				zap.Error(err))
			a.mu.Lock()
			a.errs = multierr.Append(a.errs, err)
			a.mu.Unlock()
			return
		}
		a.log.Debug("background persist done", zap.String("job", job), zap.String("name", name))
	}()
	return nil
}

// Wait blocks until all pending writes finish and returns their combined
// errors. Collected errors are cleared.
func (a *Async) Wait() error {
	a.wg.Wait()
	a.mu.Lock()
	defer a.mu.Unlock()
	err := a.errs
	a.errs = nil
	return err
}
