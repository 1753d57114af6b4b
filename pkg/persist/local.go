package persist

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/ajitpratap0/tabular/pkg/errors"
)

// File writes each artifact into Dir. Files are replaced atomically so a
// reader never sees a partial write.
type File struct {
	Dir string
}

// NewFile returns a File backend rooted at dir.
func NewFile(dir string) *File {
	return &File{Dir: dir}
}

// Persist implements frame.Persister.
func (f *File) Persist(ctx context.Context, name string, content []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create output directory").
			WithDetail("dir", f.Dir)
	}
	path := filepath.Join(f.Dir, name)
	if err := atomic.WriteFile(path, bytes.NewReader(content)); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write file").
			WithDetail("path", path)
	}
	return nil
}

// Writer copies artifacts to an io.Writer such as os.Stdout. The name is
// not written.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter returns a Writer backend.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Persist implements frame.Persister.
func (w *Writer) Persist(_ context.Context, _ string, content []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.w.Write(content); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write output")
	}
	return nil
}

// Memory keeps artifacts in memory, keyed by name. Later writes replace
// earlier ones.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemory returns an empty Memory backend.
func NewMemory() *Memory {
	return &Memory{files: make(map[string][]byte)}
}

// Persist implements frame.Persister.
func (m *Memory) Persist(_ context.Context, name string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = bytes.Clone(content)
	return nil
}

// Get returns the content stored under name.
func (m *Memory) Get(name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.files[name]
	return b, ok
}

// Names returns the stored names in sorted order.
func (m *Memory) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return errors.Newf(errors.ErrorTypeValidation, "invalid file name %q", name)
	}
	return nil
}
