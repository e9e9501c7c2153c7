package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/KaramelBytes/edastat/internal/utils"
)

// Sink receives finished figures in the order they are produced.
type Sink interface {
	Emit(fig *Figure) (string, error)
}

// FileSink writes each figure as an image under Dir.
type FileSink struct {
	Dir    string
	Format string
	Logger *slog.Logger

	mu   sync.Mutex
	used map[string]bool
}

// NewFileSink creates <root>/<runID> and returns a sink writing into it.
func NewFileSink(root, runID, format string, logger *slog.Logger) (*FileSink, error) {
	dir := filepath.Join(root, runID)
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSink{
		Dir:    dir,
		Format: strings.ToLower(format),
		Logger: logger,
		used:   make(map[string]bool),
	}, nil
}

// Emit encodes the figure and writes it atomically. A title seen earlier in
// the run gets a numeric suffix instead of overwriting the first file.
func (s *FileSink) Emit(fig *Figure) (string, error) {
	wt, err := fig.Plot.WriterTo(fig.Width, fig.Height, s.Format)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", fig.Title, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("encode %s: %w", fig.Title, err)
	}

	path := s.nextPath(fig.Slug)
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("write %s: %w", fig.Title, err)
	}
	s.Logger.Debug("figure written", "title", fig.Title, "path", path, "bytes", buf.Len())
	return path, nil
}

func (s *FileSink) nextPath(slug string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	name := slug
	for idx := 2; ; idx++ {
		cand := filepath.Join(s.Dir, name+"."+s.Format)
		if _, err := os.Stat(cand); !s.used[name] && os.IsNotExist(err) {
			s.used[name] = true
			return cand
		}
		name = fmt.Sprintf("%s__%d", slug, idx)
	}
}

// Memory keeps figures in memory; used for dry runs.
type Memory struct {
	mu      sync.Mutex
	Figures []*Figure
}

// Emit records the figure and returns its slug.
func (m *Memory) Emit(fig *Figure) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Figures = append(m.Figures, fig)
	return fig.Slug, nil
}

// Titles lists the recorded figure titles in emit order.
func (m *Memory) Titles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Figures))
	for i, f := range m.Figures {
		out[i] = f.Title
	}
	return out
}
