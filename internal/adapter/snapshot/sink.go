package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/ocean-globe/internal/domain"
)

// Sink renders the batch to a PNG file.
// It implements pipeline.Sink.
type Sink struct {
	path   string
	opts   Options
	logger *slog.Logger
}

// NewSink creates a Sink writing a size x size PNG to path.
func NewSink(path string, size int, logger *slog.Logger) *Sink {
	return &Sink{
		path:   path,
		opts:   Options{Size: size, Graticule: true},
		logger: logger,
	}
}

func (s *Sink) Name() string { return "png" }

func (s *Sink) Load(ctx context.Context, batch domain.Batch) error {
	img, err := Render(batch, s.opts)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	s.logger.Info("snapshot written", "path", s.path, "size", s.opts.Size, "bytes", buf.Len())
	return nil
}
