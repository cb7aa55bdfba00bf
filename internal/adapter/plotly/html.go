package plotly

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/ocean-globe/internal/domain"
	json "github.com/goccy/go-json"
)

// ScriptURL is the plotly.js bundle the page loads.
const ScriptURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

var page = template.Must(template.New("globe").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.ScriptURL}}" charset="utf-8"></script>
<style>
html, body { margin: 0; height: 100%; background: rgb(17,17,17); }
#globe { width: 100%; height: 100%; }
</style>
</head>
<body>
<div id="globe"></div>
<script>
const figure = {{.Figure}};
Plotly.newPlot("globe", figure.data, figure.layout, figure.config);
</script>
</body>
</html>
`))

type pageData struct {
	Title     string
	ScriptURL string
	Figure    template.JS
}

// WriteHTML renders fig as a standalone page that draws the globe with plotly.js.
func WriteHTML(w io.Writer, fig Figure) error {
	// go-json escapes <, > and & so the figure is safe inside a script element.
	raw, err := json.Marshal(fig)
	if err != nil {
		return fmt.Errorf("encode figure: %w", err)
	}

	err = page.Execute(w, pageData{
		Title:     fig.Layout.Title.Text,
		ScriptURL: ScriptURL,
		Figure:    template.JS(raw), //nolint:gosec // JSON produced by the encoder above
	})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// Sink writes the interactive globe page.
// It implements pipeline.Sink.
type Sink struct {
	path   string
	logger *slog.Logger
}

// NewSink creates a Sink writing the page to path.
func NewSink(path string, logger *slog.Logger) *Sink {
	return &Sink{path: path, logger: logger}
}

func (s *Sink) Name() string { return "html" }

func (s *Sink) Load(_ context.Context, batch domain.Batch) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create globe page: %w", err)
	}
	if err := WriteHTML(f, BuildFigure(batch)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close globe page: %w", err)
	}
	s.logger.Info("globe page written", "path", s.path, "points", len(batch.Readings))
	return nil
}
