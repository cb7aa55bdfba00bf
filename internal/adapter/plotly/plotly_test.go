package plotly

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/ocean-globe/internal/domain"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBatch() domain.Batch {
	whale := domain.AnimalFact{Animal: "Blue Whale", Fact: "Big."}
	turtle := domain.AnimalFact{Animal: "Green Sea Turtle", Fact: "Old."}
	return domain.Batch{
		RunID:       "01JXTESTRUN",
		GeneratedAt: time.Date(2025, time.June, 8, 12, 0, 0, 0, time.UTC),
		Readings: []domain.AnnotatedReading{
			{
				Index:   0,
				Reading: domain.Reading{Latitude: 10, Longitude: 0, Temperature: 21.5},
				Region:  domain.Atlantic,
				Fact:    whale,
				Hover:   domain.BuildHoverText(domain.Atlantic, 21.5, 10, 0, whale),
			},
			{
				Index:   1,
				Reading: domain.Reading{Latitude: -5, Longitude: 150, Temperature: 28},
				Region:  domain.Pacific,
				Fact:    turtle,
				Hover:   domain.BuildHoverText(domain.Pacific, 28, -5, 150, turtle),
			},
		},
	}
}

func TestBuildFigure(t *testing.T) {
	fig := BuildFigure(testBatch())

	require.Len(t, fig.Data, 1)
	trace := fig.Data[0]
	assert.Equal(t, "scattergeo", trace.Type)
	assert.Equal(t, "markers", trace.Mode)
	assert.Equal(t, "text", trace.HoverInfo)
	assert.Equal(t, []float64{0, 150}, trace.Lon)
	assert.Equal(t, []float64{10, -5}, trace.Lat)
	assert.Equal(t, []float64{21.5, 28}, trace.Marker.Color)
	assert.Equal(t, "Reds", trace.Marker.ColorScale)
	assert.Equal(t, "Sea Temp (°C)", trace.Marker.ColorBar.Title.Text)
	assert.Equal(t, 6, trace.Marker.Size)
	assert.InDelta(t, 0.9, trace.Marker.Opacity, 1e-9)
	assert.Equal(t, "deepskyblue", trace.Marker.Line.Color)
	require.Len(t, trace.Text, 2)
	assert.Contains(t, trace.Text[1], "<b>Pacific Ocean</b>")

	assert.Equal(t, "orthographic", fig.Layout.Geo.Projection.Type)
	assert.False(t, fig.Layout.Geo.ShowLand)
	assert.True(t, fig.Layout.Geo.ShowOcean)
	assert.Equal(t, "black", fig.Layout.Geo.BGColor)
	assert.Equal(t, Margin{T: 50}, fig.Layout.Margin)
	assert.Equal(t, "01JXTESTRUN", fig.Layout.Meta["run_id"])
	assert.Equal(t, "2025-06-08T12:00:00Z", fig.Layout.Meta["generated_at"])
}

func TestFigureJSON_KeepsFalseFlags(t *testing.T) {
	raw, err := json.Marshal(BuildFigure(testBatch()))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	geo := decoded["layout"].(map[string]any)["geo"].(map[string]any)
	assert.Equal(t, false, geo["showland"])
	assert.Equal(t, "deepskyblue", geo["oceancolor"])
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, BuildFigure(testBatch())))

	html := buf.String()
	assert.Contains(t, html, `<script src="`+ScriptURL+`"`)
	assert.Contains(t, html, `Plotly.newPlot("globe"`)
	assert.Contains(t, html, "<title>🌏 Dive Into Earth&#39;s Oceans: Meet the Sea Animals</title>")
	assert.Contains(t, html, `"type":"scattergeo"`)
	// Hover markup must stay escaped inside the script block.
	assert.NotContains(t, html, "<b>Atlantic Ocean</b>")
	assert.Contains(t, html, `\u003cb\u003eAtlantic Ocean\u003c/b\u003e`)
}

func TestSink_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "globe.html")
	sink := NewSink(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, "html", sink.Name())

	require.NoError(t, sink.Load(context.Background(), testBatch()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
}
