package plotly

import (
	"time"

	"github.com/couchcryptid/ocean-globe/internal/domain"
)

// Styling for the globe: dark theme, deepskyblue ocean, temperature on the Reds scale.
const (
	Title         = "🌏 Dive Into Earth's Oceans: Meet the Sea Animals"
	TraceName     = "Ocean Data"
	ColorScale    = "Reds"
	ColorBarTitle = "Sea Temp (°C)"
	OceanColor    = "deepskyblue"
	MarkerSize    = 6
	MarkerOpacity = 0.9

	darkPaper = "rgb(17,17,17)"
	darkFont  = "#f2f5fa"
)

// Figure is the plotly.js figure object passed to Plotly.newPlot.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Config Config  `json:"config"`
}

// Trace is a scattergeo trace.
type Trace struct {
	Type      string    `json:"type"`
	Mode      string    `json:"mode"`
	Name      string    `json:"name"`
	Lon       []float64 `json:"lon"`
	Lat       []float64 `json:"lat"`
	Text      []string  `json:"text"`
	HoverInfo string    `json:"hoverinfo"`
	Marker    Marker    `json:"marker"`
}

type Marker struct {
	Size       int        `json:"size"`
	Color      []float64  `json:"color"`
	ColorScale string     `json:"colorscale"`
	ColorBar   ColorBar   `json:"colorbar"`
	Opacity    float64    `json:"opacity"`
	Line       MarkerLine `json:"line"`
}

type ColorBar struct {
	Title Text `json:"title"`
}

type MarkerLine struct {
	Color string `json:"color"`
}

type Text struct {
	Text string `json:"text"`
}

type Layout struct {
	Title        Text              `json:"title"`
	Geo          Geo               `json:"geo"`
	PaperBGColor string            `json:"paper_bgcolor"`
	PlotBGColor  string            `json:"plot_bgcolor"`
	Font         Font              `json:"font"`
	Margin       Margin            `json:"margin"`
	Meta         map[string]string `json:"meta,omitempty"`
}

type Geo struct {
	Projection Projection `json:"projection"`
	ShowLand   bool       `json:"showland"`
	ShowOcean  bool       `json:"showocean"`
	OceanColor string     `json:"oceancolor"`
	BGColor    string     `json:"bgcolor"`
}

type Projection struct {
	Type string `json:"type"`
}

type Font struct {
	Color string `json:"color"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

type Config struct {
	Responsive bool `json:"responsive"`
}

// BuildFigure lays the batch out as a single orthographic scattergeo trace with
// markers coloured by temperature and the hover text as tooltips.
func BuildFigure(batch domain.Batch) Figure {
	n := len(batch.Readings)
	lon := make([]float64, n)
	lat := make([]float64, n)
	temp := make([]float64, n)
	text := make([]string, n)
	for i, r := range batch.Readings {
		lon[i] = r.Longitude
		lat[i] = r.Latitude
		temp[i] = r.Temperature
		text[i] = r.Hover
	}

	meta := map[string]string{"run_id": batch.RunID}
	if !batch.GeneratedAt.IsZero() {
		meta["generated_at"] = batch.GeneratedAt.UTC().Format(time.RFC3339)
	}

	return Figure{
		Data: []Trace{{
			Type:      "scattergeo",
			Mode:      "markers",
			Name:      TraceName,
			Lon:       lon,
			Lat:       lat,
			Text:      text,
			HoverInfo: "text",
			Marker: Marker{
				Size:       MarkerSize,
				Color:      temp,
				ColorScale: ColorScale,
				ColorBar:   ColorBar{Title: Text{Text: ColorBarTitle}},
				Opacity:    MarkerOpacity,
				Line:       MarkerLine{Color: OceanColor},
			},
		}},
		Layout: Layout{
			Title: Text{Text: Title},
			Geo: Geo{
				Projection: Projection{Type: "orthographic"},
				ShowLand:   false,
				ShowOcean:  true,
				OceanColor: OceanColor,
				BGColor:    "black",
			},
			PaperBGColor: darkPaper,
			PlotBGColor:  darkPaper,
			Font:         Font{Color: darkFont},
			Margin:       Margin{L: 0, R: 0, T: 50, B: 0},
			Meta:         meta,
		},
		Config: Config{Responsive: true},
	}
}
