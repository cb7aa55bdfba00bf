package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/couchcryptid/ocean-globe/internal/domain"
	"github.com/golang/geo/s2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// Go Regular has no emoji glyphs, so the still image drops the globe icon.
	title         = "Dive Into Earth's Oceans: Meet the Sea Animals"
	colorBarTitle = "Sea Temp (°C)"

	titleHeight   = 50
	colorBarSpace = 80
	markerRadius  = 3
	markerOpacity = 0.9
	graticuleStep = 30
)

// MinSize and MaxSize bound the square image edge in pixels.
const (
	MinSize = 200
	MaxSize = 4096
)

var (
	paperColor     = color.RGBA{17, 17, 17, 255}
	globeBGColor   = color.RGBA{0, 0, 0, 255}
	oceanColor     = color.RGBA{0, 191, 255, 255} // deepskyblue
	graticuleColor = color.RGBA{90, 210, 255, 255}
	fontColor      = color.RGBA{0xf2, 0xf5, 0xfa, 255}
)

// Options controls rendering.
type Options struct {
	Size      int
	Graticule bool
}

type colorStop struct {
	at float64
	c  color.RGBA
}

// reds is the plotly "Reds" scale, light at the cold end.
var reds = []colorStop{
	{0, color.RGBA{220, 220, 220, 255}},
	{0.2, color.RGBA{245, 195, 157, 255}},
	{0.4, color.RGBA{245, 160, 105, 255}},
	{1, color.RGBA{178, 10, 28, 255}},
}

// ColorAt samples the temperature scale at t in [0,1].
func ColorAt(t float64) color.RGBA {
	if t <= 0 || math.IsNaN(t) {
		return reds[0].c
	}
	for i := 1; i < len(reds); i++ {
		lo, hi := reds[i-1], reds[i]
		if t <= hi.at {
			f := (t - lo.at) / (hi.at - lo.at)
			return lerp(lo.c, hi.c, f)
		}
	}
	return reds[len(reds)-1].c
}

func lerp(a, b color.RGBA, f float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*f))
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 255}
}

// Layout holds the pixel geometry of a rendered snapshot.
type Layout struct {
	Size    int
	CenterX float64
	CenterY float64
	Radius  float64
}

// NewLayout places the globe below the title band and left of the colour bar.
func NewLayout(size int) Layout {
	w := float64(size - colorBarSpace)
	h := float64(size - titleHeight)
	return Layout{
		Size:    size,
		CenterX: w / 2,
		CenterY: titleHeight + h/2,
		Radius:  math.Min(w, h)/2 - 4,
	}
}

// Pixel converts projected coordinates to image coordinates.
func (l Layout) Pixel(x, y float64) (int, int) {
	return int(math.Round(l.CenterX + x*l.Radius)), int(math.Round(l.CenterY - y*l.Radius))
}

// Render draws the batch on an orthographic globe centred on the mean
// reading position. Markers on the far hemisphere are hidden.
func Render(batch domain.Batch, opts Options) (*image.RGBA, error) {
	if opts.Size < MinSize || opts.Size > MaxSize {
		return nil, fmt.Errorf("snapshot size %d outside [%d, %d]", opts.Size, MinSize, MaxSize)
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: paperColor}, image.Point{}, draw.Src)

	layout := NewLayout(opts.Size)
	proj := NewProjection(CenterOf(batch.Readings))

	fillGlobe(img, layout)
	if opts.Graticule {
		drawGraticule(img, layout, proj)
	}

	lo, hi := temperatureRange(batch.Readings)
	for _, r := range batch.Readings {
		x, y, visible := proj.Project(r.LatLng())
		if !visible {
			continue
		}
		px, py := layout.Pixel(x, y)
		drawMarker(img, px, py, ColorAt(normalize(r.Temperature, lo, hi)))
	}

	drawTitle(img, opts.Size)
	drawColorBar(img, opts.Size, lo, hi, len(batch.Readings) > 0)
	return img, nil
}

func fillGlobe(img *image.RGBA, l Layout) {
	bounds := img.Bounds()
	r2 := l.Radius * l.Radius
	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			dx := float64(px) - l.CenterX
			dy := float64(py) - l.CenterY
			switch d := dx*dx + dy*dy; {
			case d <= r2:
				img.SetRGBA(px, py, oceanColor)
			case d <= (l.Radius+2)*(l.Radius+2):
				img.SetRGBA(px, py, globeBGColor)
			}
		}
	}
}

func drawGraticule(img *image.RGBA, l Layout, proj Projection) {
	plot := func(lat, lon float64) {
		x, y, visible := proj.Project(s2.LatLngFromDegrees(lat, lon))
		if visible {
			px, py := l.Pixel(x, y)
			img.SetRGBA(px, py, graticuleColor)
		}
	}
	for lat := -90 + graticuleStep; lat < 90; lat += graticuleStep {
		for lon := -180.0; lon < 180; lon += 0.5 {
			plot(float64(lat), lon)
		}
	}
	for lon := -180; lon < 180; lon += graticuleStep {
		for lat := -90.0; lat <= 90; lat += 0.5 {
			plot(lat, float64(lon))
		}
	}
}

func drawMarker(img *image.RGBA, cx, cy int, c color.RGBA) {
	outer := markerRadius + 1
	for dy := -outer; dy <= outer; dy++ {
		for dx := -outer; dx <= outer; dx++ {
			d := dx*dx + dy*dy
			if d > outer*outer {
				continue
			}
			fill := c
			if d > markerRadius*markerRadius {
				fill = oceanColor
			}
			blend(img, cx+dx, cy+dy, fill, markerOpacity)
		}
	}
}

func blend(img *image.RGBA, x, y int, c color.RGBA, alpha float64) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	dst := img.RGBAAt(x, y)
	mix := func(d, s uint8) uint8 {
		return uint8(math.Round(float64(d)*(1-alpha) + float64(s)*alpha))
	}
	img.SetRGBA(x, y, color.RGBA{mix(dst.R, c.R), mix(dst.G, c.G), mix(dst.B, c.B), 255})
}

func temperatureRange(readings []domain.AnnotatedReading) (lo, hi float64) {
	if len(readings) == 0 {
		return 0, 0
	}
	lo, hi = readings[0].Temperature, readings[0].Temperature
	for _, r := range readings[1:] {
		lo = math.Min(lo, r.Temperature)
		hi = math.Max(hi, r.Temperature)
	}
	return lo, hi
}

func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}

func drawTitle(img *image.RGBA, size int) {
	face := fontFace(float64(size) / 40)
	w := font.MeasureString(face, title).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	x := (size - w) / 2
	if x < 4 {
		x = 4
	}
	drawText(img, title, x, (titleHeight-ascent)/2+ascent, face)
}

func drawColorBar(img *image.RGBA, size int, lo, hi float64, labelled bool) {
	face := fontFace(11)
	ascent := face.Metrics().Ascent.Ceil()

	left := size - colorBarSpace + 16
	right := left + 14
	top := titleHeight + 24
	bottom := size - 24

	drawText(img, colorBarTitle, size-font.MeasureString(face, colorBarTitle).Ceil()-4, top-8, face)

	for y := top; y <= bottom; y++ {
		t := float64(bottom-y) / float64(bottom-top)
		c := ColorAt(t)
		for x := left; x < right; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	if !labelled {
		return
	}
	drawText(img, fmt.Sprintf("%.1f", hi), right+4, top+ascent/2, face)
	drawText(img, fmt.Sprintf("%.1f", lo), right+4, bottom+ascent/2, face)
}

func drawText(img *image.RGBA, text string, x, y int, face font.Face) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fontColor),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

var (
	fontOnce  sync.Once
	fontData  *opentype.Font
	fontErr   error
	faceMu    sync.Mutex
	faceCache = make(map[float64]font.Face)
)

// fontFace returns a cached Go Regular face at size points, or the basic
// bitmap face if the embedded font cannot be used.
func fontFace(size float64) font.Face {
	fontOnce.Do(func() {
		fontData, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return basicfont.Face7x13
	}

	faceMu.Lock()
	defer faceMu.Unlock()
	if face, ok := faceCache[size]; ok {
		return face
	}
	face, err := opentype.NewFace(fontData, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	faceCache[size] = face
	return face
}
