package snapshot

import (
	"math"

	"github.com/couchcryptid/ocean-globe/internal/domain"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// Projection is an orthographic view of the sphere looking down on Center.
// Projected coordinates are in units of the globe radius, x east and y north.
type Projection struct {
	Center s2.LatLng

	view  r3.Vector
	east  r3.Vector
	north r3.Vector
}

// NewProjection builds the view basis for a globe centred on center.
func NewProjection(center s2.LatLng) Projection {
	view := s2.PointFromLatLng(center).Vector
	pole := r3.Vector{Z: 1}
	east := pole.Cross(view)
	if east.Norm() < 1e-12 {
		// Looking straight down a pole; any horizontal axis works.
		east = r3.Vector{Y: 1}
	}
	east = east.Normalize()
	north := view.Cross(east).Normalize()
	return Projection{Center: center, view: view, east: east, north: north}
}

// Project maps ll onto the view plane. visible is false for points on the far side.
func (p Projection) Project(ll s2.LatLng) (x, y float64, visible bool) {
	v := s2.PointFromLatLng(ll).Vector
	return v.Dot(p.east), v.Dot(p.north), v.Dot(p.view) >= 0
}

// CenterOf returns the spherical mean of the batch positions, or 0,0 when
// the batch is empty or the positions cancel out.
func CenterOf(readings []domain.AnnotatedReading) s2.LatLng {
	var sum r3.Vector
	for _, r := range readings {
		if !r.InRange() {
			continue
		}
		sum = sum.Add(s2.PointFromLatLng(r.LatLng()).Vector)
	}
	if sum.Norm() < 1e-9 || math.IsNaN(sum.Norm()) {
		return s2.LatLngFromDegrees(0, 0)
	}
	return s2.LatLngFromPoint(s2.Point{Vector: sum.Normalize()})
}
