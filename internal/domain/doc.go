// Package domain models ocean sensor readings and the enrichment applied to them
// before they are drawn on the globe.
//
// # Data Source
//
// Readings come from a CSV export of NASA ocean observations with one row per
// sample and at least three numeric columns:
//
//	latitude     degrees, nominally [-90, 90]
//	longitude    degrees, nominally [-180, 180]
//	temperature  sea surface temperature in °C
//
// Rows are immutable once loaded. Enrichment builds an [AnnotatedReading] next to
// the source [Reading] and never writes back into it.
//
// # Region Rules
//
// Each reading is assigned exactly one ocean basin from its longitude alone.
// Rules are evaluated in order and the first match wins:
//
//	-70 < lon < 20                       Atlantic
//	100 < lon < 180  or  -180 < lon < -100  Pacific
//	anything else                        Indian
//
// The inequalities are strict, so the boundary longitudes -70, 20, 100, -100,
// 180 and -180 fall through to Indian. Latitude plays no part. See [ClassifyRegion].
//
// # Fact Cycling
//
// Every region owns a short list of sea animal facts (see [DefaultCatalog]). A
// [FactCycler] shuffles each list once when it is built and then hands facts out
// round-robin per region, so consecutive readings in the same basin show
// different animals. The cursor for a region only moves forward and is never
// reset for the life of the cycler.
//
// # Hover Text
//
// The tooltip shown for a point on the globe uses the small HTML subset plotly.js
// understands (<b>, <i>, <br>). See [BuildHoverText] for the exact layout.
package domain
