package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// BuildHoverText formats the tooltip for one reading:
//
//	<b>{region} Ocean</b><br>Temperature: {temp}°C<br>Location: {lat}, {lon}<br><br>
//	<b>Sea Animal: {animal}</b><br><i>{fact}</i>
//
// Coordinates are printed with two decimals.
func BuildHoverText(region Region, temperature, lat, lon float64, fact AnimalFact) string {
	return fmt.Sprintf(
		"<b>%s Ocean</b><br>"+
			"Temperature: %s°C<br>"+
			"Location: %.2f, %.2f<br><br>"+
			"<b>Sea Animal: %s</b><br>"+
			"<i>%s</i>",
		region, formatTemperature(temperature), lat, lon, fact.Animal, fact.Fact,
	)
}

// formatTemperature prints the shortest decimal that round-trips, keeping a
// trailing ".0" on whole numbers so 25 reads as "25.0". Magnitudes below 1e-4
// or from 1e16 up switch to exponent form, as in "1e-05" and "1.5e+16".
func formatTemperature(t float64) string {
	if a := math.Abs(t); a != 0 && (a < 1e-4 || a >= 1e16) && !math.IsInf(t, 0) {
		return strconv.FormatFloat(t, 'e', -1, 64)
	}
	s := strconv.FormatFloat(t, 'f', -1, 64)
	if math.IsNaN(t) || math.IsInf(t, 0) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}
