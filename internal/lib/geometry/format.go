package geometry

import "fmt"

// FormatArea renders an area for display: below 0.01 km² as m², below
// 1 km² as hectares, otherwise as km².
func FormatArea(areaKm2 float64) string {
	switch {
	case areaKm2 < 0.01:
		return fmt.Sprintf("%.0f m²", areaKm2*1e6)
	case areaKm2 < 1:
		return fmt.Sprintf("%.2f ha", areaKm2*100)
	default:
		return fmt.Sprintf("%.2f km²", areaKm2)
	}
}

// FormatPerimeter renders a perimeter for display: below 1 km as meters,
// otherwise as km.
func FormatPerimeter(perimeterKm float64) string {
	if perimeterKm < 1 {
		return fmt.Sprintf("%.0f m", perimeterKm*1000)
	}
	return fmt.Sprintf("%.2f km", perimeterKm)
}
