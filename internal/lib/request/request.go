// Package request builds the submission payload for a measured area
package request

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/landdraw/landdraw/server/internal/lib/geometry"
)

// ErrNoRing is returned when there is nothing to submit
var ErrNoRing = errors.New("request requires a ring with at least 3 vertices")

// Measurements is the measurement block of an exported request
type Measurements struct {
	Area        float64               `json:"area"`
	Perimeter   float64               `json:"perimeter"`
	Centroid    *geometry.Point       `json:"centroid"`
	BoundingBox *geometry.BoundingBox `json:"boundingBox"`
	AspectRatio float64               `json:"aspectRatio"`
}

// AreaRequest is the payload a drawn area is submitted as
type AreaRequest struct {
	ID           string           `json:"id"`
	Coordinates  []geometry.Point `json:"coordinates"`
	Measurements Measurements     `json:"measurements"`
	Timestamp    time.Time        `json:"timestamp"`
}

// New assembles a submission payload from a ring and its measurement
func New(ring geometry.Ring, m geometry.Measurement) (AreaRequest, error) {
	if len(ring) < 3 {
		return AreaRequest{}, ErrNoRing
	}

	return AreaRequest{
		ID:          uuid.NewString(),
		Coordinates: append([]geometry.Point(nil), ring...),
		Measurements: Measurements{
			Area:        m.AreaKm2,
			Perimeter:   m.PerimeterKm,
			Centroid:    m.Centroid,
			BoundingBox: m.BoundingBox,
			AspectRatio: m.AspectRatio,
		},
		Timestamp: time.Now().UTC(),
	}, nil
}

// MarshalIndent renders the request as the exported JSON document
func (r AreaRequest) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
