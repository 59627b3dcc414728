package http

import (
	"github.com/couchcryptid/pothole-viewer/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// markerCollection renders markers as a GeoJSON point layer. Each feature
// carries the styling the page uses for its marker.
func markerCollection(markers []domain.Marker) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	points := make(orb.MultiPoint, 0, len(markers))

	for _, m := range markers {
		pt := m.Position.Point()
		f := geojson.NewFeature(pt)
		f.ID = m.ID
		f.Properties["severity"] = m.Severity
		f.Properties["label"] = domain.SeverityLabel(m.Severity)
		f.Properties["color"] = m.Color
		f.Properties["size"] = m.Size
		f.Properties["selected"] = m.Selected
		if m.Popup != nil {
			f.Properties["popup_title"] = m.Popup.Title
			f.Properties["popup_text"] = m.Popup.Text
		}
		fc.Append(f)
		points = append(points, pt)
	}

	if len(points) > 0 {
		fc.BBox = geojson.NewBBox(points.Bound())
	}
	return fc
}
