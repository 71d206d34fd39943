package services

import (
	"place-backfill-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
)

// AreaGeoJSON renders an area as a FeatureCollection: the boundary polygon,
// one point feature per center and, when circleSegments > 0, the search circle
// around every center approximated by a closed ring with that many segments.
func AreaGeoJSON(area domain.BackfillArea, circleSegments int) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	ring := make(orb.Ring, 0, 5)
	for _, c := range area.Rectangle.Corners() {
		ring = append(ring, c.OrbPoint())
	}
	ring = append(ring, area.Rectangle.UpperLeft.OrbPoint())

	boundary := geojson.NewFeature(orb.Polygon{ring})
	boundary.Properties["kind"] = "boundary"
	boundary.Properties["area_index"] = area.Index
	boundary.Properties["width_m"] = area.Width
	boundary.Properties["height_m"] = area.Height
	boundary.Properties["radius_m"] = area.Radius
	fc.Append(boundary)

	for i, c := range area.CenterPoints {
		f := geojson.NewFeature(c.OrbPoint())
		f.Properties["kind"] = "center"
		f.Properties["area_index"] = area.Index
		f.Properties["point_index"] = i + 1
		f.Properties["radius_m"] = area.SearchRadius()
		fc.Append(f)
	}

	if circleSegments > 0 {
		for i, c := range area.CenterPoints {
			f := geojson.NewFeature(searchCircle(c, float64(area.SearchRadius()), circleSegments))
			f.Properties["kind"] = "search_circle"
			f.Properties["area_index"] = area.Index
			f.Properties["point_index"] = i + 1
			fc.Append(f)
		}
	}

	return fc
}

func searchCircle(center domain.Point, radius float64, segments int) orb.Polygon {
	ring := make(orb.Ring, 0, segments+1)
	for k := 0; k < segments; k++ {
		bearing := 360 * float64(k) / float64(segments)
		ring = append(ring, geo.PointAtBearingAndDistance(center.OrbPoint(), bearing, radius))
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}
