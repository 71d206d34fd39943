package dto

import "encoding/json"

type PointRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type PointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type RectangleRequest struct {
	UpperLeft  PointRequest `json:"upper_left"`
	LowerRight PointRequest `json:"lower_right"`
}

type GridRequest struct {
	Rectangle       RectangleRequest `json:"rectangle"`
	MaxRadiusMeters float64          `json:"max_radius_meters"`
	Audit           bool             `json:"audit"`
	CircleSegments  int              `json:"circle_segments"`
}

type CoverageResponse struct {
	Covered      bool          `json:"covered"`
	MaxGapMeters float64       `json:"max_gap_meters"`
	ExcessMeters float64       `json:"excess_meters"`
	WorstPoint   PointResponse `json:"worst_point"`
	Samples      int           `json:"samples"`
}

type GridResponse struct {
	WidthMeters  float64           `json:"width_meters"`
	HeightMeters float64           `json:"height_meters"`
	RadiusMeters float64           `json:"radius_meters"`
	SearchRadius int               `json:"search_radius"`
	CenterPoints []PointResponse   `json:"center_points"`
	GeoJSON      json.RawMessage   `json:"geojson"`
	Coverage     *CoverageResponse `json:"coverage,omitempty"`
}
