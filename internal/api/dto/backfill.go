package dto

import "time"

type BackfillRequest struct {
	PlaceType       string             `json:"place_type"`
	City            string             `json:"city"`
	Rectangles      []RectangleRequest `json:"rectangles"`
	MaxRadiusMeters float64            `json:"max_radius_meters"`
	Dedupe          bool               `json:"dedupe"`
}

type PlaceResponse struct {
	PlaceID  string        `json:"place_id"`
	Name     string        `json:"name"`
	Location PointResponse `json:"location"`
	Icon     string        `json:"icon"`
	Types    []string      `json:"types,omitempty"`
	Vicinity string        `json:"vicinity,omitempty"`
	Rating   *float64      `json:"rating,omitempty"`
}

type AreaResponse struct {
	Index        int     `json:"index"`
	WidthMeters  float64 `json:"width_meters"`
	HeightMeters float64 `json:"height_meters"`
	CenterPoints int     `json:"center_points"`
	RadiusMeters float64 `json:"radius_meters"`
}

type BackfillResponse struct {
	RunID      string          `json:"run_id"`
	PlaceType  string          `json:"place_type"`
	Areas      []AreaResponse  `json:"areas"`
	Searched   int             `json:"searched"`
	Skipped    int             `json:"skipped"`
	Places     []PlaceResponse `json:"places"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Persisted  bool            `json:"persisted"`
}

type ListPlacesResponse struct {
	RunID  string          `json:"run_id"`
	Places []PlaceResponse `json:"places"`
}
