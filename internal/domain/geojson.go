package domain

import "encoding/json"

// FeatureCollection is the GeoJSON document returned for a truck's routes
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single route with its geometry left as raw GeoJSON
type Feature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties RouteProperties `json:"properties"`
}

// RouteProperties are the non-spatial columns of a route
type RouteProperties struct {
	ID        uint   `json:"id"`
	TruckNum  int    `json:"trucknum"`
	StartMRF  string `json:"start_mrf"`
	DestPoint string `json:"dest_point"`
}

// NewFeature wraps a route and its GeoJSON geometry
func NewFeature(r Route, geometry json.RawMessage) Feature {
	return Feature{
		Type:     "Feature",
		Geometry: geometry,
		Properties: RouteProperties{
			ID:        r.ID,
			TruckNum:  r.TruckNum,
			StartMRF:  r.StartMRF,
			DestPoint: r.DestPoint,
		},
	}
}

// NewFeatureCollection builds a collection, always with a non-nil feature list
func NewFeatureCollection(features []Feature) FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}
