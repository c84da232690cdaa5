package schema

// Location is a point on the map with an optional human readable address
type Location struct {
	Latitude  float64 `json:"lat" bson:"lat"`
	Longitude float64 `json:"lng" bson:"lng"`
	Address   string  `json:"address,omitempty" bson:"address,omitempty"`
}

// GeoJSON - mongo location format
type GeoJSON struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// NewGeoPoint converts a location into a GeoJSON point. Mongo expects the
// coordinates in [longitude, latitude] order.
func NewGeoPoint(loc Location) *GeoJSON {
	return &GeoJSON{
		Type:        "Point",
		Coordinates: []float64{loc.Longitude, loc.Latitude},
	}
}

// Valid reports whether the coordinates are inside the WGS84 range
func (l Location) Valid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}
