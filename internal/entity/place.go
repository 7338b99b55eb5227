package entity

// LatLng is an optional user position for proximity search.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is a dermatology practice returned by the finder.
type Place struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
	MapsURL string `json:"maps_url,omitempty"`
}
