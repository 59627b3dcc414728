package domain

// MapStyle selects the tile layer under the markers.
type MapStyle string

const (
	MapStyleStreet    MapStyle = "street"
	MapStyleSatellite MapStyle = "satellite"
)

// Default tile endpoints.
const (
	DefaultStreetTileURL    = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultSatelliteTileURL = "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}"

	streetAttribution    = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
	satelliteAttribution = `&copy; <a href="https://www.esri.com/">Esri</a>`
)

// TileSource describes one Leaflet tile layer.
type TileSource struct {
	Style       MapStyle `json:"style"`
	URL         string   `json:"url"`
	Attribution string   `json:"attribution"`
}

// TileSources holds the two layers the map can toggle between.
type TileSources struct {
	Street    TileSource
	Satellite TileSource
}

// NewTileSources builds the tile layers, falling back to the public
// OpenStreetMap and Esri endpoints for empty URLs.
func NewTileSources(streetURL, satelliteURL string) TileSources {
	if streetURL == "" {
		streetURL = DefaultStreetTileURL
	}
	if satelliteURL == "" {
		satelliteURL = DefaultSatelliteTileURL
	}
	return TileSources{
		Street:    TileSource{Style: MapStyleStreet, URL: streetURL, Attribution: streetAttribution},
		Satellite: TileSource{Style: MapStyleSatellite, URL: satelliteURL, Attribution: satelliteAttribution},
	}
}

// For returns the layer for style.
func (t TileSources) For(style MapStyle) TileSource {
	if style == MapStyleSatellite {
		return t.Satellite
	}
	return t.Street
}

// Toggle returns the other style.
func (s MapStyle) Toggle() MapStyle {
	if s == MapStyleSatellite {
		return MapStyleStreet
	}
	return MapStyleSatellite
}

// ToggleLabel is the caption of the button that switches away from s.
func (s MapStyle) ToggleLabel() string {
	if s == MapStyleSatellite {
		return "Switch to Street Map"
	}
	return "Switch to Satellite"
}
