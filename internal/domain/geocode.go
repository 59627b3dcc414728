package domain

import (
	"context"
	"log/slog"
)

// Address sources.
const (
	AddressSourceReverse  = "reverse"
	AddressSourceOriginal = "original"
	AddressSourceFailed   = "failed"
)

// Address is the optional place description shown in the detail panel.
type Address struct {
	FormattedAddress string  `json:"formatted_address,omitempty"`
	PlaceName        string  `json:"place_name,omitempty"`
	Confidence       float64 `json:"confidence,omitempty"`
	Source           string  `json:"source"`
}

// DescribeLocation reverse geocodes loc. It returns nil when geocoder is nil.
// Failures degrade to an address with Source "failed" so the panel still
// renders the raw coordinates.
func DescribeLocation(ctx context.Context, geocoder Geocoder, potholeID int, loc Location, logger *slog.Logger) *Address {
	if geocoder == nil {
		return nil
	}
	if loc.Lat == 0 && loc.Lng == 0 {
		return &Address{Source: AddressSourceOriginal}
	}

	result, err := geocoder.ReverseGeocode(ctx, loc.Lat, loc.Lng)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"pothole_id", potholeID,
			"lat", loc.Lat,
			"lng", loc.Lng,
			"error", err,
		)
		return &Address{Source: AddressSourceFailed}
	}
	if result.FormattedAddress == "" {
		return &Address{Source: AddressSourceOriginal}
	}
	return &Address{
		FormattedAddress: result.FormattedAddress,
		PlaceName:        result.PlaceName,
		Confidence:       result.Confidence,
		Source:           AddressSourceReverse,
	}
}
