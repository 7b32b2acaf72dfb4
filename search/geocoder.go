package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/sautiwatch/ireporter-core/client"
	"github.com/sautiwatch/ireporter-core/models"
)

// Geocoder resolves free text into candidate places
type Geocoder interface {
	Search(ctx context.Context, query string) ([]models.Place, error)
}

// NominatimGeocoder queries a Nominatim-style endpoint through a transport
// client bound to the geocode base URL. Lookups are unauthenticated.
type NominatimGeocoder struct {
	client client.Requester
}

// NewNominatimGeocoder initializes a geocoder on the given transport
func NewNominatimGeocoder(c client.Requester) *NominatimGeocoder {
	return &NominatimGeocoder{client: c}
}

// Search performs one free-text lookup. The upstream serves coordinates as
// strings; rows that fail to parse are dropped at this boundary rather than
// trusted through.
func (g *NominatimGeocoder) Search(ctx context.Context, query string) ([]models.Place, error) {
	endpoint := "/search?format=json&limit=5&q=" + url.QueryEscape(query)
	env := g.client.Get(ctx, endpoint, false)
	if !env.Success {
		return nil, errors.New(env.Error)
	}

	var rows []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		return nil, err
	}

	places := make([]models.Place, 0, len(rows))
	for _, row := range rows {
		lat, err := strconv.ParseFloat(row.Lat, 64)
		if err != nil {
			zap.S().Debugw("dropping geocoder row with bad coordinate", "lat", row.Lat, "lon", row.Lon)
			continue
		}
		lng, err := strconv.ParseFloat(row.Lon, 64)
		if err != nil {
			zap.S().Debugw("dropping geocoder row with bad coordinate", "lat", row.Lat, "lon", row.Lon)
			continue
		}
		places = append(places, models.Place{Lat: lat, Lng: lng, Label: row.DisplayName})
	}
	return places, nil
}
