package search_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sautiwatch/ireporter-core/client/mocks"
	"github.com/sautiwatch/ireporter-core/models"
	"github.com/sautiwatch/ireporter-core/search"
)

func TestNominatimGeocoder_ParsesResults(t *testing.T) {
	requester := &mocks.Requester{}
	body := json.RawMessage(`[
		{"lat": "-1.2921", "lon": "36.8219", "display_name": "Nairobi, Kenya"},
		{"lat": "-4.0435", "lon": "39.6682", "display_name": "Mombasa, Kenya"}
	]`)
	requester.On("Get", mock.Anything, "/search?format=json&limit=5&q=nairobi", false).
		Return(models.OK(body))

	g := search.NewNominatimGeocoder(requester)
	places, err := g.Search(context.Background(), "nairobi")

	assert.NoError(t, err)
	assert.Equal(t, []models.Place{
		{Lat: -1.2921, Lng: 36.8219, Label: "Nairobi, Kenya"},
		{Lat: -4.0435, Lng: 39.6682, Label: "Mombasa, Kenya"},
	}, places)
}

func TestNominatimGeocoder_DropsMalformedRows(t *testing.T) {
	requester := &mocks.Requester{}
	body := json.RawMessage(`[
		{"lat": "not-a-number", "lon": "36.8219", "display_name": "Broken"},
		{"lat": "-1.2921", "lon": "36.8219", "display_name": "Nairobi, Kenya"}
	]`)
	requester.On("Get", mock.Anything, mock.Anything, false).Return(models.OK(body))

	g := search.NewNominatimGeocoder(requester)
	places, err := g.Search(context.Background(), "nairobi")

	assert.NoError(t, err)
	assert.Len(t, places, 1)
	assert.Equal(t, "Nairobi, Kenya", places[0].Label)
}

func TestNominatimGeocoder_EscapesQuery(t *testing.T) {
	requester := &mocks.Requester{}
	requester.On("Get", mock.Anything, "/search?format=json&limit=5&q=lavington%2C+nairobi", false).
		Return(models.OK(json.RawMessage(`[]`)))

	g := search.NewNominatimGeocoder(requester)
	places, err := g.Search(context.Background(), "lavington, nairobi")

	assert.NoError(t, err)
	assert.Empty(t, places)
	requester.AssertExpectations(t)
}

func TestNominatimGeocoder_SurfacesEnvelopeFailure(t *testing.T) {
	requester := &mocks.Requester{}
	requester.On("Get", mock.Anything, mock.Anything, false).
		Return(models.Fail(models.ErrorKindTimeout, "request timed out"))

	g := search.NewNominatimGeocoder(requester)
	places, err := g.Search(context.Background(), "nairobi")

	assert.Error(t, err)
	assert.Nil(t, places)
}
