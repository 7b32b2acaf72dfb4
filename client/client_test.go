package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sautiwatch/ireporter-core/client"
	"github.com/sautiwatch/ireporter-core/models"
	"github.com/sautiwatch/ireporter-core/testhelpers"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func TestClient_AttachesBearerTokenWhenRequired(t *testing.T) {
	api := testhelpers.NewAPIServer()
	defer api.Close()

	c := client.New(api.URL(), time.Second, staticTokens("abc123"))
	env := c.Get(context.Background(), "/reports", true)

	assert.True(t, env.Success)
	assert.Equal(t, "Bearer abc123", api.LastAuth)
}

func TestClient_OmitsBearerTokenWhenNotRequired(t *testing.T) {
	api := testhelpers.NewAPIServer()
	defer api.Close()

	c := client.New(api.URL(), time.Second, staticTokens("abc123"))
	env := c.Get(context.Background(), "/reports", false)

	assert.True(t, env.Success)
	assert.Empty(t, api.LastAuth)
}

func TestClient_OmitsBearerTokenWhenAbsent(t *testing.T) {
	api := testhelpers.NewAPIServer()
	defer api.Close()

	c := client.New(api.URL(), time.Second, staticTokens(""))
	env := c.Get(context.Background(), "/reports", true)

	assert.True(t, env.Success)
	assert.Empty(t, api.LastAuth)
}

func TestClient_TimeoutResolvesAsFailureEnvelope(t *testing.T) {
	api := testhelpers.NewAPIServer()
	defer api.Close()
	api.Delay = 200 * time.Millisecond

	c := client.New(api.URL(), 20*time.Millisecond, nil)
	env := c.Get(context.Background(), "/reports", false)

	assert.False(t, env.Success)
	assert.Equal(t, models.ErrorKindTimeout, env.Kind)
	assert.Equal(t, "request timed out", env.Error)
}

func TestClient_NonSuccessStatusIsNormalized(t *testing.T) {
	api := testhelpers.NewAPIServer()
	defer api.Close()
	api.FailAll = true

	c := client.New(api.URL(), time.Second, nil)
	env := c.Get(context.Background(), "/reports", false)

	assert.False(t, env.Success)
	assert.Equal(t, models.ErrorKindServer, env.Kind)
	assert.Equal(t, "something went wrong", env.Error)
}

func TestClient_NetworkFaultIsNormalized(t *testing.T) {
	c := client.New("http://127.0.0.1:1", 500*time.Millisecond, nil)
	env := c.Get(context.Background(), "/reports", false)

	assert.False(t, env.Success)
	assert.Equal(t, models.ErrorKindNetwork, env.Kind)
	assert.NotEmpty(t, env.Error)
}

func TestClient_MalformedBodyIsNormalized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("definitely-not-json"))
	}))
	defer ts.Close()

	c := client.New(ts.URL, time.Second, nil)
	env := c.Get(context.Background(), "/anything", false)

	assert.False(t, env.Success)
	assert.Equal(t, models.ErrorKindDecode, env.Kind)
}

func TestClient_EmptyBodyIsSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c := client.New(ts.URL, time.Second, nil)
	env := c.Delete(context.Background(), "/anything", false)

	assert.True(t, env.Success)
	assert.Nil(t, env.Data)
}

func TestClient_MultipartUsesBoundaryContentTypeAndCarriesToken(t *testing.T) {
	api := testhelpers.NewAPIServer()
	defer api.Close()

	c := client.New(api.URL(), time.Second, staticTokens("abc123"))
	env := c.PostMultipart(context.Background(), "/reports",
		map[string]string{
			"title":       "Collapsed bridge",
			"description": "The bridge on Juja road has collapsed",
			"type":        "intervention",
		},
		[]models.FormPart{
			{Field: "images", Filename: "one.jpg", ContentType: "image/jpeg", Data: []byte("a")},
			{Field: "images", Filename: "two.mp4", ContentType: "video/mp4", Data: []byte("b")},
		},
		true,
	)

	assert.True(t, env.Success)
	assert.Equal(t, "Bearer abc123", api.LastAuth)
	assert.Equal(t, 2, api.LastImageCount)
	assert.True(t, strings.HasPrefix(api.LastContentType, "multipart/form-data; boundary="))
}

func TestClient_CancelledContextStopsCall(t *testing.T) {
	api := testhelpers.NewAPIServer()
	defer api.Close()
	api.Delay = 200 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	c := client.New(api.URL(), time.Second, nil)
	env := c.Get(ctx, "/reports", false)

	assert.False(t, env.Success)
	assert.Equal(t, models.ErrorKindNetwork, env.Kind)
}
