package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	os.Setenv("API_BASE_URL", "http://127.0.0.1:5000/api/v1")
	os.Setenv("REQUEST_TIMEOUT", "2s")
	defer os.Unsetenv("API_BASE_URL")
	defer os.Unsetenv("REQUEST_TIMEOUT")

	conf := New()

	assert.NotEmpty(t, conf)
	assert.Equal(t, "http://127.0.0.1:5000/api/v1", conf.BaseURL)
	assert.Equal(t, 2*time.Second, conf.RequestTimeout)
}

func TestNewDefaults(t *testing.T) {
	os.Unsetenv("MAX_MEDIA_COUNT")
	os.Unsetenv("SEARCH_DEBOUNCE_MS")

	conf := New()

	assert.Equal(t, 4, conf.MaxMediaCount)
	assert.Equal(t, 400*time.Millisecond, conf.SearchDebounce)
	assert.Equal(t, int64(10<<20), conf.MaxUploadBytes)
	assert.Equal(t, 3, conf.SearchMinChars)
}

func TestNewIgnoresMalformedValues(t *testing.T) {
	os.Setenv("MAX_UPLOAD_BYTES", "lots")
	os.Setenv("SEARCH_DEBOUNCE_MS", "fast")
	defer os.Unsetenv("MAX_UPLOAD_BYTES")
	defer os.Unsetenv("SEARCH_DEBOUNCE_MS")

	conf := New()

	assert.Equal(t, int64(10<<20), conf.MaxUploadBytes)
	assert.Equal(t, 400*time.Millisecond, conf.SearchDebounce)
}

func TestSetLoggerSetsDevelopmentLogger(t *testing.T) {
	l, err := setLogger("development")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(-1))
}

func TestSetLoggerSetsProductionLogger(t *testing.T) {
	l, err := setLogger("production")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(0))
}

func TestSetLoggerSetsLocalLogger(t *testing.T) {
	l, err := setLogger("local")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(0))
}
