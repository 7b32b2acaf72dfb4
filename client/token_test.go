package client_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/sautiwatch/ireporter-core/client"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return signed
}

func TestMemoryTokenStore_RoundTrip(t *testing.T) {
	store := client.NewMemoryTokenStore()
	assert.Empty(t, store.Token())

	store.Set(signedToken(t, time.Now().Add(time.Hour)))
	assert.NotEmpty(t, store.Token())

	store.Clear()
	assert.Empty(t, store.Token())
}

func TestMemoryTokenStore_ExpiredJWTReportedAbsent(t *testing.T) {
	store := client.NewMemoryTokenStore()
	store.Set(signedToken(t, time.Now().Add(-time.Hour)))

	assert.Empty(t, store.Token())
}

func TestMemoryTokenStore_OpaqueTokenPassesThrough(t *testing.T) {
	store := client.NewMemoryTokenStore()
	store.Set("not-a-jwt-at-all")

	assert.Equal(t, "not-a-jwt-at-all", store.Token())
}
