// File: questly/client/client_test.go
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"questly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendsAuthAndDeviceHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		json.NewEncoder(w).Encode(models.DashboardOverview{Role: models.RoleLearner})
	}))
	defer srv.Close()

	c := New(Config{
		BaseURL:    srv.URL,
		Token:      "jwt-token",
		DeviceID:   "dev-1",
		DeviceName: "Test Tablet",
	})

	overview, err := c.DashboardOverview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.RoleLearner, overview.Role)

	assert.Equal(t, "Bearer jwt-token", got.Get("Authorization"))
	assert.Equal(t, "dev-1", got.Get("X-Device-ID"))
	assert.Equal(t, "Test Tablet", got.Get("X-Device-Name"))
	assert.Equal(t, "go-sdk", got.Get("X-Platform"))
}

func TestClientMapsErrorResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": "redis is down"})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Token: "jwt-token"})

	_, err := c.DashboardOverview(context.Background())
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, "redis is down", apiErr.Message)
	assert.True(t, apiErr.IsServerError())
}
