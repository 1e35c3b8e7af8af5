package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgerrors "lifemap-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(server.URL, 2*time.Second, zap.NewNop())
	return client, server
}

func TestLookup(t *testing.T) {
	t.Run("resolves the best match", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "Paris", r.URL.Query().Get("q"))
			assert.Equal(t, "json", r.URL.Query().Get("format"))
			assert.Equal(t, "1", r.URL.Query().Get("limit"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"lat":"48.8588897","lon":"2.3200410","display_name":"Paris, Ile-de-France, France"}]`))
		})
		defer server.Close()

		location, err := client.Lookup(context.Background(), "Paris")
		require.NoError(t, err)
		assert.InDelta(t, 48.8588897, location.Latitude, 1e-6)
		assert.InDelta(t, 2.3200410, location.Longitude, 1e-6)
		assert.Equal(t, "Paris", location.DisplayName)
	})

	t.Run("empty result is not found", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		})
		defer server.Close()

		_, err := client.Lookup(context.Background(), "Nowhereville")
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("provider error surfaces as external error", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		defer server.Close()

		_, err := client.Lookup(context.Background(), "Paris")
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeExternal))
	})

	t.Run("out-of-range coordinates are rejected", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"lat":"123.0","lon":"0.0","display_name":"Bogus"}]`))
		})
		defer server.Close()

		_, err := client.Lookup(context.Background(), "Bogus")
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeExternal))
	})

	t.Run("empty city is a validation error", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
		defer server.Close()

		_, err := client.Lookup(context.Background(), "")
		assert.True(t, pkgerrors.IsValidation(err))
	})
}
