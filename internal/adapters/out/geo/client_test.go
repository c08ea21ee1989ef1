package geo_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"dispatch/internal/adapters/out/geo"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresBaseURL(t *testing.T) {
	client, err := geo.NewClient("")

	assert.Nil(t, client)
	assert.ErrorIs(t, err, geo.ErrGeoBaseURLIsRequired)
}

func TestResolveReturnsLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/locations", r.URL.Path)
		assert.Equal(t, "Airport Road", r.URL.Query().Get("street"))
		fmt.Fprint(w, `{"x":4,"y":9}`)
	}))
	defer server.Close()

	client, err := geo.NewClient(server.URL)
	require.NoError(t, err)

	location, err := client.Resolve(context.Background(), "Airport Road")
	require.NoError(t, err)

	assert.Equal(t, kernel.Coordinate(4), location.X())
	assert.Equal(t, kernel.Coordinate(9), location.Y())
}

func TestResolveRequiresStreet(t *testing.T) {
	client, err := geo.NewClient("http://localhost:8090")
	require.NoError(t, err)

	_, err = client.Resolve(context.Background(), "")

	assert.Error(t, err)
}

func TestResolveRetriesTransientFailures(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"x":1,"y":1}`)
	}))
	defer server.Close()

	client, err := geo.NewClient(server.URL)
	require.NoError(t, err)

	location, err := client.Resolve(context.Background(), "Main Street")
	require.NoError(t, err)

	assert.Equal(t, int32(2), attempts.Load())
	assert.Equal(t, kernel.Coordinate(1), location.X())
}

func TestResolveDoesNotRetryClientErrors(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := geo.NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.Resolve(context.Background(), "Unknown Street")

	assert.Error(t, err)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestResolveRejectsOutOfRangeCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"x":42,"y":1}`)
	}))
	defer server.Close()

	client, err := geo.NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.Resolve(context.Background(), "Edge Street")

	assert.Error(t, err)
}
