package amap_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodmap/foodmap/internal/amap"
	"github.com/foodmap/foodmap/pkg/errors"
)

func TestIPLocatorCurrentPosition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/ip", r.URL.Path)
		assert.Equal(t, "rest-key", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"status":"1","rectangle":"104.0,30.6;104.2,30.8"}`))
	}))
	defer srv.Close()

	l := amap.NewIPLocator(cfgWithRestKey("rest-key"),
		amap.WithLocatorBaseURL(srv.URL),
		amap.WithLocatorHTTPClient(srv.Client()))

	coords, err := l.CurrentPosition(context.Background(), amap.LocateOptions{})
	require.NoError(t, err)
	assert.InDelta(t, 104.1, coords.Lng, 1e-9)
	assert.InDelta(t, 30.7, coords.Lat, 1e-9)
}

func TestIPLocatorMissingKey(t *testing.T) {
	l := amap.NewIPLocator(cfgWithRestKey(""))

	_, err := l.CurrentPosition(context.Background(), amap.LocateOptions{})
	require.Error(t, err)

	var locErr *errors.LocationError
	require.True(t, errors.As(err, &locErr))
	assert.Equal(t, "amap not ready", locErr.Reason)
}

func TestIPLocatorProviderFailurePreservesReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"0","info":"USERKEY_PLAT_NOMATCH","infocode":"10009"}`))
	}))
	defer srv.Close()

	l := amap.NewIPLocator(cfgWithRestKey("rest-key"),
		amap.WithLocatorBaseURL(srv.URL),
		amap.WithLocatorHTTPClient(srv.Client()))

	_, err := l.CurrentPosition(context.Background(), amap.LocateOptions{})
	require.Error(t, err)

	var locErr *errors.LocationError
	require.True(t, errors.As(err, &locErr))
	assert.Equal(t, "USERKEY_PLAT_NOMATCH", locErr.Reason)
}

func TestIPLocatorMalformedRectangle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"1","rectangle":"garbage"}`))
	}))
	defer srv.Close()

	l := amap.NewIPLocator(cfgWithRestKey("rest-key"),
		amap.WithLocatorBaseURL(srv.URL),
		amap.WithLocatorHTTPClient(srv.Client()))

	_, err := l.CurrentPosition(context.Background(), amap.LocateOptions{})
	require.Error(t, err)
}
