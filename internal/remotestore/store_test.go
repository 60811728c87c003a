package remotestore_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodmap/foodmap/internal/config"
	"github.com/foodmap/foodmap/internal/remotestore"
	"github.com/foodmap/foodmap/pkg/errors"
	"github.com/foodmap/foodmap/pkg/places"
)

func storeFor(srv *httptest.Server) *remotestore.Store {
	cfg := config.Config{SupabaseURL: srv.URL, SupabaseAnonKey: "eyJtest"}
	return remotestore.New(
		func() config.Config { return cfg },
		remotestore.WithHostPattern("127.0.0.1"),
		remotestore.WithHTTPClient(srv.Client()),
	)
}

func TestListSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/places", r.URL.Path)
		assert.Equal(t, "*", r.URL.Query().Get("select"))
		assert.Equal(t, "eyJtest", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer eyJtest", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id":"1","name":"Noodle Stand","city":"Chengdu","lng":104.06,"lat":30.67}]`))
	}))
	defer srv.Close()

	got := storeFor(srv).List(context.Background())
	require.Len(t, got, 1)
	assert.Equal(t, "Noodle Stand", got[0].Name)
	assert.True(t, got[0].HasCoordinates())
}

func TestListNotConfigured(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"empty url", config.Config{SupabaseAnonKey: "eyJtest"}},
		{"wrong host shape", config.Config{SupabaseURL: srv.URL, SupabaseAnonKey: "eyJtest"}},
		{"bad credential prefix", config.Config{SupabaseURL: srv.URL, SupabaseAnonKey: "secret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := []remotestore.Option{remotestore.WithHTTPClient(srv.Client())}
			if tt.name == "bad credential prefix" {
				opts = append(opts, remotestore.WithHostPattern("127.0.0.1"))
			}
			s := remotestore.New(func() config.Config { return tt.cfg }, opts...)
			assert.Nil(t, s.List(context.Background()))
		})
	}
	assert.Zero(t, calls, "not-configured list must not issue a request")
}

func TestListNon2xxReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"permission denied"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	assert.Nil(t, storeFor(srv).List(context.Background()))
}

func TestListNonArrayReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"not an array"}`))
	}))
	defer srv.Close()

	assert.Nil(t, storeFor(srv).List(context.Background()))
}

func TestCreateReturnsCanonicalRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		body, _ := io.ReadAll(r.Body)
		var rows []map[string]any
		require.NoError(t, json.Unmarshal(body, &rows))
		require.Len(t, rows, 1)
		assert.Equal(t, "Noodles", rows[0]["name"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"id":"canonical-1","name":"Noodles","city":"Chengdu"}]`))
	}))
	defer srv.Close()

	created, err := storeFor(srv).Create(context.Background(), places.Place{ID: "local-1", Name: "Noodles", City: "Chengdu"})
	require.NoError(t, err)
	assert.Equal(t, "canonical-1", created.ID)
}

func TestCreateFallsBackToInputRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	created, err := storeFor(srv).Create(context.Background(), places.Place{ID: "local-1", Name: "Noodles"})
	require.NoError(t, err)
	assert.Equal(t, "local-1", created.ID)
	assert.NotEmpty(t, created.UpdatedAt)
}

func TestUpdatePatchesByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.p1", r.URL.Query().Get("id"))

		body, _ := io.ReadAll(r.Body)
		var patch map[string]any
		require.NoError(t, json.Unmarshal(body, &patch))
		assert.Equal(t, "Renamed", patch["name"])
		assert.Contains(t, patch, "lng")
		assert.Nil(t, patch["lng"])

		_, _ = w.Write([]byte(`[{"id":"p1","name":"Renamed"}]`))
	}))
	defer srv.Close()

	name := "Renamed"
	updated, err := storeFor(srv).Update(context.Background(), "p1", remotestore.Patch{Name: &name})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestUpdateFailureCarriesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"row level security"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := storeFor(srv).Update(context.Background(), "p1", remotestore.Patch{})
	require.Error(t, err)

	var reqErr *errors.RemoteRequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusForbidden, reqErr.StatusCode)
	assert.Contains(t, reqErr.Body, "row level security")
}

func TestDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "eq.p1", r.URL.Query().Get("id"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, storeFor(srv).Delete(context.Background(), "p1"))
}

func TestMutateNotConfigured(t *testing.T) {
	s := remotestore.New(func() config.Config { return config.Config{} })
	err := s.Delete(context.Background(), "p1")
	require.Error(t, err)
	assert.True(t, errors.IsNotConfigured(err))
}
