// Package remotestore implements the REST client for the remote place
// collection (a Supabase PostgREST endpoint). Every operation is a stateless
// request/response exchange using the effective configuration.
package remotestore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/foodmap/foodmap/internal/config"
	"github.com/foodmap/foodmap/internal/transport"
	"github.com/foodmap/foodmap/pkg/errors"
	"github.com/foodmap/foodmap/pkg/logging"
	"github.com/foodmap/foodmap/pkg/places"
)

const (
	// defaultHostPattern is the expected remote host shape; endpoints that
	// don't reference it are treated as "not configured".
	defaultHostPattern = ".supabase.co"

	// credentialPrefix is the expected token-prefix shape of the anon key.
	credentialPrefix = "eyJ"

	restPath = "/rest/v1/places"
)

// Store is the REST client over the place collection.
type Store struct {
	cfg         func() config.Config
	http        *http.Client
	hostPattern string
}

// Option configures a Store.
type Option func(*Store)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Store) {
		if hc != nil {
			s.http = hc
		}
	}
}

// WithHostPattern overrides the expected remote host pattern (tests).
func WithHostPattern(pattern string) Option {
	return func(s *Store) {
		s.hostPattern = pattern
	}
}

// New creates a store that resolves configuration through cfg on every call,
// so overrides saved mid-session take effect without rebuilding the store.
func New(cfg func() config.Config, opts ...Option) *Store {
	s := &Store{
		cfg:         cfg,
		http:        &http.Client{Timeout: transport.DefaultHTTPTimeout},
		hostPattern: defaultHostPattern,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configured reports whether the endpoint and credential pass the shape
// checks used to gate remote reads.
func (s *Store) Configured() bool {
	cfg := s.cfg()
	base := strings.TrimSpace(cfg.SupabaseURL)
	anon := strings.TrimSpace(cfg.SupabaseAnonKey)
	return base != "" && strings.Contains(base, s.hostPattern) &&
		anon != "" && strings.HasPrefix(anon, credentialPrefix)
}

// List fetches all places. It fails soft: nil means "no remote data",
// whether from missing configuration, a non-2xx response, or a body of the
// wrong shape, so the reconciler can fall through to other sources without
// surfacing a user-facing error. Each failure class logs distinguishable
// detail.
func (s *Store) List(ctx context.Context) []places.Place {
	cfg := s.cfg()
	base := strings.TrimSpace(cfg.SupabaseURL)
	anon := strings.TrimSpace(cfg.SupabaseAnonKey)

	if base == "" || !strings.Contains(base, s.hostPattern) {
		logging.Warn().Msg("supabase url missing or malformed, skipping remote load")
		return nil
	}
	if anon == "" || !strings.HasPrefix(anon, credentialPrefix) {
		logging.Warn().Msg("supabase anon key missing or malformed (expected eyJ-prefixed public key), skipping remote load")
		return nil
	}

	listURL := strings.TrimRight(base, "/") + restPath + "?select=*"
	logging.Info().Str("url", listURL).Msg("fetching remote places")

	start := time.Now()
	resp, err := s.client(cfg).Get(ctx, listURL)
	if err != nil {
		logging.Error().Err(err).Msg("remote request failed")
		return nil
	}
	body, err := transport.ReadBody(resp)
	if err != nil {
		logging.Error().Err(err).Msg("reading remote response failed")
		return nil
	}
	logging.Info().
		Int("status", resp.StatusCode).
		Dur("cost", time.Since(start)).
		Msg("remote request complete")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logging.Error().
			Int("status", resp.StatusCode).
			Str("body", truncate(string(body), 500)).
			Msg("remote response not 2xx")
		return nil
	}

	var rows []places.Row
	if err := json.Unmarshal(body, &rows); err != nil {
		logging.Error().
			Str("body", truncate(string(body), 500)).
			Msg("remote response is not an array")
		return nil
	}

	logging.Info().Int("count", len(rows)).Msg("remote places loaded")
	out := make([]places.Place, 0, len(rows))
	for _, row := range rows {
		out = append(out, places.NormalizeRow(row))
	}
	return out
}

// mutationRow is the wire shape for creates and full updates. Lng and Lat
// are always serialized, null when unset.
type mutationRow struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	City      string   `json:"city"`
	Address   string   `json:"address"`
	Lng       *float64 `json:"lng"`
	Lat       *float64 `json:"lat"`
	UpdatedAt string   `json:"updated_at"`
}

// Patch is a partial row for updates. Nil text fields are omitted; Lng/Lat
// are always carried so a relocate can set or clear coordinates.
type Patch struct {
	Name      *string  `json:"name,omitempty"`
	Category  *string  `json:"category,omitempty"`
	City      *string  `json:"city,omitempty"`
	Address   *string  `json:"address,omitempty"`
	Lng       *float64 `json:"lng"`
	Lat       *float64 `json:"lat"`
	UpdatedAt string   `json:"updated_at"`
}

// Create inserts a place and returns the remote store's canonical row, which
// may carry a replacement id. Falls back to the input when the response
// carries no representation.
func (s *Store) Create(ctx context.Context, p places.Place) (places.Place, error) {
	row := mutationRow{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		City:      p.City,
		Address:   p.Address,
		Lng:       p.Lng,
		Lat:       p.Lat,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	rows, err := s.mutate(ctx, "create", http.MethodPost, restPath, []mutationRow{row})
	if err != nil {
		return places.Place{}, err
	}
	if len(rows) > 0 {
		return places.NormalizeRow(rows[0]), nil
	}
	p.UpdatedAt = row.UpdatedAt
	return places.Normalize(p), nil
}

// Update patches a place by id and returns the updated row, or nil when the
// response carries no representation (caller applies the patch locally).
func (s *Store) Update(ctx context.Context, id string, patch Patch) (*places.Place, error) {
	if patch.UpdatedAt == "" {
		patch.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	rows, err := s.mutate(ctx, "update", http.MethodPatch, restPath+"?id=eq."+url.QueryEscape(id), patch)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		p := places.NormalizeRow(rows[0])
		return &p, nil
	}
	return nil, nil
}

// Delete removes a place by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, "delete", http.MethodDelete, restPath+"?id=eq."+url.QueryEscape(id), nil)
	return err
}

// mutate performs a write exchange. The REST layer performs no retries;
// callers must not assume partial application on failure.
func (s *Store) mutate(ctx context.Context, operation, method, path string, body any) ([]places.Row, error) {
	cfg := s.cfg()
	base := strings.TrimRight(strings.TrimSpace(cfg.SupabaseURL), "/")
	anon := strings.TrimSpace(cfg.SupabaseAnonKey)
	if base == "" || anon == "" {
		return nil, errors.NewConfigError("remotestore", "supabase configuration missing", nil)
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, errors.WrapParse("json", operation+" payload", err)
		}
	}

	resp, err := s.client(cfg).Send(ctx, method, base+path, payload)
	if err != nil {
		return nil, errors.NewRemoteRequestError(operation, 0, "", err)
	}
	raw, err := transport.ReadBody(resp)
	if err != nil {
		return nil, errors.NewRemoteRequestError(operation, resp.StatusCode, "", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewRemoteRequestError(operation, resp.StatusCode, string(raw), nil)
	}

	var rows []places.Row
	if len(raw) > 0 {
		// DELETE and minimal-return responses legitimately decode to nothing.
		_ = json.Unmarshal(raw, &rows)
	}
	return rows, nil
}

// client builds a transport client carrying the apikey header, the bearer
// credential, and the representation preference for mutating verbs.
func (s *Store) client(cfg config.Config) *transport.Client {
	anon := strings.TrimSpace(cfg.SupabaseAnonKey)
	auth := transport.Chain{
		&transport.HeaderAuth{Header: "apikey", Value: anon},
		&transport.BearerAuth{Token: anon},
		&transport.HeaderAuth{Header: "Prefer", Value: "return=representation"},
	}
	return transport.New(auth).WithHTTPClient(s.http)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
