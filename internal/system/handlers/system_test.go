package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galaxy-server/internal/session"
	"galaxy-server/internal/stellar"
	"galaxy-server/internal/system"
	"galaxy-server/internal/system/handlers"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func serve(h *handlers.SystemHandler, method, target string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/systems/{id}", h.GetStarSystem)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestGetStarSystemHandler(t *testing.T) {
	s := session.New(session.WithLogger(discard))
	require.NoError(t, s.SetSeed(context.Background(), 3))
	engine, err := s.Engine()
	require.NoError(t, err)
	stars := engine.GetNearbyStars(stellar.Vec3{}, 10, 1)
	require.NotEmpty(t, stars)
	id := strconv.FormatUint(stars[0].ID, 10)

	h := handlers.NewSystemHandler(system.NewProjector(s, discard))

	rec := serve(h, http.MethodGet, "/api/systems/"+id+"?x=1&y=2&z=3")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, id, body["star_id"])
	assert.NotEmpty(t, body["stars"])

	tests := []struct {
		name   string
		method string
		target string
		code   int
	}{
		{"non numeric id", http.MethodGet, "/api/systems/abc", http.StatusBadRequest},
		{"negative id", http.MethodGet, "/api/systems/-4", http.StatusBadRequest},
		{"unknown id", http.MethodGet, "/api/systems/18446744073709551615", http.StatusNotFound},
		{"partial hint", http.MethodGet, "/api/systems/" + id + "?x=1", http.StatusBadRequest},
		{"non finite hint", http.MethodGet, "/api/systems/" + id + "?x=1&y=NaN&z=0", http.StatusBadRequest},
		{"wrong method", http.MethodDelete, "/api/systems/" + id, http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, serve(h, tt.method, tt.target).Code)
		})
	}
}

func TestGetStarSystemHandlerUnbound(t *testing.T) {
	h := handlers.NewSystemHandler(system.NewProjector(session.New(session.WithLogger(discard)), discard))

	rec := serve(h, http.MethodGet, "/api/systems/12")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"star_id": "12", "position": {"x": 0, "y": 0, "z": 0},
		"stars": [], "stellar_components": [], "inner_planets": [], "outer_planets": [],
		"asteroid_belts": [], "frost_line": 0, "habitable_zone_inner": 0, "habitable_zone_outer": 0,
		"diagnostic": "engine not initialized"
	}`, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, serve(h, http.MethodGet, "/api/systems/nope").Code)
}
