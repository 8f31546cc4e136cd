package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexdb/alexdb/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*store.Store, http.Handler) {
	t.Helper()
	s := store.New(store.DefaultConfig(), zap.NewNop())
	return s, NewRouter(s, zap.NewNop())
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Auth-Token", token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// Scenario A: create/read/delete round-trip.
func TestScenarioA_WithAuthDisabled(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.EnableSecurityAPIKeys = false
	s := store.New(cfg, zap.NewNop())
	h := NewRouter(s, zap.NewNop())

	w := doJSON(t, h, http.MethodPost, "/values", map[string]any{"key": "k", "value": "hello"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, h, http.MethodGet, "/values/k", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, h, http.MethodDelete, "/values/k", nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, h, http.MethodGet, "/values/k", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code, "expected 404 after delete")
}

// Scenario C: typed append.
func TestScenarioC_TypedAppend(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.EnableSecurityAPIKeys = false
	s := store.New(cfg, zap.NewNop())
	h := NewRouter(s, zap.NewNop())

	w := doJSON(t, h, http.MethodPost, "/values", map[string]any{"key": "a", "value": []int{1}}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, h, http.MethodPut, "/values/a/append", map[string]any{"append": []int{2}}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Value []int `json:"value"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []int{1, 2}, resp.Value)
}

// Scenario D: pop-back N, LIFO order.
func TestScenarioD_PopBackN(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.EnableSecurityAPIKeys = false
	s := store.New(cfg, zap.NewNop())
	h := NewRouter(s, zap.NewNop())

	w := doJSON(t, h, http.MethodPost, "/values", map[string]any{"key": "b", "value": []bool{true, false, true}}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, h, http.MethodPut, "/values/b/pop-back", map[string]any{"pop_back": 2}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var popped []bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &popped))
	assert.Equal(t, []bool{true, false}, popped, "expected LIFO pop order")
}

// Scenario E: increment defaults.
func TestScenarioE_IncrementDefault(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.EnableSecurityAPIKeys = false
	s := store.New(cfg, zap.NewNop())
	h := NewRouter(s, zap.NewNop())

	w := doJSON(t, h, http.MethodPost, "/values", map[string]any{"key": "c", "value": 100}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, h, http.MethodPut, "/values/c/increment", map[string]any{}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Value int64 `json:"value"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(101), resp.Value)
}

// Scenario B: duplicate-key conflict.
func TestScenarioB_DuplicateKeyConflict(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.EnableSecurityAPIKeys = false
	s := store.New(cfg, zap.NewNop())
	h := NewRouter(s, zap.NewNop())

	w := doJSON(t, h, http.MethodPost, "/values", map[string]any{"key": "dup", "value": "first"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, h, http.MethodPost, "/values", map[string]any{"key": "dup", "value": "second"}, "")
	assert.Equal(t, http.StatusConflict, w.Code, "expected 409 on duplicate key create")
}

// Scenario F: auth gate.
func TestScenarioF_AuthGate(t *testing.T) {
	s, h := newTestRouter(t)
	id, err := s.APIKeys.Init()
	require.NoError(t, err)
	require.NotNil(t, id)

	w := doJSON(t, h, http.MethodGet, "/stats", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code, "expected 401 without token")

	w = doJSON(t, h, http.MethodGet, "/stats", nil, id.String())
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

// Scenario G: TTL expiry, checked with no GC loop running: once the
// TTL has passed, the store's read path itself reports the record as
// gone (the GC loop is tested in internal/store).
func TestScenarioG_TTLExpiryViaStoreClock(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.EnableSecurityAPIKeys = false
	s := store.New(cfg, zap.NewNop())
	h := NewRouter(s, zap.NewNop())

	w := doJSON(t, h, http.MethodPost, "/values", map[string]any{"key": "t", "value": "x", "ttl": 1}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	time.Sleep(1100 * time.Millisecond)
	w = doJSON(t, h, http.MethodGet, "/values/t", nil, "")
	// Without GC having run, the read path's own defensive expiry check
	// still surfaces the record as gone.
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
}
