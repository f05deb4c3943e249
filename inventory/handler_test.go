package inventory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(store *Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(store).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) map[string]int {
	t.Helper()

	var state map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode response: %v; body: %s", err, rec.Body.String())
	}
	return state
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error response: %v; body: %s", err, rec.Body.String())
	}
	return payload.Detail
}

func TestGetInventory(t *testing.T) {
	t.Parallel()

	router := newTestRouter(NewStore(DefaultSeed()))
	rec := doJSON(t, router, http.MethodGet, "/inventory", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	state := decodeState(t, rec)
	if state["tshirts"] != 20 || state["pants"] != 15 {
		t.Fatalf("unexpected state: %v", state)
	}
}

func TestUpdateThenRejectSequence(t *testing.T) {
	t.Parallel()

	router := newTestRouter(NewStore(DefaultSeed()))

	rec := doJSON(t, router, http.MethodPost, "/inventory", `{"item":"tshirts","change":-3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d; body: %s", rec.Code, rec.Body.String())
	}
	state := decodeState(t, rec)
	if state["tshirts"] != 17 || state["pants"] != 15 {
		t.Fatalf("unexpected state after sale: %v", state)
	}

	rec = doJSON(t, router, http.MethodPost, "/inventory", `{"item":"pants","change":-100}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	detail := decodeDetail(t, rec)
	if !strings.Contains(detail, "Current: 15") || !strings.Contains(detail, "Attempted change: -100") {
		t.Fatalf("detail must state current count and attempted change: %s", detail)
	}

	// Mapping unchanged by the rejected update.
	rec = doJSON(t, router, http.MethodGet, "/inventory", "")
	state = decodeState(t, rec)
	if state["tshirts"] != 17 || state["pants"] != 15 {
		t.Fatalf("state changed by rejected update: %v", state)
	}
}

func TestUpdateUnknownItem(t *testing.T) {
	t.Parallel()

	router := newTestRouter(NewStore(DefaultSeed()))
	rec := doJSON(t, router, http.MethodPost, "/inventory", `{"item":"shoes","change":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if detail := decodeDetail(t, rec); !strings.Contains(detail, "'shoes'") {
		t.Fatalf("detail must name the invalid item: %s", detail)
	}
}

func TestUpdateZeroChangeAccepted(t *testing.T) {
	t.Parallel()

	router := newTestRouter(NewStore(DefaultSeed()))
	rec := doJSON(t, router, http.MethodPost, "/inventory", `{"item":"pants","change":0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("zero change must be accepted, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateMalformedBody(t *testing.T) {
	t.Parallel()

	router := newTestRouter(NewStore(DefaultSeed()))

	for _, body := range []string{``, `{}`, `{"item":"tshirts"}`, `{"change":1}`, `not json`} {
		rec := doJSON(t, router, http.MethodPost, "/inventory", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}
