package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"farmbook/internal/core"
)

func TestCloudSaveNormalizesIdentityAndPublishes(t *testing.T) {
	srv, snapshots, publisher := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cloud/save?identity=%20Farmer%40Example.COM%20", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}

	if _, ok := snapshots.data["farmer@example.com"]; !ok {
		t.Fatalf("snapshot stored under keys %v, want normalized identity", keys(snapshots.data))
	}
	if publisher.calls != 1 {
		t.Fatalf("publisher calls = %d, want 1", publisher.calls)
	}
	if publisher.identity != "farmer@example.com" || publisher.txCount != 4 {
		t.Errorf("published identity=%q txCount=%d", publisher.identity, publisher.txCount)
	}
}

func TestCloudSavePublishFailureDoesNotFailSave(t *testing.T) {
	srv, snapshots, publisher := newTestServer(t)
	publisher.err = errors.New("broker down")

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cloud/save?identity=farmer@example.com", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d, save must succeed when publish fails", rr.Code)
	}
	if len(snapshots.data) != 1 {
		t.Fatalf("snapshot not stored")
	}
}

func TestCloudSaveRequiresIdentity(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cloud/save", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rr.Code)
	}
}

func TestCloudLoadRoundTrip(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cloud/save?identity=farmer@example.com", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("save status=%d", rr.Code)
	}

	// Mutate the live ledger, then load the saved snapshot back.
	body := `{"date":"2025-08-02","amountCents":500,"type":"EXPENSE","categoryId":"c1","accountId":"a1","description":"Twine"}`
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body))
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("tx status=%d", rr.Code)
	}

	// Case differences in the identity must not matter.
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/cloud/load?identity=FARMER@example.com", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("load status=%d body=%s", rr.Code, rr.Body.String())
	}

	var loaded core.FarmData
	if err := json.Unmarshal(rr.Body.Bytes(), &loaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(loaded.Transactions) != 4 {
		t.Errorf("loaded transactions = %d, want the saved 4", len(loaded.Transactions))
	}
	if got := srv.ledger.Snapshot(); len(got.Transactions) != 4 {
		t.Errorf("ledger after load = %d transactions, want 4", len(got.Transactions))
	}
}

func TestCloudLoadMissingSnapshot(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cloud/load?identity=nobody@example.com", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", rr.Code)
	}
}

func TestSuggestCategory(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/suggest-category", strings.NewReader(`{"description":"20 bags of pellets"}`))
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}

	var got map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["category"] != "Feed" {
		t.Errorf("category = %q, want Feed", got["category"])
	}
}

func TestSuggestCategoryFailures(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/suggest-category", strings.NewReader(`{"description":"  "}`))
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("blank description status=%d, want 422", rr.Code)
	}

	srv.suggester = &fakeSuggester{err: errors.New("upstream 500")}
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/suggest-category", strings.NewReader(`{"description":"pellets"}`))
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("upstream failure status=%d, want 502", rr.Code)
	}

	srv.suggester = nil
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/suggest-category", strings.NewReader(`{"description":"pellets"}`))
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("unconfigured status=%d, want 503", rr.Code)
	}
}

func keys(m map[string]*core.FarmData) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
