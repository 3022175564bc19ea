package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/studentledger/internal/adapter/http/dto"
	"github.com/iho/studentledger/internal/infrastructure/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		StoreDriver:         config.DriverSQLite,
		SQLitePath:          filepath.Join(t.TempDir(), "ledger.db"),
		HTTPPort:            "0",
		HTTPShutdownTimeout: time.Second,
		IdempotencyTTL:      time.Hour,
		DefaultOwner:        "local",
		JWTSecret:           "test-secret",
		JWTExpiration:       time.Hour,
	}
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreDriver = "mongo"

	if _, err := openStore(t.Context(), cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestBuildServer_SQLiteEndToEnd(t *testing.T) {
	cfg := testConfig(t)

	st, err := openStore(t.Context(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer st.close()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	srv := buildServer(cfg, st, client, zerolog.Nop())

	send := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Idempotency-Key", "k-"+method+path)
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, req)
		return rec
	}

	if rec := send(http.MethodGet, "/ready", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected ready, got %d: %s", rec.Code, rec.Body.String())
	}

	rec := send(http.MethodPost, "/api/v1/transactions",
		`{"date":"2024-09-01","type":"Income","category":"Scholarship","amount":"1000","tuition_percent":"25"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = send(http.MethodGet, "/api/v1/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"tuition_aid_applied":"250"`) {
		t.Fatalf("unexpected summary %s", rec.Body.String())
	}

	rec = send(http.MethodGet, "/api/v1/report/pdf", "")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Fatalf("expected PDF report, got %d", rec.Code)
	}

	rec = send(http.MethodGet, "/metrics", "")
	if !strings.Contains(rec.Body.String(), "studentledger_entries_created_total") {
		t.Fatal("expected ledger metrics to be exported")
	}
}

func TestBuildServer_AuthEnabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.AuthEnabled = true

	st, err := openStore(t.Context(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer st.close()

	srv := buildServer(cfg, st, nil, zerolog.Nop())

	post := func(path, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
		return rec
	}

	if rec := post("/api/v1/auth/register", `{"email":"sam@example.com","name":"Sam","password":"StrongPass1"}`); rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := post("/api/v1/auth/register", `{"email":"sam@example.com","name":"Sam","password":"StrongPass1"}`); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", rec.Code)
	}
	rec := post("/api/v1/auth/login", `{"email":"sam@example.com","password":"StrongPass1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var login dto.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"email":"sam@example.com"`) {
		t.Fatalf("me: expected 200 with user, got %d: %s", rec.Code, rec.Body.String())
	}
}
