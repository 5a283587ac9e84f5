package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"

	"shopassist/internal/ai"
	"shopassist/internal/config"
	"shopassist/internal/http/handlers"
	"shopassist/internal/repos"
	"shopassist/internal/services"
)

// stubGen answers every prompt with a fixed body or error.
type stubGen struct {
	body string
	err  error
}

func (g stubGen) Generate(context.Context, string) (string, error) { return g.body, g.err }

const pixelAnswer = `{"recommendations":[{"productId":10,"relevanceScore":0.92,"reasoning":"Clean Android under budget"}],` +
	`"summary":"One strong pick","alternativeSuggestions":"Consider the moto edge"}`

type testEnv struct {
	app     *fiber.App
	history *services.HistoryRecorder
	recRepo *repos.RecommendationRepo
}

func newTestEnv(t *testing.T, gen ai.Generator) *testEnv {
	t.Helper()
	cfg := config.Config{Port: "3001", DBDSN: ":memory:", CORSOrigins: "http://localhost:3000"}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	recRepo := repos.NewRecommendationRepo(db)
	catalog := services.NewCatalogService(repos.NewProductRepo(db), nil)
	history := services.NewHistoryRecorder(recRepo)
	recs := services.NewRecommendationService(catalog, ai.NewClient(gen, 0, 0), history)

	deps := handlers.NewDeps(cfg, catalog, recs, recRepo)
	return &testEnv{app: handlers.NewApp(cfg, deps), history: history, recRepo: recRepo}
}

func (e *testEnv) do(t *testing.T, method, path, body string) (int, []byte) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("decode %s: %v", string(b), err)
	}
	return v
}

var errProvider = errors.New("upstream 503")

type logEntry struct {
	Level  string         `json:"level"`
	ReqID  string         `json:"req_id"`
	Action string         `json:"action"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedBuf{b: &buf, mu: &mu})
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	mu.Lock()
	raw := buf.String()
	mu.Unlock()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findAction(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
