// Package integration provides integration tests for the aufgabe API.
//
// Tests run against a real HTTP server wired exactly like production
// (full middleware stack, in-memory store), started in-process using
// net/http/httptest.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/aufgabe-dev/aufgabe/pkg/account"
	"github.com/aufgabe-dev/aufgabe/pkg/auth"
	"github.com/aufgabe-dev/aufgabe/pkg/storage/memory"
	"github.com/aufgabe-dev/aufgabe/pkg/task"
	transporthttp "github.com/aufgabe-dev/aufgabe/pkg/transport/http"
)

// testEnv holds the shared server for all integration tests.
var testEnv *TestEnvironment

// TestEnvironment holds the API server under test.
type TestEnvironment struct {
	Server *httptest.Server
}

// TestMain starts the server before running tests.
func TestMain(m *testing.M) {
	testEnv = setupTestEnvironment()
	code := m.Run()
	testEnv.Teardown()
	os.Exit(code)
}

// setupTestEnvironment wires the full production stack over the in-memory
// store and serves it from an httptest server.
func setupTestEnvironment() *TestEnvironment {
	store := memory.New()
	hasher := auth.NewHasher(bcrypt.MinCost)
	tokens := auth.NewTokenService([]byte("integration-test-secret"))
	accounts := account.NewService(store, hasher, tokens)
	tasks := task.NewService(store)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := transporthttp.DefaultConfig()
	cfg.CORSOrigin = "https://app.example.com"
	adapter := transporthttp.NewAdapter(accounts, tasks, store, tokens, logger, cfg)

	return &TestEnvironment{
		Server: httptest.NewServer(adapter.Handler(logger)),
	}
}

// Teardown stops the server.
func (env *TestEnvironment) Teardown() {
	if env.Server != nil {
		env.Server.Close()
	}
}

// BaseURL returns the server base URL.
func (env *TestEnvironment) BaseURL() string {
	return env.Server.URL
}

// --- HTTP helpers ---

// envelope is the uniform response shape with untyped data.
type envelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// doJSON sends a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

// decodeEnvelope reads and decodes the response body.
func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("decoding envelope: %v (body %q)", err, data)
	}
	return env
}

// userCounter makes registration emails unique across tests sharing the server.
var userCounter int

// signup registers a fresh user and returns its login token.
func signup(t *testing.T, name string) string {
	t.Helper()

	userCounter++
	email := fmt.Sprintf("user%d@example.com", userCounter)

	resp := doJSON(t, "POST", testEnv.BaseURL()+"/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, "POST", testEnv.BaseURL()+"/api/auth/login", "", map[string]string{
		"email": email, "password": "secret123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d", resp.StatusCode)
	}
	token, _ := decodeEnvelope(t, resp).Data["token"].(string)
	if token == "" {
		t.Fatal("no token in login response")
	}
	return token
}
