package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggerEmitsEnvelopeFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	h := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("gone"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/messages?to=crab&status=pending", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if event["method"] != "GET" || event["path"] != "/messages" {
		t.Fatalf("unexpected method/path: %v", event)
	}
	if event["query"] != "to=crab&status=pending" {
		t.Fatalf("expected the query string, got %v", event["query"])
	}
	if event["status"].(float64) != http.StatusNotFound {
		t.Fatalf("expected status 404, got %v", event["status"])
	}
	if event["bytes"].(float64) != 4 {
		t.Fatalf("expected 4 bytes written, got %v", event["bytes"])
	}
	if event["message"] != "request handled" {
		t.Fatalf("unexpected message %v", event["message"])
	}
}

func TestLoggerNeverLogsBodies(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	h := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	body := bytes.NewBufferString(`{"body":"supersecret-ciphertext"}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if bytes.Contains(buf.Bytes(), []byte("supersecret")) {
		t.Fatalf("request body leaked into the log: %s", buf.String())
	}
}
