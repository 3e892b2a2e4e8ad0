package serper

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestClient_Call_Success(t *testing.T) {
	var gotPath, gotKey, gotType string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-KEY")
		gotType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"organic":[{"title":"A"}]}`))
	}))
	defer srv.Close()

	c := NewClient("secret", WithBaseURL(srv.URL))
	res := c.Call(context.Background(), "search", map[string]any{"q": "golang", "num": 5})
	if res.Failed() {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if gotPath != "/search" {
		t.Errorf("path: got %q, want /search", gotPath)
	}
	if gotKey != "secret" {
		t.Errorf("X-API-KEY: got %q", gotKey)
	}
	if gotType != "application/json" {
		t.Errorf("Content-Type: got %q", gotType)
	}
	if gotBody["q"] != "golang" || gotBody["num"] != float64(5) {
		t.Errorf("body: got %v", gotBody)
	}
	organic, ok := res.Body["organic"].([]any)
	if !ok || len(organic) != 1 {
		t.Fatalf("organic: got %v", res.Body["organic"])
	}
}

func TestClient_Call_MissingCredential(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := NewClient("  ", WithBaseURL(srv.URL))
	if c.Configured() {
		t.Fatal("blank key should not count as configured")
	}
	res := c.Call(context.Background(), "search", map[string]any{"q": "x"})
	if !errors.Is(res.Err, ErrMissingCredential) {
		t.Fatalf("err: got %v, want ErrMissingCredential", res.Err)
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("network calls: got %d, want 0", n)
	}
}

func TestClient_Call_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Unauthorized.","statusCode":403}`))
	}))
	defer srv.Close()

	res := NewClient("bad", WithBaseURL(srv.URL)).Call(context.Background(), "news", nil)
	var se *StatusError
	if !errors.As(res.Err, &se) {
		t.Fatalf("expected *StatusError, got %v", res.Err)
	}
	if se.Code != http.StatusForbidden {
		t.Errorf("code: got %d", se.Code)
	}
	if !strings.Contains(se.Error(), "Unauthorized.") {
		t.Errorf("message: got %q", se.Error())
	}
	if res.Body != nil {
		t.Errorf("body should be nil on failure, got %v", res.Body)
	}
}

func TestClient_Call_StatusErrorPlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(strings.Repeat("x", 2000)))
	}))
	defer srv.Close()

	res := NewClient("k", WithBaseURL(srv.URL)).Call(context.Background(), "search", nil)
	var se *StatusError
	if !errors.As(res.Err, &se) {
		t.Fatalf("expected *StatusError, got %v", res.Err)
	}
	if len(se.Message) > maxErrorSnippet+3 {
		t.Errorf("message not truncated: %d bytes", len(se.Message))
	}
}

func TestClient_Call_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	res := NewClient("k", WithBaseURL(srv.URL)).Call(context.Background(), "images", nil)
	if !res.Failed() {
		t.Fatal("expected failure for non-JSON body")
	}
}

func TestClient_Call_NonObjectJSON(t *testing.T) {
	for _, body := range []string{`[1,2]`, `null`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))
		res := NewClient("k", WithBaseURL(srv.URL)).Call(context.Background(), "search", nil)
		srv.Close()
		if !res.Failed() {
			t.Errorf("body %s: expected failure", body)
		}
	}
}

func TestClient_Call_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient("k", WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond))
	start := time.Now()
	res := c.Call(context.Background(), "search", map[string]any{"q": "slow"})
	if !res.Failed() {
		t.Fatal("expected timeout failure")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("timeout not enforced, took %v", elapsed)
	}
}

func TestClient_Call_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	res := NewClient("k", WithBaseURL(url)).Call(context.Background(), "search", nil)
	if !res.Failed() {
		t.Fatal("expected transport failure")
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("k")
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("base url: got %q", c.BaseURL())
	}
	if c.Timeout() != DefaultTimeout {
		t.Errorf("timeout: got %v", c.Timeout())
	}
	c = NewClient("k", WithBaseURL("http://proxy.local/"), WithTimeout(0))
	if c.BaseURL() != "http://proxy.local" {
		t.Errorf("trailing slash not trimmed: %q", c.BaseURL())
	}
	if c.Timeout() != DefaultTimeout {
		t.Errorf("zero timeout should keep default, got %v", c.Timeout())
	}
}
