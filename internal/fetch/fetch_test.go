package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGetBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); !strings.HasPrefix(got, "ytscribe/") {
			t.Errorf("User-Agent = %q", got)
		}
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	data, err := GetBytes(context.Background(), srv.URL, time.Second, 0)
	if err != nil {
		t.Fatalf("GetBytes error = %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("body = %q", data)
	}
}

func TestGetBytes_TooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer srv.Close()

	_, err := GetBytes(context.Background(), srv.URL, time.Second, 10)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("GetBytes error = %v; want ErrTooLarge", err)
	}
}

func TestGetBytes_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTeapot)
	}))
	defer srv.Close()

	if _, err := GetBytes(context.Background(), srv.URL, time.Second, 0); err == nil {
		t.Error("GetBytes should fail on non-2xx status")
	}
}

func TestGetBytes_InvalidURL(t *testing.T) {
	if _, err := GetBytes(context.Background(), "://notaurl", time.Second, 0); err == nil {
		t.Error("GetBytes should reject invalid url")
	}
}

func TestPostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		w.Write([]byte(`{"echo":"ok"}`))
	}))
	defer srv.Close()

	var out struct {
		Echo string `json:"echo"`
	}
	err := PostJSON(context.Background(), srv.URL, time.Second, map[string]string{"in": "x"}, &out)
	if err != nil {
		t.Fatalf("PostJSON error = %v", err)
	}
	if out.Echo != "ok" {
		t.Errorf("Echo = %q", out.Echo)
	}
}

func TestPostJSON_ErrorStatusContainsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	var out map[string]any
	err := PostJSON(context.Background(), srv.URL, time.Second, nil, &out)
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("error = %v; want body snippet included", err)
	}
}
