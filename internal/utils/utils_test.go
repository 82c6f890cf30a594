package utils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  plain text ", "plain text"},
		{"Two men <b>bond</b> over a number of years.", "Two men bond over a number of years."},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"<p>line one</p>\n<p>line   two</p>", "line one line two"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StripHTML(tt.in); got != tt.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSearchCache_SetGetExpire(t *testing.T) {
	c := NewSearchCache[[]string](2, 50*time.Millisecond)

	c.Set("a", []string{"x"})
	got, ok := c.Get("a")
	if !ok || len(got) != 1 || got[0] != "x" {
		t.Fatalf("Get(a) = %v, %v", got, ok)
	}

	time.Sleep(80 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected entry to expire")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after expiry", c.Len())
	}
}

func TestSearchCache_Evicts(t *testing.T) {
	c := NewSearchCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	if _, ok := c.Get("a"); ok {
		t.Error("expected oldest entry to be evicted")
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("Get(c) = %v, %v", v, ok)
	}
}

func TestSearchCache_ZeroTTLDisables(t *testing.T) {
	c := NewSearchCache[int](2, 0)
	c.Set("a", 1)
	if _, ok := c.Get("a"); ok {
		t.Error("zero ttl should not store entries")
	}
}

func TestHTTPClient_GetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"name":"watchbox"}`))
		case "/bad":
			w.Write([]byte(`{not json`))
		default:
			http.Error(w, "nope", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewHTTPClient(time.Second)

	var out struct {
		Name string `json:"name"`
	}
	if err := client.GetJSON(context.Background(), srv.URL+"/ok", &out); err != nil {
		t.Fatalf("GetJSON() unexpected error: %v", err)
	}
	if out.Name != "watchbox" {
		t.Errorf("Name = %q", out.Name)
	}

	err := client.GetJSON(context.Background(), srv.URL+"/missing", &out)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("GetJSON(missing) error = %v, want StatusError 404", err)
	}

	if err := client.GetJSON(context.Background(), srv.URL+"/bad", &out); err == nil {
		t.Error("GetJSON(bad) expected decode error")
	}
}
