package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nikavisa/visaflow/internal/model"
)

func testConfig(cacheDir string) model.FetchConfig {
	return model.FetchConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "visaflow-test",
		MaxBodyBytes: 1 << 20,
		RatePerSec:   100,
		Burst:        10,
		CacheEnabled: cacheDir != "",
		CacheDir:     cacheDir,
		CacheTTL:     time.Minute,
	}
}

const samplePage = `
<html>
<head>
	<title>EU Startup Visa News</title>
	<script>var ignored = "script text";</script>
</head>
<body>
	<h1>Header is not a paragraph</h1>
	<p>The European Commission announced new rules for founder visas.</p>
	<p>Applications open in <b>January</b> next year.</p>
</body>
</html>
`

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("User-Agent") != "visaflow-test" {
			t.Errorf("expected custom user agent, got %q", r.Header.Get("User-Agent"))
		}
		_, _ = w.Write([]byte(samplePage))
	}))
	defer server.Close()

	f := New(testConfig(""))
	page, err := f.Fetch(context.Background(), server.URL+"/news")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if page.Title != "EU Startup Visa News" {
		t.Errorf("unexpected title: %q", page.Title)
	}
	if !strings.Contains(page.Text, "founder visas") {
		t.Errorf("expected paragraph text, got %q", page.Text)
	}
	if strings.Contains(page.Text, "Header is not a paragraph") {
		t.Error("non-paragraph text leaked into page text")
	}
	if strings.Contains(page.Text, "script text") {
		t.Error("script content leaked into page text")
	}
	// Inline markup inside paragraphs is flattened to text
	if !strings.Contains(page.Text, "Applications open in January next year.") {
		t.Errorf("expected flattened paragraph, got %q", page.Text)
	}
}

func TestFetcher_RobotsDisallow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private\n"))
			return
		}
		_, _ = w.Write([]byte(samplePage))
	}))
	defer server.Close()

	f := New(testConfig(""))
	if _, err := f.Fetch(context.Background(), server.URL+"/private/page"); err == nil {
		t.Error("expected error for robots-disallowed path")
	}

	// Allowed path on the same host still works
	if _, err := f.Fetch(context.Background(), server.URL+"/public"); err != nil {
		t.Errorf("expected allowed path to fetch: %v", err)
	}
}

func TestFetcher_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := New(testConfig(""))
	if _, err := f.Fetch(context.Background(), server.URL+"/down"); err == nil {
		t.Error("expected error for 503 response")
	}
}

func TestFetcher_CacheAvoidsRefetch(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		hits++
		_, _ = w.Write([]byte(samplePage))
	}))
	defer server.Close()

	f := New(testConfig(t.TempDir()))

	url := server.URL + "/cached"
	if _, err := f.Fetch(context.Background(), url); err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	page, err := f.Fetch(context.Background(), url)
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}

	if hits != 1 {
		t.Errorf("expected 1 origin hit, got %d", hits)
	}
	if page.Title != "EU Startup Visa News" {
		t.Errorf("cached page lost title: %q", page.Title)
	}
}
