package parser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"NewsPoster/internal/scanner"
)

const vergeListingPage = `
<html><body>
  <ol class="styled-counter">
    <li><a href="/tech/1/phones"><h2>Phones get bigger</h2></a></li>
    <li><a href="https://elsewhere.example/2"><h2> Absolute   link </h2></a></li>
    <li><a href="/tech/1/phones"><h2>Duplicate</h2></a></li>
    <li><a href="/tech/3"><h2></h2></a></li>
    <li><h2>No link</h2></li>
  </ol>
</body></html>`

const vergeArticlePage = `
<html><head><meta property="og:image" content="/og.jpg"></head><body>
  <div class="duet--article--lede"><figure><img src="/lede.jpg"></figure></div>
  <div class="duet--article--article-body-component-container"><p>First   paragraph.</p></div>
  <div class="duet--article--article-body-component-container"><p>Second paragraph.</p></div>
</body></html>`

func TestVergeScannerListing(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(vergeListingPage))
	}))
	defer server.Close()

	sc := NewVergeScanner(server.Client(), nil)
	listings, err := sc.Listing(context.Background(), scanner.Request{SiteName: "verge", URL: server.URL + "/tech"})
	if err != nil {
		t.Fatalf("Listing error: %v", err)
	}

	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d: %+v", len(listings), listings)
	}
	if listings[0].Title != "Phones get bigger" || listings[0].Link != server.URL+"/tech/1/phones" {
		t.Fatalf("unexpected first listing: %+v", listings[0])
	}
	if listings[1].Title != "Absolute link" || listings[1].Link != "https://elsewhere.example/2" {
		t.Fatalf("unexpected second listing: %+v", listings[1])
	}
}

func TestVergeScannerListingWithoutSection(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>redesign</p></body></html>`))
	}))
	defer server.Close()

	sc := NewVergeScanner(server.Client(), nil)
	listings, err := sc.Listing(context.Background(), scanner.Request{URL: server.URL})
	if err != nil {
		t.Fatalf("missing section should not be an error: %v", err)
	}
	if len(listings) != 0 {
		t.Fatalf("expected no listings, got %d", len(listings))
	}
}

func TestVergeScannerListingHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusBadGateway)
	}))
	defer server.Close()

	sc := NewVergeScanner(server.Client(), nil)
	if _, err := sc.Listing(context.Background(), scanner.Request{URL: server.URL}); err == nil {
		t.Fatal("expected error for 502 listing")
	}
}

func TestVergeScannerBodyAndImageShareFetch(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(vergeArticlePage))
	}))
	defer server.Close()

	sc := NewVergeScanner(server.Client(), nil)
	link := server.URL + "/tech/1"

	body, err := sc.Body(context.Background(), link)
	if err != nil {
		t.Fatalf("Body error: %v", err)
	}
	if body != "First paragraph.\n\nSecond paragraph." {
		t.Fatalf("unexpected body: %q", body)
	}

	image, err := sc.ImageURL(context.Background(), link)
	if err != nil {
		t.Fatalf("ImageURL error: %v", err)
	}
	if image != server.URL+"/lede.jpg" {
		t.Fatalf("unexpected image: %s", image)
	}

	if hits.Load() != 1 {
		t.Fatalf("expected a single fetch, got %d", hits.Load())
	}
}

func TestVergeScannerFallbacks(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/content":
			_, _ = w.Write([]byte(`<html><head><meta property="og:image" content="https://cdn.example/og.png"></head>
			<body><div id="content"> Content   fallback text </div></body></html>`))
		default:
			_, _ = w.Write([]byte(`<html><body></body></html>`))
		}
	}))
	defer server.Close()

	sc := NewVergeScanner(server.Client(), nil)

	body, err := sc.Body(context.Background(), server.URL+"/content")
	if err != nil {
		t.Fatalf("Body error: %v", err)
	}
	if body != "Content fallback text" {
		t.Fatalf("unexpected body: %q", body)
	}

	image, err := sc.ImageURL(context.Background(), server.URL+"/content")
	if err != nil {
		t.Fatalf("ImageURL error: %v", err)
	}
	if image != "https://cdn.example/og.png" {
		t.Fatalf("unexpected og image: %s", image)
	}

	if _, err := sc.Body(context.Background(), server.URL+"/empty"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected body not found error, got %v", err)
	}

	image, err = sc.ImageURL(context.Background(), server.URL+"/empty")
	if err != nil || image != "" {
		t.Fatalf("expected no image without error, got %q, %v", image, err)
	}
}
