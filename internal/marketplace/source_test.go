package marketplace_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"MarketStore/internal/marketplace"
)

func TestHTTPSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"products": [{"id": "web-1", "title": "Remote", "price": 700, "category_id": "electronics", "in_stock": true}],
			"categories": [{"id": "electronics", "name": "Электроника"}]
		}`))
	}))
	defer srv.Close()

	src := marketplace.NewHTTPSource(srv.URL)
	doc, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(doc.Products) != 1 || doc.Products[0].Title != "Remote" {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if string(doc.Products[0].RawID) != "web-1" {
		t.Fatalf("raw id = %q", doc.Products[0].RawID)
	}
}

func TestHTTPSourceBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := marketplace.NewHTTPSource(srv.URL).Fetch(context.Background())
	if !errors.Is(err, marketplace.ErrSourceBadStatus) {
		t.Fatalf("want ErrSourceBadStatus, got %v", err)
	}
}

func TestHTTPSourceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := marketplace.NewHTTPSource(srv.URL).Fetch(context.Background())
	if !errors.Is(err, marketplace.ErrSourceUnavailable) {
		t.Fatalf("want ErrSourceUnavailable, got %v", err)
	}
}

func TestHTTPSourceMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := marketplace.NewHTTPSource(srv.URL).Fetch(context.Background())
	if !errors.Is(err, marketplace.ErrSourceMalformed) {
		t.Fatalf("want ErrSourceMalformed, got %v", err)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := marketplace.FileSource{Path: "testdata/does-not-exist.json"}.Fetch(context.Background())
	if !errors.Is(err, marketplace.ErrSourceUnavailable) {
		t.Fatalf("want ErrSourceUnavailable, got %v", err)
	}
}

func TestFileSourceRoundTrip(t *testing.T) {
	doc, err := marketplace.FileSource{Path: "testdata/catalog.json"}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(doc.Products) == 0 || len(doc.Categories) == 0 {
		t.Fatalf("fixture decoded empty: %d products, %d categories", len(doc.Products), len(doc.Categories))
	}
}

func TestMixedSourceIDs(t *testing.T) {
	doc := document(t, `{"products": [
		{"id": 11, "title": "Numeric", "price": 100, "category_id": "c", "in_stock": true},
		{"id": "str-7", "title": "String", "price": 200, "category_id": "c", "in_stock": true},
		{"title": "Absent", "price": 300, "category_id": "c", "in_stock": true}
	], "categories": []}`)

	if got := string(doc.Products[0].RawID); got != "11" {
		t.Fatalf("numeric id decoded as %q", got)
	}
	if got := string(doc.Products[1].RawID); got != "str-7" {
		t.Fatalf("string id decoded as %q", got)
	}
	if got := string(doc.Products[2].RawID); got != "" {
		t.Fatalf("absent id decoded as %q", got)
	}
}
