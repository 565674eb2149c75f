package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// SourceProduct is a product record as shaped by a catalog document.
// The wrapper's RawID takes decode precedence over the embedded
// numeric ID, so documents may identify records however they like.
type SourceProduct struct {
	Product
	RawID SourceID `json:"id"`
}

// CatalogDocument is the external catalog shape:
// {"products": [...], "categories": [...]}.
type CatalogDocument struct {
	Products   []SourceProduct `json:"products"`
	Categories []Category      `json:"categories"`
}

var (
	ErrSourceUnavailable = errors.New("catalog source unavailable")
	ErrSourceBadStatus   = errors.New("catalog source bad status")
	ErrSourceMalformed   = errors.New("catalog document malformed")
)

// Source supplies catalog documents.
type Source interface {
	Fetch(ctx context.Context) (*CatalogDocument, error)
}

// FileSource reads the catalog from a bundled JSON fixture.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(_ context.Context) (*CatalogDocument, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return decodeDocument(raw)
}

// HTTPSource fetches the catalog document from a fixed URL.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		URL:    strings.TrimRight(url, "/"),
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) (*CatalogDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status=%d", ErrSourceBadStatus, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return decodeDocument(raw)
}

// StaticSource serves a fixed in-memory document. Used in tests and
// when the service is started without any external catalog.
type StaticSource struct {
	Document *CatalogDocument
	Err      error
}

func (s StaticSource) Fetch(_ context.Context) (*CatalogDocument, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Document == nil {
		return nil, ErrSourceUnavailable
	}
	return s.Document, nil
}

func decodeDocument(raw []byte) (*CatalogDocument, error) {
	var doc CatalogDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceMalformed, err)
	}
	return &doc, nil
}
