// Package docs retrieves reference documentation that is embedded into
// composed prompts.
package docs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrUnsupportedScheme is returned for URLs that are not http or https.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
	// ErrContentTooLarge is returned when a document exceeds the size limit.
	ErrContentTooLarge = errors.New("content too large")
)

// HTTPClient is an interface for HTTP operations to allow mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Document is one piece of retrieved documentation.
type Document struct {
	// Source is the file path or URL the document came from.
	Source string
	Title  string
	// Content is Markdown or plain text.
	Content string
}

// Fetcher reads documentation from local files and HTTP(S) URLs.
type Fetcher struct {
	client    HTTPClient
	converter *Converter
	userAgent string
	maxBytes  int64
}

// NewFetcher creates a fetcher with an http.Client bounded by timeout.
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("too many redirects (max 5)")
				}
				return checkScheme(req.URL)
			},
		},
		converter: NewConverter(),
		userAgent: userAgent,
		maxBytes:  maxBytes,
	}
}

// SetHTTPClient sets a custom HTTP client (useful for testing).
func (f *Fetcher) SetHTTPClient(client HTTPClient) {
	f.client = client
}

// FetchURL downloads a document. HTML responses are reduced to their main
// content and converted to Markdown; other text is returned as-is.
func (f *Fetcher) FetchURL(ctx context.Context, rawURL string) (*Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if err := checkScheme(u); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/markdown,text/plain;q=0.9,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %d: %s", rawURL, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := f.readLimited(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	return f.document(rawURL, body, isHTMLContentType(resp.Header.Get("Content-Type")))
}

// ReadFile loads a local document. Files ending in .html or .htm are
// converted like fetched pages.
func (f *Fetcher) ReadFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open docs file: %w", err)
	}
	defer file.Close()

	body, err := f.readLimited(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read docs file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	return f.document(path, body, ext == ".html" || ext == ".htm")
}

func (f *Fetcher) document(source string, body []byte, isHTML bool) (*Document, error) {
	if !isHTML {
		return &Document{
			Source:  source,
			Title:   firstHeading(string(body)),
			Content: strings.TrimSpace(string(body)),
		}, nil
	}

	title, markdown, err := f.converter.Convert(body)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", source, err)
	}
	return &Document{Source: source, Title: title, Content: markdown}, nil
}

func (f *Fetcher) readLimited(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%w (exceeds %d bytes)", ErrContentTooLarge, f.maxBytes)
	}
	return body, nil
}

func checkScheme(u *url.URL) error {
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

func isHTMLContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "html")
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
