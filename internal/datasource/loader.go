// Package datasource fetches and decodes the static event document.
package datasource

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tinytelemetry/hackboard/internal/model"
)

const (
	// SourceBuiltin selects the embedded demo document.
	SourceBuiltin = "builtin"

	maxDocumentSize = 4 << 20
	userAgent       = "hackboard/1"
)

//go:embed assets/hackathon.json
var builtinDocument []byte

// Loader fetches the document once per call.
type Loader interface {
	Load(ctx context.Context) (*model.Document, error)
}

// New picks a loader for source: "builtin", an http(s) URL, or a file path.
func New(source string, timeout time.Duration) (Loader, error) {
	source = strings.TrimSpace(source)
	switch {
	case source == "" || source == SourceBuiltin:
		return BuiltinLoader{}, nil
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		if _, err := url.Parse(source); err != nil {
			return nil, fmt.Errorf("datasource: invalid url: %w", err)
		}
		return NewHTTPLoader(source, timeout), nil
	default:
		if strings.HasPrefix(source, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("datasource: finding home directory: %w", err)
			}
			source = filepath.Join(home, source[2:])
		}
		return FileLoader{Path: source}, nil
	}
}

// BuiltinLoader serves the embedded demo event.
type BuiltinLoader struct{}

func (BuiltinLoader) Load(_ context.Context) (*model.Document, error) {
	return Decode(builtinDocument, FormatJSON)
}

// FileLoader reads a JSON or YAML document from disk.
type FileLoader struct {
	Path string
}

func (l FileLoader) Load(_ context.Context) (*model.Document, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrLoad, l.Path, err)
	}
	return Decode(data, formatFor(l.Path))
}

// HTTPLoader performs a single GET of the document.
type HTTPLoader struct {
	URL    string
	Client *http.Client
}

func NewHTTPLoader(rawURL string, timeout time.Duration) *HTTPLoader {
	if timeout <= 0 {
		timeout = model.DefaultFetchTimeout
	}
	return &HTTPLoader{
		URL:    rawURL,
		Client: &http.Client{Timeout: timeout},
	}
}

func (l *HTTPLoader) Load(ctx context.Context) (*model.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrLoad, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Str("url", l.URL).Int("status", resp.StatusCode).Msg("data source returned error status")
		return nil, fmt.Errorf("%w: unexpected status %d", ErrLoad, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrLoad, err)
	}

	format := formatFor(req.URL.Path)
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "yaml") {
		format = FormatYAML
	}
	log.Debug().Str("url", l.URL).Int("bytes", len(data)).Msg("fetched data source")
	return Decode(data, format)
}

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
