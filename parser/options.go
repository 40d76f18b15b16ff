package parser

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gacabartosz/mcp-universal-adapter/internal/options"
)

// Option is a function that configures a parse operation.
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation.
type parseConfig struct {
	// Input source (exactly one must be set)
	location *string
	filePath *string
	url      *string
	reader   io.Reader
	bytes    []byte

	// Configuration options
	format      SourceFormat
	userAgent   string
	httpClient  *http.Client
	httpTimeout time.Duration
	logger      Logger

	// Resource limits (0 means use default)
	maxRefDepth int
	maxFileSize int64
}

// ParseWithOptions parses an OpenAPI specification using functional options.
// This combines input source selection and configuration in one call.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithLocation("openapi.yaml"),
//	    parser.WithMaxRefDepth(50),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{
		UserAgent:   cfg.userAgent,
		HTTPClient:  cfg.httpClient,
		HTTPTimeout: cfg.httpTimeout,
		Format:      cfg.format,
		Logger:      cfg.logger,
		MaxRefDepth: cfg.maxRefDepth,
		MaxFileSize: cfg.maxFileSize,
	}

	switch {
	case cfg.location != nil:
		return p.Parse(*cfg.location)
	case cfg.filePath != nil:
		return p.ParseFile(*cfg.filePath)
	case cfg.url != nil:
		return p.ParseURL(*cfg.url)
	case cfg.reader != nil:
		return p.ParseReader(cfg.reader)
	default:
		return p.ParseBytes(cfg.bytes)
	}
}

// applyOptions applies option functions and validates configuration.
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ExactlyOne(
		"parser: must specify an input source (use WithLocation, WithFilePath, WithURL, WithReader, or WithBytes)",
		"parser: must specify exactly one input source",
		cfg.location != nil, cfg.filePath != nil, cfg.url != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithLocation specifies a file path or URL as the input source.
// URLs (http:// or https://) are fetched; anything else is read as a file.
func WithLocation(location string) Option {
	return func(cfg *parseConfig) error {
		cfg.location = &location
		return nil
	}
}

// WithFilePath specifies a local file path as the input source.
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithURL specifies an HTTP(S) URL as the input source.
func WithURL(url string) Option {
	return func(cfg *parseConfig) error {
		if !isURL(url) {
			return fmt.Errorf("parser: URL must use http or https scheme")
		}
		cfg.url = &url
		return nil
	}
}

// WithReader specifies an io.Reader as the input source.
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("parser: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source.
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return fmt.Errorf("parser: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithFormat forces the source format instead of detecting it from the
// path, Content-Type header, or content.
func WithFormat(format SourceFormat) Option {
	return func(cfg *parseConfig) error {
		switch format {
		case SourceFormatYAML, SourceFormatJSON:
			cfg.format = format
			return nil
		default:
			return fmt.Errorf("parser: unsupported format %q", string(format))
		}
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests.
// Default: the module's user agent ("mcp-adapt/<version>").
func WithUserAgent(ua string) Option {
	return func(cfg *parseConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for fetching URLs.
// When set, the client is used as-is and WithHTTPTimeout is ignored
// (configure the timeout on your client).
//
// Example:
//
//	client := &http.Client{Timeout: 60 * time.Second}
//	result, err := parser.ParseWithOptions(
//	    parser.WithURL("https://example.com/api.yaml"),
//	    parser.WithHTTPClient(client),
//	)
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *parseConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithHTTPTimeout sets the timeout for fetching remote documents.
// A value of 0 means use the default (DefaultHTTPTimeout).
// Returns an error if the timeout is negative.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(cfg *parseConfig) error {
		if timeout < 0 {
			return fmt.Errorf("parser: httpTimeout cannot be negative")
		}
		cfg.httpTimeout = timeout
		return nil
	}
}

// WithLogger sets a structured logger for debug output during parsing.
// By default, no logging is performed (nil logger).
//
// Use NewSlogAdapter to wrap a *slog.Logger:
//
//	logger := parser.NewSlogAdapter(slog.Default())
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("api.yaml"),
//	    parser.WithLogger(logger),
//	)
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxRefDepth sets the maximum depth for resolving nested $ref pointers.
// This prevents stack overflow from deeply nested (but non-circular) references.
// A value of 0 means use the default (DefaultMaxRefDepth).
// Returns an error if depth is negative.
func WithMaxRefDepth(depth int) Option {
	return func(cfg *parseConfig) error {
		if depth < 0 {
			return fmt.Errorf("parser: maxRefDepth cannot be negative")
		}
		cfg.maxRefDepth = depth
		return nil
	}
}

// WithMaxFileSize sets the maximum source document size in bytes.
// A value of 0 means use the default (DefaultMaxFileSize).
// Returns an error if size is negative.
func WithMaxFileSize(size int64) Option {
	return func(cfg *parseConfig) error {
		if size < 0 {
			return fmt.Errorf("parser: maxFileSize cannot be negative")
		}
		cfg.maxFileSize = size
		return nil
	}
}
