package parser

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gacabartosz/mcp-universal-adapter/adaptererrors"
)

const (
	// DefaultHTTPTimeout is the timeout applied when fetching remote documents
	// and no custom client or timeout is configured.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultMaxRefDepth is the maximum depth allowed for nested $ref resolution.
	// This prevents stack overflow from deeply nested (but non-circular) references.
	DefaultMaxRefDepth = 100

	// DefaultMaxFileSize is the maximum size (in bytes) accepted for a source
	// document, local or remote. 10MB is generous for OpenAPI documents.
	DefaultMaxFileSize = 10 * 1024 * 1024
)

// Parser handles OpenAPI specification parsing.
type Parser struct {
	// UserAgent is the User-Agent string used when fetching URLs.
	// Defaults to the module's user agent if not set.
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a default client with DefaultHTTPTimeout is created.
	HTTPClient *http.Client
	// HTTPTimeout overrides the default client timeout.
	// Ignored when HTTPClient is set (configure the timeout on your client).
	HTTPTimeout time.Duration
	// Format forces the source format instead of detecting it.
	Format SourceFormat
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger Logger

	// Resource limits (0 means use default)

	// MaxRefDepth is the maximum depth for resolving nested $ref pointers.
	// Default: DefaultMaxRefDepth
	MaxRefDepth int
	// MaxFileSize is the maximum source document size in bytes.
	// Default: DefaultMaxFileSize
	MaxFileSize int64
}

// New creates a new Parser instance with default settings.
func New() *Parser {
	return &Parser{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

func (p *Parser) maxRefDepth() int {
	if p.MaxRefDepth > 0 {
		return p.MaxRefDepth
	}
	return DefaultMaxRefDepth
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

// SourceFormat represents the format of the source OpenAPI specification.
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = ""
)

// ParseResult contains the extracted OpenAPI specification and metadata.
//
// Callers should treat the result as read-only after parsing: the Extraction
// is handed to the normalizer, which builds detached values from it.
type ParseResult struct {
	// SourcePath is the file path or URL the document was read from. When the
	// source was not a path, it is set to the reading method name with an
	// extension matching the detected format ("ParseBytes.yaml").
	SourcePath string
	// SourceFormat is the detected (or forced) format of the source
	SourceFormat SourceFormat
	// Version is the declared OpenAPI version string (e.g. "3.0.3", "3.1.0")
	Version string
	// Extraction is the parser-local model consumed by the normalizer,
	// fully reference-resolved
	Extraction *Extraction
	// Warnings contains non-fatal issues such as non-standard status codes
	Warnings []string
	// LoadTime is the time taken to load the source data (file, URL, etc.)
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
}

// Parse parses an OpenAPI specification from a file path or URL.
// For URLs (http:// or https://), the content is fetched and parsed.
// For local paths, the file is read and parsed.
func (p *Parser) Parse(location string) (*ParseResult, error) {
	if isURL(location) {
		return p.ParseURL(location)
	}
	return p.ParseFile(location)
}

// ParseFile parses an OpenAPI specification from a local file.
func (p *Parser) ParseFile(path string) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := os.ReadFile(path)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, &adaptererrors.SpecFetchError{
			Location: path,
			Message:  "failed to read file",
			Cause:    err,
		}
	}
	if limit := p.maxFileSize(); int64(len(data)) > limit {
		return nil, &adaptererrors.SpecFetchError{
			Location: path,
			Message:  fmt.Sprintf("document exceeds maximum size of %d bytes", limit),
		}
	}

	format := p.Format
	if format == SourceFormatUnknown {
		format = detectFormatFromPath(path)
	}

	res, err := p.parseBytes(data, format)
	if err != nil {
		return nil, err
	}
	res.SourcePath = path
	res.LoadTime = loadTime
	return res, nil
}

// ParseURL fetches and parses an OpenAPI specification from an HTTP(S) URL.
// The fetch honors the configured client, timeout, and size limit; it is a
// single attempt with no retries.
func (p *Parser) ParseURL(url string) (*ParseResult, error) {
	loadStart := time.Now()
	data, contentType, err := p.fetchURL(url)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, err
	}

	format := p.Format
	if format == SourceFormatUnknown {
		format = detectFormatFromURL(url, contentType)
	}

	res, err := p.parseBytes(data, format)
	if err != nil {
		return nil, err
	}
	res.SourcePath = url
	res.LoadTime = loadTime
	return res, nil
}

// ParseBytes parses an OpenAPI specification from a byte slice.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res, err := p.parseBytes(data, p.Format)
	if err != nil {
		return nil, err
	}
	res.SourcePath = "ParseBytes." + string(res.SourceFormat)
	return res, nil
}

// ParseReader parses an OpenAPI specification from an io.Reader.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(io.LimitReader(r, p.maxFileSize()+1))
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, &adaptererrors.SpecFetchError{
			Location: "ParseReader",
			Message:  "failed to read data",
			Cause:    err,
		}
	}
	if int64(len(data)) > p.maxFileSize() {
		return nil, &adaptererrors.SpecFetchError{
			Location: "ParseReader",
			Message:  fmt.Sprintf("document exceeds maximum size of %d bytes", p.maxFileSize()),
		}
	}
	res, err := p.parseBytes(data, p.Format)
	if err != nil {
		return nil, err
	}
	res.SourcePath = "ParseReader." + string(res.SourceFormat)
	res.LoadTime = loadTime
	return res, nil
}

// FormatBytes formats a byte count into a human-readable string using binary
// units (KiB, MiB, etc.).
func FormatBytes(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// parseBytes runs the format/version detection, decode, resolve, and extract
// stages over raw document bytes.
func (p *Parser) parseBytes(data []byte, format SourceFormat) (*ParseResult, error) {
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}
	p.log().Debug("parsing document", "format", string(format), "size", len(data))

	root, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}

	version, err := detectVersion(root)
	if err != nil {
		return nil, err
	}
	p.log().Debug("detected OpenAPI version", "version", version)

	r := newResolver(root, p.maxRefDepth(), p.log())
	if err := r.resolveDocument(); err != nil {
		return nil, err
	}

	ext, warnings, err := extractDocument(root, format)
	if err != nil {
		return nil, err
	}
	p.log().Info("parsed specification",
		"title", ext.Title,
		"operations", len(ext.Operations),
		"warnings", len(warnings))

	return &ParseResult{
		SourceFormat: format,
		Version:      version,
		Extraction:   ext,
		Warnings:     warnings,
		SourceSize:   int64(len(data)),
	}, nil
}
