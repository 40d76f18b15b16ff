package parser

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	mcpadapter "github.com/gacabartosz/mcp-universal-adapter"
	"github.com/gacabartosz/mcp-universal-adapter/adaptererrors"
)

// isURL determines if the given path is a URL (http:// or https://).
func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// fetchURL fetches content from a URL and returns the bytes and Content-Type
// header. It is a single attempt: remote specs are assumed static per run, so
// failures are never retried.
func (p *Parser) fetchURL(urlStr string) ([]byte, string, error) {
	client := p.HTTPClient
	if client == nil {
		timeout := p.HTTPTimeout
		if timeout <= 0 {
			timeout = DefaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequest(http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, "", &adaptererrors.SpecFetchError{
			Location: urlStr,
			Message:  "failed to create request",
			Cause:    err,
		}
	}

	userAgent := p.UserAgent
	if userAgent == "" {
		userAgent = mcpadapter.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, application/yaml, text/yaml, */*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", &adaptererrors.SpecFetchError{
			Location: urlStr,
			Message:  "failed to fetch URL",
			Cause:    err,
		}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &adaptererrors.SpecFetchError{
			Location:   urlStr,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	limit := p.maxFileSize()
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, "", &adaptererrors.SpecFetchError{
			Location: urlStr,
			Message:  "failed to read response body",
			Cause:    err,
		}
	}
	if int64(len(data)) > limit {
		return nil, "", &adaptererrors.SpecFetchError{
			Location: urlStr,
			Message:  fmt.Sprintf("document exceeds maximum size of %d bytes", limit),
		}
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// detectFormatFromPath detects the source format from a file path extension.
func detectFormatFromPath(path string) SourceFormat {
	switch filepath.Ext(path) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromURL attempts to detect the format from a URL path and
// Content-Type header.
func detectFormatFromURL(urlStr string, contentType string) SourceFormat {
	parsedURL, err := url.Parse(urlStr)
	if err == nil && parsedURL.Path != "" {
		if format := detectFormatFromPath(parsedURL.Path); format != SourceFormatUnknown {
			return format
		}
	}

	if contentType != "" {
		contentType = strings.ToLower(contentType)
		// Remove charset and other parameters
		if idx := strings.Index(contentType, ";"); idx != -1 {
			contentType = contentType[:idx]
		}
		contentType = strings.TrimSpace(contentType)

		switch contentType {
		case "application/json":
			return SourceFormatJSON
		case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
			return SourceFormatYAML
		}
	}

	return SourceFormatUnknown
}

// detectFormatFromContent detects the format from the content bytes. JSON
// documents start with '{' or '[' and must pass a validity probe; everything
// else is treated as YAML.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		if probeJSON(trimmed) {
			return SourceFormatJSON
		}
	}
	return SourceFormatYAML
}
