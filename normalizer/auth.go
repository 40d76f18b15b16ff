package normalizer

import (
	"fmt"
	"strings"

	"github.com/gacabartosz/mcp-universal-adapter/apispec"
	"github.com/gacabartosz/mcp-universal-adapter/internal/report"
	"github.com/gacabartosz/mcp-universal-adapter/parser"
)

// declareAuths converts every declared security scheme to an AuthConfig,
// keeping declaration order for requirement lookups and the first-scheme
// fallback.
func (n *normalizer) declareAuths() {
	for i := range n.ext.SecuritySchemes {
		s := &n.ext.SecuritySchemes[i]
		n.auths = append(n.auths, declaredAuth{
			key:  s.Key,
			auth: n.authFromScheme(s),
		})
	}
}

// authFromScheme maps one declared security scheme. Schemes this pipeline
// cannot generate credential handling for become AuthCustom with a warning;
// they are kept rather than dropped so requirement lookups still resolve.
func (n *normalizer) authFromScheme(s *parser.SecurityScheme) apispec.AuthConfig {
	docPath := "components.securitySchemes." + s.Key

	switch s.Type {
	case "apiKey":
		return apispec.AuthConfig{
			Kind:        apispec.AuthAPIKey,
			Name:        s.Name,
			In:          n.apiKeyLocation(s.In, docPath),
			Description: s.Description,
		}

	case "http":
		switch strings.ToLower(s.Scheme) {
		case "bearer":
			return apispec.AuthConfig{
				Kind:        apispec.AuthBearer,
				Scheme:      "Bearer",
				Description: s.Description,
			}
		case "basic":
			return apispec.AuthConfig{
				Kind:        apispec.AuthBasic,
				Scheme:      "Basic",
				Description: s.Description,
			}
		}
		n.report(report.Issue{
			Check:    "auth",
			Path:     docPath,
			Severity: report.SeverityWarning,
			Message:  fmt.Sprintf("http scheme %q not supported, treating as custom", s.Scheme),
		})
		return apispec.AuthConfig{
			Kind:        apispec.AuthCustom,
			Scheme:      s.Scheme,
			Description: s.Description,
		}

	case "oauth2":
		return apispec.AuthConfig{
			Kind:             apispec.AuthOAuth2,
			Description:      s.Description,
			AuthorizationURL: s.AuthorizationURL,
			TokenURL:         s.TokenURL,
			Scopes:           append([]string(nil), s.Scopes...),
		}
	}

	n.report(report.Issue{
		Check:    "auth",
		Path:     docPath,
		Severity: report.SeverityWarning,
		Message:  fmt.Sprintf("security scheme type %q not supported, treating as custom", s.Type),
	})
	return apispec.AuthConfig{
		Kind:        apispec.AuthCustom,
		Name:        s.Name,
		Description: s.Description,
	}
}

// apiKeyLocation maps a declared apiKey "in" value, defaulting unknown
// locations to header with a warning.
func (n *normalizer) apiKeyLocation(in, docPath string) apispec.Location {
	switch in {
	case "header", "":
		return apispec.LocationHeader
	case "query":
		return apispec.LocationQuery
	case "cookie":
		return apispec.LocationCookie
	}
	n.report(report.Issue{
		Check:    "auth",
		Path:     docPath,
		Severity: report.SeverityWarning,
		Message:  fmt.Sprintf("api key location %q not recognized, using header", in),
	})
	return apispec.LocationHeader
}

// resolveRequirement maps a security requirement to the effective mechanism.
//
// A nil requirement means none was declared at this level: the first declared
// scheme applies when the document defines any. A non-nil requirement with no
// schemes means explicitly unauthenticated. Otherwise the first key that
// resolves to a declared scheme wins; keys referencing undeclared schemes are
// reported and skipped.
func (n *normalizer) resolveRequirement(req *parser.SecurityRequirement, docPath string) *apispec.AuthConfig {
	if req == nil {
		if len(n.auths) > 0 {
			return cloneAuth(&n.auths[0].auth)
		}
		return nil
	}

	for _, key := range req.SchemeKeys {
		if a := n.lookupAuth(key); a != nil {
			return cloneAuth(a)
		}
		n.report(report.Issue{
			Check:    "auth",
			Path:     docPath,
			Severity: report.SeverityWarning,
			Message:  fmt.Sprintf("security requirement references undeclared scheme %q", key),
		})
	}
	return nil
}

func (n *normalizer) lookupAuth(key string) *apispec.AuthConfig {
	for i := range n.auths {
		if n.auths[i].key == key {
			return &n.auths[i].auth
		}
	}
	return nil
}

// cloneAuth deep-copies an AuthConfig so every endpoint owns its value and
// the IR stays detached.
func cloneAuth(a *apispec.AuthConfig) *apispec.AuthConfig {
	if a == nil {
		return nil
	}
	out := *a
	out.Scopes = append([]string(nil), a.Scopes...)
	return &out
}
