package normalizer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gacabartosz/mcp-universal-adapter/adaptererrors"
	"github.com/gacabartosz/mcp-universal-adapter/apispec"
	"github.com/gacabartosz/mcp-universal-adapter/internal/naming"
	"github.com/gacabartosz/mcp-universal-adapter/internal/report"
	"github.com/gacabartosz/mcp-universal-adapter/parser"
	"github.com/gacabartosz/mcp-universal-adapter/typemap"
)

// Result contains the normalized specification and the non-fatal issues
// surfaced while building it.
type Result struct {
	// Spec is the normalized API specification, detached from parser state
	Spec *apispec.NormalizedAPISpec
	// Issues lists warnings and notices (renamed endpoints, degraded
	// response schemas, unrecognized security schemes)
	Issues []report.Issue
}

// Normalize builds the intermediate representation from a parser extraction.
// The first violation aborts the run with a NormalizationError; non-fatal
// findings are collected in the result's Issues.
func Normalize(ext *parser.Extraction, opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("normalizer: invalid options: %w", err)
	}
	if ext == nil {
		return nil, &adaptererrors.NormalizationError{Message: "nothing to normalize (nil extraction)"}
	}

	n := &normalizer{cfg: cfg, ext: ext}
	spec, err := n.run()
	if err != nil {
		return nil, err
	}
	return &Result{Spec: spec, Issues: n.issues}, nil
}

type normalizer struct {
	cfg    *config
	ext    *parser.Extraction
	auths  []declaredAuth
	issues []report.Issue
}

// declaredAuth is one security scheme in declaration order, keyed for
// requirement lookups.
type declaredAuth struct {
	key  string
	auth apispec.AuthConfig
}

func (n *normalizer) report(issue report.Issue) {
	n.issues = append(n.issues, issue)
	switch issue.Severity {
	case report.SeverityWarning:
		n.cfg.logger.Warn(issue.Message, "path", issue.Path, "endpoint", issue.Endpoint)
	case report.SeverityInfo:
		n.cfg.logger.Debug(issue.Message, "path", issue.Path, "endpoint", issue.Endpoint)
	}
}

func (n *normalizer) run() (*apispec.NormalizedAPISpec, error) {
	spec := &apispec.NormalizedAPISpec{
		Name:         n.ext.Title,
		Version:      n.ext.Version,
		Description:  n.ext.Description,
		Servers:      append([]string(nil), n.ext.Servers...),
		SourceFormat: string(n.ext.Format),
	}
	if len(spec.Servers) > 0 {
		spec.BaseURL = spec.Servers[0]
	}

	n.declareAuths()
	spec.Auth = n.resolveRequirement(n.ext.GlobalSecurity, "security")

	names := newNameTable()
	for i := range n.ext.Operations {
		ep, err := n.buildEndpoint(&n.ext.Operations[i], names, spec.Auth)
		if err != nil {
			return nil, err
		}
		spec.Endpoints = append(spec.Endpoints, ep)
	}

	for _, raw := range n.ext.Schemas {
		tc := typeContext{docPath: "components.schemas." + raw.Name}
		spec.Schemas = append(spec.Schemas, n.schemaModelLenient(raw, raw.Name, tc))
	}

	_, warnings, _, _ := report.Count(n.issues)
	n.cfg.logger.Info("normalized specification",
		"name", spec.Name,
		"endpoints", len(spec.Endpoints),
		"warnings", warnings)
	return spec, nil
}

// buildEndpoint assembles one endpoint: claimed name, typed parameters,
// flattened body, responses, and effective auth.
func (n *normalizer) buildEndpoint(op *parser.Operation, names *nameTable, global *apispec.AuthConfig) (apispec.Endpoint, error) {
	docPath := "paths." + op.Path + "." + strings.ToLower(op.Method)

	name, renamed := names.claim(baseEndpointName(op), op.Method)
	if renamed {
		n.report(report.Issue{
			Check:    "naming",
			Path:     docPath,
			Endpoint: name,
			Severity: report.SeverityInfo,
			Message:  fmt.Sprintf("endpoint name collision, renamed to %q", name),
			Line:     op.Line,
		})
	}

	ep := apispec.Endpoint{
		Name:        name,
		OperationID: op.OperationID,
		Method:      apispec.Method(op.Method),
		Path:        op.Path,
		Summary:     op.Summary,
		Description: op.Description,
		Tags:        append([]string(nil), op.Tags...),
		Deprecated:  op.Deprecated,
	}

	for i := range op.Parameters {
		tc := typeContext{
			endpoint:  name,
			parameter: op.Parameters[i].Name,
			docPath:   fmt.Sprintf("%s.parameters.%d", docPath, i),
		}
		p, err := n.buildParameter(&op.Parameters[i], tc)
		if err != nil {
			return apispec.Endpoint{}, err
		}
		ep.Parameters = append(ep.Parameters, p)
	}

	if op.Body != nil {
		rb, bodyParams, err := n.buildBody(op.Body, typeContext{endpoint: name, docPath: docPath + ".requestBody"})
		if err != nil {
			return apispec.Endpoint{}, err
		}
		ep.RequestBody = rb
		ep.Parameters = append(ep.Parameters, bodyParams...)
	}

	for _, raw := range op.Responses {
		resp, err := n.buildResponse(raw, typeContext{endpoint: name, docPath: docPath + ".responses." + raw.Status})
		if err != nil {
			return apispec.Endpoint{}, err
		}
		ep.Responses = append(ep.Responses, resp)
	}

	if op.Security != nil {
		ep.Auth = n.resolveRequirement(op.Security, docPath+".security")
	} else {
		ep.Auth = cloneAuth(global)
	}

	n.cfg.logger.Debug("normalized endpoint",
		"name", name, "method", op.Method, "path", op.Path,
		"parameters", len(ep.Parameters))
	return ep, nil
}

// buildParameter resolves one declared parameter. Input parameters are
// strict: an unresolvable type fails the run.
func (n *normalizer) buildParameter(raw *parser.RawParameter, tc typeContext) (apispec.Parameter, error) {
	p := apispec.Parameter{
		Name:        naming.Identifier(raw.Name),
		WireName:    raw.Name,
		Location:    n.paramLocation(raw.In, tc),
		Required:    raw.Required,
		Description: raw.Description,
	}
	if p.Name == "" {
		return apispec.Parameter{}, &adaptererrors.NormalizationError{
			Path:      tc.docPath,
			Endpoint:  tc.endpoint,
			Parameter: raw.Name,
			Message:   fmt.Sprintf("parameter name %q has no usable identifier characters", raw.Name),
		}
	}

	m, err := n.resolveInputType(raw.Schema, tc)
	if err != nil {
		return apispec.Parameter{}, err
	}
	p.Type = m

	if raw.Schema != nil {
		if p.Description == "" {
			p.Description = raw.Schema.Description
		}
		if raw.Schema.HasDefault {
			value, literal, coerceErr := coerceDefault(raw.Schema.Default, m)
			if coerceErr != nil {
				return apispec.Parameter{}, n.typeError(tc, fmt.Sprintf("default value %v does not fit type %s", raw.Schema.Default, m), coerceErr)
			}
			p.Default = value
			p.DefaultLiteral = literal
		}
		enum, enumErr := stringifyEnum(raw.Schema.Enum)
		if enumErr != nil {
			return apispec.Parameter{}, n.typeError(tc, "enum values cannot be rendered", enumErr)
		}
		p.Enum = enum
	}

	return p, nil
}

// paramLocation maps a declared "in" value, defaulting unknown locations to
// query with a warning.
func (n *normalizer) paramLocation(in string, tc typeContext) apispec.Location {
	switch in {
	case "path":
		return apispec.LocationPath
	case "query":
		return apispec.LocationQuery
	case "header":
		return apispec.LocationHeader
	case "cookie":
		return apispec.LocationCookie
	}
	n.report(report.Issue{
		Check:    "types",
		Path:     tc.docPath,
		Endpoint: tc.endpoint,
		Severity: report.SeverityWarning,
		Message:  fmt.Sprintf("parameter location %q not recognized, treating as query", in),
	})
	return apispec.LocationQuery
}

// buildBody resolves a request body and flattens it into body-location
// parameters. An object body contributes one parameter per first-level
// property; any other body becomes a single opaque "body" parameter.
func (n *normalizer) buildBody(raw *parser.RawBody, tc typeContext) (*apispec.RequestBody, []apispec.Parameter, error) {
	rb := &apispec.RequestBody{
		Required:    raw.Required,
		ContentType: raw.ContentType,
	}
	if raw.Schema == nil {
		return rb, nil, nil
	}

	model, err := n.schemaModelStrict(raw.Schema, "", tc)
	if err != nil {
		return nil, nil, err
	}
	rb.Schema = model

	if model.Type.Kind == typemap.KindObject && len(raw.Schema.Properties) > 0 {
		params := make([]apispec.Parameter, 0, len(raw.Schema.Properties))
		for _, prop := range raw.Schema.Properties {
			propTC := typeContext{
				endpoint:  tc.endpoint,
				parameter: prop.Name,
				docPath:   tc.docPath + ".properties." + prop.Name,
			}
			p, propErr := n.bodyProperty(prop, raw.Schema.RequiredProps, propTC)
			if propErr != nil {
				return nil, nil, propErr
			}
			params = append(params, p)
		}
		return rb, params, nil
	}

	// Non-object bodies stay one opaque parameter
	return rb, []apispec.Parameter{{
		Name:        "body",
		WireName:    "body",
		Location:    apispec.LocationBody,
		Type:        model.Type,
		Required:    raw.Required,
		Description: raw.Schema.Description,
	}}, nil
}

// bodyProperty turns one first-level body property into a body-location
// parameter.
func (n *normalizer) bodyProperty(prop parser.RawProperty, required []string, tc typeContext) (apispec.Parameter, error) {
	p := apispec.Parameter{
		Name:     naming.Identifier(prop.Name),
		WireName: prop.Name,
		Location: apispec.LocationBody,
		Required: slices.Contains(required, prop.Name),
	}
	if p.Name == "" {
		return apispec.Parameter{}, &adaptererrors.NormalizationError{
			Path:      tc.docPath,
			Endpoint:  tc.endpoint,
			Parameter: prop.Name,
			Message:   fmt.Sprintf("body property %q has no usable identifier characters", prop.Name),
		}
	}

	m, err := n.resolveInputType(prop.Schema, tc)
	if err != nil {
		return apispec.Parameter{}, err
	}
	p.Type = m
	p.Description = prop.Schema.Description

	if prop.Schema.HasDefault {
		value, literal, coerceErr := coerceDefault(prop.Schema.Default, m)
		if coerceErr != nil {
			return apispec.Parameter{}, n.typeError(tc, fmt.Sprintf("default value %v does not fit type %s", prop.Schema.Default, m), coerceErr)
		}
		p.Default = value
		p.DefaultLiteral = literal
	}
	enum, enumErr := stringifyEnum(prop.Schema.Enum)
	if enumErr != nil {
		return apispec.Parameter{}, n.typeError(tc, "enum values cannot be rendered", enumErr)
	}
	p.Enum = enum

	return p, nil
}

// buildResponse resolves one declared response. Response schemas degrade to
// the any sentinel unless sentinel substitution is disabled.
func (n *normalizer) buildResponse(raw parser.RawResponse, tc typeContext) (apispec.Response, error) {
	resp := apispec.Response{
		Status:      raw.Status,
		Description: raw.Description,
	}
	if raw.Schema == nil {
		return resp, nil
	}

	if n.cfg.anySentinelResponses {
		resp.Schema = n.schemaModelLenient(raw.Schema, "", tc)
		return resp, nil
	}

	model, err := n.schemaModelStrict(raw.Schema, "", tc)
	if err != nil {
		return apispec.Response{}, err
	}
	resp.Schema = model
	return resp, nil
}
