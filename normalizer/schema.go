package normalizer

import (
	"fmt"
	"slices"

	"github.com/gacabartosz/mcp-universal-adapter/adaptererrors"
	"github.com/gacabartosz/mcp-universal-adapter/apispec"
	"github.com/gacabartosz/mcp-universal-adapter/internal/report"
	"github.com/gacabartosz/mcp-universal-adapter/parser"
	"github.com/gacabartosz/mcp-universal-adapter/typemap"
)

// typeContext carries where a type decision happens, for error reporting.
type typeContext struct {
	endpoint  string
	parameter string
	docPath   string
}

func (tc typeContext) child(segment string) typeContext {
	tc.docPath += "." + segment
	return tc
}

func (n *normalizer) typeError(tc typeContext, msg string, cause error) error {
	return &adaptererrors.NormalizationError{
		Path:      tc.docPath,
		Endpoint:  tc.endpoint,
		Parameter: tc.parameter,
		Message:   msg,
		Cause:     cause,
	}
}

// inferType returns the declared type, inferring object from properties and
// array from items when the declaration is absent.
func inferType(s *parser.RawSchema) string {
	if s.Type != "" {
		return s.Type
	}
	if len(s.Properties) > 0 {
		return "object"
	}
	if s.Items != nil {
		return "array"
	}
	return ""
}

// resolveInputType resolves a schema that feeds tool inputs. Absent and
// unrecognized types reject: a wrong input type produces a server that
// systematically refuses valid calls.
func (n *normalizer) resolveInputType(s *parser.RawSchema, tc typeContext) (typemap.Mapping, error) {
	if s == nil {
		return typemap.Any, n.typeError(tc, "schema is missing", nil)
	}

	typ := inferType(s)
	if typ == "" {
		return typemap.Any, n.typeError(tc, "schema has no type", nil)
	}
	m := typemap.Map(typ, s.Format)
	if !m.Known() {
		return typemap.Any, n.typeError(tc, fmt.Sprintf("unrecognized schema type %q", typ), nil)
	}

	if m.Kind == typemap.KindArray {
		if s.Items == nil {
			n.report(report.Issue{
				Check:    "types",
				Path:     tc.docPath,
				Endpoint: tc.endpoint,
				Severity: report.SeverityWarning,
				Message:  "array schema has no items, element type left open",
				Line:     s.Line,
			})
			return m, nil
		}
		elem, err := n.resolveInputType(s.Items, tc.child("items"))
		if err != nil {
			return typemap.Any, err
		}
		return typemap.ArrayOf(elem), nil
	}
	return m, nil
}

// resolveLenientType resolves a response-only schema. Absent and unrecognized
// types degrade to the visible any sentinel with a warning; they document
// behavior for the model rather than constrain the server.
func (n *normalizer) resolveLenientType(s *parser.RawSchema, tc typeContext) typemap.Mapping {
	if s == nil {
		return typemap.Any
	}

	typ := inferType(s)
	m := typemap.Map(typ, s.Format)
	if !m.Known() {
		msg := "schema has no type, using any"
		if typ != "" {
			msg = fmt.Sprintf("schema type %q not recognized, using any", typ)
		}
		n.report(report.Issue{
			Check:    "types",
			Path:     tc.docPath,
			Endpoint: tc.endpoint,
			Severity: report.SeverityWarning,
			Message:  msg,
			Line:     s.Line,
		})
		return typemap.Any
	}

	if m.Kind == typemap.KindArray && s.Items != nil {
		return typemap.ArrayOf(n.resolveLenientType(s.Items, tc.child("items")))
	}
	return m
}

// schemaModelStrict builds a schema model with input resolution rules.
func (n *normalizer) schemaModelStrict(s *parser.RawSchema, name string, tc typeContext) (*apispec.SchemaModel, error) {
	m, err := n.resolveInputType(s, tc)
	if err != nil {
		return nil, err
	}

	model := &apispec.SchemaModel{
		Name:        name,
		Type:        m,
		Description: s.Description,
	}

	for _, prop := range s.Properties {
		propTC := tc.child("properties." + prop.Name)
		propTC.parameter = prop.Name
		pm, propErr := n.resolveInputType(prop.Schema, propTC)
		if propErr != nil {
			return nil, propErr
		}
		p, propErr := n.buildProperty(prop, pm, s.RequiredProps, propTC, true)
		if propErr != nil {
			return nil, propErr
		}
		model.Properties = append(model.Properties, p)
	}

	if s.Items != nil {
		items, itemsErr := n.schemaModelStrict(s.Items, "", tc.child("items"))
		if itemsErr != nil {
			return nil, itemsErr
		}
		model.Items = items
	}
	return model, nil
}

// schemaModelLenient builds a schema model with response resolution rules.
// It never fails; problems surface as warnings and the any sentinel.
func (n *normalizer) schemaModelLenient(s *parser.RawSchema, name string, tc typeContext) *apispec.SchemaModel {
	model := &apispec.SchemaModel{
		Name:        name,
		Type:        n.resolveLenientType(s, tc),
		Description: s.Description,
	}

	for _, prop := range s.Properties {
		propTC := tc.child("properties." + prop.Name)
		pm := n.resolveLenientType(prop.Schema, propTC)
		p, err := n.buildProperty(prop, pm, s.RequiredProps, propTC, false)
		if err != nil {
			// Lenient building drops the unrenderable detail, not the property
			p = apispec.Property{Name: prop.Name, Type: pm}
			n.report(report.Issue{
				Check:    "types",
				Path:     propTC.docPath,
				Endpoint: tc.endpoint,
				Severity: report.SeverityWarning,
				Message:  err.Error(),
			})
		}
		model.Properties = append(model.Properties, p)
	}

	if s.Items != nil {
		model.Items = n.schemaModelLenient(s.Items, "", tc.child("items"))
	}
	return model
}

// buildProperty assembles one schema model property. strict controls whether
// default and enum rendering failures abort.
func (n *normalizer) buildProperty(prop parser.RawProperty, m typemap.Mapping, required []string, tc typeContext, strict bool) (apispec.Property, error) {
	p := apispec.Property{
		Name:     prop.Name,
		Type:     m,
		Required: slices.Contains(required, prop.Name),
	}
	if prop.Schema == nil {
		return p, nil
	}
	p.Description = prop.Schema.Description

	if prop.Schema.HasDefault {
		value, literal, err := coerceDefault(prop.Schema.Default, m)
		if err != nil {
			if strict {
				return apispec.Property{}, n.typeError(tc, fmt.Sprintf("default value %v does not fit type %s", prop.Schema.Default, m), err)
			}
			return apispec.Property{}, fmt.Errorf("default value %v does not fit type %s", prop.Schema.Default, m)
		}
		p.Default = value
		p.DefaultLiteral = literal
	}

	enum, err := stringifyEnum(prop.Schema.Enum)
	if err != nil {
		if strict {
			return apispec.Property{}, n.typeError(tc, "enum values cannot be rendered", err)
		}
		return apispec.Property{}, fmt.Errorf("enum values cannot be rendered: %w", err)
	}
	p.Enum = enum

	return p, nil
}
