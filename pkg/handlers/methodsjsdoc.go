package handlers

import (
	"strings"

	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/docblock"
	"github.com/gnana997/docgen/pkg/record"
	"github.com/gnana997/docgen/pkg/resolve"
	"github.com/gnana997/docgen/pkg/typedesc"
)

// ComponentMethodsJSDoc merges the @param and @returns tags of each
// method's docblock into its description. Types from TypeScript
// annotations take precedence over JSDoc types.
func ComponentMethodsJSDoc(doc *record.Documentation, _ *ast.Node, _ resolve.Importer) {
	methods := doc.Methods()
	if methods == nil {
		return
	}
	out := make([]record.MethodDescriptor, len(methods))
	for i, m := range methods {
		out[i] = m
		if m.Docblock == "" {
			continue
		}
		js := docblock.ParseJSDoc(m.Docblock)
		out[i].Description = js.Description

		params := make([]record.MethodParam, len(m.Params))
		copy(params, m.Params)
		for j := range params {
			tag, ok := js.Param(strings.TrimPrefix(params[j].Name, "..."))
			if !ok {
				continue
			}
			if params[j].Type == nil {
				params[j].Type = jsDocType(tag.Type)
			}
			if params[j].Description == "" {
				params[j].Description = tag.Description
			}
			params[j].Optional = params[j].Optional || tag.Optional
		}
		out[i].Params = params

		if js.Returns != nil {
			r := &record.MethodReturns{Type: jsDocType(js.Returns.Type), Description: js.Returns.Description}
			if m.Returns != nil && m.Returns.Type != nil {
				r.Type = m.Returns.Type
			}
			out[i].Returns = r
		}
	}
	doc.Set(record.FieldMethods, out)
}

// jsDocType describes a JSDoc type expression such as `string` or
// `string|number`.
func jsDocType(expr string) *typedesc.Descriptor {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil
	}
	if !strings.Contains(expr, "|") {
		return typedesc.Named(expr)
	}
	d := &typedesc.Descriptor{Name: typedesc.NameUnion, Raw: expr}
	for _, part := range strings.Split(expr, "|") {
		if part = strings.TrimSpace(part); part != "" {
			d.Elements = append(d.Elements, typedesc.Named(part))
		}
	}
	return d
}
