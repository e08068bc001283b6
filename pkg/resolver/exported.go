package resolver

import (
	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/classify"
	"github.com/gnana997/docgen/pkg/resolve"
)

// FindExported returns the single component the module exports, looking at
// export declarations and CommonJS `module.exports`/`exports.x`
// assignments. Exported values are unwrapped from higher-order component
// calls before being classified. It returns ErrMultipleDefinitions when two
// distinct components are exported, and an empty result when none is.
func FindExported(file *ast.File, imp resolve.Importer) ([]*ast.Node, error) {
	var found definitions
	var err error
	walkExports(file, imp, func(def *ast.Node) bool {
		if found.has(def) {
			return true
		}
		if len(found.nodes) > 0 {
			err = ErrMultipleDefinitions
			return false
		}
		found.add(def)
		return true
	})
	if err != nil {
		return nil, err
	}
	return found.nodes, nil
}

// FindAllExported returns every exported component, without the
// single-export restriction of FindExported.
func FindAllExported(file *ast.File, imp resolve.Importer) ([]*ast.Node, error) {
	var found definitions
	walkExports(file, imp, func(def *ast.Node) bool {
		found.add(def)
		return true
	})
	return found.nodes, nil
}

// walkExports calls yield with each exported component definition in
// source order until yield returns false.
func walkExports(file *ast.File, imp resolve.Importer, yield func(*ast.Node) bool) {
	if file == nil || file.Root == nil {
		return
	}
	stop := false
	emit := func(values []*ast.Node) {
		for _, v := range values {
			if stop {
				return
			}
			if def := exportedDefinition(v, imp); def != nil && !yield(def) {
				stop = true
			}
		}
	}
	ast.Walk(file.Root, func(n *ast.Node) bool {
		if stop || skipped(n) {
			return false
		}
		switch n.Kind {
		case "export_statement":
			emit(resolve.ExportedValues(n, imp))
			return false
		case "assignment_expression":
			if resolve.IsExportsAssignment(n) {
				emit([]*ast.Node{resolve.ToValue(n.ChildByField("right"), imp)})
			}
		}
		return true
	})
}

func exportedDefinition(v *ast.Node, imp resolve.Importer) *ast.Node {
	if v == nil {
		return nil
	}
	if !classify.IsComponentDefinition(v) {
		v = classify.UnwrapHOC(v, imp)
		if !classify.IsComponentDefinition(v) {
			return nil
		}
	}
	return definitionOf(v, imp)
}
