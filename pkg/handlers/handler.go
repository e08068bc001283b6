// Package handlers extracts documentation from a component definition.
//
// A Handler inspects one definition and fills in part of a
// record.Documentation: props from propTypes or TypeScript
// annotations, defaults, descriptions, the display name, methods. Handlers
// never fail; anything they cannot interpret is left out of the record.
package handlers

import (
	"fmt"
	"sort"

	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/classify"
	"github.com/gnana997/docgen/pkg/record"
	"github.com/gnana997/docgen/pkg/resolve"
)

// Handler fills in doc from the definition def. imp may be nil, in which
// case imported values stay unresolved.
type Handler func(doc *record.Documentation, def *ast.Node, imp resolve.Importer)

// Handler names, as accepted by ByName.
const (
	NamePropTypes             = "propTypes"
	NameContextTypes          = "contextTypes"
	NameChildContextTypes     = "childContextTypes"
	NamePropTypeComposition   = "propTypeComposition"
	NamePropDocBlock          = "propDocBlock"
	NameTSTypes               = "tsTypes"
	NameDefaultProps          = "defaultProps"
	NameComponentDocblock     = "componentDocblock"
	NameDisplayName           = "displayName"
	NameComponentMethods      = "componentMethods"
	NameComponentMethodsJSDoc = "componentMethodsJsDoc"
)

// defaultOrder is the order Default runs handlers in. Later handlers may
// refine what earlier ones recorded.
var defaultOrder = []string{
	NamePropTypes,
	NameContextTypes,
	NameChildContextTypes,
	NamePropTypeComposition,
	NamePropDocBlock,
	NameTSTypes,
	NameDefaultProps,
	NameComponentDocblock,
	NameDisplayName,
	NameComponentMethods,
	NameComponentMethodsJSDoc,
}

var builtins = map[string]Handler{
	NamePropTypes:             PropTypes,
	NameContextTypes:          ContextTypes,
	NameChildContextTypes:     ChildContextTypes,
	NamePropTypeComposition:   PropTypeComposition,
	NamePropDocBlock:          PropDocBlock,
	NameTSTypes:               TSTypes,
	NameDefaultProps:          DefaultProps,
	NameComponentDocblock:     ComponentDocblock,
	NameDisplayName:           DisplayName,
	NameComponentMethods:      ComponentMethods,
	NameComponentMethodsJSDoc: ComponentMethodsJSDoc,
}

// Default returns the standard handler list.
func Default() []Handler {
	out := make([]Handler, len(defaultOrder))
	for i, name := range defaultOrder {
		out[i] = builtins[name]
	}
	return out
}

// DefaultNames returns the names of the standard handlers in run order.
func DefaultNames() []string {
	return append([]string(nil), defaultOrder...)
}

// ByName returns the handler registered under name.
func ByName(name string) (Handler, error) {
	h, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown handler %q (available: %v)", name, Names())
	}
	return h, nil
}

// Names lists every registered handler name, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// functionOf returns the function that renders def: def itself for
// stateless components, the wrapped render function of a forwardRef call,
// or nil.
func functionOf(def *ast.Node) *ast.Node {
	n := ast.Unwrap(def)
	if classify.IsForwardRefCall(n) {
		n = classify.ForwardRefTarget(n)
	}
	if n == nil || !ast.IsFunction(n) || n.Kind == "method_definition" {
		return nil
	}
	return n
}
