package classify

import (
	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/resolve"
)

// maxHOCDepth caps how many wrapper calls UnwrapHOC peels off.
const maxHOCDepth = 32

// UnwrapHOC peels higher-order component calls such as
// `connect(mapState)(withRouter(Foo))` down to the wrapped value. A call's
// component argument is its first argument, unless the call has several
// arguments and the first is a literal, object, array or spread, in which
// case it is the last one. Factory and forwardRef calls are definitions in
// their own right and are never unwrapped.
func UnwrapHOC(n *ast.Node, imp resolve.Importer) *ast.Node {
	for i := 0; i < maxHOCDepth; i++ {
		call := ast.Unwrap(n)
		if !call.Is("call_expression") || IsCreateClassCall(call) || IsForwardRefCall(call) {
			return n
		}
		args := Arguments(call)
		if len(args) == 0 {
			return n
		}
		inner := args[0]
		if len(args) > 1 && ast.Unwrap(inner).Is("string", "number", "true", "false", "null",
			"template_string", "regex", "object", "array", "spread_element") {
			inner = args[len(args)-1]
		}
		n = resolve.ToValue(inner, imp)
	}
	return n
}
