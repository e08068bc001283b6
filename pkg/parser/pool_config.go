package parser

import (
	"github.com/gnana997/docgen/pkg/util"
)

// getDefaultPoolSize returns the per-grammar parser pool size.
//
// It MUST match the batch worker count (both come from
// util.GetOptimalPoolSize) so workers never block waiting for a parser.
// A run over a mixed JS/TS tree keeps up to three pools alive: JavaScript,
// TypeScript and TSX.
func getDefaultPoolSize() int {
	return util.GetOptimalPoolSize()
}
