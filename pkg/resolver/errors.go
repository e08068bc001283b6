package resolver

import "errors"

// ErrMultipleDefinitions is returned by FindExported when a module exports
// more than one component.
var ErrMultipleDefinitions = errors.New("multiple exported component definitions found")
