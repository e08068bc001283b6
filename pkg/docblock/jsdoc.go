package docblock

import (
	"regexp"
	"strings"
)

var (
	paramTag   = regexp.MustCompile(`^@param\s+(?:\{([^}]*)\}\s*)?(\[[^\]]*\]|[^\s]+)\s*(?:-\s*)?(.*)$`)
	returnsTag = regexp.MustCompile(`^@returns?\b\s*(?:\{([^}]*)\}\s*)?(?:-\s*)?(.*)$`)
)

// JSDoc is the part of a method docblock that documents its signature.
type JSDoc struct {
	Description string
	Params      []JSDocParam
	Returns     *JSDocReturns
}

// JSDocParam is one `@param {type} name description` tag. Optional is set
// for bracketed names (`[name]` or `[name=default]`).
type JSDocParam struct {
	Name        string
	Type        string
	Optional    bool
	Description string
}

// JSDocReturns is the `@returns {type} description` tag.
type JSDocReturns struct {
	Type        string
	Description string
}

// Param returns the tag documenting the named parameter.
func (d JSDoc) Param(name string) (JSDocParam, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return JSDocParam{}, false
}

// ParseJSDoc reads the free text before the first tag and the @param and
// @returns tags of a cleaned docblock. A tag's description continues on
// following lines until the next tag.
func ParseJSDoc(text string) JSDoc {
	var (
		doc  JSDoc
		cont *string
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "@") {
			if cont != nil && trimmed != "" {
				*cont = strings.TrimSpace(*cont + " " + trimmed)
			}
			continue
		}
		cont = nil
		if m := paramTag.FindStringSubmatch(trimmed); m != nil {
			p := JSDocParam{Type: strings.TrimSpace(m[1]), Name: m[2], Description: m[3]}
			if strings.HasPrefix(p.Name, "[") {
				p.Optional = true
				p.Name = strings.TrimSuffix(strings.TrimPrefix(p.Name, "["), "]")
				if i := strings.IndexByte(p.Name, '='); i >= 0 {
					p.Name = p.Name[:i]
				}
				p.Name = strings.TrimSpace(p.Name)
			}
			doc.Params = append(doc.Params, p)
			cont = &doc.Params[len(doc.Params)-1].Description
			continue
		}
		if m := returnsTag.FindStringSubmatch(trimmed); m != nil {
			doc.Returns = &JSDocReturns{Type: strings.TrimSpace(m[1]), Description: m[2]}
			cont = &doc.Returns.Description
		}
	}
	doc.Description = Strip(text)
	return doc
}
