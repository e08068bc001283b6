// Package docblock reads JSDoc-style block comments attached to syntax nodes.
package docblock

import (
	"regexp"
	"strings"

	"github.com/gnana997/docgen/pkg/ast"
)

var (
	linePrefix = regexp.MustCompile(`(?m)^[ \t]*\*[ \t]?`)
	docletLine = regexp.MustCompile(`^@(\w+)(?:\s(.*))?$`)
)

// Get returns the text of the closest docblock preceding n, or "" and false
// if there is none. With trailing set, comments directly after n are used
// instead.
//
// Only block comments opened with "/**" followed by whitespace count. When
// several docblocks precede a node the last one wins; for trailing comments
// the first one wins.
func Get(n *ast.Node, trailing bool) (string, bool) {
	if trailing {
		for _, c := range following(n) {
			if text := c.Text(); isDocblock(text) {
				return Clean(text), true
			}
		}
		return "", false
	}
	comments := preceding(n)
	for i := len(comments) - 1; i >= 0; i-- {
		text := comments[i].Text()
		if isDocblock(text) {
			return Clean(text), true
		}
	}
	return "", false
}

// preceding returns the run of comments immediately before n, in source order.
func preceding(n *ast.Node) []*ast.Node {
	if n == nil || n.Synthetic() {
		return nil
	}
	n = n.Origin()
	var out []*ast.Node
	for prev := n.PrevSibling(); prev != nil && prev.Kind == "comment"; prev = prev.PrevSibling() {
		out = append([]*ast.Node{prev}, out...)
	}
	return out
}

// following returns comments after n, skipping a single separator token such
// as "," or ";", up to the next named node.
func following(n *ast.Node) []*ast.Node {
	if n == nil || n.Synthetic() {
		return nil
	}
	n = n.Origin()
	idx := n.Index()
	if idx < 0 {
		return nil
	}
	var out []*ast.Node
	siblings := n.Parent.Children
	for i := idx + 1; i < len(siblings); i++ {
		s := siblings[i]
		switch {
		case s.Kind == "comment":
			out = append(out, s)
		case !s.Named && (s.Kind == "," || s.Kind == ";"):
			if len(out) > 0 {
				return out
			}
		default:
			return out
		}
	}
	return out
}

func isDocblock(text string) bool {
	if !strings.HasPrefix(text, "/**") || !strings.HasSuffix(text, "*/") || len(text) < 5 {
		return false
	}
	c := text[3]
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Clean strips the comment delimiters and the leading "*" of every line.
func Clean(comment string) string {
	body := strings.TrimSuffix(strings.TrimPrefix(comment, "/*"), "*/")
	return strings.TrimSpace(linePrefix.ReplaceAllString(body, ""))
}

// Doclets maps tag names found in a docblock to their values. Tags without
// a value ("@abc") map to "".
type Doclets map[string]string

// Has reports whether the tag was present.
func (d Doclets) Has(tag string) bool {
	_, ok := d[tag]
	return ok
}

// ParseDoclets extracts "@tag value" pairs. A value runs from the tag to the
// next line that starts with a tag; later occurrences of a tag replace earlier
// ones.
func ParseDoclets(text string) Doclets {
	doclets := Doclets{}
	var (
		tag   string
		value []string
	)
	flush := func() {
		if tag != "" {
			doclets[tag] = strings.Join(value, "\n")
		}
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if m := docletLine.FindStringSubmatch(line); m != nil {
			flush()
			tag = m[1]
			value = value[:0]
			if m[2] == "" {
				// a bare tag is a flag; following lines are not its value
				doclets[tag] = ""
				tag = ""
				continue
			}
			value = append(value, m[2])
			continue
		}
		if strings.HasPrefix(line, "@") {
			// "@-foo" and similar are not tags and end the current value.
			flush()
			tag = ""
			continue
		}
		if tag != "" {
			value = append(value, line)
		}
	}
	flush()
	return doclets
}

// Strip returns the free text of a docblock, dropping the first tag line
// and everything after it.
func Strip(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "@") {
			break
		}
		kept = append(kept, strings.TrimRight(line, "\r"))
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// Comments returns the raw text of every comment directly preceding n, of
// any style, in source order.
func Comments(n *ast.Node) []string {
	var out []string
	for _, c := range preceding(n) {
		out = append(out, c.Text())
	}
	return out
}
