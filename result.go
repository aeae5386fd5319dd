package smtparse

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
)

// ParseResult is the ordered sequence of elements a grammar production emits.
// Each element is one of: a raw token string, a nested *ParseResult, a []any
// (a parenthesized list of zero or more sub-results, each already run through
// whatever hook applies to it), or whatever value a client's parse-action
// hook returned for a sub-production. The zero value is an empty result ready
// to be appended to.
type ParseResult struct {
	elements []any
}

// NewParseResult returns a ParseResult containing the given elements in order.
func NewParseResult(elements ...any) *ParseResult {
	pr := &ParseResult{}
	pr.elements = append(pr.elements, elements...)
	return pr
}

// Len returns the number of elements in pr.
func (pr *ParseResult) Len() int {
	if pr == nil {
		return 0
	}
	return len(pr.elements)
}

// Get returns the element at i. It panics if i is out of range, exactly as
// indexing a slice would.
func (pr *ParseResult) Get(i int) any {
	return pr.elements[i]
}

// Set replaces the element at i. It panics if i is out of range.
func (pr *ParseResult) Set(i int, v any) {
	pr.elements[i] = v
}

// Append adds v as the new last element of pr and returns pr, so appends can
// be chained.
func (pr *ParseResult) Append(v any) *ParseResult {
	pr.elements = append(pr.elements, v)
	return pr
}

// Head returns the first element, or nil if pr is empty.
func (pr *ParseResult) Head() any {
	if pr.Len() == 0 {
		return nil
	}
	return pr.elements[0]
}

// Elements returns the underlying elements as a slice. The slice shares
// storage with pr; callers must not mutate it through means other than pr's
// own methods if pr will be used again.
func (pr *ParseResult) Elements() []any {
	return pr.elements
}

// StartsWithLParen returns whether the first element of pr is the literal "("
// token, the convention used throughout the grammar to mark a parenthesized
// form of a production that also has a bare form (identifier, sort,
// sort_expr, s_expr, attr_value, qual_ident).
func (pr *ParseResult) StartsWithLParen() bool {
	if pr.Len() == 0 {
		return false
	}
	s, ok := pr.elements[0].(string)
	return ok && s == tokLParen
}

// Equal reports whether o is a *ParseResult (or ParseResult) with the same
// elements in the same order. Elements are compared with equalElement, which
// recurses into nested ParseResults and slices.
func (pr *ParseResult) Equal(o any) bool {
	var other *ParseResult
	switch v := o.(type) {
	case *ParseResult:
		other = v
	case ParseResult:
		other = &v
	default:
		return false
	}
	if other == nil {
		return pr == nil
	}
	if pr == nil {
		return other.Len() == 0
	}
	if pr.Len() != other.Len() {
		return false
	}
	for i := range pr.elements {
		if !equalElement(pr.elements[i], other.elements[i]) {
			return false
		}
	}
	return true
}

func equalElement(a, b any) bool {
	switch av := a.(type) {
	case *ParseResult:
		return av.Equal(b)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalElement(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// String renders pr the way fmt would render its elements, recursing into
// nested results. It is meant for log lines and test failure messages, not
// for the pretty, indented form; see Dump for that.
func (pr *ParseResult) String() string {
	if pr.Len() == 1 {
		return fmt.Sprint(pr.elements[0])
	}
	return fmt.Sprint(pr.elements)
}

// MarshalJSON encodes pr as a JSON array of its elements, so nested results
// keep the nesting of the parse tree.
func (pr *ParseResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(pr.elements)
}

// Dump renders pr as an indented tree using rosed for console formatting,
// one element per line, nested results indented two spaces further than
// their parent.
func (pr *ParseResult) Dump() string {
	var sb strings.Builder
	dumpInto(&sb, pr, 0)
	return rosed.Edit(sb.String()).String()
}

func dumpInto(sb *strings.Builder, v any, depth int) {
	indent := strings.Repeat("  ", depth)
	switch tv := v.(type) {
	case *ParseResult:
		sb.WriteString(indent + "(\n")
		for _, e := range tv.elements {
			dumpInto(sb, e, depth+1)
		}
		sb.WriteString(indent + ")\n")
	case []any:
		sb.WriteString(indent + "[\n")
		for _, e := range tv {
			dumpInto(sb, e, depth+1)
		}
		sb.WriteString(indent + "]\n")
	case string:
		fmt.Fprintf(sb, "%s%q\n", indent, tv)
	default:
		fmt.Fprintf(sb, "%s%v\n", indent, tv)
	}
}
