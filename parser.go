package smtparse

// file parser.go defines the Parser type itself: the state every production
// in grammar.go, term.go, commands.go, recognize.go, and buffer.go shares,
// and the single public entry point that drives a parse from start to
// finish.

// Parser holds everything one parse needs: the immutable source buffer, the
// flattened token stream, the lookahead cursor, and the hooks a caller may
// have installed. Build one with NewParser, optionally fill in its Hooks
// fields, then call Parse; each call starts a fresh parse. A Parser is not
// safe for concurrent access.
type Parser struct {
	// Hooks holds the settable parse-action callbacks; every field defaults
	// to nil, which apply treats as returning the raw ParseResult
	// unchanged.
	Hooks Hooks

	name   string
	src    []rune
	tokens []string
	la     string
	pos    int
}

// NewParser returns a ready-to-use Parser with every hook at its identity
// default.
func NewParser() *Parser {
	return &Parser{}
}

// Parse tokenizes src and parses it as a complete script (the sequence of
// top-level commands), returning the accumulated, hook-applied result. name
// is used only to label diagnostics; it is typically the source file's path.
//
// Parse resets the Parser's internal state, so calling it a second time on
// the same Parser starts a fresh parse from scratch (though doing so is
// discouraged; build a new Parser per input instead).
func (p *Parser) Parse(name string, src string) (*ParseResult, error) {
	p.name = name
	p.src = []rune(src)
	p.tokens = tokenize(p.src)
	p.pos = 0
	p.la = ""
	p.advance()

	raw, err := p.script()
	if err != nil {
		return nil, err
	}
	v, err := apply(p.Hooks.Script, raw)
	if err != nil {
		return nil, err
	}
	if pr, ok := v.(*ParseResult); ok {
		return pr, nil
	}
	return NewParseResult(v), nil
}
