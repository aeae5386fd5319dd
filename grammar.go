package smtparse

// file grammar.go implements the recursive-descent grammar productions
// for every bounded-depth non-terminal. The one unbounded-depth production,
// term, is handled separately by the explicit-stack engine in term.go.

func firstOfConst(c rune) bool {
	return (c >= '0' && c <= '9') || c == '#' || c == '"'
}

func firstOfSymbol(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || isSpecChar(c) || c == '|'
}

// checkLParen consumes a literal "(", failing with msg (default "'(' expected")
// if the lookahead isn't one.
func (p *Parser) checkLParen(msg ...string) error {
	if p.la != tokLParen {
		m := "'(' expected"
		if len(msg) > 0 {
			m = msg[0]
		}
		return p.errorf(m)
	}
	p.advance()
	return nil
}

// checkRParen consumes a literal ")".
func (p *Parser) checkRParen() error {
	if p.la != tokRParen {
		return p.errorf("')' expected")
	}
	p.advance()
	return nil
}

// specConstant dispatches to whichever literal recognizer matches the
// lookahead and wraps its hooked value as a single-element result.
func (p *Parser) specConstant() (*ParseResult, error) {
	var raw *ParseResult
	var err error
	var hook Hook

	switch {
	case p.la != "" && p.la[0] == '"':
		raw, err = p.stringLit()
		hook = p.Hooks.String
	case len(p.la) >= 2 && p.la[0] == '#' && p.la[1] == 'b':
		raw, err = p.binary()
		hook = p.Hooks.Binary
	case len(p.la) >= 2 && p.la[0] == '#' && p.la[1] == 'x':
		raw, err = p.hexadecimal()
		hook = p.Hooks.Hexadecimal
	case p.la != "" && p.la[0] >= '0' && p.la[0] <= '9':
		if containsByte(p.la, '.') {
			raw, err = p.decimal()
			hook = p.Hooks.Decimal
		} else {
			raw, err = p.numeral()
			hook = p.Hooks.Numeral
		}
	case p.la == tokTrue || p.la == tokFalse:
		raw, err = p.boolean()
		hook = p.Hooks.Boolean
	default:
		return nil, p.errorf("special constant expected")
	}
	if err != nil {
		return nil, err
	}
	v, err := apply(hook, raw)
	if err != nil {
		return nil, err
	}
	return NewParseResult(v), nil
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}

// sExpr parses an s_expr: a keyword, a special constant, a symbol, or a
// parenthesized list of s_expr.
func (p *Parser) sExpr() (*ParseResult, error) {
	out := NewParseResult()
	switch {
	case p.la != "" && p.la[0] == ':':
		raw, err := p.keyword()
		if err != nil {
			return nil, err
		}
		v, err := apply(p.Hooks.Keyword, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
	case p.la == tokTrue || p.la == tokFalse || (p.la != "" && firstOfConst(rune(p.la[0]))):
		raw, err := p.specConstant()
		if err != nil {
			return nil, err
		}
		v, err := apply(p.Hooks.SpecConstant, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
	case p.la != "" && firstOfSymbol(rune(p.la[0])):
		raw, err := p.symbol()
		if err != nil {
			return nil, err
		}
		v, err := apply(p.Hooks.Symbol, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
	default:
		if err := p.checkLParen("s-expression expected"); err != nil {
			return nil, err
		}
		out.Append(tokLParen)
		var items []any
		for p.la != "" && p.la != tokRParen {
			raw, err := p.sExpr()
			if err != nil {
				return nil, err
			}
			v, err := apply(p.Hooks.SExpr, raw)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		out.Append(items)
		if err := p.checkRParen(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// identifier parses an ident: a symbol, or the indexed form "(_ symbol
// numeral+)".
func (p *Parser) identifier() (*ParseResult, error) {
	out := NewParseResult()
	switch {
	case p.la != "" && firstOfSymbol(rune(p.la[0])):
		raw, err := p.symbol()
		if err != nil {
			return nil, err
		}
		v, err := apply(p.Hooks.Symbol, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
	case p.la == tokIndexedOpen:
		out.Append(p.la)
		p.advance()
		raw, err := p.symbol()
		if err != nil {
			return nil, err
		}
		v, err := apply(p.Hooks.Symbol, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
		var indices []any
		for p.la != "" && p.la != tokRParen {
			nraw, err := p.numeral()
			if err != nil {
				return nil, err
			}
			nv, err := apply(p.Hooks.Numeral, nraw)
			if err != nil {
				return nil, err
			}
			indices = append(indices, nv)
		}
		if len(indices) == 0 {
			return nil, p.errorf("numeral expected")
		}
		out.Append(indices)
		if err := p.checkRParen(); err != nil {
			return nil, err
		}
	default:
		return nil, p.errorf("identifier expected")
	}
	return out, nil
}

// sort parses a sort: an ident, or a parenthesized ident applied to one or
// more sort arguments.
func (p *Parser) sort() (*ParseResult, error) {
	out := NewParseResult()
	if p.la != "" && (firstOfSymbol(rune(p.la[0])) || p.la == tokIndexedOpen) {
		raw, err := p.identifier()
		if err != nil {
			return nil, err
		}
		v, err := apply(p.Hooks.Identifier, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
		return out, nil
	}

	if err := p.checkLParen("sort expected"); err != nil {
		return nil, err
	}
	out.Append(tokLParen)
	raw, err := p.identifier()
	if err != nil {
		return nil, err
	}
	v, err := apply(p.Hooks.Identifier, raw)
	if err != nil {
		return nil, err
	}
	out.Append(v)

	var args []any
	for p.la != "" && p.la != tokRParen {
		sraw, err := p.sort()
		if err != nil {
			return nil, err
		}
		sv, err := apply(p.Hooks.Sort, sraw)
		if err != nil {
			return nil, err
		}
		args = append(args, sv)
	}
	if len(args) == 0 {
		return nil, p.errorf("sort expected")
	}
	out.Append(args)
	if err := p.checkRParen(); err != nil {
		return nil, err
	}
	return out, nil
}

// sortExpr is sort's laxer sibling used in define-sort parameter positions,
// where the parenthesized form's tail is bare symbols rather than recursive
// sorts, so declarations aren't over-eagerly sort-checked.
func (p *Parser) sortExpr() (*ParseResult, error) {
	out := NewParseResult()
	if p.la != "" && (firstOfSymbol(rune(p.la[0])) || p.la == tokIndexedOpen) {
		raw, err := p.identifier()
		if err != nil {
			return nil, err
		}
		v, err := apply(p.Hooks.Identifier, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
		return out, nil
	}

	if err := p.checkLParen("sort expression expected"); err != nil {
		return nil, err
	}
	out.Append(tokLParen)
	raw, err := p.identifier()
	if err != nil {
		return nil, err
	}
	v, err := apply(p.Hooks.Identifier, raw)
	if err != nil {
		return nil, err
	}
	out.Append(v)

	var args []any
	for p.la != "" && p.la != tokRParen {
		sraw, err := p.symbol()
		if err != nil {
			return nil, err
		}
		sv, err := apply(p.Hooks.Symbol, sraw)
		if err != nil {
			return nil, err
		}
		args = append(args, sv)
	}
	if len(args) == 0 {
		return nil, p.errorf("symbol expected")
	}
	out.Append(args)
	if err := p.checkRParen(); err != nil {
		return nil, err
	}
	return out, nil
}

// attrValue parses an attr_value: a special constant, a symbol, or a
// parenthesized list of s_expr.
func (p *Parser) attrValue() (*ParseResult, error) {
	return p.attrValueWith(false)
}

// specAttrValue is attr_value's lenient counterpart, used for set-info, which
// accepts the looser spec_symbol form so free-text author/name fields don't
// have to obey symbol's character restrictions.
func (p *Parser) specAttrValue() (*ParseResult, error) {
	return p.attrValueWith(true)
}

func (p *Parser) attrValueWith(lenient bool) (*ParseResult, error) {
	out := NewParseResult()
	switch {
	case p.la == tokTrue || p.la == tokFalse || (p.la != "" && firstOfConst(rune(p.la[0]))):
		raw, err := p.specConstant()
		if err != nil {
			return nil, err
		}
		v, err := apply(p.Hooks.SpecConstant, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
	case p.la != "" && firstOfSymbol(rune(p.la[0])):
		var raw *ParseResult
		var err error
		var symbolHook Hook
		if lenient {
			raw, err = p.specSymbol()
			symbolHook = p.Hooks.SpecSymbol
		} else {
			raw, err = p.symbol()
			symbolHook = p.Hooks.Symbol
		}
		if err != nil {
			return nil, err
		}
		v, err := apply(symbolHook, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
	default:
		if err := p.checkLParen("attribute value expected"); err != nil {
			return nil, err
		}
		out.Append(tokLParen)
		var items []any
		for p.la != "" && p.la != tokRParen {
			raw, err := p.sExpr()
			if err != nil {
				return nil, err
			}
			v, err := apply(p.Hooks.SExpr, raw)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		out.Append(items)
		if err := p.checkRParen(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// attribute parses a keyword optionally followed by an attr_value; the value
// is absent when the next token is itself a keyword or closes the enclosing
// list.
func (p *Parser) attribute() (*ParseResult, error) {
	return p.attributeWith(false)
}

// specAttribute is attribute's counterpart using spec_attr_value.
func (p *Parser) specAttribute() (*ParseResult, error) {
	return p.attributeWith(true)
}

func (p *Parser) attributeWith(lenient bool) (*ParseResult, error) {
	out := NewParseResult()
	kraw, err := p.keyword()
	if err != nil {
		return nil, err
	}
	kv, err := apply(p.Hooks.Keyword, kraw)
	if err != nil {
		return nil, err
	}
	out.Append(kv)

	if p.la != "" && p.la[0] != ':' && p.la != tokRParen {
		if lenient {
			raw, err := p.specAttrValue()
			if err != nil {
				return nil, err
			}
			v, err := apply(p.Hooks.SpecAttrValue, raw)
			if err != nil {
				return nil, err
			}
			out.Append(v)
		} else {
			raw, err := p.attrValue()
			if err != nil {
				return nil, err
			}
			v, err := apply(p.Hooks.AttrValue, raw)
			if err != nil {
				return nil, err
			}
			out.Append(v)
		}
	}
	return out, nil
}

// qualIdent parses a qual_ident: an ident, or the explicitly-sorted
// "(as ident sort)" form.
func (p *Parser) qualIdent() (*ParseResult, error) {
	out := NewParseResult()
	if p.la != "" && (firstOfSymbol(rune(p.la[0])) || p.la == tokIndexedOpen) {
		raw, err := p.identifier()
		if err != nil {
			return nil, err
		}
		v, err := apply(p.Hooks.Identifier, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
		return out, nil
	}

	if err := p.checkLParen("qualified identifier expected"); err != nil {
		return nil, err
	}
	if p.la != tokAs {
		return nil, p.errorf("'as' expected")
	}
	out.Append(p.la)
	p.advance()

	iraw, err := p.identifier()
	if err != nil {
		return nil, err
	}
	iv, err := apply(p.Hooks.Identifier, iraw)
	if err != nil {
		return nil, err
	}
	out.Append(iv)

	sraw, err := p.sort()
	if err != nil {
		return nil, err
	}
	sv, err := apply(p.Hooks.Sort, sraw)
	if err != nil {
		return nil, err
	}
	out.Append(sv)

	if err := p.checkRParen(); err != nil {
		return nil, err
	}
	return out, nil
}

// varBinding parses "(symbol term)", one entry of a let's binding list.
func (p *Parser) varBinding() (*ParseResult, error) {
	out := NewParseResult()
	if err := p.checkLParen(); err != nil {
		return nil, err
	}
	sraw, err := p.symbol()
	if err != nil {
		return nil, err
	}
	sv, err := apply(p.Hooks.Symbol, sraw)
	if err != nil {
		return nil, err
	}
	out.Append(sv)

	traw, err := p.term()
	if err != nil {
		return nil, err
	}
	tv, err := apply(p.Hooks.Term, traw.(*ParseResult))
	if err != nil {
		return nil, err
	}
	out.Append(tv)

	if err := p.checkRParen(); err != nil {
		return nil, err
	}
	return out, nil
}

// sortedVar parses "(symbol sort)", one entry of a quantifier's variable list.
func (p *Parser) sortedVar() (*ParseResult, error) {
	out := NewParseResult()
	if err := p.checkLParen(); err != nil {
		return nil, err
	}
	sraw, err := p.symbol()
	if err != nil {
		return nil, err
	}
	sv, err := apply(p.Hooks.Symbol, sraw)
	if err != nil {
		return nil, err
	}
	out.Append(sv)

	soraw, err := p.sort()
	if err != nil {
		return nil, err
	}
	sov, err := apply(p.Hooks.Sort, soraw)
	if err != nil {
		return nil, err
	}
	out.Append(sov)

	if err := p.checkRParen(); err != nil {
		return nil, err
	}
	return out, nil
}
