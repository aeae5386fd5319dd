package smtparse

// file term.go implements the term engine. term is the one grammar
// non-terminal whose nesting depth is unbounded by the format (arithmetic and
// boolean expressions routinely nest tens of thousands of applications deep
// in generated benchmarks), so it is parsed iteratively with an explicit
// stack rather than by direct recursion, to avoid exhausting the host stack.
// The only bounded recursive call left is through "(! term attribute+)",
// whose nesting depth in practice tracks how many annotations a single
// subterm carries, not the size of the formula.

// termGroup tracks, for one open parenthesis currently being built, what kind
// of form it is (a plain application, "let", "exists", or "forall") and the
// token position at which each of its subterms began, so the closing ")" can
// tell how many subterms it actually received.
type termGroup struct {
	kind   string
	starts []int
}

// term parses a term and returns its raw, not-yet-hook-applied ParseResult.
// Every call site is responsible for running the result through hooks.Term;
// term itself only applies the Term hook to the subterms it assembles into a
// larger one (function arguments, a binder's body, the operand of "!").
func (p *Parser) term() (any, error) {
	var stack []any
	groups := []*termGroup{{kind: "other"}}
	cntpar := 0

	for {
		if p.la == tokRParen {
			top := groups[len(groups)-1]
			nterms := len(top.starts)

			if top.kind == tokLParen && nterms == 0 {
				return nil, p.errorf("term expected")
			}
			if (top.kind == tokLet || top.kind == tokExists || top.kind == tokForall) && nterms != 1 {
				if nterms == 0 {
					return nil, p.errorf("')' expected")
				}
				return nil, p.errorAt(top.starts[0], "')' expected")
			}

			reduced, err := p.reduceGroup(&stack)
			if err != nil {
				return nil, err
			}
			stack = append(stack, reduced)
			groups = groups[:len(groups)-1]
			cntpar--
			if err := p.checkRParen(); err != nil {
				return nil, err
			}
		} else {
			groups[len(groups)-1].starts = append(groups[len(groups)-1].starts, p.pos-1)

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
				stack = append(stack, NewParseResult(v))

			case p.la == tokIndexedOpen || (p.la != "" && firstOfSymbol(rune(p.la[0]))):
				raw, err := p.qualIdent()
				if err != nil {
					return nil, err
				}
				v, err := apply(p.Hooks.QualIdent, raw)
				if err != nil {
					return nil, err
				}
				stack = append(stack, NewParseResult(v))

			default:
				if err := p.checkLParen("term expected"); err != nil {
					return nil, err
				}
				switch {
				case p.la == tokAs:
					p.rewind(1)
					raw, err := p.qualIdent()
					if err != nil {
						return nil, err
					}
					v, err := apply(p.Hooks.QualIdent, raw)
					if err != nil {
						return nil, err
					}
					stack = append(stack, NewParseResult(v))

				case p.la == tokLet:
					cntpar++
					stack = append(stack, tokLet)
					groups = append(groups, &termGroup{kind: tokLet})
					p.advance()
					if err := p.checkLParen(); err != nil {
						return nil, err
					}
					var bindings []any
					for p.la != "" && p.la != tokRParen {
						raw, err := p.varBinding()
						if err != nil {
							return nil, err
						}
						v, err := apply(p.Hooks.VarBinding, raw)
						if err != nil {
							return nil, err
						}
						bindings = append(bindings, v)
					}
					if len(bindings) == 0 {
						return nil, p.errorf("variable binding expected")
					}
					stack = append(stack, bindings)
					if err := p.checkRParen(); err != nil {
						return nil, err
					}

				case p.la == tokExists || p.la == tokForall:
					kind := p.la
					cntpar++
					stack = append(stack, kind)
					groups = append(groups, &termGroup{kind: kind})
					p.advance()
					if err := p.checkLParen(); err != nil {
						return nil, err
					}
					var vars []any
					for p.la != "" && p.la != tokRParen {
						raw, err := p.sortedVar()
						if err != nil {
							return nil, err
						}
						v, err := apply(p.Hooks.SortedVar, raw)
						if err != nil {
							return nil, err
						}
						vars = append(vars, v)
					}
					if len(vars) == 0 {
						return nil, p.errorf("sorted variable expected")
					}
					stack = append(stack, vars)
					if err := p.checkRParen(); err != nil {
						return nil, err
					}

				case p.la == tokBang:
					p.advance()
					inner, err := p.term()
					if err != nil {
						return nil, err
					}
					body, err := apply(p.Hooks.Term, inner.(*ParseResult))
					if err != nil {
						return nil, err
					}
					var attrs []any
					for p.la != "" && p.la != tokRParen {
						raw, err := p.attribute()
						if err != nil {
							return nil, err
						}
						v, err := apply(p.Hooks.Attribute, raw)
						if err != nil {
							return nil, err
						}
						attrs = append(attrs, v)
					}
					if len(attrs) == 0 {
						return nil, p.errorf("attribute expected")
					}
					stack = append(stack, NewParseResult(tokBang, body, attrs))
					if err := p.checkRParen(); err != nil {
						return nil, err
					}

				default:
					cntpar++
					stack = append(stack, tokLParen)
					groups = append(groups, &termGroup{kind: p.la})
					raw, err := p.qualIdent()
					if err != nil {
						return nil, err
					}
					v, err := apply(p.Hooks.QualIdent, raw)
					if err != nil {
						return nil, err
					}
					stack = append(stack, v)
				}
			}
		}

		if p.la == "" && cntpar > 0 {
			return nil, p.checkRParen()
		}
		if cntpar == 0 {
			break
		}
	}

	if len(stack) != 1 {
		return nil, p.errorf("term expected")
	}
	return stack[len(stack)-1], nil
}

// reduceGroup pops the just-closed group's pieces off stack and assembles
// them into the raw ParseResult (or, for a bare atom, returns it unchanged)
// representing that subterm, applying hooks.Term to each of its children
// along the way.
func (p *Parser) reduceGroup(stackp *[]any) (any, error) {
	stack := *stackp
	var tmp []any
	for len(stack) > 0 {
		if s, ok := stack[len(stack)-1].(string); ok &&
			(s == tokLParen || s == tokLet || s == tokExists || s == tokForall) {
			break
		}
		tmp = append(tmp, stack[len(stack)-1])
		stack = stack[:len(stack)-1]
	}
	if len(stack) > 0 {
		tmp = append(tmp, stack[len(stack)-1])
		stack = stack[:len(stack)-1]
	}
	*stackp = stack

	if len(tmp) == 0 {
		return nil, p.errorf("term expected")
	}

	marker, isMarker := tmp[len(tmp)-1].(string)
	switch {
	case isMarker && marker == tokLParen:
		tmp = tmp[:len(tmp)-1]
		fn := tmp[len(tmp)-1]
		tmp = tmp[:len(tmp)-1]
		args := make([]any, 0, len(tmp))
		for len(tmp) > 0 {
			sub := tmp[len(tmp)-1]
			tmp = tmp[:len(tmp)-1]
			v, err := apply(p.Hooks.Term, sub.(*ParseResult))
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return NewParseResult(fn, args), nil

	case isMarker && (marker == tokLet || marker == tokExists || marker == tokForall):
		tmp = tmp[:len(tmp)-1]
		bindings := tmp[len(tmp)-1]
		tmp = tmp[:len(tmp)-1]
		body := tmp[len(tmp)-1]
		v, err := apply(p.Hooks.Term, body.(*ParseResult))
		if err != nil {
			return nil, err
		}
		return NewParseResult(marker, bindings, v), nil

	default:
		return tmp[len(tmp)-1], nil
	}
}
