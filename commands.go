package smtparse

// file commands.go implements the remaining productions that sit above
// term: option, info_flag, command, and script, the top-level production
// that drives the whole parse.

const (
	optPrintSuccess   = ":print-success"
	optExpandDefs     = ":expand-definitions"
	optInteractive    = ":interactive-mode"
	optProduceProofs  = ":produce-proofs"
	optProduceUCores  = ":produce-unsat-cores"
	optProduceModels  = ":produce-models"
	optProduceAssigns = ":produce-assignments"
	optRegularOutput  = ":regular-output-channel"
	optDiagOutput     = ":diagrnostic-output-channel" // sic: spelled with an extra 'n', preserved for compatibility
	optRandomSeed     = ":random-seed"
	optVerbosity      = ":verbosity"
)

const (
	infoErrorBehavior = ":error-behavior"
	infoName          = ":name"
	infoAuthors       = ":authors"
	infoVersion       = ":version"
	infoStatus        = ":status"
	infoReasonUnknown = ":reason-unknown"
	infoAllStatistics = ":all-statistics"
)

const (
	cmdSetLogic    = "set-logic"
	cmdSetOption   = "set-option"
	cmdSetInfo     = "set-info"
	cmdDeclareSort = "declare-sort"
	cmdDefineSort  = "define-sort"
	cmdDeclareFun  = "declare-fun"
	cmdDefineFun   = "define-fun"
	cmdPush        = "push"
	cmdPop         = "pop"
	cmdAssert      = "assert"
	cmdCheckSat    = "check-sat"
	cmdGetAssert   = "get-assertions"
	cmdGetProof    = "get-proof"
	cmdGetUCore    = "get-unsat-core"
	cmdGetValue    = "get-value"
	cmdGetAssign   = "get-assignment"
	cmdGetOption   = "get-option"
	cmdGetInfo     = "get-info"
	cmdExit        = "exit"
)

func isBoolOption(s string) bool {
	switch s {
	case optPrintSuccess, optExpandDefs, optInteractive, optProduceProofs,
		optProduceUCores, optProduceModels, optProduceAssigns:
		return true
	}
	return false
}

func isChannelOption(s string) bool {
	return s == optRegularOutput || s == optDiagOutput
}

func isNumeralOption(s string) bool {
	return s == optRandomSeed || s == optVerbosity
}

func isBareInfoFlag(s string) bool {
	switch s {
	case infoErrorBehavior, infoName, infoAuthors, infoVersion, infoStatus,
		infoReasonUnknown, infoAllStatistics:
		return true
	}
	return false
}

// option parses a set-option argument: one of the recognized option
// keywords paired with the value type it takes, or else a generic attribute.
func (p *Parser) option() (*ParseResult, error) {
	out := NewParseResult()
	switch {
	case isBoolOption(p.la):
		out.Append(p.la)
		p.advance()
		raw, err := p.boolean()
		if err != nil {
			return nil, err
		}
		v, err := apply(p.Hooks.Boolean, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
	case isChannelOption(p.la):
		out.Append(p.la)
		p.advance()
		raw, err := p.stringLit()
		if err != nil {
			return nil, err
		}
		v, err := apply(p.Hooks.String, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
	case isNumeralOption(p.la):
		out.Append(p.la)
		p.advance()
		raw, err := p.numeral()
		if err != nil {
			return nil, err
		}
		v, err := apply(p.Hooks.Numeral, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
	default:
		raw, err := p.attribute()
		if err != nil {
			return nil, err
		}
		v, err := apply(p.Hooks.Attribute, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
	}
	return out, nil
}

// infoFlag parses a get-info argument: one of the recognized info flags, or
// else an arbitrary keyword.
func (p *Parser) infoFlag() (*ParseResult, error) {
	out := NewParseResult()
	if isBareInfoFlag(p.la) {
		out.Append(p.la)
		p.advance()
		return out, nil
	}
	raw, err := p.keyword()
	if err != nil {
		return nil, err
	}
	v, err := apply(p.Hooks.Keyword, raw)
	if err != nil {
		return nil, err
	}
	out.Append(v)
	return out, nil
}

// command parses one top-level "(command-name args...)" form.
func (p *Parser) command() (*ParseResult, error) {
	out := NewParseResult()
	if err := p.checkLParen(); err != nil {
		return nil, err
	}
	name := p.la
	out.Append(name)

	switch name {
	case cmdSetLogic:
		p.advance()
		if err := p.appendSymbol(out); err != nil {
			return nil, err
		}
	case cmdSetOption:
		p.advance()
		raw, err := p.option()
		if err != nil {
			return nil, err
		}
		v, err := apply(p.Hooks.Option, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
	case cmdSetInfo:
		p.advance()
		raw, err := p.specAttribute()
		if err != nil {
			return nil, err
		}
		v, err := apply(p.Hooks.SpecAttribute, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
	case cmdDeclareSort:
		p.advance()
		if err := p.appendSymbol(out); err != nil {
			return nil, err
		}
		if err := p.appendNumeral(out); err != nil {
			return nil, err
		}
	case cmdDefineSort:
		p.advance()
		if err := p.appendSymbol(out); err != nil {
			return nil, err
		}
		if err := p.checkLParen(); err != nil {
			return nil, err
		}
		var params []any
		for p.la != "" && p.la != tokRParen {
			raw, err := p.symbol()
			if err != nil {
				return nil, err
			}
			v, err := apply(p.Hooks.Symbol, raw)
			if err != nil {
				return nil, err
			}
			params = append(params, v)
		}
		out.Append(params)
		if err := p.checkRParen(); err != nil {
			return nil, err
		}
		raw, err := p.sortExpr()
		if err != nil {
			return nil, err
		}
		v, err := apply(p.Hooks.SortExpr, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
	case cmdDeclareFun:
		p.advance()
		if err := p.appendSymbol(out); err != nil {
			return nil, err
		}
		if err := p.checkLParen(); err != nil {
			return nil, err
		}
		var params []any
		for p.la != "" && p.la != tokRParen {
			raw, err := p.sort()
			if err != nil {
				return nil, err
			}
			v, err := apply(p.Hooks.Sort, raw)
			if err != nil {
				return nil, err
			}
			params = append(params, v)
		}
		out.Append(params)
		if err := p.checkRParen(); err != nil {
			return nil, err
		}
		if err := p.appendSort(out); err != nil {
			return nil, err
		}
	case cmdDefineFun:
		p.advance()
		if err := p.appendSymbol(out); err != nil {
			return nil, err
		}
		if err := p.checkLParen(); err != nil {
			return nil, err
		}
		var params []any
		for p.la != "" && p.la != tokRParen {
			raw, err := p.sortedVar()
			if err != nil {
				return nil, err
			}
			v, err := apply(p.Hooks.SortedVar, raw)
			if err != nil {
				return nil, err
			}
			params = append(params, v)
		}
		out.Append(params)
		if err := p.checkRParen(); err != nil {
			return nil, err
		}
		if err := p.appendSort(out); err != nil {
			return nil, err
		}
		if err := p.appendTerm(out); err != nil {
			return nil, err
		}
	case cmdPush, cmdPop:
		p.advance()
		if err := p.appendNumeral(out); err != nil {
			return nil, err
		}
	case cmdAssert:
		p.advance()
		if err := p.appendTerm(out); err != nil {
			return nil, err
		}
	case cmdCheckSat, cmdGetAssert, cmdGetProof, cmdGetUCore, cmdGetAssign, cmdExit:
		p.advance()
	case cmdGetValue:
		p.advance()
		if err := p.checkLParen(); err != nil {
			return nil, err
		}
		var terms []any
		for p.la != "" && p.la != tokRParen {
			if err := p.appendTermTo(&terms); err != nil {
				return nil, err
			}
		}
		if len(terms) == 0 {
			return nil, p.errorf("term expected")
		}
		out.Append(terms)
		if err := p.checkRParen(); err != nil {
			return nil, err
		}
	case cmdGetOption:
		p.advance()
		raw, err := p.keyword()
		if err != nil {
			return nil, err
		}
		v, err := apply(p.Hooks.Keyword, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
	case cmdGetInfo:
		p.advance()
		raw, err := p.infoFlag()
		if err != nil {
			return nil, err
		}
		v, err := apply(p.Hooks.InfoFlag, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
	default:
		return nil, p.errorf("unknown command '%s'", name)
	}

	if err := p.checkRParen(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Parser) appendSymbol(out *ParseResult) error {
	raw, err := p.symbol()
	if err != nil {
		return err
	}
	v, err := apply(p.Hooks.Symbol, raw)
	if err != nil {
		return err
	}
	out.Append(v)
	return nil
}

func (p *Parser) appendNumeral(out *ParseResult) error {
	raw, err := p.numeral()
	if err != nil {
		return err
	}
	v, err := apply(p.Hooks.Numeral, raw)
	if err != nil {
		return err
	}
	out.Append(v)
	return nil
}

func (p *Parser) appendSort(out *ParseResult) error {
	raw, err := p.sort()
	if err != nil {
		return err
	}
	v, err := apply(p.Hooks.Sort, raw)
	if err != nil {
		return err
	}
	out.Append(v)
	return nil
}

func (p *Parser) appendTerm(out *ParseResult) error {
	raw, err := p.term()
	if err != nil {
		return err
	}
	v, err := apply(p.Hooks.Term, raw.(*ParseResult))
	if err != nil {
		return err
	}
	out.Append(v)
	return nil
}

func (p *Parser) appendTermTo(items *[]any) error {
	raw, err := p.term()
	if err != nil {
		return err
	}
	v, err := apply(p.Hooks.Term, raw.(*ParseResult))
	if err != nil {
		return err
	}
	*items = append(*items, v)
	return nil
}

// script parses every command in the input in sequence, returning one
// top-level result holding each command's already-hooked value in order.
func (p *Parser) script() (*ParseResult, error) {
	out := NewParseResult()
	for !p.atEnd() {
		raw, err := p.command()
		if err != nil {
			return nil, err
		}
		v, err := apply(p.Hooks.Command, raw)
		if err != nil {
			return nil, err
		}
		out.Append(v)
	}
	return out, nil
}
