package smtparse

import (
	"regexp"
	"strings"
)

// file recognize.go implements the lexical recognizers: each validates
// and accepts one terminal class out of the current lookahead token, wraps
// the lexeme in a ParseResult, and advances the cursor.

// specChars is the set of non-alphanumeric characters legal in an unquoted
// symbol or keyword body, taken directly from the reference grammar.
const specChars = "+-/*=%?!.$_~&^<>@"

var (
	numeralPattern = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)
	decimalPattern = regexp.MustCompile(`^[0-9]+\.[0-9]*$`)
	hexPattern     = regexp.MustCompile(`^#x[0-9A-Fa-f]*$`)
	binPattern     = regexp.MustCompile(`^#b[01]*$`)
)

func isSpecChar(c rune) bool {
	return strings.ContainsRune(specChars, c)
}

func isSymbolChar(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || isSpecChar(c)
}

// numeral accepts "0" or a digit string with no leading zero.
func (p *Parser) numeral() (*ParseResult, error) {
	if !numeralPattern.MatchString(p.la) {
		return nil, p.errorf("numeral expected")
	}
	tok := p.la
	p.advance()
	return NewParseResult(tok), nil
}

// decimal accepts one or more digits (leading zeros allowed), a '.', and zero
// or more further digits.
func (p *Parser) decimal() (*ParseResult, error) {
	if !decimalPattern.MatchString(p.la) {
		return nil, p.errorf("decimal expected")
	}
	tok := p.la
	p.advance()
	return NewParseResult(tok), nil
}

// hexadecimal accepts "#x" followed by zero or more hex digits.
func (p *Parser) hexadecimal() (*ParseResult, error) {
	if !hexPattern.MatchString(p.la) {
		return nil, p.errorf("hexadecimal constant expected")
	}
	tok := p.la
	p.advance()
	return NewParseResult(tok), nil
}

// binary accepts "#b" followed by zero or more binary digits.
func (p *Parser) binary() (*ParseResult, error) {
	if !binPattern.MatchString(p.la) {
		return nil, p.errorf("binary constant expected")
	}
	tok := p.la
	p.advance()
	return NewParseResult(tok), nil
}

// boolean accepts the literal "true" or "false".
func (p *Parser) boolean() (*ParseResult, error) {
	if p.la != tokTrue && p.la != tokFalse {
		return nil, p.errorf("'true' or 'false' expected")
	}
	tok := p.la
	p.advance()
	return NewParseResult(tok), nil
}

// symbol accepts either an unquoted symbol (first char non-digit, remaining
// chars from the alphanumeric+special-char alphabet) or a quoted |...| form.
// A quoted symbol tolerates any character but a nested '|' and, since the
// coarse tokenizer splits on whitespace, may span several raw tokens; those
// are rejoined here with single spaces until a trailing '|' is seen.
func (p *Parser) symbol() (*ParseResult, error) {
	if p.la == "" {
		return nil, p.errorf("symbol expected")
	}

	if p.la[0] == tokPipe {
		lexeme, err := p.joinQuoted(tokPipe, "unclosed symbol, missing '|'")
		if err != nil {
			return nil, err
		}
		if strings.ContainsRune(lexeme[1:len(lexeme)-1], tokPipe) {
			return nil, p.errorf("unexpected character: '%c'", tokPipe)
		}
		return NewParseResult(lexeme), nil
	}

	if len(p.la) == 0 {
		return nil, p.errorf("symbol expected")
	}
	runes := []rune(p.la)
	if runes[0] >= '0' && runes[0] <= '9' {
		return nil, p.errorf("unexpected character: '%c'", runes[0])
	}
	for _, c := range runes {
		if !isSymbolChar(c) {
			return nil, p.errorf("unexpected character: '%c'", c)
		}
	}
	tok := p.la
	p.advance()
	return NewParseResult(tok), nil
}

// specSymbol behaves like symbol but is used where the grammar wants to be
// lenient about the content of a quoted form (set-info author/name fields, in
// particular), so embedded whitespace and punctuation inside the quotes is
// never validated character-by-character; only the closing '|' is required.
func (p *Parser) specSymbol() (*ParseResult, error) {
	if p.la == "" {
		return nil, p.errorf("symbol expected")
	}
	if p.la[0] == tokPipe {
		lexeme, err := p.joinQuoted(tokPipe, "unclosed symbol, missing '|'")
		if err != nil {
			return nil, err
		}
		return NewParseResult(lexeme), nil
	}
	tok := p.la
	p.advance()
	return NewParseResult(tok), nil
}

// keyword accepts a token beginning with ':' whose remaining characters are
// drawn from the alphanumeric+special-char alphabet.
func (p *Parser) keyword() (*ParseResult, error) {
	if p.la == "" || p.la[0] != ':' {
		return nil, p.errorf("keyword expected")
	}
	for _, c := range p.la[1:] {
		if !isSymbolChar(c) {
			return nil, p.errorf("unexpected character: '%c'", c)
		}
	}
	tok := p.la
	p.advance()
	return NewParseResult(tok), nil
}

// stringLit accepts a double-quoted string. Because the tokenizer splits on
// whitespace without regard for string boundaries, a string containing
// spaces arrives here split across several tokens, which are rejoined with
// single spaces until one ends in '"'. A backslash before that '"' is not
// treated as an escape.
func (p *Parser) stringLit() (*ParseResult, error) {
	if p.la == "" || p.la[0] != '"' {
		return nil, p.errorf("string expected")
	}
	lexeme, err := p.joinQuoted('"', "unclosed string, missing '\"'")
	if err != nil {
		return nil, err
	}
	return NewParseResult(lexeme), nil
}

// joinQuoted consumes the current token and, if it does not already end with
// the closing quote rune (and isn't the single-character open-quote token by
// itself), keeps consuming and joining whitespace-split fragments with a
// single space until one does. It fails with missingCloseMsg if the token
// stream runs out first.
func (p *Parser) joinQuoted(quote rune, missingCloseMsg string) (string, error) {
	parts := []string{p.la}
	closed := endsInUnescapedQuote(p.la, quote) && len([]rune(p.la)) > 1

	if !closed {
		p.advance()
		for p.la != "" && !endsInUnescapedQuote(p.la, quote) {
			parts = append(parts, p.la)
			p.advance()
		}
		if p.la == "" {
			return "", p.errorf(missingCloseMsg)
		}
		parts = append(parts, p.la)
	}

	p.advance()
	return strings.Join(parts, " "), nil
}

// endsInUnescapedQuote reports whether s ends with quote. It does not look at
// the character before the quote, and it does not check whether s is more
// than the bare quote character on its own; joinQuoted checks that for the
// opening token.
func endsInUnescapedQuote(s string, quote rune) bool {
	r := []rune(s)
	if len(r) == 0 {
		return false
	}
	return r[len(r)-1] == quote
}
