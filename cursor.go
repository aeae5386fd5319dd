package smtparse

// file cursor.go implements a one-token lookahead cursor over the token
// sequence, with a bounded rewind used exclusively by the qualified-identifier
// production to un-consume the "(" that precedes an "as".

// advance loads the next token into p.la, or the empty lexeme if the token
// stream is exhausted.
func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.la = p.tokens[p.pos]
	} else {
		p.la = ""
	}
	p.pos++
}

// rewind moves the cursor back n token positions, n >= 1, such that p.la again
// holds the token at the resulting position. It panics if the rewind would
// move the cursor to or before the start of the stream, since every call site
// in this package computes n to keep the result >= 1.
func (p *Parser) rewind(n int) {
	if n < 1 || p.pos-n <= 0 {
		panic("smtparse: rewind out of range")
	}
	p.pos -= n
	p.la = p.tokens[p.pos-1]
}

// atEnd reports whether the lookahead token is the empty lexeme, i.e. the
// cursor has run off the end of the token stream.
func (p *Parser) atEnd() bool {
	return p.la == ""
}
