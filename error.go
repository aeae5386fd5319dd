package smtparse

import "fmt"

// file error.go contains the diagnostic type produced by a failed parse.

// SyntaxError is the structured failure type a Parser returns for lexical
// and structural errors; an error returned by a hook is passed through
// unchanged instead. It carries enough information for a caller to print
// "[smtparser] <file>:<line>:<col>: <message>" without re-deriving position
// itself.
type SyntaxError struct {
	// File is the name the Parser was given for the input, for display only.
	File string

	// Line is the 1-based line the error occurred on.
	Line int

	// Col is the 1-based column the error occurred on.
	Col int

	// Message is a short, human-readable description, e.g. "term expected".
	Message string
}

// Error implements the error interface, formatting as
// "[smtparser] <file>:<line>:<col>: <message>".
func (e SyntaxError) Error() string {
	return fmt.Sprintf("[smtparser] %s:%d:%d: %s", e.File, e.Line, e.Col, e.Message)
}

// errorf builds a SyntaxError at the position of the token the cursor is
// currently looking at (i.e. the token about to be, or just, consumed).
func (p *Parser) errorf(format string, a ...any) error {
	line, col := p.position()
	return SyntaxError{
		File:    p.name,
		Line:    line,
		Col:     col,
		Message: fmt.Sprintf(format, a...),
	}
}

// errorAt builds a SyntaxError anchored to a specific token index rather than
// the cursor's current position; used by the term engine, which must
// sometimes point back at an earlier token (the opener of a group) when
// reporting a count mismatch.
func (p *Parser) errorAt(tokenIndex int, format string, a ...any) error {
	line, col := p.positionOf(tokenIndex)
	return SyntaxError{
		File:    p.name,
		Line:    line,
		Col:     col,
		Message: fmt.Sprintf(format, a...),
	}
}
