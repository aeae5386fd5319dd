package smtparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseResult_Equal(t *testing.T) {
	a := NewParseResult("and", []any{"x", "false"})
	b := NewParseResult("and", []any{"x", "false"})
	c := NewParseResult("or", []any{"x", "false"})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func Test_ParseResult_Equal_NestedResults(t *testing.T) {
	a := NewParseResult("let", []any{NewParseResult("x", "true")}, NewParseResult("and", []any{"x", "false"}))
	b := NewParseResult("let", []any{NewParseResult("x", "true")}, NewParseResult("and", []any{"x", "false"}))
	assert.True(t, a.Equal(b))
}

func Test_ParseResult_StartsWithLParen(t *testing.T) {
	bare := NewParseResult("Bool")
	paren := NewParseResult(tokLParen, "BitVec", []any{"8"})

	assert.False(t, bare.StartsWithLParen())
	assert.True(t, paren.StartsWithLParen())
}

func Test_ParseResult_AppendAndGet(t *testing.T) {
	pr := NewParseResult()
	pr.Append("set-logic").Append("QF_BV")
	assert.Equal(t, 2, pr.Len())
	assert.Equal(t, "set-logic", pr.Head())
	assert.Equal(t, "QF_BV", pr.Get(1))
}

func Test_ParseResult_Dump(t *testing.T) {
	pr := NewParseResult("set-logic", "QF_BV")
	dump := pr.Dump()
	assert.Contains(t, dump, "set-logic")
	assert.Contains(t, dump, "QF_BV")
}
