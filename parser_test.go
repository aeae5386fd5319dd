package smtparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatten is a Term/Symbol/Numeral/... hook that collapses any single-element
// ParseResult down to its bare value, so tests can assert against plain Go
// values instead of walking ParseResult wrappers everywhere. It demonstrates
// the hook mechanism doubles as a shaping tool, not just a validation hook.
func flatten(raw *ParseResult) (any, error) {
	if raw.Len() == 1 {
		return raw.Get(0), nil
	}
	return raw, nil
}

func flatteningParser() *Parser {
	p := NewParser()
	f := Hook(flatten)
	p.Hooks = Hooks{
		Numeral: f, Decimal: f, Hexadecimal: f, Binary: f, Boolean: f, String: f,
		Symbol: f, SpecSymbol: f, Keyword: f, SpecConstant: f, SExpr: f,
		Identifier: f, Sort: f, SortExpr: f, AttrValue: f, Attribute: f,
		SpecAttrValue: f, SpecAttribute: f, QualIdent: f, VarBinding: f,
		SortedVar: f, Term: f, Option: f, InfoFlag: f, Command: f, Script: f,
	}
	return p
}

func Test_Parse_SetLogic(t *testing.T) {
	p := flatteningParser()
	result, err := p.Parse("t.smt2", "(set-logic QF_BV)")
	require.NoError(t, err)
	require.Equal(t, 2, result.Len())
	assert.Equal(t, "set-logic", result.Get(0))
	assert.Equal(t, "QF_BV", result.Get(1))
}

func Test_Parse_DeclareFun_IndexedSort(t *testing.T) {
	p := flatteningParser()
	result, err := p.Parse("t.smt2", "(declare-fun f ((_ BitVec 8)) Bool)")
	require.NoError(t, err)
	require.Equal(t, 4, result.Len())
	assert.Equal(t, "declare-fun", result.Get(0))
	assert.Equal(t, "f", result.Get(1))

	params, ok := result.Get(2).([]any)
	require.True(t, ok)
	require.Len(t, params, 1)

	sort, ok := params[0].(*ParseResult)
	require.True(t, ok)
	assert.Equal(t, tokIndexedOpen, sort.Get(0))
	assert.Equal(t, "BitVec", sort.Get(1))

	indices, ok := sort.Get(2).([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"8"}, indices)

	assert.Equal(t, "Bool", result.Get(3))
}

func Test_Parse_AssertLet(t *testing.T) {
	p := flatteningParser()
	result, err := p.Parse("t.smt2", "(assert (let ((x true)) (and x false)))")
	require.NoError(t, err)
	assert.Equal(t, "assert", result.Get(0))

	term, ok := result.Get(1).(*ParseResult)
	require.True(t, ok)
	require.Equal(t, tokLet, term.Get(0))

	bindings, ok := term.Get(1).([]any)
	require.True(t, ok)
	require.Len(t, bindings, 1)

	binding, ok := bindings[0].(*ParseResult)
	require.True(t, ok)
	assert.Equal(t, "x", binding.Get(0))
	assert.Equal(t, "true", binding.Get(1))

	body, ok := term.Get(2).(*ParseResult)
	require.True(t, ok)
	assert.Equal(t, "and", body.Get(0))

	args, ok := body.Get(1).([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"x", "false"}, args)
}

func Test_Parse_AssertAnnotatedTerm(t *testing.T) {
	p := flatteningParser()
	result, err := p.Parse("t.smt2", "(assert (! (= a b) :named eq1))")
	require.NoError(t, err)
	assert.Equal(t, "assert", result.Get(0))

	term, ok := result.Get(1).(*ParseResult)
	require.True(t, ok)
	require.Equal(t, tokBang, term.Get(0))

	inner, ok := term.Get(1).(*ParseResult)
	require.True(t, ok)
	assert.Equal(t, "=", inner.Get(0))
	assert.Equal(t, []any{"a", "b"}, inner.Get(1))

	attrs, ok := term.Get(2).([]any)
	require.True(t, ok)
	require.Len(t, attrs, 1)
	attr, ok := attrs[0].(*ParseResult)
	require.True(t, ok)
	assert.Equal(t, ":named", attr.Get(0))
	assert.Equal(t, "eq1", attr.Get(1))
}

func Test_Parse_CommentIsDiscarded(t *testing.T) {
	p := flatteningParser()
	result, err := p.Parse("t.smt2", "; a comment\n(check-sat)")
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
	assert.Equal(t, "check-sat", result.Get(0))
}

func Test_Parse_DeepNesting_NoStackOverflow(t *testing.T) {
	const depth = 50000
	var sb strings.Builder
	sb.WriteString("(assert ")
	for i := 0; i < depth; i++ {
		sb.WriteString("(and ")
	}
	sb.WriteString("true")
	for i := 0; i < depth; i++ {
		sb.WriteString(")")
	}
	sb.WriteString(")")

	p := flatteningParser()
	result, err := p.Parse("deep.smt2", sb.String())
	require.NoError(t, err)
	require.Equal(t, 2, result.Len())
	assert.Equal(t, "assert", result.Get(0))

	term, ok := result.Get(1).(*ParseResult)
	require.True(t, ok)
	assert.Equal(t, "and", term.Get(0))
}

func Test_Parse_NegativeScenarios(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "assert with no term", input: "(assert )", wantMsg: "term expected"},
		{name: "let with no bindings", input: "(assert (let () x))", wantMsg: "variable binding expected"},
		{name: "unknown command", input: "(foo)", wantMsg: "unknown command 'foo'"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewParser()
			_, err := p.Parse("t.smt2", tc.input)
			require.Error(t, err)
			var synErr SyntaxError
			require.ErrorAs(t, err, &synErr)
			assert.Contains(t, synErr.Message, tc.wantMsg)
		})
	}
}

func Test_Parse_ParenBalance(t *testing.T) {
	inputs := []string{
		"(set-logic QF_BV)",
		"(declare-fun f ((_ BitVec 8)) Bool)",
		"(assert (let ((x true)) (and x false)))",
	}
	for _, in := range inputs {
		p := NewParser()
		_, err := p.Parse("t.smt2", in)
		require.NoError(t, err)

		opens, closes := 0, 0
		for _, tok := range p.tokens {
			switch tok {
			case tokLParen, tokIndexedOpen:
				opens++
			case tokRParen:
				closes++
			}
		}
		assert.Equal(t, opens, closes, in)
	}
}

func Test_Parse_HookIdentity_IsDeterministic(t *testing.T) {
	const src = "(assert (let ((x true)) (and x false)))"

	p1 := NewParser()
	r1, err := p1.Parse("t.smt2", src)
	require.NoError(t, err)

	p2 := NewParser()
	r2, err := p2.Parse("t.smt2", src)
	require.NoError(t, err)

	assert.True(t, r1.Equal(r2))
}
