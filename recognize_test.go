package smtparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Numeral(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{name: "zero", input: "0"},
		{name: "multi-digit", input: "4578"},
		{name: "leading zero rejected", input: "007", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewParser()
			p.tokens = []string{tc.input}
			p.pos = 0
			p.advance()

			raw, err := p.numeral()
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.input, raw.Get(0))
		})
	}
}

func Test_StringLit_Unterminated(t *testing.T) {
	p := NewParser()
	p.tokens = []string{`"unterminated`}
	p.pos = 0
	p.advance()

	_, err := p.stringLit()
	require.Error(t, err)

	var synErr SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Contains(t, synErr.Message, `unclosed string, missing '"'`)
}

func Test_Symbol_QuotedPipe(t *testing.T) {
	p := NewParser()
	p.tokens = []string{"|a b|"}
	p.pos = 0
	p.advance()

	raw, err := p.symbol()
	require.NoError(t, err)
	assert.Equal(t, "|a b|", raw.Get(0))
}
