package smtparse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Apply_NilHookIsIdentity(t *testing.T) {
	raw := NewParseResult("QF_BV")
	v, err := apply(nil, raw)
	require.NoError(t, err)
	assert.Same(t, raw, v)
}

func Test_Apply_CustomHook(t *testing.T) {
	upper := func(raw *ParseResult) (any, error) {
		return raw.Get(0).(string) + "!", nil
	}
	v, err := apply(upper, NewParseResult("QF_BV"))
	require.NoError(t, err)
	assert.Equal(t, "QF_BV!", v)
}

func Test_Apply_HookError_AbortsParse(t *testing.T) {
	boom := errors.New("boom")
	p := NewParser()
	p.Hooks.Symbol = func(raw *ParseResult) (any, error) {
		return nil, boom
	}

	_, err := p.Parse("t.smt2", "(set-logic QF_BV)")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
