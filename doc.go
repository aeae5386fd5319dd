// Package smtparse parses SMT-LIB v2 problem scripts into a structured parse
// tree.
//
// The front end is a hand-written lexer plus a recursive-descent parser for
// every grammar production except term, which is unbounded in nesting depth
// and is therefore driven by an explicit-stack engine (see term.go) instead of
// host-language recursion. Every production has a single settable parse-action
// hook (see hooks.go) that a client can use to turn the raw token groups the
// grammar accepts into its own AST without touching the grammar itself.
//
// A Parser is built with NewParser, has its hooks optionally set, and is then
// used with a call to Parse. It is not safe for concurrent use. Each call to
// Parse resets the Parser's state, so a later call starts a fresh parse.
package smtparse
