package schema

import "github.com/wippyai/msgc/types"

// Option configures a Parser.
type Option func(*Parser)

// WithTable resolves types against t instead of types.Default().
func WithTable(t *types.Table) Option {
	return func(p *Parser) {
		p.table = t
	}
}

// WithUniqueNames rejects a field name that was already declared.
func WithUniqueNames() Option {
	return func(p *Parser) {
		p.uniqueNames = true
	}
}

// WithConstantCheck requires every constant literal to parse as its
// declared type.
func WithConstantCheck() Option {
	return func(p *Parser) {
		p.checkConstants = true
	}
}
