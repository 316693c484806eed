package schema

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/msgc/errors"
	"github.com/wippyai/msgc/schema/internal/token"
	"github.com/wippyai/msgc/types"
)

// Parser turns schema text into a Message. A Parser holds no per-parse
// state and may be reused.
type Parser struct {
	table          *types.Table
	uniqueNames    bool
	checkConstants bool
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{table: types.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse is a shorthand for NewParser(opts...).Parse(src, name).
func Parse(src, name string, opts ...Option) (*Message, error) {
	return NewParser(opts...).Parse(src, name)
}

// Parse validates name, then each non-blank line top to bottom, and
// returns the first violation found.
func (p *Parser) Parse(src, name string) (*Message, error) {
	if !ValidIdentifier(name) {
		return nil, errors.InvalidMessageName(name)
	}

	log := Logger().With(zap.String("message", name))
	msg := &Message{Name: name}
	firstLine := make(map[string]int)

	for _, line := range token.Split(src) {
		if line.Blank() {
			continue
		}
		field, err := p.parseLine(line)
		if err != nil {
			log.Debug("schema rejected", zap.Int("line", line.Number), zap.Error(err))
			return nil, err
		}
		if first, dup := firstLine[field.Name]; dup {
			if p.uniqueNames {
				return nil, errors.DuplicateField(errors.PhaseParse, line.Number, field.Name, first)
			}
			log.Warn("duplicate field name", zap.String("field", field.Name), zap.Int("line", line.Number))
		} else {
			firstLine[field.Name] = line.Number
		}
		log.Debug("field",
			zap.Int("line", line.Number),
			zap.String("kind", field.Kind.String()),
			zap.String("type", field.Type.Name),
			zap.String("name", field.Name))
		msg.Fields = append(msg.Fields, field)
	}

	return msg, nil
}

func (p *Parser) parseLine(line token.Line) (Field, error) {
	toks := line.Tokens
	switch len(toks) {
	case 2:
	case 4:
		if toks[2].Type != token.Assign {
			return Field{}, errors.New(errors.PhaseParse, errors.KindMalformedDeclaration).
				Line(line.Number).
				Column(toks[2].Column).
				Token(toks[2].Value).
				Detail("expected '=' between name and constant").
				Build()
		}
	default:
		return Field{}, errors.MalformedDeclaration(line.Number, line.Text,
			"expected '<type> <name>' or '<type> <name> = <constant>', got "+strconv.Itoa(len(toks))+" tokens")
	}

	typ, err := p.table.Lookup(toks[0].Value)
	if err != nil {
		return Field{}, errors.UnknownType(line.Number, toks[0].Column, toks[0].Value)
	}

	name := toks[1]
	if !ValidIdentifier(name.Value) {
		return Field{}, errors.InvalidIdentifier(line.Number, name.Column, name.Value)
	}

	field := Field{
		Type: typ,
		Name: name.Value,
		Line: line.Number,
		Kind: Storage,
	}
	if len(toks) == 4 {
		field.Kind = Constant
		field.Value = toks[3].Value
		if p.checkConstants {
			if err := checkLiteral(typ, field.Value); err != nil {
				return Field{}, errors.InvalidConstant(line.Number, toks[3].Column, field.Value, typ.Name, err)
			}
		}
	}
	return field, nil
}

// checkLiteral parses lit with Go literal syntax sized to typ.
func checkLiteral(typ *types.Primitive, lit string) error {
	var err error
	switch typ.Class {
	case types.Signed:
		_, err = strconv.ParseInt(lit, 0, typ.Bits())
	case types.Unsigned:
		_, err = strconv.ParseUint(lit, 0, typ.Bits())
	case types.Float:
		_, err = strconv.ParseFloat(lit, typ.Bits())
	}
	return err
}
