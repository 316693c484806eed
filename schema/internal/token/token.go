package token

import (
	"strings"
	"unicode"
)

type Type int

const (
	Word Type = iota
	Assign
)

func (t Type) String() string {
	switch t {
	case Word:
		return "word"
	case Assign:
		return "'='"
	}
	return "unknown"
}

type Token struct {
	Value  string
	Type   Type
	Column int
}

// Line is one physical schema line and the tokens found on it.
type Line struct {
	Text   string
	Tokens []Token
	Number int
}

// Blank reports whether the line holds no tokens.
func (l Line) Blank() bool {
	return len(l.Tokens) == 0
}

// Values returns the raw token strings.
func (l Line) Values() []string {
	out := make([]string, len(l.Tokens))
	for i, t := range l.Tokens {
		out[i] = t.Value
	}
	return out
}

// Split breaks input into lines and each line into whitespace separated
// tokens. A token is a maximal run of non-space runes; only a token that is
// exactly "=" is classified as Assign. Columns are 1-based rune offsets.
func Split(input string) []Line {
	raw := strings.Split(input, "\n")
	lines := make([]Line, 0, len(raw))
	for i, text := range raw {
		text = strings.TrimSuffix(text, "\r")
		lines = append(lines, Line{
			Number: i + 1,
			Text:   text,
			Tokens: tokenize(text),
		})
	}
	// A trailing newline does not start a new line.
	if n := len(lines); n > 0 && lines[n-1].Text == "" && strings.HasSuffix(input, "\n") {
		lines = lines[:n-1]
	}
	return lines
}

func tokenize(text string) []Token {
	var tokens []Token
	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		if unicode.IsSpace(runes[i]) {
			continue
		}
		start := i
		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			i++
		}
		value := string(runes[start:i])
		typ := Word
		if value == "=" {
			typ = Assign
		}
		tokens = append(tokens, Token{Value: value, Type: typ, Column: start + 1})
	}

	return tokens
}
