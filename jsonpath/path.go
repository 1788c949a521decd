package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenKind distinguishes the two kinds of step in a Path.
type TokenKind int

const (
	// FieldToken selects a key of an object, or that key of every element of a list.
	FieldToken TokenKind = iota
	// IndexToken selects one element of a list.
	IndexToken
)

// Token is a single step of a Path.
type Token struct {
	Kind  TokenKind
	Field string
	// Index is the element position for an IndexToken. Negative values count from the end
	// of the list, so -1 is the last element.
	Index int
}

func (t Token) String() string {
	if t.Kind == IndexToken {
		return "[" + strconv.Itoa(t.Index) + "]"
	}
	return t.Field
}

// Path is a parsed path expression such as "address.geo.lat[4]". The zero value refers to
// the document root.
type Path struct {
	expr   string
	tokens []Token
}

// Parse parses a dotted path expression. Each dot-separated segment is a field name
// optionally followed by one or more bracketed integer indexes: "name", "name[4]",
// "matrix[1][0]". A leading "$" or "$." is accepted and ignored. The first segment may be
// a bare index, as in "[0].name", to select an element of a top-level list.
func Parse(expr string) (Path, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return Path{}, fmt.Errorf("%w: empty expression", ErrInvalidPath)
	}
	if strings.HasPrefix(s, "$") {
		s = strings.TrimPrefix(strings.TrimPrefix(s, "$"), ".")
		if s == "" {
			return Path{expr: expr}, nil
		}
	}

	p := Path{expr: expr}
	for i, segment := range strings.Split(s, ".") {
		tokens, err := parseSegment(segment, i == 0)
		if err != nil {
			return Path{}, fmt.Errorf("%w %q: %s", ErrInvalidPath, expr, err)
		}
		p.tokens = append(p.tokens, tokens...)
	}
	return p, nil
}

// MustParse is like Parse but panics on a malformed expression. It is meant for
// package-level path constants.
func MustParse(expr string) Path {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func parseSegment(segment string, first bool) ([]Token, error) {
	name := segment
	rest := ""
	if pos := strings.IndexByte(segment, '['); pos >= 0 {
		name, rest = segment[:pos], segment[pos:]
	}
	if strings.ContainsAny(name, "]") {
		return nil, fmt.Errorf("unexpected ']' in %q", segment)
	}

	var tokens []Token
	if name != "" {
		tokens = append(tokens, Token{Kind: FieldToken, Field: name})
	} else if rest == "" {
		return nil, fmt.Errorf("empty segment")
	} else if !first {
		return nil, fmt.Errorf("index without a field name in %q", segment)
	}

	for rest != "" {
		if rest[0] != '[' {
			return nil, fmt.Errorf("unexpected text %q after index", rest)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, fmt.Errorf("unterminated index in %q", segment)
		}
		n, err := strconv.Atoi(strings.TrimSpace(rest[1:end]))
		if err != nil {
			return nil, fmt.Errorf("index %q is not an integer", rest[1:end])
		}
		tokens = append(tokens, Token{Kind: IndexToken, Index: n})
		rest = rest[end+1:]
	}
	return tokens, nil
}

// Tokens returns the steps of the path.
func (p Path) Tokens() []Token {
	return append([]Token(nil), p.tokens...)
}

// String returns the expression the path was parsed from, or a canonical form for a path
// built with Field and Index.
func (p Path) String() string {
	if p.expr != "" {
		return p.expr
	}
	return p.canonical(len(p.tokens))
}

// Field returns a new path with a field step appended.
func (p Path) Field(name string) Path {
	return Path{tokens: append(p.Tokens(), Token{Kind: FieldToken, Field: name})}
}

// Index returns a new path with an index step appended.
func (p Path) Index(i int) Path {
	return Path{tokens: append(p.Tokens(), Token{Kind: IndexToken, Index: i})}
}

// canonical renders the first n tokens, for error messages.
func (p Path) canonical(n int) string {
	var b strings.Builder
	for i, t := range p.tokens[:n] {
		if t.Kind == FieldToken && i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(t.String())
	}
	if b.Len() == 0 {
		return "$"
	}
	return b.String()
}
