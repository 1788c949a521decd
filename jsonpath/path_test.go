package jsonpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func field(name string) Token { return Token{Kind: FieldToken, Field: name} }
func index(i int) Token      { return Token{Kind: IndexToken, Index: i} }

func TestParseValidExpressions(t *testing.T) {
	for _, p := range []struct {
		expr   string
		tokens []Token
	}{
		{"title", []Token{field("title")}},
		{"name[4]", []Token{field("name"), index(4)}},
		{"address.geo.lat[4]", []Token{field("address"), field("geo"), field("lat"), index(4)}},
		{"company.bs[0]", []Token{field("company"), field("bs"), index(0)}},
		{"[0].name", []Token{index(0), field("name")}},
		{"matrix[1][-1]", []Token{field("matrix"), index(1), index(-1)}},
		{"$.address.city", []Token{field("address"), field("city")}},
		{" id ", []Token{field("id")}},
	} {
		t.Run(p.expr, func(t *testing.T) {
			path, err := Parse(p.expr)
			require.NoError(t, err)
			assert.Equal(t, p.tokens, path.Tokens())
			assert.Equal(t, p.expr, path.String())
		})
	}
}

func TestParseRoot(t *testing.T) {
	path, err := Parse("$")
	require.NoError(t, err)
	assert.Empty(t, path.Tokens())
}

func TestParseInvalidExpressions(t *testing.T) {
	for _, expr := range []string{
		"",
		"a..b",
		"a.",
		".a",
		"a[",
		"a[x]",
		"a[1]b",
		"a.[1]",
		"a]",
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := Parse(expr)
			assert.ErrorIs(t, err, ErrInvalidPath)
		})
	}
}

func TestMustParsePanicsOnInvalidExpression(t *testing.T) {
	assert.Panics(t, func() { MustParse("a..b") })
	assert.NotPanics(t, func() { MustParse("a.b") })
}

func TestBuiltPathString(t *testing.T) {
	p := Path{}.Field("address").Field("geo").Field("lat").Index(4)
	assert.Equal(t, "address.geo.lat[4]", p.String())
}

func TestFieldAndIndexDoNotShareTokens(t *testing.T) {
	base := MustParse("a.b")
	x := base.Field("x")
	y := base.Field("y")
	assert.Equal(t, "a.b.x", Path{tokens: x.Tokens()}.String())
	assert.Equal(t, "a.b.y", Path{tokens: y.Tokens()}.String())
}
