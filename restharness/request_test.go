package restharness

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURI = "https://jsonplaceholder.typicode.com"

func TestBuildInheritsSpecDefaults(t *testing.T) {
	spec := NewSpec(testBaseURI+"/", WithContentType(ContentTypeJSON), WithHeader("x-test", "1"))
	d, err := Build(spec, Path("/posts"))
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, d.Method)
	assert.Equal(t, testBaseURI, d.BaseURI)
	assert.Equal(t, "/posts", d.Path)
	assert.Nil(t, d.Body)
	assert.Equal(t, map[string]string{"X-Test": "1"}, d.Headers)
}

func TestBuildRequiresPath(t *testing.T) {
	_, err := Build(NewSpec(testBaseURI), Method("GET"))
	assert.Equal(t, ErrMissingPath, err)
}

func TestBuildDoesNotModifySpec(t *testing.T) {
	spec := NewSpec(testBaseURI, WithHeader("a", "1"))
	d, err := Build(spec, Get("/posts"), Header("a", "2"), Header("b", "3"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "2", "B": "3"}, d.Headers)
	assert.Equal(t, map[string]string{"A": "1"}, spec.Headers())

	h := spec.Headers()
	h["C"] = "4"
	assert.Equal(t, map[string]string{"A": "1"}, spec.Headers())
}

func TestBodySetsDefaultContentType(t *testing.T) {
	spec := NewSpec(testBaseURI, WithContentType(ContentTypeJSON))
	d, err := Build(spec, Post("/posts"), Body(`{"title":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, d.Method)
	require.NotNil(t, d.Body)
	assert.Equal(t, `{"title":"x"}`, *d.Body)
	assert.Equal(t, "application/json", d.Headers["Content-Type"])

	d, err = Build(spec, Post("/posts"), Body("x"), Header("content-type", "text/plain"))
	require.NoError(t, err)
	assert.Equal(t, "text/plain", d.Headers["Content-Type"])

	d, err = Build(spec, Get("/posts"))
	require.NoError(t, err)
	assert.NotContains(t, d.Headers, "Content-Type")
}

func TestJSONBody(t *testing.T) {
	d, err := Build(NewSpec(testBaseURI), Post("/posts"), JSONBody(map[string]string{"id": "101"}))
	require.NoError(t, err)
	require.NotNil(t, d.Body)
	assert.JSONEq(t, `{"id":"101"}`, *d.Body)

	_, err = Build(NewSpec(testBaseURI), Post("/posts"), JSONBody(func() {}))
	assert.Error(t, err)
}

func TestURLAndString(t *testing.T) {
	d, err := Build(NewSpec(testBaseURI), Get("posts/99"), Param("userId", "10"), Param("tag", "a b"))
	require.NoError(t, err)
	u, err := d.URL()
	require.NoError(t, err)
	assert.Equal(t, testBaseURI+"/posts/99?tag=a+b&userId=10", u.String())
	assert.Equal(t, "GET /posts/99?tag=a+b&userId=10", d.String())
}

func TestParamAppends(t *testing.T) {
	d, err := Build(NewSpec(testBaseURI), Get("/users"), Param("id", "5"), Param("id", "6"))
	require.NoError(t, err)
	assert.Equal(t, []string{"5", "6"}, d.Query["id"])
}

func TestParseContentType(t *testing.T) {
	for input, expected := range map[string]ContentType{
		"json":             ContentTypeJSON,
		"application/json": ContentTypeJSON,
		"TEXT":             ContentTypeText,
		"form":             ContentTypeForm,
		"":                 ContentTypeNone,
	} {
		c, ok := ParseContentType(input)
		assert.True(t, ok, input)
		assert.Equal(t, expected, c, input)
	}
	_, ok := ParseContentType("xml")
	assert.False(t, ok)
}

func TestCurlCommand(t *testing.T) {
	spec := NewSpec(testBaseURI, WithContentType(ContentTypeJSON))
	d, err := Build(spec, Post("/posts"), Body(`{"title": "it's"}`))
	require.NoError(t, err)
	assert.Equal(t,
		`curl -i -X POST -H 'Content-Type: application/json' --data-raw '{"title": "it'"'"'s"}' `+
			testBaseURI+"/posts",
		CurlCommand(d))

	d, err = Build(spec, Get("/users"), Param("id", "5"))
	require.NoError(t, err)
	assert.Equal(t, "curl -i '"+testBaseURI+"/users?id=5'", CurlCommand(d))
}
